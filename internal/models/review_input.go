package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ReviewInput is the body accepted by the insert endpoint. Values are cast to
// the stored types the way a loosely typed client expects: numeric strings
// become numbers, "yes"/"no"/"1"/"0" become booleans, numbers and booleans
// become strings. Empty strings and nulls leave the field unset.
type ReviewInput struct {
	Name         *string
	Dealership   *int64
	Review       *string
	Purchase     *bool
	PurchaseDate *string
	CarMake      *string
	CarModel     *string
	CarYear      *int64
}

// ReviewCastError reports a body field whose value can't be cast.
type ReviewCastError struct {
	Field string
	Value interface{}
	Type  string
}

func (e *ReviewCastError) Error() string {
	return fmt.Sprintf("cast to %s failed for value %v at path %q", e.Type, e.Value, e.Field)
}

func (in *ReviewInput) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var fields map[string]interface{}
	if err := decoder.Decode(&fields); err != nil {
		return err
	}
	return in.assign(fields)
}

// DecodeForm fills the input from url-encoded form values. Only the first value
// of a repeated key is used.
func (in *ReviewInput) DecodeForm(values url.Values) error {
	fields := make(map[string]interface{}, len(values))
	for key := range values {
		fields[key] = values.Get(key)
	}
	return in.assign(fields)
}

func (in *ReviewInput) assign(fields map[string]interface{}) error {
	var err error
	if in.Name, err = castString("name", fields["name"]); err != nil {
		return err
	}
	if in.Dealership, err = castInt64("dealership", fields["dealership"]); err != nil {
		return err
	}
	if in.Review, err = castString("review", fields["review"]); err != nil {
		return err
	}
	if in.Purchase, err = castBool("purchase", fields["purchase"]); err != nil {
		return err
	}
	if in.PurchaseDate, err = castString("purchase_date", fields["purchase_date"]); err != nil {
		return err
	}
	if in.CarMake, err = castString("car_make", fields["car_make"]); err != nil {
		return err
	}
	if in.CarModel, err = castString("car_model", fields["car_model"]); err != nil {
		return err
	}
	if in.CarYear, err = castInt64("car_year", fields["car_year"]); err != nil {
		return err
	}
	return nil
}

func castString(field string, value interface{}) (*string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	case json.Number:
		s := v.String()
		return &s, nil
	case bool:
		s := strconv.FormatBool(v)
		return &s, nil
	}
	return nil, &ReviewCastError{Field: field, Value: value, Type: "string"}
}

func castInt64(field string, value interface{}) (*int64, error) {
	var text string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case bool:
		var n int64
		if v {
			n = 1
		}
		return &n, nil
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
		if text == "" {
			return nil, nil
		}
	default:
		return nil, &ReviewCastError{Field: field, Value: value, Type: "number"}
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &n, nil
	}
	// 2022.0 and 2.022e3 are still whole numbers.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return nil, &ReviewCastError{Field: field, Value: value, Type: "number"}
	}
	n := int64(f)
	return &n, nil
}

func castBool(field string, value interface{}) (*bool, error) {
	var text string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case bool:
		return &v, nil
	case json.Number:
		text = v.String()
	case string:
		text = v
		if text == "" {
			return nil, nil
		}
	default:
		return nil, &ReviewCastError{Field: field, Value: value, Type: "boolean"}
	}

	var b bool
	switch text {
	case "true", "1", "yes":
		b = true
	case "false", "0", "no":
		b = false
	default:
		return nil, &ReviewCastError{Field: field, Value: value, Type: "boolean"}
	}
	return &b, nil
}
