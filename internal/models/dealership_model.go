package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DealershipModel is a dealership record. Only the id and state are read by the
// server; every other field (city, address, zip, coordinates, names, ...) is kept
// in Attributes and written back out exactly as it was loaded.
type DealershipModel struct {
	ObjectId   primitive.ObjectID     `bson:"_id,omitempty"`
	Id         int64                  `bson:"id"`
	State      string                 `bson:"state"`
	Attributes map[string]interface{} `bson:",inline"`
}

// MarshalJSON flattens Attributes next to the known fields. Keys come out
// sorted, so the same record always encodes to the same bytes.
func (d DealershipModel) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Attributes)+3)
	for key, value := range d.Attributes {
		out[key] = value
	}
	if !d.ObjectId.IsZero() {
		out["_id"] = d.ObjectId
	}
	out["id"] = d.Id
	out["state"] = d.State
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat dealership object. Integral numbers in the
// attributes stay integers so they are stored as such.
func (d *DealershipModel) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	model := DealershipModel{Attributes: make(map[string]interface{})}
	for key, value := range raw {
		switch key {
		case "_id":
			if err := json.Unmarshal(value, &model.ObjectId); err != nil {
				return fmt.Errorf("invalid dealership _id: %w", err)
			}
		case "id":
			if err := json.Unmarshal(value, &model.Id); err != nil {
				return fmt.Errorf("invalid dealership id: %w", err)
			}
		case "state":
			if err := json.Unmarshal(value, &model.State); err != nil {
				return fmt.Errorf("invalid dealership state: %w", err)
			}
		default:
			attr, err := decodeAttribute(value)
			if err != nil {
				return fmt.Errorf("invalid dealership field %q: %w", key, err)
			}
			model.Attributes[key] = attr
		}
	}

	*d = model
	return nil
}

func decodeAttribute(value json.RawMessage) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(value))
	decoder.UseNumber()

	var attr interface{}
	if err := decoder.Decode(&attr); err != nil {
		return nil, err
	}
	return normalizeNumbers(attr), nil
}

func normalizeNumbers(value interface{}) interface{} {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case map[string]interface{}:
		for key, inner := range v {
			v[key] = normalizeNumbers(inner)
		}
		return v
	case []interface{}:
		for i, inner := range v {
			v[i] = normalizeNumbers(inner)
		}
		return v
	default:
		return v
	}
}
