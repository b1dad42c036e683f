package models

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewInput_UnmarshalTypedValues(t *testing.T) {
	var in ReviewInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Alice","dealership":5,"purchase":true,"car_year":2022,"car_make":"Toyota"}`), &in))

	assert.Equal(t, "Alice", *in.Name)
	assert.Equal(t, int64(5), *in.Dealership)
	assert.True(t, *in.Purchase)
	assert.Equal(t, int64(2022), *in.CarYear)
	assert.Equal(t, "Toyota", *in.CarMake)
	assert.Nil(t, in.Review)
	assert.Nil(t, in.CarModel)
}

func TestReviewInput_UnmarshalCastsLooseValues(t *testing.T) {
	var in ReviewInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":42,"dealership":"5","purchase":"yes","car_year":" 2022 ","car_model":false,"review":null}`), &in))

	assert.Equal(t, "42", *in.Name)
	assert.Equal(t, int64(5), *in.Dealership)
	assert.True(t, *in.Purchase)
	assert.Equal(t, int64(2022), *in.CarYear)
	assert.Equal(t, "false", *in.CarModel)
	assert.Nil(t, in.Review)
}

func TestReviewInput_UnmarshalCastEdges(t *testing.T) {
	cases := []struct {
		body  string
		check func(t *testing.T, in ReviewInput)
	}{
		{`{"dealership":""}`, func(t *testing.T, in ReviewInput) { assert.Nil(t, in.Dealership) }},
		{`{"dealership":true}`, func(t *testing.T, in ReviewInput) { assert.Equal(t, int64(1), *in.Dealership) }},
		{`{"car_year":2022.0}`, func(t *testing.T, in ReviewInput) { assert.Equal(t, int64(2022), *in.CarYear) }},
		{`{"purchase":0}`, func(t *testing.T, in ReviewInput) { assert.False(t, *in.Purchase) }},
		{`{"purchase":"no"}`, func(t *testing.T, in ReviewInput) { assert.False(t, *in.Purchase) }},
		{`null`, func(t *testing.T, in ReviewInput) { assert.Nil(t, in.Name) }},
	}

	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			var in ReviewInput
			require.NoError(t, json.Unmarshal([]byte(tc.body), &in))
			tc.check(t, in)
		})
	}
}

func TestReviewInput_UnmarshalRejectsUncastableValues(t *testing.T) {
	for _, body := range []string{
		`{"dealership":"five"}`,
		`{"car_year":2022.5}`,
		`{"purchase":"maybe"}`,
		`{"purchase":2}`,
		`{"name":{"first":"Alice"}}`,
		`{"dealership":[5]}`,
		`[]`,
	} {
		var in ReviewInput
		assert.Error(t, json.Unmarshal([]byte(body), &in), body)
	}

	var in ReviewInput
	err := json.Unmarshal([]byte(`{"dealership":"five"}`), &in)
	var castErr *ReviewCastError
	require.ErrorAs(t, err, &castErr)
	assert.Equal(t, "dealership", castErr.Field)
}

func TestReviewInput_DecodeForm(t *testing.T) {
	var in ReviewInput
	require.NoError(t, in.DecodeForm(url.Values{
		"name":       {"Bob", "ignored"},
		"dealership": {"23"},
		"purchase":   {"1"},
		"car_year":   {""},
	}))

	assert.Equal(t, "Bob", *in.Name)
	assert.Equal(t, int64(23), *in.Dealership)
	assert.True(t, *in.Purchase)
	assert.Nil(t, in.CarYear)

	assert.Error(t, in.DecodeForm(url.Values{"dealership": {"abc"}}))
}
