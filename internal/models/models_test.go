package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const dealershipJSON = `{"id":1,"city":"El Paso","state":"Texas","st":"TX","address":"3 Nova Court","zip":"88563","lat":31.6948,"long":-106.3,"short_name":"Holdlamis","full_name":"Holdlamis Car Dealership"}`

func TestDealershipModel_UnmarshalKeepsAttributes(t *testing.T) {
	var d DealershipModel
	require.NoError(t, json.Unmarshal([]byte(dealershipJSON), &d))

	assert.Equal(t, int64(1), d.Id)
	assert.Equal(t, "Texas", d.State)
	assert.True(t, d.ObjectId.IsZero())
	assert.Equal(t, "El Paso", d.Attributes["city"])
	assert.Equal(t, "88563", d.Attributes["zip"])
	assert.Equal(t, 31.6948, d.Attributes["lat"])
	assert.NotContains(t, d.Attributes, "id")
	assert.NotContains(t, d.Attributes, "state")
}

func TestDealershipModel_IntegralAttributesStayIntegers(t *testing.T) {
	var d DealershipModel
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"state":"Ohio","lots":3,"rating":4.5}`), &d))

	assert.Equal(t, int64(3), d.Attributes["lots"])
	assert.Equal(t, 4.5, d.Attributes["rating"])
}

func TestDealershipModel_MarshalIsStable(t *testing.T) {
	var d DealershipModel
	require.NoError(t, json.Unmarshal([]byte(dealershipJSON), &d))

	first, err := json.Marshal(d)
	require.NoError(t, err)
	second, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.JSONEq(t, dealershipJSON, string(first))
}

func TestDealershipModel_BSONInlinesAttributes(t *testing.T) {
	d := DealershipModel{Id: 7, State: "Kansas", Attributes: map[string]interface{}{"city": "Topeka"}}

	raw, err := bson.Marshal(d)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "Topeka", doc["city"])
	assert.Equal(t, "Kansas", doc["state"])
	assert.NotContains(t, doc, "_id")
	assert.NotContains(t, doc, "attributes")
}

func TestNewReviewModel_LeavesMissingFieldsUnset(t *testing.T) {
	name := "Alice"
	review := NewReviewModel(4, &ReviewInput{Name: &name})

	raw, err := json.Marshal(review)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, float64(4), out["id"])
	assert.Equal(t, "Alice", out["name"])
	assert.NotContains(t, out, "dealership")
	assert.NotContains(t, out, "purchase")

	doc, err := bson.Marshal(review)
	require.NoError(t, err)
	var stored bson.M
	require.NoError(t, bson.Unmarshal(doc, &stored))
	assert.NotContains(t, stored, "car_year")
	assert.NotContains(t, stored, "_id")
}

func TestNewReviewModel_NilInput(t *testing.T) {
	review := NewReviewModel(1, nil)
	assert.Equal(t, int64(1), review.Id)
	assert.Nil(t, review.Name)
}

func TestParseSeedStrategy(t *testing.T) {
	s, err := ParseSeedStrategy("replace")
	require.NoError(t, err)
	assert.Equal(t, SeedReplace, s)

	_, err = ParseSeedStrategy("merge")
	assert.Error(t, err)
}
