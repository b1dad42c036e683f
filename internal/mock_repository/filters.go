package mock_repository

import (
	"go.mongodb.org/mongo-driver/bson"
)

// matches reports whether doc satisfies every equality condition in filters,
// comparing against the document's BSON form like the server would.
func matches(doc interface{}, filters *bson.M) (bool, error) {
	if filters == nil || len(*filters) == 0 {
		return true, nil
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return false, err
	}
	var stored bson.M
	if err := bson.Unmarshal(raw, &stored); err != nil {
		return false, err
	}

	for key, want := range *filters {
		got, ok := stored[key]
		if !ok || !equalValues(got, want) {
			return false, nil
		}
	}
	return true, nil
}

func equalValues(a, b interface{}) bool {
	if an, ok := toFloat(a); ok {
		bn, ok := toFloat(b)
		return ok && an == bn
	}
	return a == b
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
