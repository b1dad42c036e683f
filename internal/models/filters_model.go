package models

// ReviewModelFilters contains all the ways the reviews collection can be queried.
// A nil field does not filter.
type ReviewModelFilters struct {
	ID         *int64 `bson:"id,omitempty"`
	Dealership *int64 `bson:"dealership,omitempty"`
}

// DealershipModelFilters contains all the ways the dealerships collection can be queried.
type DealershipModelFilters struct {
	ID    *int64  `bson:"id,omitempty"`
	State *string `bson:"state,omitempty"`
}
