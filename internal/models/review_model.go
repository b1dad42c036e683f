package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ReviewModel is a single dealership review as stored in the reviews collection.
// Everything except Id is optional; unset fields are left out of the stored
// document instead of being written as null.
type ReviewModel struct {
	ObjectId     primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Id           int64              `json:"id" bson:"id"`
	Name         *string            `json:"name,omitempty" bson:"name,omitempty"`
	Dealership   *int64             `json:"dealership,omitempty" bson:"dealership,omitempty"`
	Review       *string            `json:"review,omitempty" bson:"review,omitempty"`
	Purchase     *bool              `json:"purchase,omitempty" bson:"purchase,omitempty"`
	PurchaseDate *string            `json:"purchase_date,omitempty" bson:"purchase_date,omitempty"`
	CarMake      *string            `json:"car_make,omitempty" bson:"car_make,omitempty"`
	CarModel     *string            `json:"car_model,omitempty" bson:"car_model,omitempty"`
	CarYear      *int64             `json:"car_year,omitempty" bson:"car_year,omitempty"`
}

// NewReviewModel builds the review that gets persisted for id from the input.
func NewReviewModel(id int64, input *ReviewInput) *ReviewModel {
	review := &ReviewModel{Id: id}
	if input == nil {
		return review
	}

	review.Name = input.Name
	review.Dealership = input.Dealership
	review.Review = input.Review
	review.Purchase = input.Purchase
	review.PurchaseDate = input.PurchaseDate
	review.CarMake = input.CarMake
	review.CarModel = input.CarModel
	review.CarYear = input.CarYear
	return review
}
