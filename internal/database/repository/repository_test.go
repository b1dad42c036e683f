package repository

import (
	"context"
	"testing"

	"github.com/cardealer-labs/dealerships-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const (
	reviewsNamespace     = "dealershipsDB.reviews"
	dealershipsNamespace = "dealershipsDB.dealerships"
)

func badValue() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{
		Code:    2,
		Name:    "BadValue",
		Message: "bad value",
	})
}

func TestMongoReviewRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get with filters decodes reviews", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, reviewsNamespace, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "id", Value: int32(1)},
				{Key: "name", Value: "Berkly Shepley"},
				{Key: "dealership", Value: int32(15)},
				{Key: "purchase", Value: true},
				{Key: "car_year", Value: int32(2010)},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "id", Value: int32(2)},
				{Key: "dealership", Value: int32(15)},
			},
		))

		reviews, err := repo.GetWithReviewFilters(ctx, &bson.M{"dealership": int64(15)})
		require.NoError(mt, err)
		require.Len(mt, reviews, 2)
		assert.Equal(mt, int64(1), reviews[0].Id)
		assert.Equal(mt, "Berkly Shepley", *reviews[0].Name)
		assert.Equal(mt, int64(2010), *reviews[0].CarYear)
		assert.True(mt, *reviews[0].Purchase)
		assert.Nil(mt, reviews[1].Name)
	})

	mt.Run("get with filters returns empty slice", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, reviewsNamespace, mtest.FirstBatch))

		reviews, err := repo.GetWithReviewFilters(ctx, &bson.M{"id": int64(999)})
		require.NoError(mt, err)
		assert.NotNil(mt, reviews)
		assert.Empty(mt, reviews)
	})

	mt.Run("get with filters surfaces errors", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(badValue())

		_, err = repo.GetWithReviewFilters(ctx, &bson.M{})
		assert.Error(mt, err)
	})

	mt.Run("save assigns object id", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		name := "Alice"
		saved, err := repo.Save(ctx, &models.ReviewModel{Id: 51, Name: &name})
		require.NoError(mt, err)
		assert.False(mt, saved.ObjectId.IsZero())
		assert.Equal(mt, int64(51), saved.Id)
	})

	mt.Run("max review id", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, reviewsNamespace, mtest.FirstBatch,
			bson.D{{Key: "id", Value: int32(50)}},
		))

		maxId, err := repo.GetMaxReviewId(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, int64(50), maxId)
	})

	mt.Run("max review id of empty collection", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, reviewsNamespace, mtest.FirstBatch))

		maxId, err := repo.GetMaxReviewId(ctx)
		require.NoError(mt, err)
		assert.Zero(mt, maxId)
	})

	mt.Run("delete all", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(3)}))

		deleted, err := repo.DeleteAllReviews(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), deleted)
	})

	mt.Run("insert reviews", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(2)}))

		inserted, err := repo.InsertReviews(ctx, []models.ReviewModel{{Id: 1}, {Id: 2}})
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), inserted)
	})

	mt.Run("insert nothing", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		inserted, err := repo.InsertReviews(ctx, nil)
		require.NoError(mt, err)
		assert.Zero(mt, inserted)
	})

	mt.Run("upsert reviews", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(2)},
			bson.E{Key: "nModified", Value: int32(1)},
			bson.E{Key: "upserted", Value: bson.A{
				bson.D{{Key: "index", Value: int32(1)}, {Key: "_id", Value: primitive.NewObjectID()}},
			}},
		))

		res, err := repo.UpsertReviews(ctx, []models.ReviewModel{{Id: 1}, {Id: 2}})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.Upserted)
		assert.Equal(mt, int64(1), res.Modified)
	})

	mt.Run("upsert surfaces errors", func(mt *mtest.T) {
		repo, err := NewMongoReviewRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(badValue())

		_, err = repo.UpsertReviews(ctx, []models.ReviewModel{{Id: 1}})
		assert.Error(mt, err)
	})
}

func TestMongoDealershipRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get with filters keeps attributes", func(mt *mtest.T) {
		repo, err := NewMongoDealershipRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, dealershipsNamespace, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "id", Value: int32(1)},
				{Key: "city", Value: "El Paso"},
				{Key: "state", Value: "Texas"},
				{Key: "zip", Value: "88563"},
				{Key: "lat", Value: 31.6948},
			},
		))

		dealerships, err := repo.GetWithDealershipFilters(ctx, &bson.M{"state": "Texas"})
		require.NoError(mt, err)
		require.Len(mt, dealerships, 1)
		assert.Equal(mt, int64(1), dealerships[0].Id)
		assert.Equal(mt, "Texas", dealerships[0].State)
		assert.Equal(mt, "El Paso", dealerships[0].Attributes["city"])
		assert.Equal(mt, 31.6948, dealerships[0].Attributes["lat"])
		assert.NotContains(mt, dealerships[0].Attributes, "_id")
	})

	mt.Run("get with filters returns empty slice", func(mt *mtest.T) {
		repo, err := NewMongoDealershipRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, dealershipsNamespace, mtest.FirstBatch))

		dealerships, err := repo.GetWithDealershipFilters(ctx, &bson.M{"state": "Atlantis"})
		require.NoError(mt, err)
		assert.NotNil(mt, dealerships)
		assert.Empty(mt, dealerships)
	})

	mt.Run("get with filters surfaces errors", func(mt *mtest.T) {
		repo, err := NewMongoDealershipRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(badValue())

		_, err = repo.GetWithDealershipFilters(ctx, &bson.M{})
		assert.Error(mt, err)
	})

	mt.Run("delete then insert", func(mt *mtest.T) {
		repo, err := NewMongoDealershipRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(5)}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}),
		)

		deleted, err := repo.DeleteAllDealerships(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, int64(5), deleted)

		inserted, err := repo.InsertDealerships(ctx, []models.DealershipModel{{Id: 1, State: "Texas"}})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), inserted)
	})
}

func TestMongoSequenceRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("next sequence returns the incremented value", func(mt *mtest.T) {
		repo, err := NewMongoSequenceRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: ReviewSequence},
			{Key: "seq", Value: int64(51)},
		}}))

		next, err := repo.NextSequence(ctx, ReviewSequence)
		require.NoError(mt, err)
		assert.Equal(mt, int64(51), next)
	})

	mt.Run("next sequence surfaces errors", func(mt *mtest.T) {
		repo, err := NewMongoSequenceRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(badValue())

		_, err = repo.NextSequence(ctx, ReviewSequence)
		assert.Error(mt, err)
	})

	mt.Run("raise sequence", func(mt *mtest.T) {
		repo, err := NewMongoSequenceRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(1)},
			bson.E{Key: "nModified", Value: int32(1)},
		))

		assert.NoError(mt, repo.RaiseSequence(ctx, ReviewSequence, 50))
	})

	mt.Run("reset sequence", func(mt *mtest.T) {
		repo, err := NewMongoSequenceRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(1)},
			bson.E{Key: "nModified", Value: int32(1)},
		))

		assert.NoError(mt, repo.ResetSequence(ctx, ReviewSequence, 3))
	})

	mt.Run("reset sequence surfaces errors", func(mt *mtest.T) {
		repo, err := NewMongoSequenceRepository(mt.Client, mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(badValue())

		assert.Error(mt, repo.ResetSequence(ctx, ReviewSequence, 3))
	})
}
