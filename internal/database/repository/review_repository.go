package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cardealer-labs/dealerships-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReviewCollection string = "reviews"

// ReviewRepository contains the methods any db implementation needs to implement to interact with review data
type ReviewRepository interface {
	Save(ctx context.Context, review *models.ReviewModel) (*models.ReviewModel, error)
	GetWithReviewFilters(ctx context.Context, filters *bson.M) ([]models.ReviewModel, error)
	GetMaxReviewId(ctx context.Context) (int64, error)
	DeleteAllReviews(ctx context.Context) (int64, error)
	InsertReviews(ctx context.Context, reviews []models.ReviewModel) (int64, error)
	UpsertReviews(ctx context.Context, reviews []models.ReviewModel) (*UpsertResult, error)
}

type MongoReviewRepository struct {
	dbClient   *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoReviewRepository(dbClient *mongo.Client, database *mongo.Database) (*MongoReviewRepository, error) {
	collection := database.Collection(ReviewCollection)
	if collection == nil {
		return nil, fmt.Errorf("could not get collection %s", ReviewCollection)
	}

	return &MongoReviewRepository{
		dbClient:   dbClient,
		db:         database,
		collection: collection,
	}, nil
}

// Inserts a ReviewModel into the MongoDB database and fills in the storage assigned _id
func (repo *MongoReviewRepository) Save(ctx context.Context, review *models.ReviewModel) (*models.ReviewModel, error) {
	res, err := repo.collection.InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("could not insert review %d: %w", review.Id, err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ObjectId = oid
	}
	return review, nil
}

// Get ReviewModels from the MongoDB database with filters, ordered by review id
func (repo *MongoReviewRepository) GetWithReviewFilters(ctx context.Context, filters *bson.M) ([]models.ReviewModel, error) {
	cursor, err := repo.collection.Find(ctx, filters, findSortedById())
	if err != nil {
		return nil, fmt.Errorf("could not find reviews with filters %v: %w", filters, err)
	}

	var modelResults []models.ReviewModel
	if err = cursor.All(ctx, &modelResults); err != nil {
		return nil, fmt.Errorf("could not decode reviews: %w", err)
	}

	if modelResults == nil {
		modelResults = make([]models.ReviewModel, 0)
	}

	return modelResults, nil
}

// GetMaxReviewId returns the highest review id in the collection, or 0 when it is empty
func (repo *MongoReviewRepository) GetMaxReviewId(ctx context.Context) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "id", Value: -1}}).
		SetProjection(bson.M{"id": 1})

	var latest struct {
		Id int64 `bson:"id"`
	}
	err := repo.collection.FindOne(ctx, bson.M{}, opts).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not find the latest review: %w", err)
	}

	return latest.Id, nil
}

func (repo *MongoReviewRepository) DeleteAllReviews(ctx context.Context) (int64, error) {
	return deleteAll(ctx, repo.collection)
}

func (repo *MongoReviewRepository) InsertReviews(ctx context.Context, reviews []models.ReviewModel) (int64, error) {
	return insertAll(ctx, repo.collection, reviews)
}

func (repo *MongoReviewRepository) UpsertReviews(ctx context.Context, reviews []models.ReviewModel) (*UpsertResult, error) {
	return upsertById(ctx, repo.collection, reviews, func(r models.ReviewModel) (int64, bool) {
		return r.Id, r.Id != 0
	})
}
