package repository

import (
	"context"
	"fmt"

	"github.com/cardealer-labs/dealerships-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const DealershipCollection string = "dealerships"

// DealershipRepository is read-only for the API; the write methods exist for seeding.
type DealershipRepository interface {
	GetWithDealershipFilters(ctx context.Context, filters *bson.M) ([]models.DealershipModel, error)
	DeleteAllDealerships(ctx context.Context) (int64, error)
	InsertDealerships(ctx context.Context, dealerships []models.DealershipModel) (int64, error)
	UpsertDealerships(ctx context.Context, dealerships []models.DealershipModel) (*UpsertResult, error)
}

type MongoDealershipRepository struct {
	dbClient   *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoDealershipRepository(dbClient *mongo.Client, database *mongo.Database) (*MongoDealershipRepository, error) {
	collection := database.Collection(DealershipCollection)
	if collection == nil {
		return nil, fmt.Errorf("could not get collection %s", DealershipCollection)
	}

	return &MongoDealershipRepository{
		dbClient:   dbClient,
		db:         database,
		collection: collection,
	}, nil
}

// Get DealershipModels from the MongoDB database with filters, ordered by dealership id
func (repo *MongoDealershipRepository) GetWithDealershipFilters(ctx context.Context, filters *bson.M) ([]models.DealershipModel, error) {
	cursor, err := repo.collection.Find(ctx, filters, findSortedById())
	if err != nil {
		return nil, fmt.Errorf("could not find dealerships with filters %v: %w", filters, err)
	}

	var modelResults []models.DealershipModel
	if err = cursor.All(ctx, &modelResults); err != nil {
		return nil, fmt.Errorf("could not decode dealerships: %w", err)
	}

	if modelResults == nil {
		modelResults = make([]models.DealershipModel, 0)
	}

	return modelResults, nil
}

func (repo *MongoDealershipRepository) DeleteAllDealerships(ctx context.Context) (int64, error) {
	return deleteAll(ctx, repo.collection)
}

func (repo *MongoDealershipRepository) InsertDealerships(ctx context.Context, dealerships []models.DealershipModel) (int64, error) {
	return insertAll(ctx, repo.collection, dealerships)
}

func (repo *MongoDealershipRepository) UpsertDealerships(ctx context.Context, dealerships []models.DealershipModel) (*UpsertResult, error) {
	return upsertById(ctx, repo.collection, dealerships, func(d models.DealershipModel) (int64, bool) {
		return d.Id, d.Id != 0
	})
}
