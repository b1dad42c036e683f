package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cardealer-labs/dealerships-api/internal/database/repository"
	"github.com/cardealer-labs/dealerships-api/internal/database/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// A DatabaseClient establishes a connection to the MongoDB database and allows
// for interfacing through the different collections through it.
// Whoever uses this struct to establish a connection to the database is responsible
// for calling the Disconnect() method to gracefully disconnect from the database
type DatabaseClient struct {
	databaseClient       *mongo.Client
	reviewRepository     repository.ReviewRepository
	dealershipRepository repository.DealershipRepository
	sequenceRepository   repository.SequenceRepository
}

// NewDatabaseClient connects to uri and pings the primary. Failing to reach the
// server within connectTimeout is an error; the caller treats it as fatal.
func NewDatabaseClient(ctx context.Context, uri string, databaseName string, connectTimeout time.Duration) (*DatabaseClient, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	databaseClient, err := newDatabaseClient(client, client.Database(databaseName))
	if err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return databaseClient, nil
}

func newDatabaseClient(client *mongo.Client, db *mongo.Database) (*DatabaseClient, error) {
	if db == nil {
		return nil, fmt.Errorf("could not connect to database")
	}

	reviewRepository, err := repository.NewMongoReviewRepository(client, db)
	if err != nil {
		return nil, fmt.Errorf("could not create reviewRepository: %w", err)
	}

	dealershipRepository, err := repository.NewMongoDealershipRepository(client, db)
	if err != nil {
		return nil, fmt.Errorf("could not create dealershipRepository: %w", err)
	}

	sequenceRepository, err := repository.NewMongoSequenceRepository(client, db)
	if err != nil {
		return nil, fmt.Errorf("could not create sequenceRepository: %w", err)
	}

	return &DatabaseClient{
		databaseClient:       client,
		reviewRepository:     reviewRepository,
		dealershipRepository: dealershipRepository,
		sequenceRepository:   sequenceRepository,
	}, nil
}

func (client *DatabaseClient) ReviewUseCase() *usecase.ReviewUseCase {
	return usecase.NewReviewUseCase(client.reviewRepository, client.sequenceRepository)
}

func (client *DatabaseClient) DealershipUseCase() *usecase.DealershipUseCase {
	return usecase.NewDealershipUseCase(client.dealershipRepository)
}

func (client *DatabaseClient) Disconnect(ctx context.Context) error {
	err := client.databaseClient.Disconnect(ctx)
	if err != nil {
		return fmt.Errorf("failed to disconnect MongoDB client: %w", err)
	}
	return nil
}
