package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CounterCollection string = "counters"

// ReviewSequence names the counter that hands out review ids.
const ReviewSequence string = "reviews"

// SequenceRepository hands out increasing integer ids. Each call to NextSequence
// is a single atomic update on the server, so concurrent callers never share a value.
type SequenceRepository interface {
	NextSequence(ctx context.Context, name string) (int64, error)
	RaiseSequence(ctx context.Context, name string, floor int64) error
	ResetSequence(ctx context.Context, name string, value int64) error
}

type MongoSequenceRepository struct {
	dbClient   *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

type counterModel struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"seq"`
}

func NewMongoSequenceRepository(dbClient *mongo.Client, database *mongo.Database) (*MongoSequenceRepository, error) {
	collection := database.Collection(CounterCollection)
	if collection == nil {
		return nil, fmt.Errorf("could not get collection %s", CounterCollection)
	}

	return &MongoSequenceRepository{
		dbClient:   dbClient,
		db:         database,
		collection: collection,
	}, nil
}

// NextSequence increments the named counter and returns the new value, creating
// the counter at 1 if it doesn't exist yet.
func (repo *MongoSequenceRepository) NextSequence(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter counterModel
	err := repo.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("could not advance sequence %s: %w", name, err)
	}

	return counter.Value, nil
}

// RaiseSequence makes sure the named counter is at least floor, so the next id
// handed out is above every id already stored.
func (repo *MongoSequenceRepository) RaiseSequence(ctx context.Context, name string, floor int64) error {
	_, err := repo.collection.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": floor}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("could not raise sequence %s to %d: %w", name, floor, err)
	}
	return nil
}

// ResetSequence sets the named counter to value even when it is currently
// higher. Used after the stored ids were replaced wholesale.
func (repo *MongoSequenceRepository) ResetSequence(ctx context.Context, name string, value int64) error {
	_, err := repo.collection.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$set": bson.M{"seq": value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("could not reset sequence %s to %d: %w", name, value, err)
	}
	return nil
}
