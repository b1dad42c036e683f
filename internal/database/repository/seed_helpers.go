package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertResult counts the outcome of an upsert-by-id bulk write.
type UpsertResult struct {
	Modified int64
	Upserted int64
	Inserted int64
}

func findSortedById() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
}

func deleteAll(ctx context.Context, collection *mongo.Collection) (int64, error) {
	res, err := collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("could not clear %s: %w", collection.Name(), err)
	}
	return res.DeletedCount, nil
}

func insertAll[T any](ctx context.Context, collection *mongo.Collection, docs []T) (int64, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	batch := make([]interface{}, len(docs))
	for i := range docs {
		batch[i] = docs[i]
	}

	res, err := collection.InsertMany(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("could not insert into %s: %w", collection.Name(), err)
	}
	return int64(len(res.InsertedIDs)), nil
}

// upsertById replaces each document matching its natural id, inserting it when
// absent. Documents without an id are plain inserts. The write is unordered so
// one bad document doesn't stop the rest.
func upsertById[T any](ctx context.Context, collection *mongo.Collection, docs []T, idOf func(T) (int64, bool)) (*UpsertResult, error) {
	result := &UpsertResult{}
	if len(docs) == 0 {
		return result, nil
	}

	writes := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		id, ok := idOf(doc)
		if !ok {
			writes = append(writes, mongo.NewInsertOneModel().SetDocument(doc))
			continue
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": id}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	res, err := collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if res != nil {
		result.Modified = res.ModifiedCount
		result.Upserted = res.UpsertedCount
		result.Inserted = res.InsertedCount
	}
	if err != nil {
		return result, fmt.Errorf("could not upsert into %s: %w", collection.Name(), err)
	}
	return result, nil
}
