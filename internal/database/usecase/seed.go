package usecase

import (
	"context"
	"fmt"

	"github.com/cardealer-labs/dealerships-api/internal/database/repository"
	"github.com/cardealer-labs/dealerships-api/internal/models"
)

type seedFuncs[T any] struct {
	deleteAll func(ctx context.Context) (int64, error)
	insert    func(ctx context.Context, docs []T) (int64, error)
	upsert    func(ctx context.Context, docs []T) (*repository.UpsertResult, error)
}

func seed[T any](ctx context.Context, strategy models.SeedStrategy, docs []T, fns seedFuncs[T]) (models.SeedResult, error) {
	var result models.SeedResult

	switch strategy {
	case models.SeedReplace:
		// Delete must finish before the insert starts, or restarts pile up duplicates.
		deleted, err := fns.deleteAll(ctx)
		result.Deleted = deleted
		if err != nil {
			return result, err
		}

		written, err := fns.insert(ctx, docs)
		result.Written = written
		return result, err

	case models.SeedUpsert:
		res, err := fns.upsert(ctx, docs)
		if res != nil {
			result.Modified = res.Modified
			result.Upserted = res.Upserted + res.Inserted
		}
		if err != nil {
			return result, err
		}
		result.Written = int64(len(docs))
		return result, nil

	default:
		return result, fmt.Errorf("unknown seed strategy %q", strategy)
	}
}
