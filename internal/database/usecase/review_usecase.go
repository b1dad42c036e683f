package usecase

import (
	"context"
	"fmt"

	"github.com/cardealer-labs/dealerships-api/internal/database/repository"
	"github.com/cardealer-labs/dealerships-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

type ReviewUseCase struct {
	reviewRepo   repository.ReviewRepository
	sequenceRepo repository.SequenceRepository
}

func NewReviewUseCase(reviewRepo repository.ReviewRepository, sequenceRepo repository.SequenceRepository) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:   reviewRepo,
		sequenceRepo: sequenceRepo,
	}
}

// CreateReview stores a new review built from input. The id comes from the
// review sequence, so two concurrent inserts can't end up with the same id.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, input *models.ReviewInput) (*models.ReviewModel, error) {
	id, err := uc.sequenceRepo.NextSequence(ctx, repository.ReviewSequence)
	if err != nil {
		return nil, err
	}

	review, err := uc.reviewRepo.Save(ctx, models.NewReviewModel(id, input))
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) GetReviewsByFilters(ctx context.Context, filters *models.ReviewModelFilters) ([]models.ReviewModel, error) {
	bson_filters_m := bson.M{}

	if filters != nil {
		if filters.ID != nil {
			bson_filters_m["id"] = *filters.ID
		}

		if filters.Dealership != nil {
			bson_filters_m["dealership"] = *filters.Dealership
		}
	}

	return uc.reviewRepo.GetWithReviewFilters(ctx, &bson_filters_m)
}

func (uc *ReviewUseCase) GetAllReviews(ctx context.Context) ([]models.ReviewModel, error) {
	return uc.GetReviewsByFilters(ctx, nil)
}

// SeedReviews writes the fixture reviews with the given strategy and then points
// the review sequence at the highest stored id. After a replace the sequence is
// reset, so it can go down; after an upsert it is only ever raised. The sequence
// is synced even when writing failed, so ids keep following whatever data made it in.
func (uc *ReviewUseCase) SeedReviews(ctx context.Context, reviews []models.ReviewModel, strategy models.SeedStrategy) (models.SeedResult, error) {
	result, seedErr := seed(ctx, strategy, reviews, seedFuncs[models.ReviewModel]{
		deleteAll: uc.reviewRepo.DeleteAllReviews,
		insert:    uc.reviewRepo.InsertReviews,
		upsert:    uc.reviewRepo.UpsertReviews,
	})

	syncSequence := uc.SyncReviewSequence
	if strategy == models.SeedReplace {
		syncSequence = uc.resetReviewSequence
	}

	if err := syncSequence(ctx); err != nil {
		if seedErr != nil {
			return result, fmt.Errorf("%w; %v", seedErr, err)
		}
		return result, err
	}
	return result, seedErr
}

// SyncReviewSequence raises the review sequence to the highest stored review id.
func (uc *ReviewUseCase) SyncReviewSequence(ctx context.Context) error {
	maxId, err := uc.reviewRepo.GetMaxReviewId(ctx)
	if err != nil {
		return err
	}
	return uc.sequenceRepo.RaiseSequence(ctx, repository.ReviewSequence, maxId)
}

func (uc *ReviewUseCase) resetReviewSequence(ctx context.Context) error {
	maxId, err := uc.reviewRepo.GetMaxReviewId(ctx)
	if err != nil {
		return err
	}
	return uc.sequenceRepo.ResetSequence(ctx, repository.ReviewSequence, maxId)
}
