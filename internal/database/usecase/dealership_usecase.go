package usecase

import (
	"context"

	"github.com/cardealer-labs/dealerships-api/internal/database/repository"
	"github.com/cardealer-labs/dealerships-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

type DealershipUseCase struct {
	dealershipRepo repository.DealershipRepository
}

func NewDealershipUseCase(dealershipRepo repository.DealershipRepository) *DealershipUseCase {
	return &DealershipUseCase{
		dealershipRepo: dealershipRepo,
	}
}

func (uc *DealershipUseCase) GetDealershipsByFilters(ctx context.Context, filters *models.DealershipModelFilters) ([]models.DealershipModel, error) {
	bson_filters_m := bson.M{}

	if filters != nil {
		if filters.ID != nil {
			bson_filters_m["id"] = *filters.ID
		}

		if filters.State != nil {
			bson_filters_m["state"] = *filters.State
		}
	}

	return uc.dealershipRepo.GetWithDealershipFilters(ctx, &bson_filters_m)
}

func (uc *DealershipUseCase) GetAllDealerships(ctx context.Context) ([]models.DealershipModel, error) {
	return uc.GetDealershipsByFilters(ctx, nil)
}

func (uc *DealershipUseCase) SeedDealerships(ctx context.Context, dealerships []models.DealershipModel, strategy models.SeedStrategy) (models.SeedResult, error) {
	return seed(ctx, strategy, dealerships, seedFuncs[models.DealershipModel]{
		deleteAll: uc.dealershipRepo.DeleteAllDealerships,
		insert:    uc.dealershipRepo.InsertDealerships,
		upsert:    uc.dealershipRepo.UpsertDealerships,
	})
}
