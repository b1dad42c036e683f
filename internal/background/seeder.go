package background

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cardealer-labs/dealerships-api/internal/database/repository"
	"github.com/cardealer-labs/dealerships-api/internal/database/usecase"
	"github.com/cardealer-labs/dealerships-api/internal/fixtures"
	"github.com/cardealer-labs/dealerships-api/internal/logging"
	"github.com/cardealer-labs/dealerships-api/internal/models"
	"github.com/cardealer-labs/dealerships-api/internal/monitoring"
	"golang.org/x/sync/errgroup"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// SeedJob tracks the seeding of one collection.
type SeedJob struct {
	Collection string
	Records    int
	Status     string
	Result     models.SeedResult
	Err        error
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Seeder repopulates the collections from fixtures when the server starts.
type Seeder struct {
	reviewUseCase     *usecase.ReviewUseCase
	dealershipUseCase *usecase.DealershipUseCase
	strategy          models.SeedStrategy
	logger            *logging.Logger
	metrics           *monitoring.Metrics

	mu sync.Mutex
}

func NewSeeder(
	reviewUseCase *usecase.ReviewUseCase,
	dealershipUseCase *usecase.DealershipUseCase,
	strategy models.SeedStrategy,
	logger *logging.Logger,
	metrics *monitoring.Metrics,
) *Seeder {
	return &Seeder{
		reviewUseCase:     reviewUseCase,
		dealershipUseCase: dealershipUseCase,
		strategy:          strategy,
		logger:            logger,
		metrics:           metrics,
	}
}

// Seed writes both fixture arrays. The collections are seeded concurrently and
// independently: one failing does not stop or undo the other. The returned
// error joins every failure; the jobs always describe both collections.
func (s *Seeder) Seed(ctx context.Context, fx *fixtures.Fixtures) ([]*SeedJob, error) {
	reviewsJob := s.newJob(repository.ReviewCollection, len(fx.Reviews))
	dealershipsJob := s.newJob(repository.DealershipCollection, len(fx.Dealerships))

	var g errgroup.Group
	g.Go(func() error {
		return s.run(reviewsJob, func() (models.SeedResult, error) {
			return s.reviewUseCase.SeedReviews(ctx, fx.Reviews, s.strategy)
		})
	})
	g.Go(func() error {
		return s.run(dealershipsJob, func() (models.SeedResult, error) {
			return s.dealershipUseCase.SeedDealerships(ctx, fx.Dealerships, s.strategy)
		})
	})
	g.Wait()

	jobs := []*SeedJob{reviewsJob, dealershipsJob}
	return jobs, errors.Join(reviewsJob.Err, dealershipsJob.Err)
}

func (s *Seeder) newJob(collection string, records int) *SeedJob {
	now := time.Now()
	return &SeedJob{
		Collection: collection,
		Records:    records,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *Seeder) run(job *SeedJob, seed func() (models.SeedResult, error)) error {
	s.updateJobStatus(job, StatusProcessing)
	s.logger.Info("seeding collection", logging.Fields{
		"collection": job.Collection,
		"records":    job.Records,
		"strategy":   string(s.strategy),
	})

	result, err := seed()

	s.mu.Lock()
	job.Result = result
	job.Err = err
	s.mu.Unlock()

	s.metrics.RecordSeed(job.Collection, result.Written)
	if err != nil {
		s.updateJobStatus(job, StatusFailed)
		s.metrics.RecordSeedFailure(job.Collection)
		s.logger.Error("error populating database", logging.Fields{
			"collection": job.Collection,
			"deleted":    result.Deleted,
			"written":    result.Written,
			"error":      err.Error(),
		})
		return err
	}

	s.updateJobStatus(job, StatusCompleted)
	s.logger.Info("seeded collection", logging.Fields{
		"collection": job.Collection,
		"deleted":    result.Deleted,
		"written":    result.Written,
		"modified":   result.Modified,
		"upserted":   result.Upserted,
	})
	return nil
}

func (s *Seeder) updateJobStatus(job *SeedJob, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.Status = status
	job.UpdatedAt = time.Now()
}
