// Package mock_repository holds in-memory implementations of the repository
// interfaces. They evaluate equality filters the way the MongoDB repositories do
// and are safe for concurrent use.
package mock_repository

import (
	"context"
	"sort"
	"sync"

	"github.com/cardealer-labs/dealerships-api/internal/database/repository"
	"github.com/cardealer-labs/dealerships-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRepository struct {
	mu      sync.Mutex
	reviews []models.ReviewModel

	// Err makes every call fail.
	Err error
	// WriteErr makes inserts, upserts and saves fail.
	WriteErr error
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(reviews ...models.ReviewModel) *ReviewRepository {
	repo := &ReviewRepository{}
	for _, r := range reviews {
		repo.reviews = append(repo.reviews, withObjectId(r))
	}
	return repo
}

func withObjectId(r models.ReviewModel) models.ReviewModel {
	if r.ObjectId.IsZero() {
		r.ObjectId = primitive.NewObjectID()
	}
	return r
}

// All returns a copy of every stored review in insertion order.
func (repo *ReviewRepository) All() []models.ReviewModel {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return append([]models.ReviewModel(nil), repo.reviews...)
}

func (repo *ReviewRepository) Save(ctx context.Context, review *models.ReviewModel) (*models.ReviewModel, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if err := firstErr(repo.Err, repo.WriteErr); err != nil {
		return nil, err
	}

	review.ObjectId = primitive.NewObjectID()
	repo.reviews = append(repo.reviews, *review)
	return review, nil
}

func (repo *ReviewRepository) GetWithReviewFilters(ctx context.Context, filters *bson.M) ([]models.ReviewModel, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return nil, repo.Err
	}

	results := make([]models.ReviewModel, 0)
	for _, r := range repo.reviews {
		ok, err := matches(r, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Id < results[j].Id })
	return results, nil
}

func (repo *ReviewRepository) GetMaxReviewId(ctx context.Context) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return 0, repo.Err
	}

	var maxId int64
	for _, r := range repo.reviews {
		if r.Id > maxId {
			maxId = r.Id
		}
	}
	return maxId, nil
}

func (repo *ReviewRepository) DeleteAllReviews(ctx context.Context) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return 0, repo.Err
	}

	deleted := int64(len(repo.reviews))
	repo.reviews = nil
	return deleted, nil
}

func (repo *ReviewRepository) InsertReviews(ctx context.Context, reviews []models.ReviewModel) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if err := firstErr(repo.Err, repo.WriteErr); err != nil {
		return 0, err
	}

	for _, r := range reviews {
		repo.reviews = append(repo.reviews, withObjectId(r))
	}
	return int64(len(reviews)), nil
}

func (repo *ReviewRepository) UpsertReviews(ctx context.Context, reviews []models.ReviewModel) (*repository.UpsertResult, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if err := firstErr(repo.Err, repo.WriteErr); err != nil {
		return nil, err
	}

	res := &repository.UpsertResult{}
	for _, r := range reviews {
		if r.Id == 0 {
			repo.reviews = append(repo.reviews, withObjectId(r))
			res.Inserted++
			continue
		}

		replaced := false
		for i := range repo.reviews {
			if repo.reviews[i].Id == r.Id {
				r.ObjectId = repo.reviews[i].ObjectId
				repo.reviews[i] = r
				replaced = true
				res.Modified++
				break
			}
		}
		if !replaced {
			repo.reviews = append(repo.reviews, withObjectId(r))
			res.Upserted++
		}
	}
	return res, nil
}

type DealershipRepository struct {
	mu          sync.Mutex
	dealerships []models.DealershipModel

	Err      error
	WriteErr error
}

var _ repository.DealershipRepository = (*DealershipRepository)(nil)

func NewDealershipRepository(dealerships ...models.DealershipModel) *DealershipRepository {
	repo := &DealershipRepository{}
	for _, d := range dealerships {
		if d.ObjectId.IsZero() {
			d.ObjectId = primitive.NewObjectID()
		}
		repo.dealerships = append(repo.dealerships, d)
	}
	return repo
}

func (repo *DealershipRepository) All() []models.DealershipModel {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return append([]models.DealershipModel(nil), repo.dealerships...)
}

func (repo *DealershipRepository) GetWithDealershipFilters(ctx context.Context, filters *bson.M) ([]models.DealershipModel, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return nil, repo.Err
	}

	results := make([]models.DealershipModel, 0)
	for _, d := range repo.dealerships {
		ok, err := matches(d, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, d)
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Id < results[j].Id })
	return results, nil
}

func (repo *DealershipRepository) DeleteAllDealerships(ctx context.Context) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return 0, repo.Err
	}

	deleted := int64(len(repo.dealerships))
	repo.dealerships = nil
	return deleted, nil
}

func (repo *DealershipRepository) InsertDealerships(ctx context.Context, dealerships []models.DealershipModel) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if err := firstErr(repo.Err, repo.WriteErr); err != nil {
		return 0, err
	}

	for _, d := range dealerships {
		d.ObjectId = primitive.NewObjectID()
		repo.dealerships = append(repo.dealerships, d)
	}
	return int64(len(dealerships)), nil
}

func (repo *DealershipRepository) UpsertDealerships(ctx context.Context, dealerships []models.DealershipModel) (*repository.UpsertResult, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if err := firstErr(repo.Err, repo.WriteErr); err != nil {
		return nil, err
	}

	res := &repository.UpsertResult{}
	for _, d := range dealerships {
		replaced := false
		for i := range repo.dealerships {
			if d.Id != 0 && repo.dealerships[i].Id == d.Id {
				d.ObjectId = repo.dealerships[i].ObjectId
				repo.dealerships[i] = d
				replaced = true
				res.Modified++
				break
			}
		}
		if replaced {
			continue
		}

		d.ObjectId = primitive.NewObjectID()
		repo.dealerships = append(repo.dealerships, d)
		if d.Id == 0 {
			res.Inserted++
		} else {
			res.Upserted++
		}
	}
	return res, nil
}

type SequenceRepository struct {
	mu        sync.Mutex
	sequences map[string]int64

	Err error
}

var _ repository.SequenceRepository = (*SequenceRepository)(nil)

func NewSequenceRepository() *SequenceRepository {
	return &SequenceRepository{sequences: make(map[string]int64)}
}

// Current returns the last value handed out for name.
func (repo *SequenceRepository) Current(name string) int64 {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.sequences[name]
}

func (repo *SequenceRepository) NextSequence(ctx context.Context, name string) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return 0, repo.Err
	}

	repo.sequences[name]++
	return repo.sequences[name], nil
}

func (repo *SequenceRepository) RaiseSequence(ctx context.Context, name string, floor int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return repo.Err
	}

	if repo.sequences[name] < floor {
		repo.sequences[name] = floor
	}
	return nil
}

func (repo *SequenceRepository) ResetSequence(ctx context.Context, name string, value int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return repo.Err
	}

	repo.sequences[name] = value
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
