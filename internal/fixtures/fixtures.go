package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cardealer-labs/dealerships-api/internal/models"
	"github.com/cardealer-labs/dealerships-api/internal/s3"
)

// Fixtures is the seed data loaded at startup.
type Fixtures struct {
	Reviews     []models.ReviewModel
	Dealerships []models.DealershipModel
}

// ObjectReader reads objects out of a bucket. *s3.S3Repository satisfies it.
type ObjectReader interface {
	ReadObject(ctx context.Context, bucket string, key string) (io.ReadCloser, error)
}

// ObjectReaderFactory creates the ObjectReader on first use so deployments with
// only local fixtures never touch AWS configuration.
type ObjectReaderFactory func(ctx context.Context) (ObjectReader, error)

type Loader struct {
	newObjectReader ObjectReaderFactory
	objects         ObjectReader
}

func NewLoader(newObjectReader ObjectReaderFactory) *Loader {
	return &Loader{newObjectReader: newObjectReader}
}

type reviewsDocument struct {
	Reviews *[]models.ReviewModel `json:"reviews"`
}

type dealershipsDocument struct {
	Dealerships *[]models.DealershipModel `json:"dealerships"`
}

// Load reads both fixtures. Any missing source, malformed JSON, or missing
// top-level key fails the whole load.
func (l *Loader) Load(ctx context.Context, reviewsLocation string, dealershipsLocation string) (*Fixtures, error) {
	var reviews reviewsDocument
	if err := l.decode(ctx, reviewsLocation, &reviews); err != nil {
		return nil, err
	}
	if reviews.Reviews == nil {
		return nil, fmt.Errorf("fixture %s has no \"reviews\" array", reviewsLocation)
	}

	var dealerships dealershipsDocument
	if err := l.decode(ctx, dealershipsLocation, &dealerships); err != nil {
		return nil, err
	}
	if dealerships.Dealerships == nil {
		return nil, fmt.Errorf("fixture %s has no \"dealerships\" array", dealershipsLocation)
	}

	return &Fixtures{
		Reviews:     *reviews.Reviews,
		Dealerships: *dealerships.Dealerships,
	}, nil
}

func (l *Loader) decode(ctx context.Context, location string, v interface{}) error {
	body, err := l.open(ctx, location)
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("could not read fixture %s: %w", location, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("could not parse fixture %s: %w", location, err)
	}
	return nil
}

func (l *Loader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !s3.IsS3Location(location) {
		file, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("could not open fixture: %w", err)
		}
		return file, nil
	}

	bucket, key, err := s3.ParseLocation(location)
	if err != nil {
		return nil, err
	}

	if l.objects == nil {
		if l.newObjectReader == nil {
			return nil, fmt.Errorf("fixture %s is in s3 but no s3 client is configured", location)
		}
		if l.objects, err = l.newObjectReader(ctx); err != nil {
			return nil, fmt.Errorf("could not create s3 client for fixture %s: %w", location, err)
		}
	}

	return l.objects.ReadObject(ctx, bucket, key)
}
