package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Session struct {
	client *s3.Client
}

// SessionOptions describes how to reach S3. Empty keys fall back to the default
// credential chain (env, shared config, instance role).
type SessionOptions struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the S3 endpoint (MinIO, localstack) and switches to
	// path-style addressing.
	Endpoint string
}

// NewS3Session creates one S3 client that is shared by everything reading from S3.
func NewS3Session(ctx context.Context, opts SessionOptions) (*S3Repository, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	// Load aws config (.aws/config)
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}

	return newS3Repository(s3.NewFromConfig(cfg, withEndpoint(opts.Endpoint))), nil
}

func withEndpoint(endpoint string) func(*s3.Options) {
	return func(o *s3.Options) {
		if endpoint == "" {
			return
		}
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}
}

func newS3Repository(client *s3.Client) *S3Repository {
	return &S3Repository{
		s3_session: &s3Session{client: client},
	}
}
