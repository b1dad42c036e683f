package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Scheme prefixes locations that live in S3 rather than on local disk.
const Scheme = "s3://"

// S3Repository allows for the server to read fixture objects from S3
type S3Repository struct {
	s3_session *s3Session
}

// ReadObject opens the object at bucket/key. The caller closes the returned body.
func (s *S3Repository) ReadObject(ctx context.Context, bucket string, key string) (io.ReadCloser, error) {
	out, err := s.s3_session.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't get object %v:%v: %w", bucket, key, err)
	}

	return out.Body, nil
}

// IsS3Location reports whether location uses the s3:// scheme.
func IsS3Location(location string) bool {
	return strings.HasPrefix(location, Scheme)
}

// ParseLocation splits an s3://bucket/key location into its bucket and key.
func ParseLocation(location string) (bucket string, key string, err error) {
	if !IsS3Location(location) {
		return "", "", fmt.Errorf("%q is not an s3 location", location)
	}

	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 location %q: %w", location, err)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location %q must look like s3://bucket/key", location)
	}
	return bucket, key, nil
}
