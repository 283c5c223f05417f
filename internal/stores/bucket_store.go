package stores

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"bucket-metrics/internal/models"
)

var (
	ErrBucketNotFound  = errors.New("bucket not found")
	ErrInvalidIdentity = errors.New("invalid bucket identity")
)

// BucketStore serves metric buckets written by the external rollup writer.
//
// FetchBuckets returns every bucket of every granularity whose range intersects
// [rangeStart, rangeEnd), in no particular order. Buckets are returned as stored: callers must
// not assume they are well-formed.
//
//go:generate mockgen -source=bucket_store.go -destination=./mocks/bucket_store_mock.go -package=mocks
type BucketStore interface {
	FetchBuckets(ctx context.Context, accountID string, kind models.RecordKind, rangeStart, rangeEnd time.Time) ([]models.MetricBucket, error)
	GetBucket(ctx context.Context, accountID string, kind models.RecordKind, granularity models.Granularity, start time.Time) (*models.MetricBucket, error)
	UpsertBucket(ctx context.Context, bucket *models.MetricBucket) error
	Close() error
}

// overlaps reports whether [start, end) intersects [rangeStart, rangeEnd).
func overlaps(start, end, rangeStart, rangeEnd time.Time) bool {
	return start.Before(rangeEnd) && end.After(rangeStart)
}

// pathSegment escapes an identity value for use as a single key segment.
func pathSegment(value string) (string, error) {
	if value == "" || value == "." || value == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, value)
	}
	return url.PathEscape(value), nil
}
