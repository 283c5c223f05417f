package aggregators

import (
	"fmt"
	"time"

	"bucket-metrics/internal/shared/svcerrors"
)

const (
	codeInvalidQuery            = "AGG_1000"
	codeWindowTooLarge          = "AGG_1001"
	codeInvalidBucket           = "AGG_1002"
	codeCompleteBucketImmutable = "AGG_1003"

	codeInternalAggregateFailed   = "AGG_9000"
	codeBucketStoreUnavailable    = "AGG_9001"
	codeInternalBucketStoreFailed = "AGG_9002"
)

// errInvalidQuery returns an error when a query names no account, no kind or an inverted window.
func errInvalidQuery(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQuery, msg, cause)
}

// errWindowTooLarge returns an error when a query window exceeds the configured maximum.
func errWindowTooLarge(max time.Duration) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeWindowTooLarge, fmt.Sprintf("window too large: must be <= %s", max), nil)
}

// errInvalidBucket returns an error when a bucket to apply fails validation.
func errInvalidBucket(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidBucket, "invalid bucket", cause)
}

// errCompleteBucketImmutable returns an error when a write would change a complete bucket.
func errCompleteBucketImmutable(seriesKey, bucketID string) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeCompleteBucketImmutable, "complete bucket cannot be rewritten",
		fmt.Errorf("completeBucketImmutable: %s %s", seriesKey, bucketID))
}

// errInternalAggregateFailed returns an error when summing a cover fails.
func errInternalAggregateFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregateFailed, fmt.Errorf("aggregateFailed: %w", cause))
}

// errBucketStoreUnavailable returns an error when candidate buckets cannot be fetched.
func errBucketStoreUnavailable(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeBucketStoreUnavailable, "bucket store unavailable", fmt.Errorf("bucketStoreFetchFailed: %w", cause))
}

// errInternalBucketStoreFailed returns an error when a bucket store read or write fails while applying a bucket.
func errInternalBucketStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalBucketStoreFailed, fmt.Errorf("bucketStoreFailed: %w", cause))
}
