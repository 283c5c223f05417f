package aggregators

import (
	"context"
	"errors"

	"bucket-metrics/internal/events"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/shared/svcerrors"
	"bucket-metrics/internal/stores"
)

// BucketApplyService writes accepted buckets into the bucket store. It is called by the single
// worker owning the bucket's series, so the read-check-write below never races another write to
// the same bucket.
//
//go:generate mockgen -source=bucket_apply_service.go -destination=./mocks/bucket_apply_service_mock.go -package=mocks
type BucketApplyService interface {
	Apply(ctx context.Context, event *events.BucketWrittenEvent) *svcerrors.ServiceError
}

type bucketApplyService struct {
	bucketStore stores.BucketStore
}

func NewBucketApplyService(bucketStore stores.BucketStore) BucketApplyService {
	return &bucketApplyService{bucketStore: bucketStore}
}

// Apply stores the event's bucket unless a complete bucket already occupies its slot. Complete
// buckets are immutable: replaying the identical bucket is a no-op, anything else is refused.
func (s *bucketApplyService) Apply(ctx context.Context, event *events.BucketWrittenEvent) *svcerrors.ServiceError {
	logger := loggers.Ctx(ctx)
	bucket := &event.Bucket
	bucketID := bucket.Granularity.BucketID(bucket.TimeRangeStart)
	logger.Debug().Msg("started applying bucket " + bucket.SeriesKey() + " " + bucketID + " from batch " + event.BatchID)

	if err := bucket.Validate(); err != nil {
		return errInvalidBucket(err)
	}

	existing, err := s.bucketStore.GetBucket(ctx, bucket.AccountID, bucket.RecordKind, bucket.Granularity, bucket.TimeRangeStart)
	isNewBucket := errors.Is(err, stores.ErrBucketNotFound)
	if err != nil && !isNewBucket {
		return errInternalBucketStoreFailed(err)
	}

	if existing != nil && existing.Complete {
		if bucket.Complete && existing.SameSums(bucket) && existing.TimeRangeEnd.Equal(bucket.TimeRangeEnd) {
			metricBucketAppliedTotal.WithLabelValues(applyResultUnchanged).Inc()
			return nil
		}
		metricBucketAppliedTotal.WithLabelValues(applyResultRefused).Inc()
		return errCompleteBucketImmutable(bucket.SeriesKey(), bucketID)
	}

	if err := s.bucketStore.UpsertBucket(ctx, bucket); err != nil {
		return errInternalBucketStoreFailed(err)
	}

	if isNewBucket {
		metricBucketCreatedTotal.WithLabelValues(bucketID).Inc()
		metricBucketAppliedTotal.WithLabelValues(applyResultCreated).Inc()
	} else {
		metricBucketAppliedTotal.WithLabelValues(applyResultUpdated).Inc()
	}
	return nil
}
