package ingestors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"bucket-metrics/internal/models"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/shared/metrics"
	"bucket-metrics/internal/shared/svcerrors"
	"bucket-metrics/internal/shared/ulid"
	"bucket-metrics/internal/shared/validators"
	"bucket-metrics/internal/stores"
	"bucket-metrics/internal/streams"
)

const (
	defaultMaxBatchBytes = 2 * 1024 * 1024
	maxIdempotencyKeyLen = 128

	// publishTimeout bounds back-pressure from full queue lanes once the batch is recorded
	publishTimeout = 10 * time.Second
)

// IngestResult represents the result of a batch intake operation.
type IngestResult struct {
	BatchID       string `json:"batchId"`
	AcceptedCount int    `json:"acceptedCount"`
}

// BucketIntakeService is the hand-off point of the external rollup writer. It accepts a batch of
// buckets for one account, records the batch once, and queues every bucket for the store writer.
// Storage happens asynchronously: an accepted batch is durable as a batch, not yet as buckets.
//
//go:generate mockgen -source=bucket_intake_service.go -destination=./mocks/bucket_intake_service_mock.go -package=mocks
type BucketIntakeService interface {
	// IngestBuckets processes a JSON array of buckets.
	IngestBuckets(ctx context.Context, accountID string, idempotencyKey string, r io.Reader) (*IngestResult, error)
}

type bucketIntakeService struct {
	intakeBatchStore    stores.IntakeBatchStore
	bucketEventProducer streams.BucketEventProducer
	validate            *validators.Validate
	maxBatchBytes       int
}

func NewBucketIntakeService(intakeBatchStore stores.IntakeBatchStore, bucketEventProducer streams.BucketEventProducer, maxBatchBytes int) BucketIntakeService {
	if maxBatchBytes <= 0 {
		maxBatchBytes = defaultMaxBatchBytes
	}
	return &bucketIntakeService{
		intakeBatchStore:    intakeBatchStore,
		bucketEventProducer: bucketEventProducer,
		validate:            validators.New(),
		maxBatchBytes:       maxBatchBytes,
	}
}

func (s *bucketIntakeService) IngestBuckets(ctx context.Context, accountID string, idempotencyKey string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting buckets with account ID: %s, idempotency key: %s", accountID, idempotencyKey)

	buckets, err := s.validateBatch(accountID, idempotencyKey, r)
	if err != nil {
		metricBatchIngestedTotal.WithLabelValues(err.Code).Inc()
		return nil, err
	}

	receivedAt := time.Now().UTC()
	batchID := strings.TrimSpace(idempotencyKey)
	if batchID == "" {
		batchID = ulid.NewULIDAt(receivedAt)
	}

	batch := &models.IntakeBatch{
		BatchID:    batchID,
		AccountID:  accountID,
		ReceivedAt: receivedAt,
		Buckets:    buckets,
	}

	// Record the batch
	if err := s.intakeBatchStore.Put(ctx, batch); err != nil {
		if errors.Is(err, stores.ErrIntakeBatchAlreadyExist) {
			svcError := errIntakeBatchAlreadyProcessed(err)
			metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		svcError := errInternalIntakeBatchStoreFailed(err)
		metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
		return nil, svcError
	}

	// Queue the buckets for the store writer. A recorded batch is published in full or released,
	// so a client going away mid-publish cannot leave it half queued and blocked for retries.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.bucketEventProducer.Produce(publishCtx, batch); err != nil {
		if releaseErr := s.intakeBatchStore.Delete(context.WithoutCancel(ctx), batch); releaseErr != nil {
			logger.Error().Err(releaseErr).
				Str(loggers.FieldBatchID, batchID).
				Msg("failed to release intake batch after publish failure")
		}
		svcError := errInternalBucketEventPublisherFailed(err)
		metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
		return nil, svcError
	}

	for i := range buckets {
		metricBucketsAcceptedTotal.WithLabelValues(buckets[i].Granularity.String()).Inc()
	}
	metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	logger.Info().
		Str(loggers.FieldBatchID, batchID).
		Str(loggers.FieldAccountID, accountID).
		Msgf("accepted %d buckets", len(buckets))

	return &IngestResult{BatchID: batchID, AcceptedCount: len(buckets)}, nil
}

func (s *bucketIntakeService) validateBatch(accountID string, idempotencyKey string, r io.Reader) ([]models.MetricBucket, *svcerrors.ServiceError) {
	if strings.TrimSpace(accountID) == "" {
		return nil, errValidationFailed("accountID is required", nil)
	}
	if len(idempotencyKey) > maxIdempotencyKeyLen {
		return nil, errValidationFailed(fmt.Sprintf("idempotency key too long: max %d characters", maxIdempotencyKeyLen), nil)
	}

	// Handle nil reader
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := s.readWithLimit(r, s.maxBatchBytes)
	if err != nil {
		return nil, err
	}

	var buckets []models.MetricBucket
	if err := json.Unmarshal(buf, &buckets); err != nil {
		return nil, errValidationFailed("invalid json: expected an array of buckets", err)
	}

	// Validate that buckets are not empty
	if len(buckets) == 0 {
		return nil, errValidationFailed("buckets cannot be empty", nil)
	}

	for i := range buckets {
		s.normalizeBucket(&buckets[i])
		if err := s.validateBucket(accountID, &buckets[i], i); err != nil {
			return nil, err
		}
	}

	return buckets, nil
}

// readWithLimit reads up to max+1 bytes from r and checks if it exceeds max.
func (s *bucketIntakeService) readWithLimit(r io.Reader, max int) ([]byte, *svcerrors.ServiceError) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}

	// If we read more than max bytes, the batch is too large
	if len(buf) > max {
		return nil, errValidationFailed(fmt.Sprintf("batch too large: must be <= %d bytes", max), nil)
	}

	return buf, nil
}

func (s *bucketIntakeService) normalizeBucket(bucket *models.MetricBucket) {
	bucket.AccountID = strings.TrimSpace(bucket.AccountID)
	bucket.RecordKind = models.RecordKind(strings.TrimSpace(string(bucket.RecordKind)))
	bucket.TimeRangeStart = bucket.TimeRangeStart.UTC()
	bucket.TimeRangeEnd = bucket.TimeRangeEnd.UTC()
}

func (s *bucketIntakeService) validateBucket(accountID string, bucket *models.MetricBucket, index int) *svcerrors.ServiceError {
	if err := s.validate.Struct(bucket); err != nil {
		var fieldErrors validators.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fieldError := fieldErrors[0]
			return errValidationFailed(fmt.Sprintf("item at index %d: %s failed on %q", index, fieldError.Field(), fieldError.Tag()), err)
		}
		return errValidationFailed(fmt.Sprintf("item at index %d: invalid bucket", index), err)
	}
	if err := bucket.Validate(); err != nil {
		return errValidationFailed(fmt.Sprintf("item at index %d: %s", index, err.Error()), err)
	}
	if bucket.AccountID != accountID {
		return errValidationFailed(fmt.Sprintf("item at index %d: accountId does not match the request account", index), nil)
	}
	if start := bucket.TimeRangeStart; !start.Equal(start.Truncate(bucket.Granularity.Duration())) {
		return errValidationFailed(fmt.Sprintf("item at index %d: timeRangeStart must be aligned to %s", index, bucket.Granularity), nil)
	}
	return nil
}
