package aggregators

import (
	"context"
	"errors"
	"strings"
	"time"

	"bucket-metrics/internal/models"
	"bucket-metrics/internal/planners"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/shared/metrics"
	"bucket-metrics/internal/stores"
)

// AggregationServiceOptions bounds the work of one query.
type AggregationServiceOptions struct {
	// FetchTimeout bounds each bucket store fetch (0 = caller's context only)
	FetchTimeout time.Duration

	// MaxWindow rejects longer windows (0 = unbounded)
	MaxWindow time.Duration
}

// AggregationService answers "how many events of kind K did account A have in window W" from
// stored buckets: fetch candidates, select a cover, sum it.
//
// A partial cover is not an error: the result carries IsComplete=false and the covered span.
// Store failures are returned as unavailable errors and never turned into empty results.
//
//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type AggregationService interface {
	AggregateWindow(ctx context.Context, accountID string, kind models.RecordKind, window models.TimeWindow) (*models.AggregationResult, error)
}

type aggregationService struct {
	bucketStore      stores.BucketStore
	coverPlanner     planners.CoverPlanner
	bucketAggregator BucketAggregator
	opts             AggregationServiceOptions
}

func NewAggregationService(bucketStore stores.BucketStore, coverPlanner planners.CoverPlanner, bucketAggregator BucketAggregator, opts AggregationServiceOptions) AggregationService {
	return &aggregationService{
		bucketStore:      bucketStore,
		coverPlanner:     coverPlanner,
		bucketAggregator: bucketAggregator,
		opts:             opts,
	}
}

func (s *aggregationService) AggregateWindow(ctx context.Context, accountID string, kind models.RecordKind, window models.TimeWindow) (*models.AggregationResult, error) {
	logger := loggers.Ctx(ctx)

	if err := s.validateQuery(accountID, kind, window); err != nil {
		return nil, err
	}
	if window.IsEmpty() {
		return models.NewEmptyAggregationResult(accountID, kind, window), nil
	}

	candidates, err := s.fetchCandidates(ctx, accountID, kind, window)
	if err != nil {
		return nil, err
	}

	cover := s.coverPlanner.SelectCover(candidates, window)
	for _, rejected := range cover.Rejected {
		logger.Warn().
			Err(rejected.Reason).
			Str(loggers.FieldAccountID, accountID).
			Str(loggers.FieldRecordKind, string(kind)).
			Uint8(loggers.FieldGranularity, uint8(rejected.Bucket.Granularity)).
			Time(loggers.FieldBucketStart, rejected.Bucket.TimeRangeStart).
			Msg("bucket_rejected")
		metricRejectedBucketsTotal.WithLabelValues(rejectReason(rejected.Reason)).Inc()
	}

	result, err := s.bucketAggregator.Aggregate(cover)
	if err != nil {
		return nil, errInternalAggregateFailed(err)
	}
	result.AccountID = accountID
	result.RecordKind = kind

	metricAggregationResultsTotal.WithLabelValues(resultLabel(result)).Inc()
	logger.Debug().
		Str(loggers.FieldAccountID, accountID).
		Str(loggers.FieldRecordKind, string(kind)).
		Str(loggers.FieldWindow, window.String()).
		Msgf("aggregated %d buckets (complete=%t, gaps=%d, count=%d)", result.BucketsUsed, result.IsComplete, result.Gaps, result.Count)

	return result, nil
}

func (s *aggregationService) fetchCandidates(ctx context.Context, accountID string, kind models.RecordKind, window models.TimeWindow) ([]models.MetricBucket, error) {
	fetchCtx := ctx
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}

	started := time.Now()
	candidates, err := s.bucketStore.FetchBuckets(fetchCtx, accountID, kind, window.Start, window.End)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		svcErr := errBucketStoreUnavailable(err)
		metricBucketFetchDurationSeconds.WithLabelValues(svcErr.Code).Observe(elapsed)
		return nil, svcErr
	}
	metricBucketFetchDurationSeconds.WithLabelValues(metrics.ValueNoError).Observe(elapsed)
	return candidates, nil
}

func (s *aggregationService) validateQuery(accountID string, kind models.RecordKind, window models.TimeWindow) error {
	if strings.TrimSpace(accountID) == "" {
		return errInvalidQuery("accountID is required", nil)
	}
	if strings.TrimSpace(string(kind)) == "" {
		return errInvalidQuery("recordKind is required", nil)
	}
	if window.Start.IsZero() || window.End.IsZero() {
		return errInvalidQuery("window start and end are required", nil)
	}
	if window.End.Before(window.Start) {
		return errInvalidQuery("window end must not be before start", models.ErrInvalidWindow)
	}
	if s.opts.MaxWindow > 0 && window.Duration() > s.opts.MaxWindow {
		return errWindowTooLarge(s.opts.MaxWindow)
	}
	return nil
}

func resultLabel(result *models.AggregationResult) string {
	switch {
	case result.IsComplete:
		return metrics.ValueComplete
	case result.BucketsUsed == 0:
		return metrics.ValueNoData
	default:
		return metrics.ValuePartial
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidTimeRange):
		return "invalid_time_range"
	case errors.Is(err, models.ErrGranularityMismatch):
		return "granularity_mismatch"
	case errors.Is(err, models.ErrUnknownGranularity):
		return "unknown_granularity"
	case errors.Is(err, models.ErrMissingIdentity):
		return "missing_identity"
	case errors.Is(err, models.ErrNegativeCount):
		return "negative_count"
	default:
		return "other"
	}
}
