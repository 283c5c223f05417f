package aggregators

import (
	"bucket-metrics/internal/shared/metrics"
)

const (
	applyResultCreated   = "created"
	applyResultUpdated   = "updated"
	applyResultUnchanged = "unchanged"
	applyResultRefused   = "refused"
)

// metricBucketCreatedTotal counts buckets stored for the first time.
//
// The bucket_id label identifies the slot of the bucket inside the next coarser period:
//   - For 1m buckets: "1m-XX" where XX is the minute (00-59)
//   - For 5m and 15m buckets: "5m-XX" / "15m-XX" where XX is the slot index inside the hour
//     Example: a 15m bucket starting at 18:30 UTC has bucket_id = "15m-02"
//   - For 60m buckets: "60m-XX" where XX is the hour (00-23)
//
// Example scenario:
//   - At 18:31 UTC the writer delivers the open 18:30 quarter-hour bucket (complete=false)
//   - Nothing is stored for that slot yet, so it is created and bucket_id="15m-02" is incremented
//   - At 18:45 the writer delivers the same bucket with complete=true; it is updated in place
//     and does NOT increment this metric
var (
	metricBucketCreatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "bucket_created_total",
		},
		[]string{"bucket_id"},
	)

	metricBucketAppliedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "bucket_applied_total",
		},
		[]string{metrics.FieldResult},
	)

	// metricAggregationResultsTotal counts answered queries by result: complete, partial or no_data.
	metricAggregationResultsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "results_total",
		},
		[]string{metrics.FieldResult},
	)

	metricRejectedBucketsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "rejected_buckets_total",
		},
		[]string{"reason"},
	)

	metricBucketFetchDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "bucket_fetch_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)
)
