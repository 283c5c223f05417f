package streams

import (
	"strconv"

	"bucket-metrics/internal/shared/metrics"
)

var (
	streamBucketWritten            = "bucket_written"
	metricBucketEventProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "bucket_written_published_total",
		},
		[]string{"stream_id"},
	)

	metricBucketEventConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "bucket_written_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricQueueDepth = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "queue_depth",
		},
		[]string{"partition_id"},
	)

	metricActiveSubscriptions = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "active_subscriptions",
		},
		[]string{},
	).WithLabelValues()

	metricPollerRefreshesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "poller_refreshes_total",
		},
		[]string{"refresh", metrics.FieldErrorCode},
	)
)

func partitionLabel(partitionIndex int) string {
	return strconv.Itoa(partitionIndex)
}
