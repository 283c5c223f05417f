package charts

import (
	"bucket-metrics/internal/shared/metrics"
)

// valueCanceled labels series abandoned by their caller before they finished.
const valueCanceled = "canceled"

var (
	metricSeriesGeneratedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSeries,
			Name:      "generated_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricSeriesDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSeries,
			Name:      "duration_seconds",
			Buckets:   metrics.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{},
	).WithLabelValues()

	// metricSeriesPointsInFlight is the number of sub-interval queries currently running across
	// all series.
	metricSeriesPointsInFlight = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSeries,
			Name:      "points_in_flight",
		},
		[]string{},
	).WithLabelValues()
)
