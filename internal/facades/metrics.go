package facades

import (
	"bucket-metrics/internal/shared/metrics"
)

var (
	metricFacadeLoadsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFacade,
			Name:      "loads_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricFacadeHourlyRefreshesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFacade,
			Name:      "hourly_refreshes_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricFacadeLoadDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFacade,
			Name:      "load_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{},
	).WithLabelValues()
)
