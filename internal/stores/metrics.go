package stores

import (
	"bucket-metrics/internal/shared/metrics"
)

var (
	// metricBucketCacheRequestsTotal counts fetches served by the caching store, by result:
	// hit (served from cache), miss (went to the backend) or shared (joined an in-flight fetch).
	metricBucketCacheRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "cache_requests_total",
		},
		[]string{metrics.FieldResult},
	)
)
