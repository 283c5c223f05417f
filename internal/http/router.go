package http

import (
	"net/http"

	"bucket-metrics/internal/aggregators"
	"bucket-metrics/internal/charts"
	"bucket-metrics/internal/facades"
	"bucket-metrics/internal/ingestors"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/shared/metrics"
	"bucket-metrics/internal/streams"

	"github.com/go-chi/chi/v5"
)

// RouterDependencies are the services behind the HTTP surface.
type RouterDependencies struct {
	BucketIntakeService ingestors.BucketIntakeService
	AggregationService  aggregators.AggregationService
	RateNormalizer      aggregators.RateNormalizer
	SeriesGenerator     charts.SeriesGenerator
	MetricsFacade       facades.MetricsFacade
	MetricsPoller       streams.MetricsPoller
	StreamOptions       OverviewStreamOptions
}

// NewRouter creates and configures the HTTP router.
func NewRouter(deps RouterDependencies, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	ingestBucketHandler := NewIngestBucketHandler(deps.BucketIntakeService)
	aggregateHandler := NewAggregateHandler(deps.AggregationService, deps.RateNormalizer)
	seriesHandler := NewSeriesHandler(deps.SeriesGenerator)
	overviewHandler := NewOverviewHandler(deps.MetricsFacade)
	overviewStreamHandler := NewOverviewStreamHandler(deps.MetricsPoller, deps.StreamOptions)

	// Routes
	router.Post("/v1/buckets", errorHandlingAdapter(ingestBucketHandler))
	router.Route("/v1/accounts/{"+paramAccountID+"}/kinds/{"+paramRecordKind+"}", func(r chi.Router) {
		r.Get("/aggregate", errorHandlingAdapter(aggregateHandler))
		r.Get("/series", errorHandlingAdapter(seriesHandler))
		r.Get("/overview", errorHandlingAdapter(overviewHandler))
		r.Get("/overview/stream", errorHandlingAdapter(overviewStreamHandler))
	})
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
