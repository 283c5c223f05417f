package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bucket-metrics/internal/aggregators"
	"bucket-metrics/internal/charts"
	"bucket-metrics/internal/events"
	"bucket-metrics/internal/facades"
	internalhttp "bucket-metrics/internal/http"
	"bucket-metrics/internal/ingestors"
	"bucket-metrics/internal/planners"
	"bucket-metrics/internal/shared/configs"
	"bucket-metrics/internal/shared/filestorages"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/stores"
	"bucket-metrics/internal/streams"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	bucketStore         stores.BucketStore
	bucketQueue         *streams.PartitionedQueue[events.BucketWrittenEvent]
	bucketEventConsumer streams.BucketEventConsumer
	metricsPoller       streams.MetricsPoller
	backgroundCtx       context.Context
	backgroundCancel    context.CancelFunc
}

// Services are the query-side services shared by the HTTP server and the CLI.
type Services struct {
	AggregationService aggregators.AggregationService
	RateNormalizer     aggregators.RateNormalizer
	SeriesGenerator    charts.SeriesGenerator
	MetricsFacade      facades.MetricsFacade
}

// OpenBucketStore opens the configured backend, wrapped in the fetch cache when enabled.
func OpenBucketStore(config *configs.Config, fileStorage filestorages.FileStorage) (stores.BucketStore, error) {
	var (
		bucketStore stores.BucketStore
		err         error
	)
	switch config.BucketStore.Driver {
	case configs.DriverBadger:
		bucketStore, err = stores.NewBadgerBucketStore(stores.BadgerConfig{
			Path:        config.BucketStore.Badger.Path,
			InMemory:    config.BucketStore.Badger.InMemory,
			MaxMemoryMB: config.BucketStore.Badger.MaxMemoryMB,
		})
	case configs.DriverSqlite:
		bucketStore, err = stores.NewSqliteBucketStore(config.BucketStore.Sqlite.Path)
	default:
		bucketStore = stores.NewFileBucketStore(fileStorage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s bucket store: %w", config.BucketStore.Driver, err)
	}

	if config.BucketStore.Cache.Enabled {
		bucketStore = stores.NewCachingBucketStore(bucketStore, config.BucketStore.Cache.Size, config.BucketStore.Cache.TTL())
	}
	return bucketStore, nil
}

// NewServices builds the read path over bucketStore.
func NewServices(config *configs.Config, bucketStore stores.BucketStore) Services {
	rateNormalizer := aggregators.NewRateNormalizer()
	aggregationService := aggregators.NewAggregationService(
		bucketStore,
		planners.NewCoverPlanner(),
		aggregators.NewBucketAggregator(),
		aggregators.AggregationServiceOptions{
			FetchTimeout: config.BucketStore.FetchTimeoutDuration(),
			MaxWindow:    config.Query.MaxWindow(),
		},
	)
	seriesGenerator := charts.NewSeriesGenerator(aggregationService, charts.SeriesGeneratorOptions{
		Concurrency: config.Query.SeriesConcurrency,
		MaxPoints:   config.Query.MaxSeriesPoints,
	})
	metricsFacade := facades.NewMetricsFacade(aggregationService, rateNormalizer, seriesGenerator, facades.MetricsFacadeOptions{
		HourlyAlignment: config.Facade.HourlyAlignment(),
	})

	return Services{
		AggregationService: aggregationService,
		RateNormalizer:     rateNormalizer,
		SeriesGenerator:    seriesGenerator,
		MetricsFacade:      metricsFacade,
	}
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "bucket-metrics").
		Logger()

	// Initialize blob store
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize bucket store
	bucketStore, err := OpenBucketStore(config, fileStorage)
	if err != nil {
		return nil, err
	}
	services := NewServices(config, bucketStore)

	// Initialize stream queue and the single-writer consumer
	bucketQueue := streams.NewPartitionedQueue[events.BucketWrittenEvent](config.Intake.QueuePartitions, config.Intake.QueueBuffer)
	bucketApplyService := aggregators.NewBucketApplyService(bucketStore)
	consumerLogger := loggers.Component(appLogger, "consumer")
	bucketEventConsumer := streams.NewBucketEventConsumer(bucketQueue, bucketApplyService, consumerLogger)

	// Initialize intake
	intakeBatchStore := stores.NewIntakeBatchStore(fileStorage)
	bucketEventProducer := streams.NewBucketEventProducer(bucketQueue)
	bucketIntakeService := ingestors.NewBucketIntakeService(intakeBatchStore, bucketEventProducer, config.Intake.MaxBatchBytes)

	// Initialize dashboard refresh
	pollerLogger := loggers.Component(appLogger, "poller")
	metricsPoller := streams.NewMetricsPoller(services.MetricsFacade, streams.MetricsPollerOptions{
		RefreshInterval:       config.Facade.RefreshInterval(),
		SeriesRefreshInterval: config.Facade.SeriesRefreshInterval(),
	}, pollerLogger)

	// Initialize http router
	httpLogger := loggers.Component(appLogger, "http")
	router := internalhttp.NewRouter(internalhttp.RouterDependencies{
		BucketIntakeService: bucketIntakeService,
		AggregationService:  services.AggregationService,
		RateNormalizer:      services.RateNormalizer,
		SeriesGenerator:     services.SeriesGenerator,
		MetricsFacade:       services.MetricsFacade,
		MetricsPoller:       metricsPoller,
	}, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:              config,
		appLogger:           appLogger,
		server:              server,
		bucketStore:         bucketStore,
		bucketQueue:         bucketQueue,
		bucketEventConsumer: bucketEventConsumer,
		metricsPoller:       metricsPoller,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Str(loggers.FieldDriver, app.config.BucketStore.Driver).
		Msgf("Starting bucket-metrics service on port %d (log_level=%s, file_storage_root_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir)

	// start background consumers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.bucketEventConsumer.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) End dashboard subscriptions, hijacked stream connections are not tracked by the server
	app.metricsPoller.Stop()
	app.appLogger.Info().Msg("Metrics poller stopped")

	// 2) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 3) No more intake: close the queue and stop the consumers
	app.bucketQueue.Close()
	app.bucketEventConsumer.Stop()
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}
	app.appLogger.Info().Msg("Background consumers stopped")

	// 4) Release the store last, the consumers write to it
	if err := app.bucketStore.Close(); err != nil {
		return fmt.Errorf("bucket store close failed: %w", err)
	}
	return nil
}
