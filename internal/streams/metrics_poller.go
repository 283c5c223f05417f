package streams

import (
	"context"
	"sync"
	"time"

	"bucket-metrics/internal/facades"
	"bucket-metrics/internal/models"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/shared/metrics"
	"bucket-metrics/internal/shared/svcerrors"
	"bucket-metrics/internal/shared/ulid"
)

const (
	refreshFull   = "full"
	refreshHourly = "hourly"

	defaultUpdateBuffer = 8
)

// MetricsUpdate is one publication of a subscription.
//
// Final is false for progress snapshots of a load still running. When a refresh fails, Err is
// set and View carries the last good view (nil if none loaded yet): a failed refresh never
// clears what was shown.
type MetricsUpdate struct {
	View  *models.MetricsView
	Err   error
	Final bool
}

type MetricsPollerOptions struct {
	// RefreshInterval is the cadence of the last-hour gauge
	RefreshInterval time.Duration

	// SeriesRefreshInterval is the cadence of full reloads including the 24h series
	SeriesRefreshInterval time.Duration

	// Buffer is the capacity of each subscription channel
	Buffer int
}

// MetricsPoller keeps MetricsViews fresh for subscribers. Each subscription runs its own
// refresh loop and owns its views.
//
//go:generate mockgen -source=metrics_poller.go -destination=./mocks/metrics_poller_mock.go -package=mocks
type MetricsPoller interface {
	// Subscribe starts a refresh loop for (accountID, kind). The channel is closed when ctx is
	// done or the poller stops.
	Subscribe(ctx context.Context, accountID string, kind models.RecordKind) <-chan MetricsUpdate
	Stop()
}

type metricsPoller struct {
	facade facades.MetricsFacade
	opts   MetricsPollerOptions

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewMetricsPoller(facade facades.MetricsFacade, opts MetricsPollerOptions, logger loggers.Logger) MetricsPoller {
	if opts.Buffer <= 0 {
		opts.Buffer = defaultUpdateBuffer
	}
	if opts.SeriesRefreshInterval < opts.RefreshInterval {
		opts.SeriesRefreshInterval = opts.RefreshInterval
	}
	return &metricsPoller{
		facade: facade,
		opts:   opts,
		stopCh: make(chan struct{}),
		logger: logger,
	}
}

func (poller *metricsPoller) Subscribe(ctx context.Context, accountID string, kind models.RecordKind) <-chan MetricsUpdate {
	updates := make(chan MetricsUpdate, poller.opts.Buffer)

	select {
	case <-poller.stopCh:
		close(updates)
		return updates
	default:
	}

	subscriptionID := ulid.NewULID()
	ctx = poller.logger.With().
		Str(loggers.FieldSubscriptionID, subscriptionID).
		Str(loggers.FieldAccountID, accountID).
		Str(loggers.FieldRecordKind, string(kind)).
		Logger().WithContext(ctx)

	poller.wg.Add(1)
	metricActiveSubscriptions.Inc()
	go func() {
		defer poller.wg.Done()
		defer metricActiveSubscriptions.Dec()
		defer close(updates)

		poller.run(ctx, accountID, kind, updates)
	}()

	return updates
}

// Stop ends every subscription and waits for their loops to exit.
func (poller *metricsPoller) Stop() {
	poller.stopOnce.Do(func() { close(poller.stopCh) })
	poller.wg.Wait()
}

type subscription struct {
	accountID string
	kind      models.RecordKind
	updates   chan<- MetricsUpdate
	lastGood  *models.MetricsView
	lastFull  time.Time
}

func (poller *metricsPoller) run(ctx context.Context, accountID string, kind models.RecordKind, updates chan<- MetricsUpdate) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-poller.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	sub := &subscription{accountID: accountID, kind: kind, updates: updates}
	loggers.Ctx(ctx).Debug().Msg("subscription started")
	defer loggers.Ctx(ctx).Debug().Msg("subscription ended")

	if !poller.refresh(ctx, sub, true) {
		return
	}

	ticker := time.NewTicker(poller.opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			full := time.Since(sub.lastFull) >= poller.opts.SeriesRefreshInterval
			if !poller.refresh(ctx, sub, full) {
				return
			}
		}
	}
}

// refresh publishes one final update and reports whether the subscription is still wanted.
func (poller *metricsPoller) refresh(ctx context.Context, sub *subscription, full bool) bool {
	var (
		view *models.MetricsView
		err  error
	)
	refreshKind := refreshHourly
	if full || sub.lastGood == nil {
		refreshKind = refreshFull
		view, err = poller.facade.Load(ctx, sub.accountID, sub.kind, facades.Callbacks{
			OnProgress: func(view *models.MetricsView) {
				send(ctx, sub.updates, MetricsUpdate{View: view})
			},
		})
		if err == nil {
			sub.lastFull = time.Now()
		}
	} else {
		view, err = poller.facade.RefreshHourly(ctx, sub.lastGood)
	}

	if ctx.Err() != nil {
		return false
	}

	if err != nil {
		errorCode := svcerrors.NewInternalErrorUndefined(err).Code
		if svcErr, ok := svcerrors.As(err); ok {
			errorCode = svcErr.Code
		}
		metricPollerRefreshesTotal.WithLabelValues(refreshKind, errorCode).Inc()
		loggers.Ctx(ctx).Warn().Err(err).Str(loggers.FieldErrorCode, errorCode).Msg("metrics_refresh_failed")

		var kept *models.MetricsView
		if sub.lastGood != nil {
			kept = sub.lastGood.Clone()
		}
		return send(ctx, sub.updates, MetricsUpdate{View: kept, Err: err, Final: true})
	}

	metricPollerRefreshesTotal.WithLabelValues(refreshKind, metrics.ValueNoError).Inc()
	sub.lastGood = view
	return send(ctx, sub.updates, MetricsUpdate{View: view.Clone(), Final: true})
}

func send(ctx context.Context, updates chan<- MetricsUpdate, update MetricsUpdate) bool {
	select {
	case updates <- update:
		return true
	case <-ctx.Done():
		return false
	}
}
