package facades

import (
	"context"
	"strings"
	"sync"
	"time"

	"bucket-metrics/internal/aggregators"
	"bucket-metrics/internal/charts"
	"bucket-metrics/internal/models"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/shared/metrics"
	"bucket-metrics/internal/shared/svcerrors"

	"golang.org/x/sync/errgroup"
)

const (
	hourlyLookback  = time.Hour
	seriesLookback  = 24 * time.Hour
	seriesPointSize = time.Hour

	valueCanceled = "canceled"
)

// Callbacks observe one Load. Both receive copies the callee may keep.
type Callbacks struct {
	// OnProgress is called after every partial merge: the hourly gauge resolving, or the chart
	// series growing by at least one point. Calls never overlap.
	OnProgress func(view *models.MetricsView)

	// OnFinal is called once with the finished view. It is not called when Load fails.
	OnFinal func(view *models.MetricsView)
}

type MetricsFacadeOptions struct {
	// HourlyAlignment floors the start of the last-hour window, e.g. to 5 minutes, so the
	// window begins on a bucket boundary.
	HourlyAlignment time.Duration

	// Now defaults to time.Now
	Now func() time.Time
}

// MetricsFacade assembles the dashboard view for one (account, kind). Each Load owns the view
// it builds; nothing is shared between calls.
//
//go:generate mockgen -source=metrics_facade.go -destination=./mocks/metrics_facade_mock.go -package=mocks
type MetricsFacade interface {
	// Load computes the last-hour rate and the last-24-hour hourly series in parallel.
	Load(ctx context.Context, accountID string, kind models.RecordKind, callbacks Callbacks) (*models.MetricsView, error)

	// RefreshHourly recomputes only the last-hour rate on a copy of view, keeping its series.
	RefreshHourly(ctx context.Context, view *models.MetricsView) (*models.MetricsView, error)
}

type metricsFacade struct {
	aggregationService aggregators.AggregationService
	rateNormalizer     aggregators.RateNormalizer
	seriesGenerator    charts.SeriesGenerator
	alignment          time.Duration
	now                func() time.Time
}

func NewMetricsFacade(aggregationService aggregators.AggregationService, rateNormalizer aggregators.RateNormalizer, seriesGenerator charts.SeriesGenerator, opts MetricsFacadeOptions) MetricsFacade {
	if opts.HourlyAlignment <= 0 {
		opts.HourlyAlignment = time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &metricsFacade{
		aggregationService: aggregationService,
		rateNormalizer:     rateNormalizer,
		seriesGenerator:    seriesGenerator,
		alignment:          opts.HourlyAlignment,
		now:                opts.Now,
	}
}

// loadState is the view under construction plus the completeness of each half.
type loadState struct {
	mu             sync.Mutex
	view           *models.MetricsView
	hourlyComplete bool
	seriesComplete bool
	abandoned      bool
	onProgress     func(view *models.MetricsView)
}

// publish must be called with mu held.
func (s *loadState) publish() {
	if s.abandoned {
		return
	}
	s.view.IsComplete = s.hourlyComplete && s.seriesComplete
	if s.onProgress != nil {
		s.onProgress(s.view.Clone())
	}
}

func (f *metricsFacade) Load(ctx context.Context, accountID string, kind models.RecordKind, callbacks Callbacks) (*models.MetricsView, error) {
	logger := loggers.Ctx(ctx)

	if strings.TrimSpace(accountID) == "" || strings.TrimSpace(string(kind)) == "" {
		return nil, errInvalidLoadRequest()
	}

	started := time.Now()
	now := f.now().UTC()
	state := &loadState{
		view: &models.MetricsView{
			AccountID:   accountID,
			RecordKind:  kind,
			ChartSeries: []models.ChartPoint{},
			LastUpdated: now,
		},
		onProgress: callbacks.OnProgress,
	}

	// The hourly fetch outlives an abandoned caller and its result is dropped, the same way the
	// series generator treats its sub-interval fetches. Only a failing half cancels the other.
	group, groupCtx := errgroup.WithContext(context.WithoutCancel(ctx))
	seriesCtx, cancelSeries := context.WithCancel(ctx)
	defer cancelSeries()
	stopSeriesCancel := context.AfterFunc(groupCtx, cancelSeries)
	defer stopSeriesCancel()

	group.Go(func() error {
		result, err := f.aggregationService.AggregateWindow(groupCtx, accountID, kind, f.hourlyWindow(now))
		if err != nil {
			return err
		}
		rate := f.rateNormalizer.NormalizeToHourly(result)

		state.mu.Lock()
		defer state.mu.Unlock()
		applyHourlyRate(state.view, rate)
		state.hourlyComplete = result.IsComplete
		state.publish()
		return nil
	})
	group.Go(func() error {
		req := charts.SeriesRequest{
			AccountID:     accountID,
			RecordKind:    kind,
			Window:        seriesWindow(now),
			PointInterval: seriesPointSize,
		}
		points, err := f.seriesGenerator.GenerateSeries(seriesCtx, req, func(points []models.ChartPoint) {
			state.mu.Lock()
			defer state.mu.Unlock()
			applySeries(state.view, points)
			state.publish()
		})
		if err != nil {
			if ctx.Err() != nil {
				// abandonment is reported by Load, not as a failure of this half
				return nil
			}
			return err
		}

		state.mu.Lock()
		defer state.mu.Unlock()
		applySeries(state.view, points)
		state.seriesComplete = allComplete(points)
		state.view.IsComplete = state.hourlyComplete && state.seriesComplete
		return nil
	})

	waitCh := make(chan error, 1)
	go func() { waitCh <- group.Wait() }()

	select {
	case err := <-waitCh:
		if err != nil {
			svcErr := asServiceError(err)
			metricFacadeLoadsTotal.WithLabelValues(svcErr.Code).Inc()
			logger.Warn().Err(err).
				Str(loggers.FieldAccountID, accountID).
				Str(loggers.FieldRecordKind, string(kind)).
				Msg("metrics_load_failed")
			return nil, svcErr
		}
	case <-ctx.Done():
		state.mu.Lock()
		state.abandoned = true
		state.mu.Unlock()
		metricFacadeLoadsTotal.WithLabelValues(valueCanceled).Inc()
		return nil, ctx.Err()
	}

	state.mu.Lock()
	view := state.view.Clone()
	state.mu.Unlock()

	metricFacadeLoadsTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricFacadeLoadDurationSeconds.Observe(time.Since(started).Seconds())
	logger.Debug().
		Str(loggers.FieldAccountID, accountID).
		Str(loggers.FieldRecordKind, string(kind)).
		Msgf("loaded metrics view (rate=%d, total24h=%d, complete=%t)", view.PerHourRate, view.Total24h, view.IsComplete)

	if callbacks.OnFinal != nil {
		callbacks.OnFinal(view.Clone())
	}
	return view, nil
}

func (f *metricsFacade) RefreshHourly(ctx context.Context, view *models.MetricsView) (*models.MetricsView, error) {
	now := f.now().UTC()
	result, err := f.aggregationService.AggregateWindow(ctx, view.AccountID, view.RecordKind, f.hourlyWindow(now))
	if err != nil {
		svcErr := asServiceError(err)
		metricFacadeHourlyRefreshesTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}

	refreshed := view.Clone()
	applyHourlyRate(refreshed, f.rateNormalizer.NormalizeToHourly(result))
	refreshed.LastUpdated = now
	refreshed.IsComplete = result.IsComplete && allComplete(refreshed.ChartSeries)

	metricFacadeHourlyRefreshesTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return refreshed, nil
}

// hourlyWindow is [floor(now-60m, alignment), now). It may exceed 60 minutes; the rate is
// normalized by the span actually covered.
func (f *metricsFacade) hourlyWindow(now time.Time) models.TimeWindow {
	return models.TimeWindow{
		Start: now.Add(-hourlyLookback).Truncate(f.alignment),
		End:   now,
	}
}

// seriesWindow is 24 hourly points ending with the current, partial hour.
func seriesWindow(now time.Time) models.TimeWindow {
	return models.TimeWindow{
		Start: now.Truncate(seriesPointSize).Add(-seriesLookback + seriesPointSize),
		End:   now,
	}
}

func applyHourlyRate(view *models.MetricsView, rate models.HourlyRate) {
	view.PerHourRate = rate.Count
	view.PerHourCost = rate.Cost
	view.HasHourlyData = !rate.NoData
}

func applySeries(view *models.MetricsView, points []models.ChartPoint) {
	summary := models.SummarizeSeries(points)
	view.ChartSeries = points
	view.AveragePerHour = summary.Average
	view.PeakHourly = summary.Peak
	view.Total24h = int64(summary.Total)
}

func allComplete(points []models.ChartPoint) bool {
	for _, point := range points {
		if !point.IsComplete {
			return false
		}
	}
	return true
}

func asServiceError(err error) *svcerrors.ServiceError {
	if svcErr, ok := svcerrors.As(err); ok {
		return svcErr
	}
	return errInternalLoadFailed(err)
}
