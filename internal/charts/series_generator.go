package charts

import (
	"context"
	"slices"
	"strings"
	"time"

	"bucket-metrics/internal/aggregators"
	"bucket-metrics/internal/models"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/shared/metrics"
	"bucket-metrics/internal/shared/svcerrors"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// SeriesRequest asks for one point per PointInterval inside Window. The last point is clipped at
// Window.End when the window is not a multiple of the interval.
type SeriesRequest struct {
	AccountID     string
	RecordKind    models.RecordKind
	Window        models.TimeWindow
	PointInterval time.Duration
}

// ProgressFunc receives the points resolved so far, oldest first. Every call carries a longer
// prefix of the final series and owns its slice.
type ProgressFunc func(points []models.ChartPoint)

type SeriesGeneratorOptions struct {
	// Concurrency caps sub-interval queries in flight per series
	Concurrency int

	// MaxPoints rejects requests that would produce more points (0 = unbounded)
	MaxPoints int
}

//go:generate mockgen -source=series_generator.go -destination=./mocks/series_generator_mock.go -package=mocks
type SeriesGenerator interface {
	// GenerateSeries resolves every sub-interval with its own cover and returns the points in
	// time order. Sub-intervals are queried concurrently; onProgress, when not nil, is called on
	// the caller's goroutine strictly in time order as the resolved prefix grows.
	GenerateSeries(ctx context.Context, req SeriesRequest, onProgress ProgressFunc) ([]models.ChartPoint, error)
}

type seriesGenerator struct {
	aggregationService aggregators.AggregationService
	opts               SeriesGeneratorOptions
}

func NewSeriesGenerator(aggregationService aggregators.AggregationService, opts SeriesGeneratorOptions) SeriesGenerator {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &seriesGenerator{
		aggregationService: aggregationService,
		opts:               opts,
	}
}

type resolvedPoint struct {
	index int
	point models.ChartPoint
}

func (g *seriesGenerator) GenerateSeries(ctx context.Context, req SeriesRequest, onProgress ProgressFunc) ([]models.ChartPoint, error) {
	logger := loggers.Ctx(ctx)

	if err := g.validateRequest(req); err != nil {
		return nil, err
	}

	intervals := req.Window.Split(req.PointInterval)
	if g.opts.MaxPoints > 0 && len(intervals) > g.opts.MaxPoints {
		return nil, errTooManyPoints(len(intervals), g.opts.MaxPoints)
	}
	if len(intervals) == 0 {
		return []models.ChartPoint{}, nil
	}

	started := time.Now()

	// Sub-interval queries outlive an abandoned caller and their results are dropped. Only a
	// failing sub-interval cancels its siblings.
	group, groupCtx := errgroup.WithContext(context.WithoutCancel(ctx))
	group.SetLimit(g.opts.Concurrency)

	results := make(chan resolvedPoint, len(intervals))
	waitCh := make(chan error, 1)
	stop := make(chan struct{})

	go func() {
		defer func() { waitCh <- group.Wait() }()
		for i, interval := range intervals {
			select {
			case <-stop:
				return
			default:
			}
			group.Go(func() error {
				select {
				case <-stop:
					return nil
				case <-groupCtx.Done():
					return groupCtx.Err()
				default:
				}
				point, err := g.resolvePoint(groupCtx, req, interval)
				if err != nil {
					return err
				}
				results <- resolvedPoint{index: i, point: point}
				return nil
			})
		}
	}()

	points := make([]models.ChartPoint, len(intervals))
	resolved := make([]bool, len(intervals))
	next := 0
	for next < len(intervals) {
		select {
		case r := <-results:
			points[r.index] = r.point
			resolved[r.index] = true

			advanced := false
			for next < len(intervals) && resolved[next] {
				next++
				advanced = true
			}
			if advanced && onProgress != nil {
				onProgress(slices.Clone(points[:next]))
			}
		case err := <-waitCh:
			if err != nil {
				metricSeriesGeneratedTotal.WithLabelValues(errorCode(err)).Inc()
				logger.Warn().Err(err).
					Str(loggers.FieldAccountID, req.AccountID).
					Str(loggers.FieldRecordKind, string(req.RecordKind)).
					Str(loggers.FieldWindow, req.Window.String()).
					Msg("series_generation_failed")
				return nil, err
			}
			// every result is already buffered
			waitCh = nil
		case <-ctx.Done():
			close(stop)
			metricSeriesGeneratedTotal.WithLabelValues(valueCanceled).Inc()
			return nil, ctx.Err()
		}
	}

	metricSeriesGeneratedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricSeriesDurationSeconds.Observe(time.Since(started).Seconds())
	logger.Debug().
		Str(loggers.FieldAccountID, req.AccountID).
		Str(loggers.FieldRecordKind, string(req.RecordKind)).
		Str(loggers.FieldWindow, req.Window.String()).
		Msgf("generated series of %d points in %s", len(points), time.Since(started))

	return points, nil
}

func (g *seriesGenerator) resolvePoint(ctx context.Context, req SeriesRequest, interval models.TimeWindow) (models.ChartPoint, error) {
	metricSeriesPointsInFlight.Inc()
	defer metricSeriesPointsInFlight.Dec()

	result, err := g.aggregationService.AggregateWindow(ctx, req.AccountID, req.RecordKind, interval)
	if err != nil {
		return models.ChartPoint{}, err
	}
	return models.ChartPoint{
		Time:        interval.Start,
		Value:       float64(result.Count),
		Cost:        result.Cost,
		BucketStart: result.CoveredStart,
		BucketEnd:   result.CoveredEnd,
		IsComplete:  result.IsComplete,
	}, nil
}

func (g *seriesGenerator) validateRequest(req SeriesRequest) error {
	if strings.TrimSpace(req.AccountID) == "" {
		return errInvalidSeriesRequest("accountID is required", nil)
	}
	if strings.TrimSpace(string(req.RecordKind)) == "" {
		return errInvalidSeriesRequest("recordKind is required", nil)
	}
	if req.Window.End.Before(req.Window.Start) {
		return errInvalidSeriesRequest("window end must not be before start", models.ErrInvalidWindow)
	}
	if req.PointInterval < time.Minute || req.PointInterval%time.Minute != 0 {
		return errInvalidSeriesRequest("point interval must be a whole number of minutes", nil)
	}
	return nil
}

func errorCode(err error) string {
	if svcErr, ok := svcerrors.As(err); ok {
		return svcErr.Code
	}
	return codeInternalUndefined
}
