package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"bucket-metrics/internal/aggregators"
	"bucket-metrics/internal/events"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/shared/metrics"
	"bucket-metrics/internal/shared/svcerrors"
	"bucket-metrics/internal/shared/ulid"
)

//go:generate mockgen -source=bucket_event_consumer.go -destination=./mocks/bucket_event_consumer_mock.go -package=mocks
type BucketEventConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type bucketEventConsumer struct {
	queue              *PartitionedQueue[events.BucketWrittenEvent]
	bucketApplyService aggregators.BucketApplyService

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewBucketEventConsumer(queue *PartitionedQueue[events.BucketWrittenEvent], bucketApplyService aggregators.BucketApplyService, logger loggers.Logger) BucketEventConsumer {
	return &bucketEventConsumer{
		queue:              queue,
		bucketApplyService: bucketApplyService,
		stopCh:             make(chan struct{}),
		logger:             logger,
	}
}

// Start spawns 1 worker goroutine per partition.
// Each partition is a single-writer lane for the bucket series routed by the producer.
func (consumer *bucketEventConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop (best called during app shutdown).
func (consumer *bucketEventConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *bucketEventConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.BucketWrittenEvent) {
	partitionID := partitionLabel(partitionIndex)

	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metricQueueDepth.WithLabelValues(partitionID).Set(float64(len(ch)))
			consumer.consume(ctx, partitionID, &event)
		}
	}
}

func (consumer *bucketEventConsumer) consume(ctx context.Context, partitionID string, event *events.BucketWrittenEvent) {
	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, partitionID).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Str(loggers.FieldBatchID, event.BatchID).
		Str(loggers.FieldAccountID, event.Bucket.AccountID).
		Str(loggers.FieldRecordKind, string(event.Bucket.RecordKind)).
		Logger().WithContext(ctx)

	// Handle panic recovery to prevent worker goroutine from crashing
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricBucketEventConsumedTotal.WithLabelValues(streamBucketWritten, svcErr.Code).Inc()
		}
	}()

	svcError := consumer.bucketApplyService.Apply(ctx, event)
	if svcError != nil {
		logEvent := loggers.Ctx(ctx).Warn()
		if svcError.IsInternalError() {
			logEvent = loggers.Ctx(ctx).Error()
		}
		logEvent.Err(svcError).
			Str(loggers.FieldErrorCode, svcError.Code).
			Time(loggers.FieldBucketStart, event.Bucket.TimeRangeStart).
			Msg("bucket_apply_failed")
		metricBucketEventConsumedTotal.WithLabelValues(streamBucketWritten, svcError.Code).Inc()
		return
	}
	metricBucketEventConsumedTotal.WithLabelValues(streamBucketWritten, metrics.ValueNoError).Inc()
}
