package streams

import (
	"context"

	"bucket-metrics/internal/events"
	"bucket-metrics/internal/models"
)

// BucketEventProducer turns an accepted IntakeBatch into one BucketWrittenEvent per bucket and
// publishes them to a partitioned queue.
//
// Partition strategy:
//
// The partition key is the bucket's series key:
//
//	partitionKey = "<accountId>|<recordKind>|<granularity>"
//
// Examples:
//   - 15m items bucket of acc-7f3a at 14:15 UTC -> partitionKey = "acc-7f3a|items|15m"
//   - 60m items bucket of acc-7f3a at 14:00 UTC -> partitionKey = "acc-7f3a|items|60m"
//
// Since the consumer runs one worker per partition, every write to one series is applied by a
// single goroutine in publish order. The open bucket of a series can then be overwritten and
// finalized without locks, and a late write can never race the write that completes it.
// Different series spread over the partitions and are applied in parallel.
//
//go:generate mockgen -source=bucket_event_producer.go -destination=./mocks/bucket_event_producer_mock.go -package=mocks
type BucketEventProducer interface {
	Produce(ctx context.Context, batch *models.IntakeBatch) error
}

type bucketEventProducer struct {
	queue *PartitionedQueue[events.BucketWrittenEvent]
}

func NewBucketEventProducer(queue *PartitionedQueue[events.BucketWrittenEvent]) BucketEventProducer {
	return &bucketEventProducer{
		queue: queue,
	}
}

// Produce publishes the buckets in batch order. It stops at the first failed publish; events
// already published stay queued.
func (producer *bucketEventProducer) Produce(ctx context.Context, batch *models.IntakeBatch) error {
	for _, bucket := range batch.Buckets {
		event := events.BucketWrittenEvent{
			BatchID:    batch.BatchID,
			AcceptedAt: batch.ReceivedAt,
			Bucket:     bucket,
		}

		// Partition by series identity (single-writer guarantee).
		if err := producer.queue.Publish(ctx, event.PartitionKey(), event); err != nil {
			return err
		}
		metricBucketEventProducedTotal.WithLabelValues(streamBucketWritten).Inc()
	}

	return nil
}
