package streams

import (
	"context"
	"encoding/binary"
	"hash/fnv"
)

const (
	defaultNumPartitions = 8
	defaultBuffer        = 1024
)

// PartitionedQueue is an in-process queue split into fixed lanes. Messages with the same
// partition key always land in the same lane and keep their publish order.
type PartitionedQueue[T any] struct {
	partitions []chan T
}

// NewPartitionedQueue creates a queue with numPartitions lanes of buffer messages each.
// Non-positive values fall back to 8 lanes of 1024.
func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions <= 0 {
		numPartitions = defaultNumPartitions
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Publish blocks while the target lane is full, until ctx is done.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		metricQueueDepth.WithLabelValues(partitionLabel(idx)).Set(float64(len(queue.partitions[idx])))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes every lane. No Publish may run concurrently with or after Close.
func (queue *PartitionedQueue[T]) Close() {
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
