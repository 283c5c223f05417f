package streams

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bucket-metrics/internal/aggregators/mocks"
	"bucket-metrics/internal/events"
	"bucket-metrics/internal/models"
	"bucket-metrics/internal/shared/svcerrors"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBucketEventConsumer_AppliesEveryEvent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockApply := mocks.NewMockBucketApplyService(ctrl)
	queue := NewPartitionedQueue[events.BucketWrittenEvent](2, 16)
	consumer := NewBucketEventConsumer(queue, mockApply, zerolog.Nop())

	var mu sync.Mutex
	var applied []int64
	var wg sync.WaitGroup
	wg.Add(3)

	mockApply.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *events.BucketWrittenEvent) *svcerrors.ServiceError {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			applied = append(applied, event.Bucket.Count)
			return nil
		}).
		Times(3)

	consumer.Start(context.Background())
	defer consumer.Stop()

	ctx := context.Background()
	for _, count := range []int64{1, 2, 3} {
		event := events.BucketWrittenEvent{BatchID: "batch-1", Bucket: newStreamBucket(models.GranularityQuarterHour, 14, 0, count)}
		require.NoError(t, queue.Publish(ctx, event.PartitionKey(), event))
	}

	wg.Wait()
	mu.Lock()
	defer mu.Unlock()
	// one series, one worker: publish order is apply order
	assert.Equal(t, []int64{1, 2, 3}, applied)
}

func TestBucketEventConsumer_SurvivesFailuresAndPanics(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockApply := mocks.NewMockBucketApplyService(ctrl)
	queue := NewPartitionedQueue[events.BucketWrittenEvent](1, 16)
	consumer := NewBucketEventConsumer(queue, mockApply, zerolog.Nop())

	done := make(chan struct{})
	gomock.InOrder(
		mockApply.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, event *events.BucketWrittenEvent) *svcerrors.ServiceError {
				panic("boom")
			}),
		mockApply.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(
			svcerrors.NewResourceConflictError("AGG_1003", "complete bucket cannot be rewritten", errors.New("conflict"))),
		mockApply.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, event *events.BucketWrittenEvent) *svcerrors.ServiceError {
				close(done)
				return nil
			}),
	)

	consumer.Start(context.Background())
	defer consumer.Stop()

	for i := 0; i < 3; i++ {
		event := events.BucketWrittenEvent{Bucket: newStreamBucket(models.GranularityHour, 13, 0, int64(i))}
		require.NoError(t, queue.Publish(context.Background(), event.PartitionKey(), event))
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive the panic")
	}
}

func TestBucketEventConsumer_StopsOnClosedQueue(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewPartitionedQueue[events.BucketWrittenEvent](2, 1)
	consumer := NewBucketEventConsumer(queue, mocks.NewMockBucketApplyService(ctrl), zerolog.Nop())

	consumer.Start(context.Background())
	queue.Close()

	stopped := make(chan struct{})
	go func() {
		consumer.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}
