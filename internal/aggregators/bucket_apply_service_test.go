package aggregators

import (
	"context"
	"errors"
	"testing"
	"time"

	"bucket-metrics/internal/events"
	"bucket-metrics/internal/models"
	"bucket-metrics/internal/stores"
	"bucket-metrics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBucketEvent(bucket models.MetricBucket) *events.BucketWrittenEvent {
	return &events.BucketWrittenEvent{
		BatchID:    "batch-1",
		AcceptedAt: time.Date(2025, 12, 28, 14, 31, 0, 0, time.UTC),
		Bucket:     bucket,
	}
}

func TestBucketApplyService_Apply_NewBucket(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockBucketStore(ctrl)
	service := NewBucketApplyService(mockStore)

	ctx := context.Background()
	event := newBucketEvent(newAggBucket(models.GranularityHour, aggAt(14, 0), 75, false))

	gomock.InOrder(
		mockStore.EXPECT().
			GetBucket(ctx, "acc-1", models.RecordKindItems, models.GranularityHour, aggAt(14, 0)).
			Return(nil, stores.ErrBucketNotFound),
		mockStore.EXPECT().UpsertBucket(ctx, &event.Bucket).Return(nil),
	)

	assert.Nil(t, service.Apply(ctx, event))
}

func TestBucketApplyService_Apply_FinalizesOpenBucket(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockBucketStore(ctrl)
	service := NewBucketApplyService(mockStore)

	ctx := context.Background()
	open := newAggBucket(models.GranularityHour, aggAt(14, 0), 75, false)
	event := newBucketEvent(newAggBucket(models.GranularityHour, aggAt(14, 0), 120, true))

	mockStore.EXPECT().GetBucket(ctx, "acc-1", models.RecordKindItems, models.GranularityHour, aggAt(14, 0)).Return(&open, nil)
	mockStore.EXPECT().UpsertBucket(ctx, &event.Bucket).Return(nil)

	assert.Nil(t, service.Apply(ctx, event))
}

func TestBucketApplyService_Apply_CompleteBucketIsImmutable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming models.MetricBucket
		wantErr  bool
	}{
		{
			name:     "identical replay is a no-op",
			incoming: newAggBucket(models.GranularityHour, aggAt(13, 0), 100, true),
		},
		{
			name:     "different count is refused",
			incoming: newAggBucket(models.GranularityHour, aggAt(13, 0), 101, true),
			wantErr:  true,
		},
		{
			name:     "reopening is refused",
			incoming: newAggBucket(models.GranularityHour, aggAt(13, 0), 100, false),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := mocks.NewMockBucketStore(ctrl)
			service := NewBucketApplyService(mockStore)

			stored := newAggBucket(models.GranularityHour, aggAt(13, 0), 100, true)
			mockStore.EXPECT().GetBucket(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&stored, nil)

			svcErr := service.Apply(context.Background(), newBucketEvent(tt.incoming))
			if !tt.wantErr {
				assert.Nil(t, svcErr)
				return
			}
			require.NotNil(t, svcErr)
			assert.Equal(t, codeCompleteBucketImmutable, svcErr.Code)
			assert.Equal(t, 409, svcErr.HttpStatusCode)
		})
	}
}

func TestBucketApplyService_Apply_InvalidBucket(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewBucketApplyService(mocks.NewMockBucketStore(ctrl))

	bucket := newAggBucket(models.GranularityHour, aggAt(13, 0), 100, true)
	bucket.TimeRangeEnd = aggAt(13, 15)

	svcErr := service.Apply(context.Background(), newBucketEvent(bucket))
	require.NotNil(t, svcErr)
	assert.Equal(t, codeInvalidBucket, svcErr.Code)
	assert.ErrorIs(t, svcErr, models.ErrGranularityMismatch)
}

func TestBucketApplyService_Apply_StoreErrors(t *testing.T) {
	t.Parallel()

	t.Run("get fails", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockBucketStore(ctrl)
		service := NewBucketApplyService(mockStore)

		mockStore.EXPECT().GetBucket(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("io error"))

		svcErr := service.Apply(context.Background(), newBucketEvent(newAggBucket(models.GranularityHour, aggAt(13, 0), 1, true)))
		require.NotNil(t, svcErr)
		assert.Equal(t, codeInternalBucketStoreFailed, svcErr.Code)
		assert.True(t, svcErr.IsInternalError())
	})

	t.Run("upsert fails", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockBucketStore(ctrl)
		service := NewBucketApplyService(mockStore)

		mockStore.EXPECT().GetBucket(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, stores.ErrBucketNotFound)
		mockStore.EXPECT().UpsertBucket(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		svcErr := service.Apply(context.Background(), newBucketEvent(newAggBucket(models.GranularityHour, aggAt(13, 0), 1, true)))
		require.NotNil(t, svcErr)
		assert.Equal(t, codeInternalBucketStoreFailed, svcErr.Code)
	})
}
