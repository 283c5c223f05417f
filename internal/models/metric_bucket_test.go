package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBucket(granularity Granularity, start time.Time, count int64) MetricBucket {
	return MetricBucket{
		AccountID:      "acc-1",
		RecordKind:     RecordKindItems,
		TimeRangeStart: start,
		TimeRangeEnd:   start.Add(granularity.Duration()),
		Granularity:    granularity,
		Count:          count,
		Complete:       true,
	}
}

func TestMetricBucket_Validate(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 12, 28, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(b *MetricBucket)
		wantErr error
	}{
		{
			name:   "well-formed bucket",
			mutate: func(b *MetricBucket) {},
		},
		{
			name:    "missing account",
			mutate:  func(b *MetricBucket) { b.AccountID = "  " },
			wantErr: ErrMissingIdentity,
		},
		{
			name:    "missing record kind",
			mutate:  func(b *MetricBucket) { b.RecordKind = "" },
			wantErr: ErrMissingIdentity,
		},
		{
			name:    "end equals start",
			mutate:  func(b *MetricBucket) { b.TimeRangeEnd = b.TimeRangeStart },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "end before start",
			mutate:  func(b *MetricBucket) { b.TimeRangeEnd = b.TimeRangeStart.Add(-time.Hour) },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "unknown granularity",
			mutate:  func(b *MetricBucket) { b.Granularity = Granularity(42) },
			wantErr: ErrUnknownGranularity,
		},
		{
			name:    "width does not match granularity",
			mutate:  func(b *MetricBucket) { b.TimeRangeEnd = b.TimeRangeStart.Add(30 * time.Minute) },
			wantErr: ErrGranularityMismatch,
		},
		{
			name:    "negative count",
			mutate:  func(b *MetricBucket) { b.Count = -1 },
			wantErr: ErrNegativeCount,
		},
		{
			name:    "negative cost",
			mutate:  func(b *MetricBucket) { b.Cost = -0.5 },
			wantErr: ErrNegativeCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bucket := newTestBucket(GranularityHour, start, 100)
			tt.mutate(&bucket)

			err := bucket.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMetricBucket_SumsAndSeriesKey(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 12, 28, 13, 15, 0, 0, time.UTC)
	bucket := newTestBucket(GranularityQuarterHour, start, 30)
	bucket.Cost = 1.5
	bucket.ErrorCount = 2

	assert.Equal(t, "acc-1|items|15m", bucket.SeriesKey())
	assert.Equal(t, BucketSums{Count: 30, Cost: 1.5, ErrorCount: 2}, bucket.Sums())
	assert.Equal(t, TimeWindow{Start: start, End: start.Add(15 * time.Minute)}, bucket.Range())

	other := bucket
	assert.True(t, bucket.SameSums(&other))
	other.Count = 31
	assert.False(t, bucket.SameSums(&other))
}

func TestMetricBucket_JSON(t *testing.T) {
	t.Parallel()

	payload := `{
		"accountId": "acc-7f3a",
		"recordKind": "scoreResults",
		"timeRangeStart": "2025-12-28T13:00:00Z",
		"timeRangeEnd": "2025-12-28T14:00:00Z",
		"granularityMinutes": 60,
		"count": 100,
		"externalApiCount": 4,
		"complete": true
	}`

	var bucket MetricBucket
	require.NoError(t, json.Unmarshal([]byte(payload), &bucket))
	assert.Equal(t, GranularityHour, bucket.Granularity)
	assert.Equal(t, RecordKindScoreResults, bucket.RecordKind)
	assert.Equal(t, int64(4), bucket.ExternalAPICount)
	assert.NoError(t, bucket.Validate())
}

func TestBucketSums_Add(t *testing.T) {
	t.Parallel()

	sums := BucketSums{Count: 1, Cost: 0.25}
	sums.Add(BucketSums{Count: 2, Cost: 0.5, DecisionCount: 3, ExternalAPICount: 4, CachedAPICount: 5, ErrorCount: 6})

	assert.Equal(t, BucketSums{Count: 3, Cost: 0.75, DecisionCount: 3, ExternalAPICount: 4, CachedAPICount: 5, ErrorCount: 6}, sums)
}

func TestNewEmptyAggregationResult(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 12, 28, 13, 0, 0, 0, time.UTC)

	empty := NewEmptyAggregationResult("acc-1", RecordKindItems, TimeWindow{Start: start, End: start})
	assert.True(t, empty.IsComplete, "zero duration window is trivially complete")
	assert.False(t, empty.HasCoverage())

	hour := NewEmptyAggregationResult("acc-1", RecordKindItems, TimeWindow{Start: start, End: start.Add(time.Hour)})
	assert.False(t, hour.IsComplete)
	assert.Equal(t, start, hour.CoveredStart)
	assert.Equal(t, time.Duration(0), hour.CoveredDuration())
}
