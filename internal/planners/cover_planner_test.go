package planners

import (
	"testing"
	"time"

	"bucket-metrics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func bucket(granularity models.Granularity, start time.Time, count int64) models.MetricBucket {
	return models.MetricBucket{
		AccountID:      "acc-1",
		RecordKind:     models.RecordKindItems,
		TimeRangeStart: start,
		TimeRangeEnd:   start.Add(granularity.Duration()),
		Granularity:    granularity,
		Count:          count,
		Complete:       true,
	}
}

func incomplete(b models.MetricBucket) models.MetricBucket {
	b.Complete = false
	return b
}

func window(start, end time.Time) models.TimeWindow {
	return models.TimeWindow{Start: start, End: end}
}

func sumCounts(cover *models.Cover) int64 {
	var total int64
	for _, b := range cover.Buckets {
		total += b.Count
	}
	return total
}

func assertNoOverlap(t *testing.T, cover *models.Cover) {
	t.Helper()
	for i := 1; i < len(cover.Buckets); i++ {
		prev, cur := cover.Buckets[i-1], cover.Buckets[i]
		assert.False(t, cur.TimeRangeStart.Before(prev.TimeRangeEnd),
			"bucket %s overlaps %s", cur.Range(), prev.Range())
	}
}

func TestCoverPlanner_SelectCover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		candidates         []models.MetricBucket
		window             models.TimeWindow
		expectedCount      int64
		expectedBuckets    int
		expectedComplete   bool
		expectedIncomplete bool
		expectedStart      time.Time
		expectedEnd        time.Time
		expectedGaps       []models.TimeWindow
	}{
		{
			name: "hour bucket wins over its quarter hour children",
			candidates: []models.MetricBucket{
				bucket(models.GranularityQuarterHour, at(13, 0), 20),
				bucket(models.GranularityQuarterHour, at(13, 15), 25),
				bucket(models.GranularityHour, at(13, 0), 100),
				bucket(models.GranularityQuarterHour, at(13, 30), 30),
				bucket(models.GranularityQuarterHour, at(13, 45), 35),
			},
			window:           window(at(13, 0), at(14, 0)),
			expectedCount:    100,
			expectedBuckets:  1,
			expectedComplete: true,
			expectedStart:    at(13, 0),
			expectedEnd:      at(14, 0),
		},
		{
			name: "hour bucket followed by quarter hours",
			candidates: []models.MetricBucket{
				bucket(models.GranularityHour, at(13, 0), 100),
				bucket(models.GranularityQuarterHour, at(14, 0), 30),
				bucket(models.GranularityQuarterHour, at(14, 15), 35),
			},
			window:           window(at(13, 0), at(14, 30)),
			expectedCount:    165,
			expectedBuckets:  3,
			expectedComplete: true,
			expectedStart:    at(13, 0),
			expectedEnd:      at(14, 30),
		},
		{
			name: "missing quarter hour leaves a gap",
			candidates: []models.MetricBucket{
				bucket(models.GranularityQuarterHour, at(13, 0), 25),
				bucket(models.GranularityQuarterHour, at(13, 30), 30),
			},
			window:          window(at(13, 0), at(13, 45)),
			expectedCount:   55,
			expectedBuckets: 2,
			expectedStart:   at(13, 0),
			expectedEnd:     at(13, 45),
			expectedGaps:    []models.TimeWindow{window(at(13, 15), at(13, 30))},
		},
		{
			name: "trailing incomplete bucket is included",
			candidates: []models.MetricBucket{
				bucket(models.GranularityHour, at(13, 0), 100),
				incomplete(bucket(models.GranularityHour, at(14, 0), 75)),
			},
			window:             window(at(13, 0), at(14, 30)),
			expectedCount:      175,
			expectedBuckets:    2,
			expectedIncomplete: true,
			expectedStart:      at(13, 0),
			expectedEnd:        at(14, 30),
		},
		{
			name: "incomplete bucket away from the trailing edge is a gap",
			candidates: []models.MetricBucket{
				incomplete(bucket(models.GranularityHour, at(13, 0), 60)),
				bucket(models.GranularityHour, at(14, 0), 80),
			},
			window:          window(at(13, 0), at(15, 0)),
			expectedCount:   80,
			expectedBuckets: 1,
			expectedStart:   at(14, 0),
			expectedEnd:     at(15, 0),
			expectedGaps:    []models.TimeWindow{window(at(13, 0), at(14, 0))},
		},
		{
			name: "non-aligned start filled by finer buckets",
			candidates: []models.MetricBucket{
				bucket(models.GranularityHour, at(13, 0), 500),
				bucket(models.GranularityMinute, at(13, 7), 1),
				bucket(models.GranularityMinute, at(13, 8), 1),
				bucket(models.GranularityMinute, at(13, 9), 1),
				bucket(models.GranularityFiveMinutes, at(13, 10), 5),
				bucket(models.GranularityQuarterHour, at(13, 15), 10),
				bucket(models.GranularityQuarterHour, at(13, 30), 10),
				bucket(models.GranularityQuarterHour, at(13, 45), 10),
			},
			window:           window(at(13, 7), at(14, 0)),
			expectedCount:    38,
			expectedBuckets:  7,
			expectedComplete: true,
			expectedStart:    at(13, 7),
			expectedEnd:      at(14, 0),
		},
		{
			name: "non-aligned window with only straddling buckets under-counts as partial",
			candidates: []models.MetricBucket{
				bucket(models.GranularityHour, at(13, 0), 100),
				bucket(models.GranularityHour, at(14, 0), 100),
			},
			window:        window(at(13, 7), at(14, 7)),
			expectedCount: 0,
			expectedStart: at(13, 7),
			expectedEnd:   at(13, 7),
			expectedGaps:  []models.TimeWindow{window(at(13, 7), at(14, 7))},
		},
		{
			name: "duplicate candidates are counted once",
			candidates: []models.MetricBucket{
				bucket(models.GranularityQuarterHour, at(13, 0), 40),
				bucket(models.GranularityQuarterHour, at(13, 0), 40),
			},
			window:           window(at(13, 0), at(13, 15)),
			expectedCount:    40,
			expectedBuckets:  1,
			expectedComplete: true,
			expectedStart:    at(13, 0),
			expectedEnd:      at(13, 15),
		},
		{
			name: "trailing gap after last bucket",
			candidates: []models.MetricBucket{
				bucket(models.GranularityHour, at(12, 0), 100),
			},
			window:          window(at(12, 0), at(14, 0)),
			expectedCount:   100,
			expectedBuckets: 1,
			expectedStart:   at(12, 0),
			expectedEnd:     at(13, 0),
			expectedGaps:    []models.TimeWindow{window(at(13, 0), at(14, 0))},
		},
		{
			name: "buckets outside the window are ignored",
			candidates: []models.MetricBucket{
				bucket(models.GranularityHour, at(10, 0), 999),
				bucket(models.GranularityHour, at(12, 0), 100),
				bucket(models.GranularityHour, at(16, 0), 999),
			},
			window:           window(at(12, 0), at(13, 0)),
			expectedCount:    100,
			expectedBuckets:  1,
			expectedComplete: true,
			expectedStart:    at(12, 0),
			expectedEnd:      at(13, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			planner := NewCoverPlanner()
			cover := planner.SelectCover(tt.candidates, tt.window)

			require.NotNil(t, cover)
			assert.Equal(t, tt.window, cover.Window)
			assert.Equal(t, tt.expectedCount, sumCounts(cover))
			assert.Len(t, cover.Buckets, tt.expectedBuckets)
			assert.Equal(t, tt.expectedComplete, cover.IsComplete)
			assert.Equal(t, tt.expectedIncomplete, cover.IncludesIncomplete)
			assert.Equal(t, tt.expectedStart, cover.CoveredStart)
			assert.Equal(t, tt.expectedEnd, cover.CoveredEnd)
			assert.Equal(t, tt.expectedGaps, cover.Gaps)
			assert.Empty(t, cover.Rejected)
			assertNoOverlap(t, cover)
		})
	}
}

func TestCoverPlanner_SelectCover_SortedByStart(t *testing.T) {
	t.Parallel()

	candidates := []models.MetricBucket{
		bucket(models.GranularityQuarterHour, at(14, 15), 4),
		bucket(models.GranularityFiveMinutes, at(14, 0), 1),
		bucket(models.GranularityHour, at(13, 0), 10),
		bucket(models.GranularityFiveMinutes, at(14, 5), 2),
		bucket(models.GranularityFiveMinutes, at(14, 10), 3),
	}

	cover := NewCoverPlanner().SelectCover(candidates, window(at(13, 0), at(14, 30)))

	require.Len(t, cover.Buckets, 5)
	for i := 1; i < len(cover.Buckets); i++ {
		assert.True(t, cover.Buckets[i-1].TimeRangeStart.Before(cover.Buckets[i].TimeRangeStart))
	}
	assert.True(t, cover.IsComplete)
}

func TestCoverPlanner_SelectCover_Idempotent(t *testing.T) {
	t.Parallel()

	candidates := []models.MetricBucket{
		bucket(models.GranularityHour, at(13, 0), 100),
		bucket(models.GranularityQuarterHour, at(13, 0), 20),
		bucket(models.GranularityQuarterHour, at(14, 0), 30),
		incomplete(bucket(models.GranularityQuarterHour, at(14, 15), 5)),
	}
	w := window(at(13, 0), at(14, 20))

	planner := NewCoverPlanner()
	first := planner.SelectCover(candidates, w)
	second := planner.SelectCover(candidates, w)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(135), sumCounts(first))
}

func TestCoverPlanner_SelectCover_EmptyInput(t *testing.T) {
	t.Parallel()

	planner := NewCoverPlanner()

	cover := planner.SelectCover(nil, window(at(13, 0), at(14, 0)))
	assert.Empty(t, cover.Buckets)
	assert.False(t, cover.IsComplete)
	assert.Equal(t, []models.TimeWindow{window(at(13, 0), at(14, 0))}, cover.Gaps)
	assert.Equal(t, time.Duration(0), cover.CoveredDuration())

	zero := planner.SelectCover(nil, window(at(13, 0), at(13, 0)))
	assert.Empty(t, zero.Buckets)
	assert.True(t, zero.IsComplete, "zero duration window is trivially complete")
	assert.Empty(t, zero.Gaps)
}

func TestCoverPlanner_SelectCover_RejectsMalformedBuckets(t *testing.T) {
	t.Parallel()

	reversed := bucket(models.GranularityQuarterHour, at(13, 15), 999)
	reversed.TimeRangeEnd = at(13, 0)

	mismatched := bucket(models.GranularityQuarterHour, at(13, 15), 999)
	mismatched.TimeRangeEnd = at(13, 45)

	candidates := []models.MetricBucket{
		bucket(models.GranularityQuarterHour, at(13, 0), 10),
		reversed,
		mismatched,
		bucket(models.GranularityQuarterHour, at(13, 15), 20),
	}

	cover := NewCoverPlanner().SelectCover(candidates, window(at(13, 0), at(13, 30)))

	assert.Equal(t, int64(30), sumCounts(cover))
	assert.True(t, cover.IsComplete)
	require.Len(t, cover.Rejected, 2)
	assert.ErrorIs(t, cover.Rejected[0].Reason, models.ErrInvalidTimeRange)
	assert.ErrorIs(t, cover.Rejected[1].Reason, models.ErrGranularityMismatch)
}
