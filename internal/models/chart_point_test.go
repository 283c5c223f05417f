package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeSeries(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)

	points := []ChartPoint{
		{Time: start, Value: 120, IsComplete: true},
		{Time: start.Add(time.Hour), Value: 310, IsComplete: true},
		{Time: start.Add(2 * time.Hour), Value: 0, IsComplete: true},
		{Time: start.Add(3 * time.Hour), Value: 50},
	}

	summary := SummarizeSeries(points)
	assert.Equal(t, 310.0, summary.Peak)
	assert.Equal(t, 480.0, summary.Total)
	assert.Equal(t, 120.0, summary.Average)
	assert.Equal(t, 4, summary.Points)
	assert.Equal(t, 3, summary.CompletePoints)
}

func TestSummarizeSeries_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SeriesSummary{}, SummarizeSeries(nil))
}

func TestMetricsView_Clone(t *testing.T) {
	t.Parallel()

	view := &MetricsView{AccountID: "acc-1", ChartSeries: []ChartPoint{{Value: 1}}}
	clone := view.Clone()
	clone.ChartSeries[0].Value = 99

	assert.Equal(t, 1.0, view.ChartSeries[0].Value)
	assert.Equal(t, "acc-1", clone.AccountID)
}
