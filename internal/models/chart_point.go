package models

import "time"

// ChartPoint is one resolved sub-interval of a series. Time is the sub-interval start;
// BucketStart and BucketEnd are the span actually covered by buckets.
type ChartPoint struct {
	Time        time.Time `json:"time"`
	Value       float64   `json:"value"`
	Cost        float64   `json:"cost"`
	BucketStart time.Time `json:"bucketStart"`
	BucketEnd   time.Time `json:"bucketEnd"`
	IsComplete  bool      `json:"isComplete"`
}

// SeriesSummary is derived by a single scan over a finished series.
type SeriesSummary struct {
	Peak           float64 `json:"peak"`
	Average        float64 `json:"average"`
	Total          float64 `json:"total"`
	Points         int     `json:"points"`
	CompletePoints int     `json:"completePoints"`
}

func SummarizeSeries(points []ChartPoint) SeriesSummary {
	summary := SeriesSummary{Points: len(points)}
	for i, point := range points {
		if i == 0 || point.Value > summary.Peak {
			summary.Peak = point.Value
		}
		summary.Total += point.Value
		if point.IsComplete {
			summary.CompletePoints++
		}
	}
	if len(points) > 0 {
		summary.Average = summary.Total / float64(len(points))
	}
	return summary
}
