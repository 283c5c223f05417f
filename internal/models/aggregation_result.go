package models

import "time"

// BucketSums holds the numeric fields that are summed across a cover.
type BucketSums struct {
	Count            int64   `json:"count"`
	Cost             float64 `json:"cost"`
	DecisionCount    int64   `json:"decisionCount"`
	ExternalAPICount int64   `json:"externalApiCount"`
	CachedAPICount   int64   `json:"cachedApiCount"`
	ErrorCount       int64   `json:"errorCount"`
}

// Add accumulates other into s.
func (s *BucketSums) Add(other BucketSums) {
	s.Count += other.Count
	s.Cost += other.Cost
	s.DecisionCount += other.DecisionCount
	s.ExternalAPICount += other.ExternalAPICount
	s.CachedAPICount += other.CachedAPICount
	s.ErrorCount += other.ErrorCount
}

// AggregationResult is the summed cover of one query window.
//
// IsComplete is true only when the selected buckets cover the whole window without gaps and no
// incomplete bucket was used. A partial result is still a valid answer: callers show it as
// "data as of CoveredEnd" instead of failing.
type AggregationResult struct {
	AccountID    string     `json:"accountId"`
	RecordKind   RecordKind `json:"recordKind"`
	Window       TimeWindow `json:"window"`
	BucketSums              // flattened: count, cost, ...
	CoveredStart time.Time  `json:"coveredStart"`
	CoveredEnd   time.Time  `json:"coveredEnd"`
	IsComplete   bool       `json:"isComplete"`
	BucketsUsed  int        `json:"bucketsUsed"`
	Gaps         int        `json:"gaps"`
}

func NewEmptyAggregationResult(accountID string, kind RecordKind, window TimeWindow) *AggregationResult {
	return &AggregationResult{
		AccountID:    accountID,
		RecordKind:   kind,
		Window:       window,
		CoveredStart: window.Start,
		CoveredEnd:   window.Start,
		IsComplete:   window.IsEmpty(),
	}
}

func (r *AggregationResult) CoveredDuration() time.Duration {
	return r.CoveredEnd.Sub(r.CoveredStart)
}

// HasCoverage reports whether any bucket contributed to the result.
func (r *AggregationResult) HasCoverage() bool {
	return r.BucketsUsed > 0 && r.CoveredDuration() > 0
}
