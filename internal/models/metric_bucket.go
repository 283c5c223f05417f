package models

import (
	"fmt"
	"strings"
	"time"
)

// RecordKind names what a bucket counts, e.g. "items" or "scoreResults".
type RecordKind string

const (
	RecordKindItems        RecordKind = "items"
	RecordKindScoreResults RecordKind = "scoreResults"
)

// MetricBucket is a pre-aggregated summary of one account's events of one kind over the half-open
// interval [TimeRangeStart, TimeRangeEnd). Buckets are written by an external rollup writer and
// never change once Complete is true. At most one incomplete bucket exists per
// (account, kind, granularity): the most recent one, still accumulating.
//
// Example JSON:
//
//	{
//	  "accountId": "acc-7f3a",
//	  "recordKind": "items",
//	  "timeRangeStart": "2025-12-28T13:00:00Z",
//	  "timeRangeEnd": "2025-12-28T14:00:00Z",
//	  "granularityMinutes": 60,
//	  "count": 100,
//	  "cost": 0.42,
//	  "errorCount": 2,
//	  "complete": true
//	}
type MetricBucket struct {
	AccountID        string      `json:"accountId" validate:"required,max=128"`
	RecordKind       RecordKind  `json:"recordKind" validate:"required,max=64"`
	TimeRangeStart   time.Time   `json:"timeRangeStart" validate:"required"`
	TimeRangeEnd     time.Time   `json:"timeRangeEnd" validate:"required"`
	Granularity      Granularity `json:"granularityMinutes" validate:"required"`
	Count            int64       `json:"count" validate:"min=0"`
	Cost             float64     `json:"cost,omitempty" validate:"min=0"`
	DecisionCount    int64       `json:"decisionCount,omitempty" validate:"min=0"`
	ExternalAPICount int64       `json:"externalApiCount,omitempty" validate:"min=0"`
	CachedAPICount   int64       `json:"cachedApiCount,omitempty" validate:"min=0"`
	ErrorCount       int64       `json:"errorCount,omitempty" validate:"min=0"`
	Complete         bool        `json:"complete"`
}

// Validate reports why a bucket cannot be trusted for counting. A nil result means the range is
// well-formed and its width matches the declared granularity.
func (b *MetricBucket) Validate() error {
	if strings.TrimSpace(b.AccountID) == "" || strings.TrimSpace(string(b.RecordKind)) == "" {
		return ErrMissingIdentity
	}
	if !b.TimeRangeEnd.After(b.TimeRangeStart) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidTimeRange,
			b.TimeRangeStart.UTC().Format(time.RFC3339), b.TimeRangeEnd.UTC().Format(time.RFC3339))
	}
	if !b.Granularity.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownGranularity, uint8(b.Granularity))
	}
	if width := b.Duration(); width != b.Granularity.Duration() {
		return fmt.Errorf("%w: width=%s granularity=%s", ErrGranularityMismatch, width, b.Granularity)
	}
	if b.Count < 0 || b.Cost < 0 || b.DecisionCount < 0 || b.ExternalAPICount < 0 ||
		b.CachedAPICount < 0 || b.ErrorCount < 0 {
		return ErrNegativeCount
	}
	return nil
}

func (b *MetricBucket) Duration() time.Duration {
	return b.TimeRangeEnd.Sub(b.TimeRangeStart)
}

// Range returns the bucket interval as a window.
func (b *MetricBucket) Range() TimeWindow {
	return TimeWindow{Start: b.TimeRangeStart, End: b.TimeRangeEnd}
}

// SeriesKey identifies the (account, kind, granularity) series the bucket belongs to.
func (b *MetricBucket) SeriesKey() string {
	return fmt.Sprintf("%s|%s|%s", b.AccountID, b.RecordKind, b.Granularity)
}

// Sums returns the numeric fields of the bucket.
func (b *MetricBucket) Sums() BucketSums {
	return BucketSums{
		Count:            b.Count,
		Cost:             b.Cost,
		DecisionCount:    b.DecisionCount,
		ExternalAPICount: b.ExternalAPICount,
		CachedAPICount:   b.CachedAPICount,
		ErrorCount:       b.ErrorCount,
	}
}

// SameSums reports whether two buckets carry identical numeric fields.
func (b *MetricBucket) SameSums(other *MetricBucket) bool {
	return b.Sums() == other.Sums()
}
