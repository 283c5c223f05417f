package models

import "time"

// RejectedBucket is a candidate the planner refused because it failed validation.
type RejectedBucket struct {
	Bucket MetricBucket
	Reason error
}

// Cover is the non-overlapping selection of buckets chosen to span a query window.
//
// Buckets are sorted by TimeRangeStart. Every bucket lies inside Window except a trailing
// incomplete bucket, which may extend past Window.End; CoveredEnd is clipped to Window.End in
// that case. Gaps lists every sub-interval of Window that no selected bucket covers.
type Cover struct {
	Window             TimeWindow
	Buckets            []MetricBucket
	CoveredStart       time.Time
	CoveredEnd         time.Time
	IsComplete         bool
	Gaps               []TimeWindow
	IncludesIncomplete bool
	Rejected           []RejectedBucket
}

// IsDiscontinuous reports whether the cover skips over at least one gap inside Window.
func (c *Cover) IsDiscontinuous() bool {
	return len(c.Gaps) > 0
}

func (c *Cover) CoveredDuration() time.Duration {
	return c.CoveredEnd.Sub(c.CoveredStart)
}
