package planners

import (
	"cmp"
	"slices"
	"sort"
	"time"

	"bucket-metrics/internal/models"
)

//go:generate mockgen -source=cover_planner.go -destination=./mocks/cover_planner_mock.go -package=mocks
type CoverPlanner interface {
	// SelectCover picks a non-overlapping set of buckets spanning as much of window as the
	// candidates allow, preferring coarser granularities. It has no side effects.
	SelectCover(candidates []models.MetricBucket, window models.TimeWindow) *models.Cover
}

type coverPlanner struct{}

func NewCoverPlanner() CoverPlanner {
	return &coverPlanner{}
}

// SelectCover sweeps a cursor from window.Start to window.End. At each cursor position the
// coarsest bucket starting exactly there is taken and the cursor jumps to its end, so no two
// selected buckets can intersect. When nothing starts at the cursor, the cursor skips to the next
// candidate start and the skipped span is recorded as a gap.
//
// Buckets that straddle either window edge are never prorated: they are dropped, and the edge is
// left for smaller buckets to fill. The one exception is the trailing incomplete bucket, which
// may run past window.End because it is still accumulating "now".
func (p *coverPlanner) SelectCover(candidates []models.MetricBucket, window models.TimeWindow) *models.Cover {
	cover := &models.Cover{
		Window:       window,
		CoveredStart: window.Start,
		CoveredEnd:   window.Start,
	}

	eligible := make([]models.MetricBucket, 0, len(candidates))
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			cover.Rejected = append(cover.Rejected, models.RejectedBucket{Bucket: candidate, Reason: err})
			continue
		}
		if isEligible(&candidate, window) {
			eligible = append(eligible, candidate)
		}
	}

	// coarsest first, then earliest; stable so equal candidates keep input order
	slices.SortStableFunc(eligible, func(a, b models.MetricBucket) int {
		if c := cmp.Compare(b.Granularity, a.Granularity); c != 0 {
			return c
		}
		return a.TimeRangeStart.Compare(b.TimeRangeStart)
	})

	// first entry per start is the coarsest bucket starting there
	byStart := make(map[int64]models.MetricBucket, len(eligible))
	starts := make([]int64, 0, len(eligible))
	for _, bucket := range eligible {
		key := bucket.TimeRangeStart.UnixNano()
		if _, taken := byStart[key]; taken {
			continue
		}
		byStart[key] = bucket
		starts = append(starts, key)
	}
	slices.Sort(starts)

	cursor := window.Start
	for cursor.Before(window.End) {
		bucket, ok := byStart[cursor.UnixNano()]
		if !ok {
			idx := sort.Search(len(starts), func(i int) bool { return starts[i] > cursor.UnixNano() })
			if idx == len(starts) {
				break
			}
			next := time.Unix(0, starts[idx]).UTC()
			if !next.Before(window.End) {
				break
			}
			cover.Gaps = append(cover.Gaps, models.TimeWindow{Start: cursor, End: next})
			cursor = next
			continue
		}

		cover.Buckets = append(cover.Buckets, bucket)
		if !bucket.Complete {
			cover.IncludesIncomplete = true
		}
		cursor = bucket.TimeRangeEnd.UTC()
	}

	if cursor.Before(window.End) {
		cover.Gaps = append(cover.Gaps, models.TimeWindow{Start: cursor, End: window.End})
	}

	if len(cover.Buckets) > 0 {
		cover.CoveredStart = cover.Buckets[0].TimeRangeStart.UTC()
		cover.CoveredEnd = cursor
		if cover.CoveredEnd.After(window.End) {
			cover.CoveredEnd = window.End
		}
	}

	cover.IsComplete = window.IsEmpty() ||
		(len(cover.Buckets) > 0 && len(cover.Gaps) == 0 && !cover.IncludesIncomplete)

	return cover
}

// isEligible applies the edge policy. A complete bucket must lie inside the window. An incomplete
// bucket counts only as the trailing edge: it starts inside the window and ends at or after its end.
func isEligible(bucket *models.MetricBucket, window models.TimeWindow) bool {
	if bucket.Complete {
		return window.Contains(bucket.TimeRangeStart, bucket.TimeRangeEnd)
	}
	return !bucket.TimeRangeStart.Before(window.Start) &&
		bucket.TimeRangeStart.Before(window.End) &&
		!bucket.TimeRangeEnd.Before(window.End)
}
