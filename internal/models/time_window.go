package models

import (
	"fmt"
	"time"
)

// TimeWindow is a half-open interval [Start, End). Query windows need not align to any
// granularity boundary.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if end.Before(start) {
		return TimeWindow{}, fmt.Errorf("%w: start=%s end=%s", ErrInvalidWindow,
			start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	}
	return TimeWindow{Start: start.UTC(), End: end.UTC()}, nil
}

func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

func (w TimeWindow) IsEmpty() bool {
	return !w.End.After(w.Start)
}

// Contains reports whether [start, end) lies entirely inside the window.
func (w TimeWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

// Split slices the window into consecutive sub-windows of width step. The last sub-window is
// clipped at End.
func (w TimeWindow) Split(step time.Duration) []TimeWindow {
	if step <= 0 || w.IsEmpty() {
		return nil
	}
	windows := make([]TimeWindow, 0, int(w.Duration()/step)+1)
	for cursor := w.Start; cursor.Before(w.End); cursor = cursor.Add(step) {
		end := cursor.Add(step)
		if end.After(w.End) {
			end = w.End
		}
		windows = append(windows, TimeWindow{Start: cursor, End: end})
	}
	return windows
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.UTC().Format(time.RFC3339), w.End.UTC().Format(time.RFC3339))
}
