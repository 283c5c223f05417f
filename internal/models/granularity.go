package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Granularity is the fixed width a bucket summarizes. The set is closed and ordered from the
// finest to the coarsest width, so comparisons between values follow bucket size.
type Granularity uint8

const (
	GranularityMinute Granularity = iota + 1
	GranularityFiveMinutes
	GranularityQuarterHour
	GranularityHour
)

// granularitiesDescending is the planner's preference order: coarsest first.
var granularitiesDescending = []Granularity{
	GranularityHour,
	GranularityQuarterHour,
	GranularityFiveMinutes,
	GranularityMinute,
}

// GranularitiesDescending returns every valid granularity, coarsest first.
func GranularitiesDescending() []Granularity {
	out := make([]Granularity, len(granularitiesDescending))
	copy(out, granularitiesDescending)
	return out
}

// GranularityFromMinutes maps a bucket width in minutes to its Granularity.
func GranularityFromMinutes(minutes int) (Granularity, error) {
	switch minutes {
	case 1:
		return GranularityMinute, nil
	case 5:
		return GranularityFiveMinutes, nil
	case 15:
		return GranularityQuarterHour, nil
	case 60:
		return GranularityHour, nil
	default:
		return 0, fmt.Errorf("%w: %d minutes", ErrUnknownGranularity, minutes)
	}
}

func (g Granularity) IsValid() bool {
	return g >= GranularityMinute && g <= GranularityHour
}

func (g Granularity) Minutes() int {
	switch g {
	case GranularityMinute:
		return 1
	case GranularityFiveMinutes:
		return 5
	case GranularityQuarterHour:
		return 15
	case GranularityHour:
		return 60
	default:
		panic(fmt.Sprintf("invalid Granularity: %d", uint8(g)))
	}
}

func (g Granularity) Duration() time.Duration {
	return time.Duration(g.Minutes()) * time.Minute
}

func (g Granularity) String() string {
	if !g.IsValid() {
		return fmt.Sprintf("Granularity(%d)", uint8(g))
	}
	return fmt.Sprintf("%dm", g.Minutes())
}

const (
	hourStartLayout   = "20060102T15Z"
	minuteStartLayout = "20060102T1504Z"
)

// FormatBucketStart renders the bucket start used in storage keys, truncated to the granularity.
func (g Granularity) FormatBucketStart(t time.Time) string {
	utc := t.UTC().Truncate(g.Duration())

	switch g {
	case GranularityHour:
		return utc.Format(hourStartLayout)
	default:
		return utc.Format(minuteStartLayout)
	}
}

// ParseBucketStart is the inverse of FormatBucketStart.
func (g Granularity) ParseBucketStart(s string) (time.Time, error) {
	layout := minuteStartLayout
	if g == GranularityHour {
		layout = hourStartLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// BucketID identifies the slot of t inside the next coarser period, e.g. "15m-02" for the third
// quarter hour. It is bounded and safe to use as a metric label.
func (g Granularity) BucketID(t time.Time) string {
	utc := t.UTC()

	switch g {
	case GranularityHour:
		return fmt.Sprintf("60m-%02d", utc.Hour())
	default:
		return fmt.Sprintf("%s-%02d", g, utc.Minute()/g.Minutes())
	}
}

// MarshalJSON encodes the granularity as its width in minutes.
func (g Granularity) MarshalJSON() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGranularity, uint8(g))
	}
	return json.Marshal(g.Minutes())
}

func (g *Granularity) UnmarshalJSON(data []byte) error {
	var minutes int
	if err := json.Unmarshal(data, &minutes); err != nil {
		return fmt.Errorf("granularity must be a minute count: %w", err)
	}
	parsed, err := GranularityFromMinutes(minutes)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
