package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeWindow(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 12, 28, 13, 7, 0, 0, time.FixedZone("ICT", 7*3600))

	window, err := NewTimeWindow(start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, window.Start.Location())
	assert.Equal(t, time.Hour, window.Duration())
	assert.False(t, window.IsEmpty())

	zero, err := NewTimeWindow(start, start)
	require.NoError(t, err)
	assert.True(t, zero.IsEmpty())

	_, err = NewTimeWindow(start, start.Add(-time.Second))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestTimeWindow_Contains(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 12, 28, 13, 0, 0, 0, time.UTC)
	window := TimeWindow{Start: start, End: start.Add(90 * time.Minute)}

	assert.True(t, window.Contains(start, start.Add(time.Hour)))
	assert.True(t, window.Contains(start.Add(75*time.Minute), start.Add(90*time.Minute)))
	assert.False(t, window.Contains(start.Add(-time.Minute), start.Add(time.Hour)))
	assert.False(t, window.Contains(start.Add(time.Hour), start.Add(2*time.Hour)))
}

func TestTimeWindow_Split(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 12, 28, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		window   TimeWindow
		step     time.Duration
		expected []TimeWindow
	}{
		{
			name:   "aligned",
			window: TimeWindow{Start: start, End: start.Add(2 * time.Hour)},
			step:   time.Hour,
			expected: []TimeWindow{
				{Start: start, End: start.Add(time.Hour)},
				{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)},
			},
		},
		{
			name:   "last sub-window clipped",
			window: TimeWindow{Start: start, End: start.Add(150 * time.Minute)},
			step:   time.Hour,
			expected: []TimeWindow{
				{Start: start, End: start.Add(time.Hour)},
				{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)},
				{Start: start.Add(2 * time.Hour), End: start.Add(150 * time.Minute)},
			},
		},
		{
			name:     "empty window",
			window:   TimeWindow{Start: start, End: start},
			step:     time.Hour,
			expected: nil,
		},
		{
			name:     "non-positive step",
			window:   TimeWindow{Start: start, End: start.Add(time.Hour)},
			step:     0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.window.Split(tt.step))
		})
	}
}
