package ulid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULIDAt_EncodesTimestamp(t *testing.T) {
	t.Parallel()

	receivedAt := time.Date(2025, 12, 28, 14, 31, 5, int(250*time.Millisecond), time.UTC)
	id := NewULIDAt(receivedAt)

	got, err := Time(id)
	require.NoError(t, err)
	assert.Equal(t, receivedAt, got)
	assert.NotEqual(t, id, NewULIDAt(receivedAt))
}

func TestNewULIDAt_SortsByTime(t *testing.T) {
	t.Parallel()

	earlier := NewULIDAt(time.Date(2025, 12, 28, 13, 0, 0, 0, time.UTC))
	later := NewULIDAt(time.Date(2025, 12, 28, 14, 0, 0, 0, time.UTC))
	assert.Less(t, earlier, later)
}

func TestTime_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
	assert.Len(t, NewULID(), 26)
}
