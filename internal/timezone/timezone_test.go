package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
)

func TestLocation_FallsBack(t *testing.T) {
	assert.NotNil(t, timezone.Location(""))
	assert.NotNil(t, timezone.Location("Not/AZone"))
	assert.False(t, timezone.IsValid(""))
	assert.True(t, timezone.IsValid("UTC"))
	assert.Equal(t, time.UTC, timezone.Location("UTC"))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 13, 5, 9, 7, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), timezone.StartOfDay(ts))
}

func TestParseDateTime(t *testing.T) {
	got, err := timezone.ParseDateTime("2025-03-10", "09:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), got)

	_, err = timezone.ParseDateTime("2025-03-10", "9h30", time.UTC)
	assert.Error(t, err)

	_, err = timezone.ParseDate("10/03/2025", time.UTC)
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	ts := time.Date(2025, 3, 10, 13, 5, 0, 0, time.UTC)
	var c timezone.Clock = timezone.FixedClock{T: ts}
	assert.Equal(t, ts, c.Now())
}
