package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBeforeDay(t *testing.T) {
	base := time.Date(2025, time.November, 8, 14, 30, 0, 0, time.Local)

	testCases := []struct {
		name string
		a    time.Time
		want bool
	}{
		{"previous day late evening", time.Date(2025, time.November, 7, 23, 59, 0, 0, time.Local), true},
		{"same day earlier hour", time.Date(2025, time.November, 8, 0, 0, 0, 0, time.Local), false},
		{"same day later hour", time.Date(2025, time.November, 8, 23, 0, 0, 0, time.Local), false},
		{"next day", time.Date(2025, time.November, 9, 0, 0, 0, 0, time.Local), false},
		{"previous year", time.Date(2024, time.December, 31, 12, 0, 0, 0, time.Local), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsBeforeDay(tc.a, base))
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	d, err := ParseTimeOfDay("07:30")
	require.NoError(t, err)
	assert.Equal(t, 7*time.Hour+30*time.Minute, d)

	_, err = ParseTimeOfDay("7.30")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-11-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.November, 9, 0, 0, 0, 0, time.Local), d)
	assert.Equal(t, "2025-11-09", FormatDate(d))

	_, err = ParseDate("09/11/2025")
	assert.Error(t, err)
}

func TestAddMonths(t *testing.T) {
	jan31 := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.Local), AddMonths(jan31, 1))
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.Local), AddMonths(jan31, -1))

	mid := time.Date(2025, time.November, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.Local), AddMonths(mid, 2))
}

func TestMockClock(t *testing.T) {
	clock := &MockClock{FixedNow: time.Date(2025, time.November, 8, 2, 0, 0, 0, time.Local)}
	clock.Advance(time.Hour)
	assert.Equal(t, 3, clock.Now().Hour())
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2025-11-08", "01:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.November, 8, 1, 30, 0, 0, time.Local), got)

	_, err = CombineDateTime("2025-11-08", "")
	assert.Error(t, err)
}
