package capacity

import (
	"testing"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekKeyOf(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	honolulu := time.FixedZone("UTC-10", -10*60*60)

	testCases := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{name: "mid year", date: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), expected: "2025-W10"},
		{name: "zero padded", date: time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC), expected: "2025-W02"},
		{name: "late december belongs to next ISO year", date: time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), expected: "2025-W01"},
		{name: "early january belongs to previous ISO year", date: time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC), expected: "2020-W53"},
		{name: "sunday closes the week", date: time.Date(2025, time.March, 9, 23, 59, 0, 0, time.UTC), expected: "2025-W10"},
		{name: "monday opens the next week", date: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), expected: "2025-W11"},
		{name: "late evening east of UTC keeps its calendar day", date: time.Date(2025, time.March, 9, 23, 30, 0, 0, tokyo), expected: "2025-W10"},
		{name: "early morning west of UTC keeps its calendar day", date: time.Date(2025, time.March, 10, 0, 30, 0, 0, honolulu), expected: "2025-W11"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, WeekKeyOf(tc.date))
		})
	}
}

func TestParseWeekKey(t *testing.T) {
	year, week, err := ParseWeekKey("2025-W10")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 10, week)

	_, week, err = ParseWeekKey("2020-W53")
	require.NoError(t, err)
	assert.Equal(t, 53, week)

	for _, bad := range []string{"", "2025-10", "2025-W1", "2025W10", "2025-W00", "2025-W53", "abcd-W10", "2025-Wxx",
		"2025-W+1", "+025-W01", "-025-W01", "2025-W-1", " 025-W01"} {
		_, _, err := ParseWeekKey(bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidWeekKey, bad)
	}
}

func TestWeekStart(t *testing.T) {
	start, err := WeekStart("2025-W01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), start)

	_, err = WeekStart("nope")
	assert.Error(t, err)
}

func TestColumnOf(t *testing.T) {
	col, err := ColumnOf("2026-W53")
	require.NoError(t, err)
	assert.Equal(t, "2026-W53", col.Key)
	assert.Equal(t, time.Date(2026, time.December, 28, 0, 0, 0, 0, time.UTC), col.WeekStart)

	_, err = ColumnOf("2025-W53")
	assert.ErrorIs(t, err, apperrors.ErrInvalidWeekKey)
}

func TestWeeksInYear(t *testing.T) {
	weeks := WeeksInYear(2025)
	require.Len(t, weeks, WeeksPerYear)

	assert.Equal(t, "2025-W01", weeks[0].Key)
	assert.Equal(t, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), weeks[0].WeekStart)
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), weeks[0].WeekEnd)
	assert.Equal(t, "2025-W52", weeks[51].Key)

	for i, w := range weeks {
		assert.Equal(t, time.Monday, w.WeekStart.Weekday())
		assert.Equal(t, time.Sunday, w.WeekEnd.Weekday())
		assert.Equal(t, WeekKeyOf(w.WeekStart), w.Key, "column %d", i)
	}

	assert.Equal(t, weeks, WeeksInYear(2025))
	assert.Equal(t, "2026-W01", WeeksInYear(2026)[0].Key)
}

func TestWeeksInPeriod(t *testing.T) {
	start := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 19, 0, 0, 0, 0, time.UTC)

	weeks := WeeksInPeriod(start, end)
	require.Len(t, weeks, 3)
	assert.Equal(t, "2025-W10", weeks[0].Key)
	assert.Equal(t, "2025-W12", weeks[2].Key)

	assert.Empty(t, WeeksInPeriod(end, start))
	assert.Len(t, WeeksInPeriod(start, start), 1)
}
