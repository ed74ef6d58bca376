// Package capacity holds the pure weekly capacity pipeline: week keys,
// effective capacity, allocation aggregation, utilization classification and
// alert categorization. Nothing here performs I/O and nothing panics on
// malformed input.
package capacity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/domain"
)

// WeeksPerYear is the number of columns a year view carries.
const WeeksPerYear = 52

// WeekColumn is one ISO week of a planning grid.
type WeekColumn struct {
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
}

// WeekKeyOf returns the ISO week key of the calendar date of t.
// The date is read in t's own location, so a given calendar day always maps to
// the same key whatever the zone.
func WeekKeyOf(t time.Time) string {
	y, m, d := t.Date()
	year, week := time.Date(y, m, d, 12, 0, 0, 0, time.UTC).ISOWeek()

	return formatWeekKey(year, week)
}

func formatWeekKey(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseWeekKey splits a "YYYY-WNN" key.
func ParseWeekKey(key string) (year, week int, err error) {
	if !domain.WeekKeyPattern.MatchString(key) {
		return 0, 0, &apperrors.WeekKeyError{Key: key}
	}

	year, err = strconv.Atoi(key[:4])
	if err != nil {
		return 0, 0, &apperrors.WeekKeyError{Key: key}
	}

	week, err = strconv.Atoi(key[6:])
	if err != nil || week < 1 || week > isoWeeksIn(year) {
		return 0, 0, &apperrors.WeekKeyError{Key: key}
	}

	return year, week, nil
}

// WeekStart returns the Monday (UTC midnight) of the week named by key.
func WeekStart(key string) (time.Time, error) {
	year, week, err := ParseWeekKey(key)
	if err != nil {
		return time.Time{}, err
	}

	return firstISOMonday(year).AddDate(0, 0, (week-1)*7), nil
}

// ColumnOf returns the column of a single week key.
func ColumnOf(key string) (WeekColumn, error) {
	start, err := WeekStart(key)
	if err != nil {
		return WeekColumn{}, err
	}

	return newWeekColumn(start), nil
}

// WeeksInYear returns the 52 week columns of ISO year. The result is built on
// every call.
func WeeksInYear(year int) []WeekColumn {
	start := firstISOMonday(year)
	weeks := make([]WeekColumn, 0, WeeksPerYear)

	for i := 0; i < WeeksPerYear; i++ {
		weeks = append(weeks, newWeekColumn(start.AddDate(0, 0, i*7)))
	}

	return weeks
}

// WeeksInPeriod returns every ISO week that overlaps the inclusive date range
// [start, end]. An inverted range yields no weeks.
func WeeksInPeriod(start, end time.Time) []WeekColumn {
	from := mondayOf(start)
	to := dateOnly(end)

	if to.Before(dateOnly(start)) {
		return nil
	}

	var weeks []WeekColumn
	for monday := from; !monday.After(to); monday = monday.AddDate(0, 0, 7) {
		weeks = append(weeks, newWeekColumn(monday))
	}

	return weeks
}

func newWeekColumn(monday time.Time) WeekColumn {
	year, week := monday.ISOWeek()
	sunday := monday.AddDate(0, 0, 6)

	return WeekColumn{
		Key:       formatWeekKey(year, week),
		Label:     fmt.Sprintf("W%02d · %s", week, monday.Format("Jan 2")),
		WeekStart: monday,
		WeekEnd:   sunday,
	}
}

// firstISOMonday is the Monday of ISO week 1, the week holding January 4th.
func firstISOMonday(year int) time.Time {
	return mondayOf(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC))
}

func mondayOf(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7

	return d.AddDate(0, 0, -offset)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isoWeeksIn(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}
