// Package period derives calendar-aligned bucket keys and instant
// ranges in a single fixed civil timezone. All dashboard grouping is
// keyed through this package so results do not depend on the host
// timezone of the process.
package period

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Clock performs all key and range derivation against one named zone
// for the lifetime of the process.
type Clock struct {
	loc *time.Location
}

func New(tzName string) (*Clock, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tzName, err)
	}
	return &Clock{loc: loc}, nil
}

// MustNew is for tests and fixed literals; it panics on a bad zone name.
func MustNew(tzName string) *Clock {
	c, err := New(tzName)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Clock) Location() *time.Location { return c.loc }

// DateKey returns the civil date of t as "YYYY-MM-DD".
func (c *Clock) DateKey(t time.Time) string {
	return t.In(c.loc).Format(dateLayout)
}

// MonthKey returns the civil month of t as "YYYY-MM".
func (c *Clock) MonthKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01")
}

// ISOWeekKey returns the ISO-8601 week of t as "YYYY-Www". Weeks run
// Monday through Sunday; week 1 is the week containing the year's
// first Thursday, so early January can belong to the prior ISO year.
func (c *Clock) ISOWeekKey(t time.Time) string {
	year, week := t.In(c.loc).ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// DayRange returns the UTC instants of local 00:00:00.000 and
// 23:59:59.999 for the civil date containing t. Both bounds are
// inclusive.
func (c *Clock) DayRange(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	return start.UTC(), endOfDay(start).UTC()
}

// WeekRange returns full-day bounds for Monday through Sunday of the
// ISO week containing t.
func (c *Clock) WeekRange(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)

	// Monday=0 .. Sunday=6
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.UTC(), endOfDay(sunday).UTC()
}

// MonthRange returns full-day bounds for the first through last
// calendar day of the civil month containing t.
func (c *Clock) MonthRange(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, c.loc)
	last := first.AddDate(0, 1, -1)
	return first.UTC(), endOfDay(last).UTC()
}

// ParseDateKey parses a "YYYY-MM-DD" key to local midnight of that
// civil date.
func (c *Clock) ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, key, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

func endOfDay(startOfDay time.Time) time.Time {
	return startOfDay.AddDate(0, 0, 1).Add(-time.Millisecond)
}
