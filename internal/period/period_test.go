package period

import (
	"testing"
	"time"
)

func athens(t *testing.T) *Clock {
	t.Helper()
	c, err := New("Europe/Athens")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func TestDateKeyUsesCivilZone(t *testing.T) {
	c := athens(t)

	// 22:30 UTC on March 1 is already March 2 in Athens (UTC+2).
	instant := time.Date(2025, time.March, 1, 22, 30, 0, 0, time.UTC)
	if got := c.DateKey(instant); got != "2025-03-02" {
		t.Fatalf("DateKey = %q, want 2025-03-02", got)
	}

	if got := c.MonthKey(instant); got != "2025-03" {
		t.Fatalf("MonthKey = %q, want 2025-03", got)
	}
}

func TestDateKeyParseRoundTrip(t *testing.T) {
	c := athens(t)

	instants := []time.Time{
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 31, 21, 59, 59, 0, time.UTC),
	}
	for _, instant := range instants {
		key := c.DateKey(instant)
		parsed, err := c.ParseDateKey(key)
		if err != nil {
			t.Fatalf("ParseDateKey(%q) error: %v", key, err)
		}
		if got := c.DateKey(parsed); got != key {
			t.Fatalf("round trip changed key: %q -> %q", key, got)
		}
	}
}

func TestISOWeekKey(t *testing.T) {
	c := athens(t)

	cases := []struct {
		date string
		want string
	}{
		// 2024-01-01 is a Monday, so it opens week 1 of 2024.
		{"2024-01-01", "2024-W01"},
		// 2023-01-01 is a Sunday and belongs to the prior ISO year.
		{"2023-01-01", "2022-W52"},
		// 2021-01-01 is a Friday; week 1 starts on Jan 4.
		{"2021-01-01", "2020-W53"},
		{"2025-07-14", "2025-W29"},
	}
	for _, tc := range cases {
		instant, err := c.ParseDateKey(tc.date)
		if err != nil {
			t.Fatalf("ParseDateKey(%q) error: %v", tc.date, err)
		}
		if got := c.ISOWeekKey(instant); got != tc.want {
			t.Fatalf("ISOWeekKey(%s) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestDayRangeBounds(t *testing.T) {
	c := athens(t)

	instant := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
	start, end := c.DayRange(instant)

	// Athens is UTC+2 in March (before the DST switch late in the month).
	wantStart := time.Date(2025, time.March, 1, 22, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("day start = %v, want %v", start, wantStart)
	}
	if want := wantStart.AddDate(0, 0, 1).Add(-time.Millisecond); !end.Equal(want) {
		t.Fatalf("day end = %v, want %v", end, want)
	}
	if !start.Before(instant) || !end.After(instant) {
		t.Fatalf("instant %v outside its own day range [%v, %v]", instant, start, end)
	}
}

func TestWeekRangeCoversMondayToSunday(t *testing.T) {
	c := athens(t)

	// 2025-07-16 is a Wednesday; its ISO week is Mon 14th to Sun 20th.
	instant, _ := c.ParseDateKey("2025-07-16")
	start, end := c.WeekRange(instant)

	if got := c.DateKey(start); got != "2025-07-14" {
		t.Fatalf("week start date = %q, want 2025-07-14", got)
	}
	if got := c.DateKey(end); got != "2025-07-20" {
		t.Fatalf("week end date = %q, want 2025-07-20", got)
	}
	if got := c.ISOWeekKey(start); got != c.ISOWeekKey(end) {
		t.Fatalf("range spans two ISO weeks: %q vs %q", got, c.ISOWeekKey(end))
	}
}

func TestWeekRangeOnSunday(t *testing.T) {
	c := athens(t)

	// A Sunday must not roll forward into the next week.
	instant, _ := c.ParseDateKey("2025-07-20")
	start, _ := c.WeekRange(instant)
	if got := c.DateKey(start); got != "2025-07-14" {
		t.Fatalf("week start date = %q, want 2025-07-14", got)
	}
}

func TestMonthRangeBounds(t *testing.T) {
	c := athens(t)

	instant, _ := c.ParseDateKey("2024-02-10")
	start, end := c.MonthRange(instant)

	if got := c.DateKey(start); got != "2024-02-01" {
		t.Fatalf("month start date = %q, want 2024-02-01", got)
	}
	// 2024 is a leap year.
	if got := c.DateKey(end); got != "2024-02-29" {
		t.Fatalf("month end date = %q, want 2024-02-29", got)
	}
}

func TestDateKeyMonotonicWithinDay(t *testing.T) {
	c := athens(t)

	start, _ := c.ParseDateKey("2025-05-05")
	key := c.DateKey(start)
	for i := 0; i < 24; i++ {
		instant := start.Add(time.Duration(i) * time.Hour)
		got := c.DateKey(instant)
		if got < key {
			t.Fatalf("DateKey decreased within the day: %q after %q", got, key)
		}
		key = got
	}
}

func TestNewRejectsUnknownZone(t *testing.T) {
	if _, err := New("Mars/Olympus_Mons"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
