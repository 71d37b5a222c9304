package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used in config files and flags.
const DateLayout = "2006-01-02"

// PricePoint is one daily adjusted close observation.
type PricePoint struct {
	Date     time.Time
	AdjClose float64
}

// DateRange is an inclusive pair of calendar dates. Start <= End is the caller's responsibility.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses two YYYY-MM-DD dates into a UTC DateRange.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse start date: %w", err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse end date: %w", err)
	}
	return DateRange{Start: s, End: e}, nil
}

// LastDays returns the range covering the given number of calendar days up to and including end.
func LastDays(end time.Time, days int) DateRange {
	e := Day(end)
	return DateRange{Start: e.AddDate(0, 0, -days), End: e}
}

// String formats the range as "start..end".
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
