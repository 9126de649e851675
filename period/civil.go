package period

import (
	"fmt"
	"time"
)

// CivilDate is a year/month/day triple with no time-of-day or zone attached.
// Two CivilDates compare equal iff they name the same calendar day.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCivilDate builds a CivilDate. Out-of-range components are normalized
// the same way time.Date normalizes them (Feb 30 becomes Mar 1/2).
func NewCivilDate(year int, month time.Month, day int) CivilDate {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// CivilDateOf projects an absolute instant into the zone's wall-clock date.
func CivilDateOf(t time.Time, loc *time.Location) CivilDate {
	local := t.In(loc)
	return CivilDate{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// Weekday returns the day of week (time.Sunday = 0).
func (d CivilDate) Weekday() time.Weekday {
	return d.utcMidnight().Weekday()
}

// AddDays returns the date n civil days later (earlier for negative n).
func (d CivilDate) AddDays(n int) CivilDate {
	t := d.utcMidnight().AddDate(0, 0, n)
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Before reports whether d names an earlier calendar day than other.
func (d CivilDate) Before(other CivilDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d names a later calendar day than other.
func (d CivilDate) After(other CivilDate) bool {
	return other.Before(d)
}

// Equal reports whether both name the same calendar day.
func (d CivilDate) Equal(other CivilDate) bool {
	return d == other
}

// String formats the date as ISO 8601 (YYYY-MM-DD).
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CivilDate) utcMidnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the number of civil days from a to b. Negative when b
// is before a.
func DaysBetween(a, b CivilDate) int {
	return int(b.utcMidnight().Sub(a.utcMidnight()) / (24 * time.Hour))
}

// StartOfWeek returns the Monday on or before the given date (ISO week
// start). Pure civil math; no timezone re-projection.
func StartOfWeek(d CivilDate) CivilDate {
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// StartOfMonth returns day 1 of the date's year/month.
func StartOfMonth(d CivilDate) CivilDate {
	return CivilDate{Year: d.Year, Month: d.Month, Day: 1}
}

// EndOfMonth returns the last calendar day of the date's year/month.
func EndOfMonth(d CivilDate) CivilDate {
	return CivilDate{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}
