// Package recurrence evaluates declarative recurrence rules against civil
// dates. Evaluation is pure and deterministic: the same (rule, date) pair
// always yields the same answer, so callers may share rules across
// goroutines freely.
package recurrence

import (
	"fmt"
	"time"

	"github.com/samber/mo"

	"github.com/kkoyama/libroutine/period"
)

// DefaultScanDays bounds the forward search in NextScheduledDate. Every
// variant fires at least once per 31 days when it fires at all, so 30 days
// is enough for callers that only care about "the upcoming occurrence".
const DefaultScanDays = 30

// IsScheduled reports whether the rule fires on the given civil date.
//
// Rule parameters are assumed already validated upstream; out-of-range
// day-of-month values are clamped to the month's length rather than
// rejected, since clamping is the intended month-end behavior.
func IsScheduled(r Rule, d period.CivilDate) bool {
	switch rule := r.(type) {
	case Daily:
		return true
	case Weekly:
		return rule.Days.Contains(d.Weekday())
	case MonthlyByDay:
		day := rule.Day
		if last := period.DaysInMonth(d.Year, d.Month); day > last {
			day = last
		}
		return d.Day == day
	case MonthlyByWeekday:
		if rule.Occurrence == LastOccurrence {
			return lastWeekdayOfMonth(d.Year, d.Month, rule.Weekday) == d
		}
		if d.Weekday() != rule.Weekday {
			return false
		}
		// Calendar-row index of the date: rows are Sunday-aligned, so the
		// weekday of the 1st shifts everything right.
		firstWeekday := int(period.CivilDate{Year: d.Year, Month: d.Month, Day: 1}.Weekday())
		weekIndex := (d.Day + firstWeekday + 6) / 7
		return weekIndex == rule.Occurrence
	case Custom:
		if d.Before(rule.StartDate) {
			return false
		}
		return period.DaysBetween(rule.StartDate, d)%rule.IntervalDays == 0
	default:
		panic(fmt.Sprintf("recurrence: unhandled rule type %T", r))
	}
}

// lastWeekdayOfMonth scans backward from the month's last day; the target
// weekday is always within the final 7 days.
func lastWeekdayOfMonth(year int, month time.Month, wd time.Weekday) period.CivilDate {
	d := period.CivilDate{Year: year, Month: month, Day: period.DaysInMonth(year, month)}
	for i := 0; i < 6; i++ {
		if d.Weekday() == wd {
			break
		}
		d = d.AddDays(-1)
	}
	return d
}

// NextScheduledDate returns the first date on or after from for which the
// rule fires, scanning at most maxDays days. A bounded linear scan is
// deliberate: each variant is cheap to evaluate per day, and closed-form
// next-date formulas multiply the month-end edge cases for no measurable
// gain at this bound.
func NextScheduledDate(r Rule, from period.CivilDate, maxDays int) mo.Option[period.CivilDate] {
	d := from
	for i := 0; i < maxDays; i++ {
		if IsScheduled(r, d) {
			return mo.Some(d)
		}
		d = d.AddDays(1)
	}
	return mo.None[period.CivilDate]()
}

// IsScheduledOn projects the instant into the zone's civil date and
// evaluates the rule for that date.
func IsScheduledOn(r Rule, now time.Time, loc *time.Location) bool {
	return IsScheduled(r, period.CivilDateOf(now, loc))
}
