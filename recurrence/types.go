package recurrence

import (
	"sort"
	"strings"
	"time"

	"github.com/kkoyama/libroutine/period"
)

// Rule describes which calendar dates a routine is due. The set of variants
// is closed: Daily, Weekly, MonthlyByDay, MonthlyByWeekday and Custom.
// Rules are immutable value types; evaluation is pure.
type Rule interface {
	isRule()
}

// Daily fires every civil day.
type Daily struct{}

// Weekly fires on the weekdays in Days. An empty set is valid input and
// simply never fires; callers must not treat it as an error.
type Weekly struct {
	Days WeekdaySet
}

// MonthlyByDay fires when the civil day-of-month equals
// min(Day, days in that month), so Day=31 fires on Feb 28 (29 in leap
// years). Clamping is user-visible policy, not a bug path.
type MonthlyByDay struct {
	Day int // 1..31
}

// LastOccurrence selects the final occurrence of a weekday in the month.
const LastOccurrence = -1

// MonthlyByWeekday fires on the nth occurrence of Weekday in the month.
// Occurrence is 1..4, or LastOccurrence for the month's final one,
// resolved by scanning backward from the month's last day.
type MonthlyByWeekday struct {
	Occurrence int
	Weekday    time.Weekday
}

// Custom fires every IntervalDays days counted from StartDate. Dates before
// StartDate are not scheduled.
type Custom struct {
	IntervalDays int // positive
	StartDate    period.CivilDate
}

func (Daily) isRule()            {}
func (Weekly) isRule()           {}
func (MonthlyByDay) isRule()     {}
func (MonthlyByWeekday) isRule() {}
func (Custom) isRule()           {}

// WeekdaySet is a set of weekdays stored as a 7-bit bitset keyed by
// time.Weekday (Sunday = bit 0). Membership checks are constant time.
type WeekdaySet uint8

// NewWeekdaySet builds a set from the given weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// DecodeWeekdays builds a set from weekday indexes 0..6 (0 = Sunday), the
// form the persistence layer hands over after decoding its stored list.
// Out-of-range values are ignored.
func DecodeWeekdays(indexes []int) WeekdaySet {
	var s WeekdaySet
	for _, i := range indexes {
		if i >= 0 && i <= 6 {
			s |= 1 << uint(i)
		}
	}
	return s
}

// Contains reports whether the weekday is in the set.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether no weekday is set.
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Count returns the number of weekdays in the set.
func (s WeekdaySet) Count() int {
	n := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			n++
		}
	}
	return n
}

// Weekdays returns the members in Sunday-first order.
func (s WeekdaySet) Weekdays() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// Ints returns the members as indexes 0..6, sorted ascending. This is the
// encode half of the persistence contract mirrored by DecodeWeekdays.
func (s WeekdaySet) Ints() []int {
	var out []int
	for _, d := range s.Weekdays() {
		out = append(out, int(d))
	}
	sort.Ints(out)
	return out
}

// String lists the members for debugging, e.g. "Mon,Wed,Fri".
func (s WeekdaySet) String() string {
	if s.IsEmpty() {
		return "none"
	}
	var names []string
	for _, d := range s.Weekdays() {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ",")
}
