package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/kkoyama/libroutine/period"
)

// ErrUnsupportedRule indicates a rule (or RRULE) has no representation on
// the other side of the conversion.
var ErrUnsupportedRule = errors.New("recurrence: rule not representable")

// rruleWeekdays maps time.Weekday (Sunday = 0) to rrule-go weekday
// constants (Monday = 0, dateutil convention).
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

func toTimeWeekday(w rrule.Weekday) time.Weekday {
	return time.Weekday((w.Day() + 1) % 7)
}

// RuleToRRule converts a rule into an RFC 5545 RRULE anchored at dtstart.
//
// The mapping is best-effort for calendar interop: MonthlyByDay's month-end
// clamping has no RRULE equivalent, so BYMONTHDAY carries the raw day and
// short months simply skip. An empty Weekly set has no valid BYDAY encoding
// and yields ErrUnsupportedRule.
func RuleToRRule(r Rule, dtstart time.Time) (*rrule.RRule, error) {
	opt := rrule.ROption{Dtstart: dtstart}

	switch rule := r.(type) {
	case Daily:
		opt.Freq = rrule.DAILY
	case Weekly:
		if rule.Days.IsEmpty() {
			return nil, fmt.Errorf("%w: weekly rule with no weekdays", ErrUnsupportedRule)
		}
		opt.Freq = rrule.WEEKLY
		for _, d := range rule.Days.Weekdays() {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
		}
	case MonthlyByDay:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{rule.Day}
	case MonthlyByWeekday:
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[rule.Weekday].Nth(rule.Occurrence)}
	case Custom:
		opt.Freq = rrule.DAILY
		opt.Interval = rule.IntervalDays
		loc := dtstart.Location()
		opt.Dtstart = period.StartOfDay(rule.StartDate, loc)
	default:
		panic(fmt.Sprintf("recurrence: unhandled rule type %T", r))
	}

	rr, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("building RRULE: %w", err)
	}
	return rr, nil
}

// RuleFromRRule parses an RRULE value (without the "RRULE:" prefix) back
// into a rule. Only the shapes RuleToRRule produces round-trip; anything
// else yields ErrUnsupportedRule. dtstart anchors interval rules the way
// the calendar object's DTSTART would.
func RuleFromRRule(value string, dtstart time.Time, loc *time.Location) (Rule, error) {
	rr, err := rrule.StrToRRule(value)
	if err != nil {
		return nil, fmt.Errorf("parsing RRULE %q: %w", value, err)
	}
	opt := rr.OrigOptions

	switch opt.Freq {
	case rrule.DAILY:
		if opt.Interval > 1 {
			return Custom{
				IntervalDays: opt.Interval,
				StartDate:    period.CivilDateOf(dtstart, loc),
			}, nil
		}
		return Daily{}, nil
	case rrule.WEEKLY:
		if len(opt.Byweekday) == 0 {
			return nil, fmt.Errorf("%w: WEEKLY without BYDAY", ErrUnsupportedRule)
		}
		var days []time.Weekday
		for _, w := range opt.Byweekday {
			days = append(days, toTimeWeekday(w))
		}
		return Weekly{Days: NewWeekdaySet(days...)}, nil
	case rrule.MONTHLY:
		if len(opt.Bymonthday) == 1 && len(opt.Byweekday) == 0 {
			return MonthlyByDay{Day: opt.Bymonthday[0]}, nil
		}
		if len(opt.Byweekday) == 1 && len(opt.Bymonthday) == 0 {
			w := opt.Byweekday[0]
			if w.N() == 0 {
				return nil, fmt.Errorf("%w: MONTHLY BYDAY without ordinal", ErrUnsupportedRule)
			}
			return MonthlyByWeekday{Occurrence: w.N(), Weekday: toTimeWeekday(w)}, nil
		}
		return nil, fmt.Errorf("%w: MONTHLY with %d BYMONTHDAY and %d BYDAY values",
			ErrUnsupportedRule, len(opt.Bymonthday), len(opt.Byweekday))
	default:
		return nil, fmt.Errorf("%w: FREQ=%v", ErrUnsupportedRule, opt.Freq)
	}
}

// ToComponent renders a routine's schedule as an iCalendar VTODO carrying
// the rule as an RRULE property.
func ToComponent(uid, summary string, r Rule, dtstart time.Time) (*ical.Component, error) {
	rr, err := RuleToRRule(r, dtstart)
	if err != nil {
		return nil, err
	}

	comp := ical.NewComponent(ical.CompToDo)
	comp.Props.SetText(ical.PropUID, uid)
	comp.Props.SetText(ical.PropSummary, summary)
	comp.Props.SetDateTime(ical.PropDateTimeStart, dtstart)

	// SetText would escape the semicolons, so set the raw value.
	prop := ical.NewProp(ical.PropRecurrenceRule)
	prop.Value = rr.OrigOptions.RRuleString()
	comp.Props.Set(prop)

	return comp, nil
}

// RuleFromComponent reads the RRULE off a component produced by
// ToComponent (or any calendar client emitting the supported shapes).
func RuleFromComponent(comp *ical.Component, loc *time.Location) (Rule, error) {
	rruleProp := comp.Props.Get(ical.PropRecurrenceRule)
	if rruleProp == nil || rruleProp.Value == "" {
		return nil, fmt.Errorf("%w: component has no RRULE", ErrUnsupportedRule)
	}
	dtstart, err := comp.Props.DateTime(ical.PropDateTimeStart, loc)
	if err != nil {
		dtstart = time.Time{}
	}
	return RuleFromRRule(rruleProp.Value, dtstart, loc)
}

// NewCalendar wraps components in a VCALENDAR envelope suitable for
// encoding with go-ical.
func NewCalendar(comps ...*ical.Component) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, "-//libroutine//NONSGML v1.0//EN")
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Children = append(cal.Children, comps...)
	return cal
}
