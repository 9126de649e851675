// Package catchup computes progress against a routine's period quota and
// the daily pace that closes the gap before the period ends. Like the
// recurrence evaluator it is pure: "now" and the execution history are
// explicit parameters, never read from the wall clock.
package catchup

import (
	"math"
	"time"

	"github.com/samber/mo"

	"github.com/kkoyama/libroutine/period"
	"github.com/kkoyama/libroutine/routine"
)

// Analysis is the planner's result for one routine and one period. It is a
// plain computation result; persisting it as a plan snapshot is the storage
// layer's business.
type Analysis struct {
	RoutineID   string
	PeriodStart period.CivilDate
	PeriodEnd   period.CivilDate // inclusive last day of the period

	CurrentProgress int
	TargetCount     int
	RemainingTarget int // max(TargetCount - CurrentProgress, 0)
	RemainingDays   int // always >= 1, even on the period's last instant

	SuggestedDailyTarget int
	NeedsCatchup         bool
}

// ProgressRate returns the completed fraction of the target, capped at 1.
func (a Analysis) ProgressRate() float64 {
	if a.TargetCount == 0 {
		return 0
	}
	rate := float64(a.CurrentProgress) / float64(a.TargetCount)
	if rate > 1 {
		return 1
	}
	return rate
}

// Planner computes catch-up analyses under a fixed policy config.
type Planner struct {
	cfg PlannerConfig
}

// NewPlanner returns a planner with the stock policy.
func NewPlanner() *Planner {
	return NewPlannerWithConfig(DefaultPlannerConfig)
}

// NewPlannerWithConfig returns a planner with custom policy knobs.
func NewPlannerWithConfig(cfg PlannerConfig) *Planner {
	return &Planner{cfg: cfg}
}

// Analyze computes the catch-up state of one routine for the period
// containing now, in the given zone.
//
// Catch-up is only meaningful for weekly or monthly frequency quotas:
// schedule-based goals and daily-period quotas return None, which is a
// valid "not applicable" result, not an error.
func (p *Planner) Analyze(rt routine.Routine, executions []routine.Execution, now time.Time, loc *time.Location) mo.Option[Analysis] {
	goal := rt.Goal
	if goal.Kind != routine.GoalFrequencyBased {
		return mo.None[Analysis]()
	}
	if goal.TargetPeriod != period.UnitWeekly && goal.TargetPeriod != period.UnitMonthly {
		return mo.None[Analysis]()
	}

	today := period.CivilDateOf(now, loc)

	var periodStart, periodEnd period.CivilDate
	var paceDays int
	switch goal.TargetPeriod {
	case period.UnitWeekly:
		periodStart = period.StartOfWeek(today)
		periodEnd = periodStart.AddDays(6)
		paceDays = p.cfg.WeeklyPaceDays
	case period.UnitMonthly:
		periodStart = period.StartOfMonth(today)
		periodEnd = period.EndOfMonth(today)
		paceDays = p.cfg.MonthlyPaceDays
	}

	windowStart := period.StartOfDay(periodStart, loc)
	windowEnd := period.EndOfDay(periodEnd, loc)

	progress := 0
	for _, ex := range executions {
		if !ex.Completed {
			continue
		}
		if ex.ExecutedAt.Before(windowStart) || ex.ExecutedAt.After(windowEnd) {
			continue
		}
		progress++
	}

	remaining := goal.TargetCount - progress
	if remaining < 0 {
		remaining = 0
	}

	// Floor at 1 so the pace division below never divides by zero, even on
	// the period's last instant.
	remainingDays := int(math.Ceil(windowEnd.Sub(now).Hours() / 24))
	if remainingDays < 1 {
		remainingDays = 1
	}

	suggested := 0
	if remaining > 0 {
		suggested = ceilDiv(remaining, remainingDays)
	}

	// Baseline pace uses fixed denominators (7, 30), not the period's real
	// day count.
	normalPace := float64(goal.TargetCount) / float64(paceDays)

	return mo.Some(Analysis{
		RoutineID:            rt.ID,
		PeriodStart:          periodStart,
		PeriodEnd:            periodEnd,
		CurrentProgress:      progress,
		TargetCount:          goal.TargetCount,
		RemainingTarget:      remaining,
		RemainingDays:        remainingDays,
		SuggestedDailyTarget: suggested,
		NeedsCatchup:         suggested > int(math.Ceil(normalPace)),
	})
}

// AnalyzeAll runs Analyze over many routines, resolving each routine's own
// timezone and skipping the not-applicable ones. Routines whose timezone
// the zone database rejects are skipped too; callers that need to surface
// that should call Analyze directly.
func (p *Planner) AnalyzeAll(routines []routine.Routine, executions map[string][]routine.Execution, now time.Time) []Analysis {
	var out []Analysis
	for _, rt := range routines {
		loc, err := period.LoadLocation(rt.Timezone)
		if err != nil {
			continue
		}
		if a, ok := p.Analyze(rt, executions[rt.ID], now, loc).Get(); ok {
			out = append(out, a)
		}
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
