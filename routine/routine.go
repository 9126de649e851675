// Package routine defines the value types the engine consumes: routines
// with their recurrence rule and goal, and the execution records logged
// against them. All of them are transient values reconstructed from
// caller-supplied input on every call; the engine never mutates them.
package routine

import (
	"time"

	"github.com/google/uuid"

	"github.com/kkoyama/libroutine/period"
	"github.com/kkoyama/libroutine/recurrence"
)

// GoalKind discriminates how a routine's progress is measured.
type GoalKind string

const (
	// GoalScheduleBased routines are due exactly when the recurrence rule
	// fires; there is no period quota.
	GoalScheduleBased GoalKind = "schedule"
	// GoalFrequencyBased routines carry a count quota per rolling period,
	// independent of which specific days the rule fires on.
	GoalFrequencyBased GoalKind = "frequency"
)

// Goal describes what "keeping up" means for a routine.
type Goal struct {
	Kind GoalKind
	// TargetCount and TargetPeriod are meaningful only for frequency-based
	// goals. TargetCount is positive; validation happens upstream at
	// construction/persistence time.
	TargetCount  int
	TargetPeriod period.Unit
}

// Routine is a recurring task with a recurrence rule and a goal.
type Routine struct {
	ID       string
	UserID   string
	Name     string
	Timezone string // IANA zone name; empty means period.DefaultTimezone
	Rule     recurrence.Rule
	Goal     Goal
	Created  time.Time
	Modified time.Time
}

// Execution is one logged run of a routine. Only completed executions
// count toward period progress.
type Execution struct {
	ID         string
	RoutineID  string
	ExecutedAt time.Time
	Completed  bool
}

// NewID mints a routine/execution identifier.
func NewID() string {
	return uuid.NewString()
}
