// Package storage specifies the persistence collaborator's boundary: the
// engine reads routines and execution records through it and hands computed
// catch-up analyses back for optional snapshotting. The engine itself never
// touches storage; implementations live outside this module (the memory
// subpackage is a reference implementation for tests and examples).
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/kkoyama/libroutine/catchup"
	"github.com/kkoyama/libroutine/routine"
)

// Error types
type ErrorType string

const (
	ErrNotFound      ErrorType = "not_found"
	ErrAlreadyExists ErrorType = "already_exists"
	ErrInvalidInput  ErrorType = "invalid_input"
)

// Error represents a storage-related error. Implementations should use
// these error types so callers can match on them.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// CatchupPlan is a stored snapshot of a catchup.Analysis. Identity and the
// snapshot timestamp are assigned by the store, not by the engine.
type CatchupPlan struct {
	ID        string
	RoutineID string

	PeriodStart string // ISO date, YYYY-MM-DD
	PeriodEnd   string

	CurrentProgress      int
	TargetCount          int
	RemainingTarget      int
	RemainingDays        int
	SuggestedDailyTarget int
	NeedsCatchup         bool

	CreatedAt time.Time
}

// NewCatchupPlan copies an analysis into a plan record. ID and CreatedAt
// are left zero for the store to fill.
func NewCatchupPlan(a catchup.Analysis) *CatchupPlan {
	return &CatchupPlan{
		RoutineID:            a.RoutineID,
		PeriodStart:          a.PeriodStart.String(),
		PeriodEnd:            a.PeriodEnd.String(),
		CurrentProgress:      a.CurrentProgress,
		TargetCount:          a.TargetCount,
		RemainingTarget:      a.RemainingTarget,
		RemainingDays:        a.RemainingDays,
		SuggestedDailyTarget: a.SuggestedDailyTarget,
		NeedsCatchup:         a.NeedsCatchup,
	}
}

// Storage connects a backend store with this engine. Please use the error
// types provided. Weekly rule weekday sets are expected to arrive already
// decoded (recurrence.DecodeWeekdays covers the stored-list form).
type Storage interface {
	// GetRoutine retrieves one routine by id.
	GetRoutine(ctx context.Context, routineID string) (*routine.Routine, error)
	// ListRoutines retrieves all routines of a user.
	ListRoutines(ctx context.Context, userID string) ([]routine.Routine, error)
	// CreateRoutine stores a new routine. Implementations assign the ID
	// when it is empty.
	CreateRoutine(ctx context.Context, rt *routine.Routine) error
	// ListExecutions retrieves a routine's executions with ExecutedAt in
	// [from, to].
	ListExecutions(ctx context.Context, routineID string, from, to time.Time) ([]routine.Execution, error)
	// LogExecution appends an execution record. Implementations assign the
	// ID when it is empty.
	LogExecution(ctx context.Context, ex *routine.Execution) error
	// SaveCatchupPlan snapshots a computed plan, assigning ID and CreatedAt.
	SaveCatchupPlan(ctx context.Context, plan *CatchupPlan) error
	// LatestCatchupPlan retrieves the most recently saved plan for a routine.
	LatestCatchupPlan(ctx context.Context, routineID string) (*CatchupPlan, error)
}
