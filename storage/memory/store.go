// memory based implementation for testing purposes
package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kkoyama/libroutine/routine"
	"github.com/kkoyama/libroutine/storage"
)

// Store implements storage.Storage using in-memory maps.
type Store struct {
	mu         sync.RWMutex
	routines   map[string]*routine.Routine
	executions map[string][]routine.Execution // key: routineID, append order
	plans      map[string][]*storage.CatchupPlan
	logger     *slog.Logger

	// now is swappable so tests can pin CreatedAt.
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger; the store logs at debug level only.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		routines:   make(map[string]*routine.Routine),
		executions: make(map[string][]routine.Execution),
		plans:      make(map[string][]*storage.CatchupPlan),
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) GetRoutine(_ context.Context, routineID string) (*routine.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, ok := s.routines[routineID]
	if !ok {
		return nil, &storage.Error{
			Type:    storage.ErrNotFound,
			Message: "routine not found",
		}
	}
	cp := *rt
	return &cp, nil
}

func (s *Store) ListRoutines(_ context.Context, userID string) ([]routine.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []routine.Routine
	for _, rt := range s.routines {
		if rt.UserID == userID {
			out = append(out, *rt)
		}
	}
	return out, nil
}

func (s *Store) CreateRoutine(_ context.Context, rt *routine.Routine) error {
	if rt == nil || rt.Name == "" {
		return &storage.Error{
			Type:    storage.ErrInvalidInput,
			Message: "routine must have a name",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rt.ID == "" {
		rt.ID = uuid.NewString()
	} else if _, exists := s.routines[rt.ID]; exists {
		return &storage.Error{
			Type:    storage.ErrAlreadyExists,
			Message: "routine already exists",
		}
	}
	if rt.Created.IsZero() {
		rt.Created = s.now()
	}
	rt.Modified = s.now()

	cp := *rt
	s.routines[rt.ID] = &cp
	s.logger.Debug("routine created", "id", rt.ID, "user", rt.UserID)
	return nil
}

func (s *Store) ListExecutions(_ context.Context, routineID string, from, to time.Time) ([]routine.Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []routine.Execution
	for _, ex := range s.executions[routineID] {
		if ex.ExecutedAt.Before(from) || ex.ExecutedAt.After(to) {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

func (s *Store) LogExecution(_ context.Context, ex *routine.Execution) error {
	if ex == nil || ex.RoutineID == "" {
		return &storage.Error{
			Type:    storage.ErrInvalidInput,
			Message: "execution must reference a routine",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routines[ex.RoutineID]; !ok {
		return &storage.Error{
			Type:    storage.ErrNotFound,
			Message: "routine not found",
		}
	}
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	s.executions[ex.RoutineID] = append(s.executions[ex.RoutineID], *ex)
	s.logger.Debug("execution logged",
		"routine", ex.RoutineID, "at", ex.ExecutedAt, "completed", ex.Completed)
	return nil
}

func (s *Store) SaveCatchupPlan(_ context.Context, plan *storage.CatchupPlan) error {
	if plan == nil || plan.RoutineID == "" {
		return &storage.Error{
			Type:    storage.ErrInvalidInput,
			Message: "plan must reference a routine",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = s.now()
	}
	cp := *plan
	s.plans[plan.RoutineID] = append(s.plans[plan.RoutineID], &cp)
	s.logger.Debug("catchup plan saved",
		"routine", plan.RoutineID, "remaining", plan.RemainingTarget)
	return nil
}

func (s *Store) LatestCatchupPlan(_ context.Context, routineID string) (*storage.CatchupPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := s.plans[routineID]
	if len(plans) == 0 {
		return nil, &storage.Error{
			Type:    storage.ErrNotFound,
			Message: "no catchup plan for routine",
		}
	}
	cp := *plans[len(plans)-1]
	return &cp, nil
}
