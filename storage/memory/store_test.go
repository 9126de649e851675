package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkoyama/libroutine/catchup"
	"github.com/kkoyama/libroutine/period"
	"github.com/kkoyama/libroutine/recurrence"
	"github.com/kkoyama/libroutine/routine"
	"github.com/kkoyama/libroutine/storage"
)

func testRoutine() *routine.Routine {
	return &routine.Routine{
		UserID:   "alice",
		Name:     "Morning run",
		Timezone: "Asia/Tokyo",
		Rule:     recurrence.Daily{},
		Goal: routine.Goal{
			Kind:         routine.GoalFrequencyBased,
			TargetCount:  7,
			TargetPeriod: period.UnitWeekly,
		},
	}
}

func requireStorageError(t *testing.T, err error, errType storage.ErrorType) {
	t.Helper()
	var serr *storage.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, errType, serr.Type)
}

func TestCreateAndGetRoutine(t *testing.T) {
	ctx := context.Background()
	store := New()

	rt := testRoutine()
	require.NoError(t, store.CreateRoutine(ctx, rt))
	require.NotEmpty(t, rt.ID)
	_, err := uuid.Parse(rt.ID)
	assert.NoError(t, err)
	assert.False(t, rt.Created.IsZero())

	got, err := store.GetRoutine(ctx, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, rt.Name, got.Name)
	assert.Equal(t, rt.Goal, got.Goal)

	_, err = store.GetRoutine(ctx, "missing")
	requireStorageError(t, err, storage.ErrNotFound)
}

func TestCreateRoutineValidation(t *testing.T) {
	ctx := context.Background()
	store := New()

	err := store.CreateRoutine(ctx, &routine.Routine{UserID: "alice"})
	requireStorageError(t, err, storage.ErrInvalidInput)

	rt := testRoutine()
	require.NoError(t, store.CreateRoutine(ctx, rt))
	dup := testRoutine()
	dup.ID = rt.ID
	requireStorageError(t, store.CreateRoutine(ctx, dup), storage.ErrAlreadyExists)
}

func TestListRoutinesByUser(t *testing.T) {
	ctx := context.Background()
	store := New()

	mine := testRoutine()
	require.NoError(t, store.CreateRoutine(ctx, mine))
	other := testRoutine()
	other.UserID = "bob"
	require.NoError(t, store.CreateRoutine(ctx, other))

	list, err := store.ListRoutines(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
}

func TestLogAndListExecutions(t *testing.T) {
	ctx := context.Background()
	store := New()

	rt := testRoutine()
	require.NoError(t, store.CreateRoutine(ctx, rt))

	base := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		err := store.LogExecution(ctx, &routine.Execution{
			RoutineID:  rt.ID,
			ExecutedAt: base.AddDate(0, 0, i),
			Completed:  true,
		})
		require.NoError(t, err)
	}

	// Window covering the middle two days only.
	execs, err := store.ListExecutions(ctx, rt.ID,
		base.AddDate(0, 0, 1), base.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Len(t, execs, 2)
	for _, ex := range execs {
		assert.NotEmpty(t, ex.ID)
	}

	err = store.LogExecution(ctx, &routine.Execution{RoutineID: "missing", ExecutedAt: base})
	requireStorageError(t, err, storage.ErrNotFound)

	err = store.LogExecution(ctx, &routine.Execution{})
	requireStorageError(t, err, storage.ErrInvalidInput)
}

func TestSaveAndLatestCatchupPlan(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, time.June, 5, 9, 0, 0, 0, time.UTC)
	store := New(WithClock(func() time.Time { return fixed }))

	analysis := catchup.Analysis{
		RoutineID:            "r1",
		PeriodStart:          period.NewCivilDate(2025, time.June, 2),
		PeriodEnd:            period.NewCivilDate(2025, time.June, 8),
		CurrentProgress:      1,
		TargetCount:          7,
		RemainingTarget:      6,
		RemainingDays:        4,
		SuggestedDailyTarget: 2,
		NeedsCatchup:         true,
	}

	first := storage.NewCatchupPlan(analysis)
	require.NoError(t, store.SaveCatchupPlan(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, fixed, first.CreatedAt)
	assert.Equal(t, "2025-06-02", first.PeriodStart)
	assert.Equal(t, "2025-06-08", first.PeriodEnd)

	analysis.CurrentProgress = 3
	analysis.RemainingTarget = 4
	second := storage.NewCatchupPlan(analysis)
	require.NoError(t, store.SaveCatchupPlan(ctx, second))

	latest, err := store.LatestCatchupPlan(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 3, latest.CurrentProgress)

	_, err = store.LatestCatchupPlan(ctx, "missing")
	requireStorageError(t, err, storage.ErrNotFound)

	requireStorageError(t, store.SaveCatchupPlan(ctx, &storage.CatchupPlan{}), storage.ErrInvalidInput)
}
