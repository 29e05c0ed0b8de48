package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gym-api/internal/domain"
	"go-gym-api/internal/store"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return NewCatalog(store.NewMemory(), nil, 0, zap.NewNop())
}

// patchSpy records the raw documents handed to Patch so tests can assert on
// the wire shape of partial updates.
type patchSpy struct {
	store.DocumentStore
	patches []store.Document
}

func (s *patchSpy) Patch(ctx context.Context, collection, id string, data store.Document) error {
	s.patches = append(s.patches, data)
	return s.DocumentStore.Patch(ctx, collection, id, data)
}

func mustCreateExercise(t *testing.T, cat *Catalog, name string) string {
	t.Helper()
	id, err := cat.CreateExercise(context.Background(), ExerciseInput{
		Name:         name,
		MuscleGroups: []string{"chest"},
		Difficulty:   "medium",
		Instructions: "do it",
	})
	require.NoError(t, err)
	return id
}

func TestCreateExerciseDefaults(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	id := mustCreateExercise(t, cat, "bench press")
	ex, err := cat.Exercise(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "bench press", ex.Name)
	require.True(t, ex.Active)
	require.Equal(t, domain.DefaultExerciseImageURL, ex.ImageURL)
	require.NotNil(t, ex.Equipment)
	require.Empty(t, ex.Equipment)
}

func TestSearchExercises(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	_, err := cat.CreateExercise(ctx, ExerciseInput{
		Name: "squat", MuscleGroups: []string{"legs", "core"},
		Difficulty: "hard", Instructions: "x", Equipment: []string{"barbell"},
	})
	require.NoError(t, err)
	rowID, err := cat.CreateExercise(ctx, ExerciseInput{
		Name: "row", MuscleGroups: []string{"back"},
		Difficulty: "medium", Instructions: "x", Equipment: []string{"barbell"},
	})
	require.NoError(t, err)

	out, err := cat.SearchExercises(ctx, ExerciseSearch{MuscleGroup: "legs"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "squat", out[0].Name)

	out, err = cat.SearchExercises(ctx, ExerciseSearch{Equipment: "barbell", Difficulty: "medium"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "row", out[0].Name)

	// archived exercises never match
	require.NoError(t, cat.DeleteExercise(ctx, rowID))
	out, err = cat.SearchExercises(ctx, ExerciseSearch{Equipment: "barbell"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "squat", out[0].Name)
}

func TestPatchExercisePartial(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	id := mustCreateExercise(t, cat, "bench press")
	newName := "incline press"
	featured := false
	require.NoError(t, cat.PatchExercise(ctx, id, ExercisePatch{Name: &newName, Featured: &featured}))

	ex, err := cat.Exercise(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "incline press", ex.Name)
	require.Equal(t, "medium", ex.Difficulty)
	require.False(t, ex.Featured)
}

func TestDeleteExerciseSweepsRoutines(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	e1 := mustCreateExercise(t, cat, "e1")
	e2 := mustCreateExercise(t, cat, "e2")

	r1, err := cat.CreateRoutine(ctx, RoutineInput{
		Name: "push day", Level: "medium",
		Exercises: []domain.ExerciseEntry{
			{ExerciseID: e1, Sets: 3, Reps: 10},
			{ExerciseID: e2, Sets: 3, Reps: 8},
			{ExerciseID: e1, Sets: 5, Reps: 5},
		},
	})
	require.NoError(t, err)
	r2, err := cat.CreateRoutine(ctx, RoutineInput{
		Name: "archived day", Level: "easy",
		Exercises: []domain.ExerciseEntry{{ExerciseID: e1, Sets: 2, Reps: 12}},
	})
	require.NoError(t, err)
	require.NoError(t, cat.DeleteRoutine(ctx, r2))

	require.NoError(t, cat.DeleteExercise(ctx, e1))

	_, err = cat.Exercise(ctx, e1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	rt, err := cat.Routine(ctx, r1)
	require.NoError(t, err)
	require.Len(t, rt.Exercises, 1)
	require.Equal(t, e2, rt.Exercises[0].ExerciseID)

	// archived routines are swept too
	require.NoError(t, cat.RestoreRoutine(ctx, r2))
	rt, err = cat.Routine(ctx, r2)
	require.NoError(t, err)
	require.Empty(t, rt.Exercises)
}

func TestHardDeleteExerciseSweepsRoutines(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	e1 := mustCreateExercise(t, cat, "e1")
	r1, err := cat.CreateRoutine(ctx, RoutineInput{
		Name: "leg day", Level: "hard",
		Exercises: []domain.ExerciseEntry{{ExerciseID: e1, Sets: 4, Reps: 6}},
	})
	require.NoError(t, err)

	require.NoError(t, cat.HardDeleteExercise(ctx, e1))

	rt, err := cat.Routine(ctx, r1)
	require.NoError(t, err)
	require.Empty(t, rt.Exercises)
}

func TestRestoreExercise(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	id := mustCreateExercise(t, cat, "bench press")
	require.NoError(t, cat.DeleteExercise(ctx, id))
	require.NoError(t, cat.RestoreExercise(ctx, id))

	ex, err := cat.Exercise(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "bench press", ex.Name)
}

func TestAddRoutineEntry(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	e1 := mustCreateExercise(t, cat, "e1")
	r1, err := cat.CreateRoutine(ctx, RoutineInput{Name: "day", Level: "easy"})
	require.NoError(t, err)

	entry := domain.ExerciseEntry{ExerciseID: e1, Sets: 3, Reps: 10}
	rt, err := cat.AddRoutineEntry(ctx, r1, entry)
	require.NoError(t, err)
	require.Len(t, rt.Exercises, 1)

	// no dedup: same tuple twice yields two entries
	rt, err = cat.AddRoutineEntry(ctx, r1, entry)
	require.NoError(t, err)
	require.Len(t, rt.Exercises, 2)

	_, err = cat.AddRoutineEntry(ctx, r1, domain.ExerciseEntry{ExerciseID: "ghost"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = cat.AddRoutineEntry(ctx, "no-routine", entry)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveRoutineEntry(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	e1 := mustCreateExercise(t, cat, "e1")
	e2 := mustCreateExercise(t, cat, "e2")
	r1, err := cat.CreateRoutine(ctx, RoutineInput{
		Name: "day", Level: "easy",
		Exercises: []domain.ExerciseEntry{
			{ExerciseID: e1, Sets: 3, Reps: 10},
			{ExerciseID: e1, Sets: 5, Reps: 5},
			{ExerciseID: e2, Sets: 3, Reps: 8},
		},
	})
	require.NoError(t, err)

	// drops every entry for the exercise
	rt, err := cat.RemoveRoutineEntry(ctx, r1, e1)
	require.NoError(t, err)
	require.Len(t, rt.Exercises, 1)
	require.Equal(t, e2, rt.Exercises[0].ExerciseID)

	_, err = cat.RemoveRoutineEntry(ctx, r1, e1)
	require.ErrorIs(t, err, domain.ErrRoutineEntryNotFound)

	_, err = cat.RemoveRoutineEntry(ctx, "no-routine", e1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryWritesCarryWireFieldNames(t *testing.T) {
	ctx := context.Background()
	spy := &patchSpy{DocumentStore: store.NewMemory()}
	cat := NewCatalog(spy, nil, 0, zap.NewNop())

	e1 := mustCreateExercise(t, cat, "e1")
	r1, err := cat.CreateRoutine(ctx, RoutineInput{Name: "day", Level: "easy"})
	require.NoError(t, err)

	_, err = cat.AddRoutineEntry(ctx, r1, domain.ExerciseEntry{ExerciseID: e1, Sets: 3, Reps: 10})
	require.NoError(t, err)

	last := spy.patches[len(spy.patches)-1]
	entries, ok := last["exercises"].([]any)
	require.True(t, ok, "entries must reach the store as plain values, got %T", last["exercises"])
	require.Len(t, entries, 1)
	entry, ok := entries[0].(map[string]any)
	require.True(t, ok)
	require.Contains(t, entry, "exerciseId")
	require.Contains(t, entry, "restSeconds")
	require.NotContains(t, entry, "ExerciseID")

	// the cleanup sweep goes through the same seam
	require.NoError(t, cat.DeleteExercise(ctx, e1))
	last = spy.patches[len(spy.patches)-1]
	swept, ok := last["exercises"].([]any)
	require.True(t, ok, "sweep must reach the store as plain values, got %T", last["exercises"])
	require.Empty(t, swept)
}

func TestSearchRoutinesByLevel(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	_, err := cat.CreateRoutine(ctx, RoutineInput{Name: "easy day", Level: "easy"})
	require.NoError(t, err)
	hardID, err := cat.CreateRoutine(ctx, RoutineInput{Name: "hard day", Level: "hard"})
	require.NoError(t, err)

	out, err := cat.SearchRoutines(ctx, RoutineSearch{Level: "easy"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "easy day", out[0].Name)

	out, err = cat.SearchRoutines(ctx, RoutineSearch{})
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.NoError(t, cat.DeleteRoutine(ctx, hardID))
	out, err = cat.SearchRoutines(ctx, RoutineSearch{Level: "hard"})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestUpdateExerciseReappliesDefaults(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	id := mustCreateExercise(t, cat, "bench press")
	require.NoError(t, cat.UpdateExercise(ctx, id, ExerciseInput{
		Name: "bench press", MuscleGroups: []string{"chest"},
		Difficulty: "medium", Instructions: "do it",
	}))

	ex, err := cat.Exercise(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultExerciseImageURL, ex.ImageURL)
	require.NotNil(t, ex.Equipment)
	require.Empty(t, ex.Equipment)
}

func TestUpdateRoutineWithoutEntriesStoresEmpty(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	e1 := mustCreateExercise(t, cat, "e1")
	r1, err := cat.CreateRoutine(ctx, RoutineInput{
		Name: "day", Level: "easy",
		Exercises: []domain.ExerciseEntry{{ExerciseID: e1, Sets: 3, Reps: 10}},
	})
	require.NoError(t, err)

	require.NoError(t, cat.UpdateRoutine(ctx, r1, RoutineInput{Name: "rest day", Level: "easy"}))

	rt, err := cat.Routine(ctx, r1)
	require.NoError(t, err)
	require.NotNil(t, rt.Exercises)
	require.Empty(t, rt.Exercises)
}

func TestRoutineDetail(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	e1 := mustCreateExercise(t, cat, "e1")
	r1, err := cat.CreateRoutine(ctx, RoutineInput{
		Name: "day", Level: "easy",
		Exercises: []domain.ExerciseEntry{
			{ExerciseID: e1, Sets: 3, Reps: 10},
			{ExerciseID: "dangling", Sets: 1, Reps: 1},
		},
	})
	require.NoError(t, err)

	detail, err := cat.RoutineDetail(ctx, r1)
	require.NoError(t, err)
	require.Len(t, detail.Detailed, 2)
	require.NotNil(t, detail.Detailed[0].Exercise)
	require.Equal(t, "e1", detail.Detailed[0].Exercise.Name)
	require.Nil(t, detail.Detailed[1].Exercise)
}
