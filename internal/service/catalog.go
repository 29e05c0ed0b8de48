// Package service implements the gym catalog (exercises, routines) and the
// user identity flow on top of the record repository.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-gym-api/internal/core/cache"
	"go-gym-api/internal/domain"
	"go-gym-api/internal/repo"
	"go-gym-api/internal/store"
)

// Catalog owns the exercises and routines collections and the one enforced
// cross-entity rule: removing an exercise scrubs it from every routine.
type Catalog struct {
	exercises *repo.Records[domain.Exercise]
	routines  *repo.Records[domain.Routine]
	cache     *cache.Cache
	cacheTTL  time.Duration
	log       *zap.Logger
}

// NewCatalog wires the catalog service. cache may be nil; reads then go
// straight to the store.
func NewCatalog(db store.DocumentStore, c *cache.Cache, cacheTTL time.Duration, log *zap.Logger) *Catalog {
	return &Catalog{
		exercises: repo.NewRecords[domain.Exercise](db, domain.CollectionExercises),
		routines:  repo.NewRecords[domain.Routine](db, domain.CollectionRoutines),
		cache:     c,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// WithClock substitutes the repositories' timestamp source for tests.
func (s *Catalog) WithClock(now func() time.Time) *Catalog {
	s.exercises.WithClock(now)
	s.routines.WithClock(now)
	return s
}

// ExerciseInput carries the caller-writable exercise fields. Record fields
// (id, timestamps, active) are never caller-writable.
type ExerciseInput struct {
	Name         string   `json:"name" binding:"required"`
	MuscleGroups []string `json:"muscleGroups" binding:"required,min=1"`
	Difficulty   string   `json:"difficulty" binding:"required"`
	Instructions string   `json:"instructions" binding:"required"`
	Equipment    []string `json:"equipment"`
	ImageURL     string   `json:"imageUrl"`
	Featured     bool     `json:"featured"`
}

// ExercisePatch carries only the fields present in a partial update.
type ExercisePatch struct {
	Name         *string   `json:"name,omitempty"`
	MuscleGroups *[]string `json:"muscleGroups,omitempty"`
	Difficulty   *string   `json:"difficulty,omitempty"`
	Instructions *string   `json:"instructions,omitempty"`
	Equipment    *[]string `json:"equipment,omitempty"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	Featured     *bool     `json:"featured,omitempty"`
}

// ExerciseSearch is ANDed on top of the active gate; zero values mean
// "no filter".
type ExerciseSearch struct {
	Difficulty  string `form:"difficulty"`
	Equipment   string `form:"equipment"`
	MuscleGroup string `form:"muscleGroup"`
}

func (s *Catalog) CreateExercise(ctx context.Context, in ExerciseInput) (string, error) {
	ex := domain.Exercise{
		Record:       domain.Record{Active: true},
		Name:         in.Name,
		MuscleGroups: in.MuscleGroups,
		Difficulty:   in.Difficulty,
		Instructions: in.Instructions,
		Equipment:    in.Equipment,
		ImageURL:     in.ImageURL,
		Featured:     in.Featured,
	}
	if ex.Equipment == nil {
		ex.Equipment = []string{}
	}
	if ex.ImageURL == "" {
		ex.ImageURL = domain.DefaultExerciseImageURL
	}
	return s.exercises.Create(ctx, ex, "")
}

func (s *Catalog) Exercise(ctx context.Context, id string) (*domain.Exercise, error) {
	if s.cache == nil {
		return s.exercises.ByID(ctx, id)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, exerciseKey(id), s.cacheTTL,
		func(ctx context.Context) (*domain.Exercise, error) {
			return s.exercises.ByID(ctx, id)
		})
}

func (s *Catalog) Exercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exercises.AllActive(ctx)
}

func (s *Catalog) SearchExercises(ctx context.Context, q ExerciseSearch) ([]domain.Exercise, error) {
	filters := []store.Filter{store.Eq("active", true)}
	if q.MuscleGroup != "" {
		filters = append(filters, store.ArrayContains("muscleGroups", q.MuscleGroup))
	}
	if q.Equipment != "" {
		filters = append(filters, store.ArrayContains("equipment", q.Equipment))
	}
	if q.Difficulty != "" {
		filters = append(filters, store.Eq("difficulty", q.Difficulty))
	}
	return s.exercises.Filter(ctx, filters...)
}

// UpdateExercise is a full replace and re-applies the same defaults as
// create: omitted equipment stores as empty, an omitted image falls back to
// the placeholder.
func (s *Catalog) UpdateExercise(ctx context.Context, id string, in ExerciseInput) error {
	if in.Equipment == nil {
		in.Equipment = []string{}
	}
	if in.ImageURL == "" {
		in.ImageURL = domain.DefaultExerciseImageURL
	}
	fields, err := repo.Encode(in)
	if err != nil {
		return domain.NewStoreError("encode", domain.CollectionExercises, id, err)
	}
	if err := s.exercises.Update(ctx, id, fields); err != nil {
		return err
	}
	s.invalidate(ctx, exerciseKey(id))
	return nil
}

func (s *Catalog) PatchExercise(ctx context.Context, id string, in ExercisePatch) error {
	fields, err := repo.Encode(in)
	if err != nil {
		return domain.NewStoreError("encode", domain.CollectionExercises, id, err)
	}
	if err := s.exercises.Update(ctx, id, fields); err != nil {
		return err
	}
	s.invalidate(ctx, exerciseKey(id))
	return nil
}

// DeleteExercise soft-deletes the exercise and sweeps its routine
// memberships.
func (s *Catalog) DeleteExercise(ctx context.Context, id string) error {
	if err := s.exercises.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, exerciseKey(id))
	s.removeFromRoutines(ctx, id)
	return nil
}

func (s *Catalog) RestoreExercise(ctx context.Context, id string) error {
	if err := s.exercises.Restore(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, exerciseKey(id))
	return nil
}

// HardDeleteExercise removes the exercise permanently and sweeps its
// routine memberships.
func (s *Catalog) HardDeleteExercise(ctx context.Context, id string) error {
	if err := s.exercises.HardDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, exerciseKey(id))
	s.removeFromRoutines(ctx, id)
	return nil
}

// removeFromRoutines is the cascading membership cleanup: every routine,
// active or inactive, loses all entries referencing the exercise. The sweep
// is best-effort and not transactional with the exercise removal; a routine
// that fails to update is logged and skipped, and the primary operation
// still reports success.
func (s *Catalog) removeFromRoutines(ctx context.Context, exerciseID string) {
	routines, err := s.routines.Filter(ctx)
	if err != nil {
		s.log.Error("membership cleanup: scan failed",
			zap.String("exerciseId", exerciseID), zap.Error(err))
		return
	}
	for _, rt := range routines {
		kept := make([]domain.ExerciseEntry, 0, len(rt.Exercises))
		for _, entry := range rt.Exercises {
			if entry.ExerciseID != exerciseID {
				kept = append(kept, entry)
			}
		}
		if len(kept) == len(rt.Exercises) {
			continue
		}
		val, err := repo.EncodeValue(kept)
		if err != nil {
			s.log.Error("membership cleanup: encode failed",
				zap.String("exerciseId", exerciseID),
				zap.String("routineId", rt.ID),
				zap.Error(err))
			continue
		}
		err = s.routines.Update(ctx, rt.ID, store.Document{"exercises": val})
		if err != nil {
			s.log.Error("membership cleanup: routine update failed",
				zap.String("exerciseId", exerciseID),
				zap.String("routineId", rt.ID),
				zap.Error(err))
			continue
		}
		s.invalidate(ctx, routineKey(rt.ID))
	}
}

func (s *Catalog) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func exerciseKey(id string) string { return "exercise:" + id }
func routineKey(id string) string  { return "routine:" + id }
