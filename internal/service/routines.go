package service

import (
	"context"
	"errors"

	"go-gym-api/internal/core/cache"
	"go-gym-api/internal/domain"
	"go-gym-api/internal/repo"
	"go-gym-api/internal/store"
)

type RoutineInput struct {
	Name            string                 `json:"name" binding:"required"`
	Level           string                 `json:"level" binding:"required"`
	Description     string                 `json:"description"`
	Exercises       []domain.ExerciseEntry `json:"exercises" binding:"omitempty,dive"`
	DurationMinutes int                    `json:"durationMinutes" binding:"omitempty,gt=0"`
	ImageURL        string                 `json:"imageUrl"`
	Featured        bool                   `json:"featured"`
}

type RoutinePatch struct {
	Name            *string                 `json:"name,omitempty"`
	Level           *string                 `json:"level,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	Exercises       *[]domain.ExerciseEntry `json:"exercises,omitempty" binding:"omitempty,dive"`
	DurationMinutes *int                    `json:"durationMinutes,omitempty"`
	ImageURL        *string                 `json:"imageUrl,omitempty"`
	Featured        *bool                   `json:"featured,omitempty"`
}

func (s *Catalog) CreateRoutine(ctx context.Context, in RoutineInput) (string, error) {
	rt := domain.Routine{
		Record:          domain.Record{Active: true},
		Name:            in.Name,
		Level:           in.Level,
		Description:     in.Description,
		Exercises:       in.Exercises,
		DurationMinutes: in.DurationMinutes,
		ImageURL:        in.ImageURL,
		Featured:        in.Featured,
	}
	if rt.Exercises == nil {
		rt.Exercises = []domain.ExerciseEntry{}
	}
	return s.routines.Create(ctx, rt, "")
}

func (s *Catalog) Routine(ctx context.Context, id string) (*domain.Routine, error) {
	if s.cache == nil {
		return s.routines.ByID(ctx, id)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, routineKey(id), s.cacheTTL,
		func(ctx context.Context) (*domain.Routine, error) {
			return s.routines.ByID(ctx, id)
		})
}

// RoutineSearch is ANDed on top of the active gate; a zero value lists all
// active routines.
type RoutineSearch struct {
	Level string `form:"level"`
}

func (s *Catalog) SearchRoutines(ctx context.Context, q RoutineSearch) ([]domain.Routine, error) {
	filters := []store.Filter{store.Eq("active", true)}
	if q.Level != "" {
		filters = append(filters, store.Eq("level", q.Level))
	}
	return s.routines.Filter(ctx, filters...)
}

// RoutineDetail joins each entry against its exercise document. Dangling
// references keep a nil Exercise rather than failing the whole read.
func (s *Catalog) RoutineDetail(ctx context.Context, id string) (*domain.RoutineDetail, error) {
	rt, err := s.Routine(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &domain.RoutineDetail{
		Routine:  *rt,
		Detailed: make([]domain.DetailedEntry, 0, len(rt.Exercises)),
	}
	for _, entry := range rt.Exercises {
		d := domain.DetailedEntry{ExerciseEntry: entry}
		ex, err := s.Exercise(ctx, entry.ExerciseID)
		switch {
		case err == nil:
			d.Exercise = ex
		case errors.Is(err, domain.ErrNotFound):
			// dangling reference, returned as-is
		default:
			return nil, err
		}
		detail.Detailed = append(detail.Detailed, d)
	}
	return detail, nil
}

// UpdateRoutine is a full replace and re-applies the same defaults as
// create, so an omitted entries sequence stores as empty, not null.
func (s *Catalog) UpdateRoutine(ctx context.Context, id string, in RoutineInput) error {
	if in.Exercises == nil {
		in.Exercises = []domain.ExerciseEntry{}
	}
	fields, err := repo.Encode(in)
	if err != nil {
		return domain.NewStoreError("encode", domain.CollectionRoutines, id, err)
	}
	if err := s.routines.Update(ctx, id, fields); err != nil {
		return err
	}
	s.invalidate(ctx, routineKey(id))
	return nil
}

func (s *Catalog) PatchRoutine(ctx context.Context, id string, in RoutinePatch) error {
	fields, err := repo.Encode(in)
	if err != nil {
		return domain.NewStoreError("encode", domain.CollectionRoutines, id, err)
	}
	if err := s.routines.Update(ctx, id, fields); err != nil {
		return err
	}
	s.invalidate(ctx, routineKey(id))
	return nil
}

func (s *Catalog) DeleteRoutine(ctx context.Context, id string) error {
	if err := s.routines.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, routineKey(id))
	return nil
}

func (s *Catalog) RestoreRoutine(ctx context.Context, id string) error {
	if err := s.routines.Restore(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, routineKey(id))
	return nil
}

func (s *Catalog) HardDeleteRoutine(ctx context.Context, id string) error {
	if err := s.routines.HardDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, routineKey(id))
	return nil
}

// AddRoutineEntry appends one entry. The referenced exercise must exist and
// be active; the append has set semantics with no dedup, so the same tuple
// added twice yields two entries.
func (s *Catalog) AddRoutineEntry(ctx context.Context, routineID string, entry domain.ExerciseEntry) (*domain.Routine, error) {
	rt, err := s.routines.ByID(ctx, routineID)
	if err != nil {
		return nil, err
	}
	if _, err := s.exercises.ByID(ctx, entry.ExerciseID); err != nil {
		return nil, err
	}
	entries := append(rt.Exercises, entry)
	val, err := repo.EncodeValue(entries)
	if err != nil {
		return nil, domain.NewStoreError("encode", domain.CollectionRoutines, routineID, err)
	}
	if err := s.routines.Update(ctx, routineID, store.Document{"exercises": val}); err != nil {
		return nil, err
	}
	s.invalidate(ctx, routineKey(routineID))
	rt.Exercises = entries
	return rt, nil
}

// RemoveRoutineEntry drops every entry referencing the exercise id. When no
// entry matches, the routine was found but the entry was not: that is the
// distinct ErrRoutineEntryNotFound condition.
func (s *Catalog) RemoveRoutineEntry(ctx context.Context, routineID, exerciseID string) (*domain.Routine, error) {
	rt, err := s.routines.ByID(ctx, routineID)
	if err != nil {
		return nil, err
	}
	kept := make([]domain.ExerciseEntry, 0, len(rt.Exercises))
	for _, entry := range rt.Exercises {
		if entry.ExerciseID != exerciseID {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(rt.Exercises) {
		return nil, domain.ErrRoutineEntryNotFound
	}
	val, err := repo.EncodeValue(kept)
	if err != nil {
		return nil, domain.NewStoreError("encode", domain.CollectionRoutines, routineID, err)
	}
	if err := s.routines.Update(ctx, routineID, store.Document{"exercises": val}); err != nil {
		return nil, err
	}
	s.invalidate(ctx, routineKey(routineID))
	rt.Exercises = kept
	return rt, nil
}
