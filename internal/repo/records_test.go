package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-gym-api/internal/domain"
	"go-gym-api/internal/store"
)

type widget struct {
	domain.Record

	Name string `json:"name"`
	Size int    `json:"size,omitempty"`
}

// tick is a deterministic clock advancing one second per call.
type tick struct {
	t time.Time
}

func (c *tick) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestRecords(t *testing.T) (*Records[widget], *tick) {
	t.Helper()
	clock := &tick{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewRecords[widget](store.NewMemory(), "widgets").WithClock(clock.now)
	return r, clock
}

func TestCreateStampsTimestamps(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRecords(t)

	id, err := r.Create(ctx, widget{Record: domain.Record{Active: true}, Name: "w"}, "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := r.ByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, "w", got.Name)
	require.True(t, got.Active)
	require.False(t, got.CreatedAt.IsZero())
	require.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestByIDGatesOnActive(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRecords(t)

	id, err := r.Create(ctx, widget{Name: "inactive"}, "")
	require.NoError(t, err)

	_, err = r.ByID(ctx, id)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.ByID(ctx, "absent")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePreservesIdentityFields(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRecords(t)

	id, err := r.Create(ctx, widget{Record: domain.Record{Active: true}, Name: "w"}, "")
	require.NoError(t, err)
	before, err := r.ByID(ctx, id)
	require.NoError(t, err)

	err = r.Update(ctx, id, store.Document{
		"name":      "renamed",
		"id":        "evil",
		"createdAt": time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	after, err := r.ByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "renamed", after.Name)
	require.Equal(t, id, after.ID)
	require.Equal(t, before.CreatedAt, after.CreatedAt)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt))

	require.ErrorIs(t, r.Update(ctx, "absent", store.Document{"name": "x"}), domain.ErrNotFound)
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRecords(t)

	id, err := r.Create(ctx, widget{Record: domain.Record{Active: true}, Name: "w"}, "")
	require.NoError(t, err)

	require.NoError(t, r.SoftDelete(ctx, id))
	_, err = r.ByID(ctx, id)
	require.ErrorIs(t, err, domain.ErrNotFound)

	active, err := r.AllActive(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	// still reachable without the gate
	all, err := r.Filter(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.False(t, all[0].Active)

	require.NoError(t, r.Restore(ctx, id))
	got, err := r.ByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "w", got.Name)
}

func TestSoftDeleteBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRecords(t)

	id, err := r.Create(ctx, widget{Record: domain.Record{Active: true}, Name: "w"}, "")
	require.NoError(t, err)
	before, err := r.ByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, r.SoftDelete(ctx, id))
	require.NoError(t, r.Restore(ctx, id))

	after, err := r.ByID(ctx, id)
	require.NoError(t, err)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestHardDeleteIsFinal(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRecords(t)

	id, err := r.Create(ctx, widget{Name: "inactive"}, "")
	require.NoError(t, err)

	// active flag is irrelevant to hard delete
	require.NoError(t, r.HardDelete(ctx, id))
	require.ErrorIs(t, r.HardDelete(ctx, id), domain.ErrNotFound)
	_, err = r.ByID(ctx, id)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllActiveEmptyIsNotError(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRecords(t)

	out, err := r.AllActive(ctx)
	require.NoError(t, err)
	require.Empty(t, out)
}
