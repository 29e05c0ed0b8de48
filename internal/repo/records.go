// Package repo provides the typed soft-delete repository layered on the
// document store: timestamp stamping, the active flag, and the conversion
// seam between entity structs and the generic field mapping.
package repo

import (
	"context"
	"encoding/json"
	"time"

	"go-gym-api/internal/domain"
	"go-gym-api/internal/store"
)

// Records is a repository for one collection of T. T's json tags are the
// single naming authority for stored field names.
type Records[T any] struct {
	db         store.DocumentStore
	collection string
	now        func() time.Time
}

func NewRecords[T any](db store.DocumentStore, collection string) *Records[T] {
	return &Records[T]{db: db, collection: collection, now: time.Now}
}

// WithClock substitutes the timestamp source. Tests use it to assert
// monotonic updatedAt without sleeping.
func (r *Records[T]) WithClock(now func() time.Time) *Records[T] {
	r.now = now
	return r
}

// Create stamps createdAt/updatedAt and writes the record. With id == ""
// the store assigns one. Existing documents under a caller-chosen id are
// overwritten; collision policy is delegate-to-store.
func (r *Records[T]) Create(ctx context.Context, record T, id string) (string, error) {
	doc, err := Encode(record)
	if err != nil {
		return "", domain.NewStoreError("encode", r.collection, id, err)
	}
	delete(doc, "id")
	ts := r.now()
	doc["createdAt"] = ts
	doc["updatedAt"] = ts
	return r.db.Put(ctx, r.collection, id, doc)
}

// ByID is the activity-gated read: it returns domain.ErrNotFound both when
// the document is absent and when it exists with active != true.
// Soft-deleted records stay invisible to ordinary reads.
func (r *Records[T]) ByID(ctx context.Context, id string) (*T, error) {
	doc, err := r.db.Get(ctx, r.collection, id)
	if err != nil {
		return nil, err
	}
	if active, ok := doc["active"].(bool); !ok || !active {
		return nil, domain.ErrNotFound
	}
	return decode[T](r.collection, doc)
}

// AllActive returns every record with active == true. An empty result is
// not an error; callers decide whether empty means "not found".
func (r *Records[T]) AllActive(ctx context.Context) ([]T, error) {
	return r.Filter(ctx, store.Eq("active", true))
}

// Filter queries with caller-supplied predicates only: the active gate is
// not added implicitly, so inactive records are reachable when a caller
// composes filters without it.
func (r *Records[T]) Filter(ctx context.Context, filters ...store.Filter) ([]T, error) {
	docs, err := r.db.Query(ctx, r.collection, filters)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec, err := decode[T](r.collection, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

// Update merges the given fields into the record and stamps updatedAt.
// Partial patch writes only the fields present in the input; id and
// createdAt are never touched. Returns domain.ErrNotFound when the record
// does not exist (soft-deleted records are still updatable here, which is
// what makes restore possible).
func (r *Records[T]) Update(ctx context.Context, id string, fields store.Document) error {
	patch := store.Document{}
	for field, value := range fields {
		if field == "id" || field == "createdAt" {
			continue
		}
		patch[field] = value
	}
	patch["updatedAt"] = r.now()
	return r.db.Patch(ctx, r.collection, id, patch)
}

// SoftDelete flips the record inactive. Reversible via Restore.
func (r *Records[T]) SoftDelete(ctx context.Context, id string) error {
	return r.Update(ctx, id, store.Document{"active": false})
}

func (r *Records[T]) Restore(ctx context.Context, id string) error {
	return r.Update(ctx, id, store.Document{"active": true})
}

// HardDelete removes the document regardless of its active flag. The id is
// never reused afterwards (store-generated ids are unique for the lifetime
// of the collection).
func (r *Records[T]) HardDelete(ctx context.Context, id string) error {
	return r.db.Delete(ctx, r.collection, id)
}

// Encode converts a struct into the field mapping the store speaks, going
// through JSON so struct tags decide field names and omission.
func Encode(v any) (store.Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc store.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// EncodeValue normalizes a single field value through the same JSON
// round-trip as Encode. Typed slices written via partial update must pass
// through here so they land in the store under the same field names as full
// records; handing a struct value straight to the store would let the
// backend pick its own naming.
func EncodeValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode[T any](collection string, doc store.Document) (*T, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, domain.NewStoreError("decode", collection, "", err)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, domain.NewStoreError("decode", collection, "", err)
	}
	return &out, nil
}
