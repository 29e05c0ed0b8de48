// Package store defines the document-store contract the rest of the service
// is written against, plus the Firestore adapter and an in-memory
// implementation used in tests and local development.
package store

import "context"

// Document is the generic field mapping the store speaks. Values are
// JSON-like: scalars, sequences and nested mappings.
type Document map[string]any

// Filter operators supported by every implementation.
type Op string

const (
	OpEqual         Op = "=="
	OpArrayContains Op = "array-contains"
)

// Filter is one predicate of a conjunction.
type Filter struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

func ArrayContains(field string, value any) Filter {
	return Filter{Field: field, Op: OpArrayContains, Value: value}
}

// DocumentStore wraps the external document database. Implementations do not
// retry; any underlying fault surfaces as a *domain.StoreError carrying the
// cause, and missing documents surface as domain.ErrNotFound.
type DocumentStore interface {
	// Get fetches one document. The returned document includes its id under
	// the "id" key.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Put writes a full document. With id == "" the store assigns one; an
	// existing document under the given id is overwritten (collision policy
	// is delegate-to-store). Returns the document id.
	Put(ctx context.Context, collection, id string, data Document) (string, error)

	// Patch merges the given fields into an existing document. Fails with
	// domain.ErrNotFound when the document does not exist.
	Patch(ctx context.Context, collection, id string, data Document) error

	// Delete removes a document unconditionally. Fails with
	// domain.ErrNotFound when the document does not exist.
	Delete(ctx context.Context, collection, id string) error

	// Query returns every document matching the conjunction of filters,
	// each including its id, in no guaranteed order.
	Query(ctx context.Context, collection string, filters []Filter) ([]Document, error)
}
