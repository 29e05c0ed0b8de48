package domain

import "time"

// Collection names in the document store.
const (
	CollectionExercises   = "exercises"
	CollectionRoutines    = "routines"
	CollectionUsers       = "users"
	CollectionCredentials = "credentials" // local credential provider only
)

// Record is the base every stored entity embeds. ID is assigned at creation
// (by the store or the caller) and immutable afterwards. Timestamps are
// stamped by the repository, never by callers. Active governs soft-delete
// visibility: inactive records are invisible to ordinary reads but remain
// addressable for restore and hard delete.
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Active    bool      `json:"active"`
}
