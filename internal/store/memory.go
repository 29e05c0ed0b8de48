package store

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"go-gym-api/internal/domain"
)

// Memory is a process-local DocumentStore. It backs tests and local
// development where no Firestore project is configured.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]Document)}
}

var _ DocumentStore = (*Memory)(nil)

func (s *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneDoc(doc)
	out["id"] = id
	return out, nil
}

func (s *Memory) Put(ctx context.Context, collection, id string, data Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]Document)
	}
	doc := cloneDoc(data)
	delete(doc, "id")
	s.collections[collection][id] = doc
	return id, nil
}

func (s *Memory) Patch(ctx context.Context, collection, id string, data Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	for field, value := range cloneDoc(data) {
		if field == "id" {
			continue
		}
		doc[field] = value
	}
	return nil
}

func (s *Memory) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *Memory) Query(ctx context.Context, collection string, filters []Filter) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Document
	for id, doc := range s.collections[collection] {
		if matches(doc, filters) {
			c := cloneDoc(doc)
			c["id"] = id
			out = append(out, c)
		}
	}
	return out, nil
}

func matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		got, ok := doc[f.Field]
		if !ok {
			return false
		}
		want := normalize(f.Value)
		switch f.Op {
		case OpEqual:
			if !reflect.DeepEqual(normalize(got), want) {
				return false
			}
		case OpArrayContains:
			seq, ok := normalize(got).([]any)
			if !ok {
				return false
			}
			found := false
			for _, el := range seq {
				if reflect.DeepEqual(el, want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// cloneDoc deep-copies through JSON so callers never share mutable state
// with the store, mirroring the value semantics of a remote database.
func cloneDoc(doc Document) Document {
	b, _ := json.Marshal(doc)
	var out Document
	_ = json.Unmarshal(b, &out)
	if out == nil {
		out = Document{}
	}
	return out
}

// normalize collapses typed values (time.Time, []string, ints) into their
// JSON shape so filter comparisons behave the same as in the real store.
func normalize(v any) any {
	b, _ := json.Marshal(v)
	var out any
	_ = json.Unmarshal(b, &out)
	return out
}
