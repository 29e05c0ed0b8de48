package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-gym-api/internal/domain"
)

// Firestore adapts a *firestore.Client to the DocumentStore contract.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

var _ DocumentStore = (*Firestore)(nil)

func (s *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewStoreError("get", collection, id, err)
	}
	doc := Document(snap.Data())
	doc["id"] = snap.Ref.ID
	return doc, nil
}

func (s *Firestore) Put(ctx context.Context, collection, id string, data Document) (string, error) {
	ref := s.client.Collection(collection).Doc(id)
	if id == "" {
		ref = s.client.Collection(collection).NewDoc()
	}
	if _, err := ref.Set(ctx, map[string]any(data)); err != nil {
		return "", domain.NewStoreError("put", collection, ref.ID, err)
	}
	return ref.ID, nil
}

func (s *Firestore) Patch(ctx context.Context, collection, id string, data Document) error {
	updates := make([]firestore.Update, 0, len(data))
	for field, value := range data {
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	if err != nil {
		return domain.NewStoreError("patch", collection, id, err)
	}
	return nil
}

func (s *Firestore) Delete(ctx context.Context, collection, id string) error {
	// Firestore deletes are no-ops on missing documents, so existence is
	// checked first to keep the NotFound contract.
	ref := s.client.Collection(collection).Doc(id)
	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	if err != nil {
		return domain.NewStoreError("delete", collection, id, err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return domain.NewStoreError("delete", collection, id, err)
	}
	return nil
}

func (s *Firestore) Query(ctx context.Context, collection string, filters []Filter) ([]Document, error) {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, string(f.Op), f.Value)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.NewStoreError("query", collection, "", err)
		}
		doc := Document(snap.Data())
		doc["id"] = snap.Ref.ID
		out = append(out, doc)
	}
	return out, nil
}
