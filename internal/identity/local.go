package identity

import (
	"context"
	"errors"

	"go-gym-api/internal/domain"
	"go-gym-api/internal/store"
	"go-gym-api/pkg/utils"
)

// LocalProvider keeps credentials as bcrypt hashes in a collection of the
// same document store. It serves development and tests, where no Firebase
// project is configured, and honors both external contracts.
type LocalProvider struct {
	db store.DocumentStore
}

func NewLocalProvider(db store.DocumentStore) *LocalProvider {
	return &LocalProvider{db: db}
}

var (
	_ CredentialProvider = (*LocalProvider)(nil)
	_ TokenVerifier      = (*LocalProvider)(nil)
)

type localCredential struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PasswordHash string `json:"passwordHash"`
}

func (p *LocalProvider) CreateCredential(ctx context.Context, email, password, displayName string) (string, error) {
	if _, err := p.lookup(ctx, email); err == nil {
		return "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrCredentialNotFound) {
		return "", err
	}
	doc := store.Document{
		"email":        email,
		"displayName":  displayName,
		"passwordHash": utils.HashPassword(password),
	}
	return p.db.Put(ctx, domain.CollectionCredentials, utils.NewID(), doc)
}

func (p *LocalProvider) DeleteCredential(ctx context.Context, id string) error {
	err := p.db.Delete(ctx, domain.CollectionCredentials, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrCredentialNotFound
	}
	return err
}

func (p *LocalProvider) CredentialByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	cred, err := p.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	return &domain.Credential{
		ID:          cred.ID,
		Email:       cred.Email,
		DisplayName: cred.DisplayName,
	}, nil
}

func (p *LocalProvider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	cred, err := p.lookup(ctx, email)
	if errors.Is(err, domain.ErrCredentialNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !utils.CheckPassword(password, cred.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	return cred.Email, nil
}

func (p *LocalProvider) lookup(ctx context.Context, email string) (*localCredential, error) {
	docs, err := p.db.Query(ctx, domain.CollectionCredentials, []store.Filter{store.Eq("email", email)})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrCredentialNotFound
	}
	doc := docs[0]
	cred := &localCredential{}
	if v, ok := doc["id"].(string); ok {
		cred.ID = v
	}
	if v, ok := doc["email"].(string); ok {
		cred.Email = v
	}
	if v, ok := doc["displayName"].(string); ok {
		cred.DisplayName = v
	}
	if v, ok := doc["passwordHash"].(string); ok {
		cred.PasswordHash = v
	}
	return cred, nil
}
