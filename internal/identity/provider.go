// Package identity holds the external credential contracts the user flow
// depends on, plus the Firebase-backed and local implementations.
package identity

import (
	"context"

	"go-gym-api/internal/domain"
)

// CredentialProvider issues and holds login credentials, independent of the
// profile document. The id it assigns at creation becomes the profile
// document id.
type CredentialProvider interface {
	// CreateCredential registers email+password and returns the canonical
	// credential id. Fails with domain.ErrDuplicateEmail when the email is
	// already registered.
	CreateCredential(ctx context.Context, email, password, displayName string) (string, error)

	// DeleteCredential removes the credential. Fails with
	// domain.ErrCredentialNotFound when no credential holds the id.
	DeleteCredential(ctx context.Context, id string) error

	// CredentialByEmail resolves an email to its credential record. Fails
	// with domain.ErrCredentialNotFound when the email is unknown.
	CredentialByEmail(ctx context.Context, email string) (*domain.Credential, error)
}

// TokenVerifier exchanges email+password for a verified email. Fails with
// domain.ErrInvalidCredentials when the pair does not check out.
type TokenVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) (string, error)
}
