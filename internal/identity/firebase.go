package identity

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"

	"go-gym-api/internal/domain"
)

// FirebaseProvider adapts the Firebase Auth admin client to the
// CredentialProvider contract.
type FirebaseProvider struct {
	client *fbauth.Client
}

func NewFirebaseProvider(client *fbauth.Client) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

var _ CredentialProvider = (*FirebaseProvider)(nil)

func (p *FirebaseProvider) CreateCredential(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	user, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", domain.ErrDuplicateEmail
		}
		return "", domain.NewStoreError("create-credential", "auth", "", err)
	}
	return user.UID, nil
}

func (p *FirebaseProvider) DeleteCredential(ctx context.Context, id string) error {
	if err := p.client.DeleteUser(ctx, id); err != nil {
		if fbauth.IsUserNotFound(err) {
			return domain.ErrCredentialNotFound
		}
		return domain.NewStoreError("delete-credential", "auth", id, err)
	}
	return nil
}

func (p *FirebaseProvider) CredentialByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	user, err := p.client.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, domain.NewStoreError("get-credential", "auth", "", err)
	}
	return &domain.Credential{
		ID:            user.UID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		PhotoURL:      user.PhotoURL,
		EmailVerified: user.EmailVerified,
		Disabled:      user.Disabled,
	}, nil
}
