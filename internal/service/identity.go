package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"go-gym-api/internal/core/auth"
	"go-gym-api/internal/domain"
	"go-gym-api/internal/identity"
	"go-gym-api/internal/repo"
	"go-gym-api/internal/store"
)

// Identity coordinates the profile document with the external credential
// record. The two share one id (assigned by the provider) and are created
// and destroyed together; soft delete is the deliberate exception and
// touches only the profile.
type Identity struct {
	users    *repo.Records[domain.User]
	creds    identity.CredentialProvider
	verifier identity.TokenVerifier
	jwter    *auth.JWTer
	log      *zap.Logger
}

func NewIdentity(db store.DocumentStore, creds identity.CredentialProvider, verifier identity.TokenVerifier, jwter *auth.JWTer, log *zap.Logger) *Identity {
	return &Identity{
		users:    repo.NewRecords[domain.User](db, domain.CollectionUsers),
		creds:    creds,
		verifier: verifier,
		jwter:    jwter,
		log:      log,
	}
}

func (s *Identity) WithClock(now func() time.Time) *Identity {
	s.users.WithClock(now)
	return s
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	BirthDate *time.Time `json:"birthDate"`
	WeightKg  *float64   `json:"weightKg" binding:"omitempty,gt=0"`
	HeightCm  *float64   `json:"heightCm" binding:"omitempty,gt=0"`
	Sex       string     `json:"sex"`
}

type UserInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`

	BirthDate *time.Time `json:"birthDate"`
	WeightKg  *float64   `json:"weightKg" binding:"omitempty,gt=0"`
	HeightCm  *float64   `json:"heightCm" binding:"omitempty,gt=0"`
	Sex       string     `json:"sex"`

	ProfilePhotoURL string `json:"profilePhotoUrl"`
}

type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`

	ProfilePhotoURL     *string   `json:"profilePhotoUrl,omitempty"`
	RoutineIDs          *[]string `json:"routineIds,omitempty"`
	FavoriteExerciseIDs *[]string `json:"favoriteExerciseIds,omitempty"`
	FavoriteRoutineIDs  *[]string `json:"favoriteRoutineIds,omitempty"`
}

// PhenotypeInput patches weight, height, sex and birth date as a group.
type PhenotypeInput struct {
	WeightKg  float64   `json:"weightKg" binding:"required,gt=0"`
	HeightCm  float64   `json:"heightCm" binding:"required,gt=0"`
	Sex       string    `json:"sex" binding:"required"`
	BirthDate time.Time `json:"birthDate" binding:"required"`
}

// Register creates the credential first; the provider-issued id then keys
// the profile document, which is what binds the two records. A profile
// write failing after the credential exists leaves an orphaned credential;
// there is no rollback, only an error-level log.
func (s *Identity) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	credID, err := s.creds.CreateCredential(ctx, in.Email, in.Password, in.Name)
	if err != nil {
		return nil, err
	}

	u := domain.User{
		Record:              domain.Record{Active: true},
		Name:                in.Name,
		Email:               in.Email,
		Phone:               in.Phone,
		BirthDate:           in.BirthDate,
		WeightKg:            in.WeightKg,
		HeightCm:            in.HeightCm,
		Sex:                 in.Sex,
		RoutineIDs:          []string{},
		FavoriteExerciseIDs: []string{},
		FavoriteRoutineIDs:  []string{},
	}
	if _, err := s.users.Create(ctx, u, credID); err != nil {
		s.log.Error("register: profile write failed, credential orphaned",
			zap.String("credentialId", credID), zap.Error(err))
		return nil, err
	}
	created, err := s.users.ByID(ctx, credID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the password externally, resolves the verified email back
// to a credential id, and reads the profile through the activity gate: a
// soft-deleted profile blocks login even though the credential is valid.
// Returns the profile and a fresh access token.
func (s *Identity) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	verifiedEmail, err := s.verifier.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	cred, err := s.creds.CredentialByEmail(ctx, verifiedEmail)
	if err != nil {
		return nil, "", err
	}
	u, err := s.users.ByID(ctx, cred.ID)
	if err != nil {
		return nil, "", err
	}
	token, err := s.jwter.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Identity) User(ctx context.Context, id string) (*domain.User, error) {
	return s.users.ByID(ctx, id)
}

func (s *Identity) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.AllActive(ctx)
}

func (s *Identity) UpdateUser(ctx context.Context, id string, in UserInput) error {
	fields, err := repo.Encode(in)
	if err != nil {
		return domain.NewStoreError("encode", domain.CollectionUsers, id, err)
	}
	return s.users.Update(ctx, id, fields)
}

func (s *Identity) PatchUser(ctx context.Context, id string, in UserPatch) error {
	fields, err := repo.Encode(in)
	if err != nil {
		return domain.NewStoreError("encode", domain.CollectionUsers, id, err)
	}
	return s.users.Update(ctx, id, fields)
}

// PatchPhenotype writes the four phenotype fields as a group and flags the
// profile complete. The flag is set unconditionally on success: completion
// is marked at the moment all four arrive together, regardless of what was
// present before.
func (s *Identity) PatchPhenotype(ctx context.Context, id string, in PhenotypeInput) error {
	if _, err := s.users.ByID(ctx, id); err != nil {
		return err
	}
	fields, err := repo.Encode(in)
	if err != nil {
		return domain.NewStoreError("encode", domain.CollectionUsers, id, err)
	}
	fields["phenotypeComplete"] = true
	return s.users.Update(ctx, id, fields)
}

// SoftDeleteUser disables the profile only. The credential survives so the
// account can be restored without re-registration.
func (s *Identity) SoftDeleteUser(ctx context.Context, id string) error {
	return s.users.SoftDelete(ctx, id)
}

func (s *Identity) RestoreUser(ctx context.Context, id string) error {
	return s.users.Restore(ctx, id)
}

// HardDeleteUser deletes the credential first. When the provider has no
// such user the profile store is left untouched and ErrCredentialNotFound
// surfaces. A profile delete failing after the credential is gone leaves an
// orphaned profile; there is no compensation, only an error-level log.
func (s *Identity) HardDeleteUser(ctx context.Context, id string) error {
	if err := s.creds.DeleteCredential(ctx, id); err != nil {
		return err
	}
	if err := s.users.HardDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.log.Error("hard delete: credential removed but profile delete failed, profile orphaned",
			zap.String("userId", id), zap.Error(err))
		return err
	}
	return nil
}
