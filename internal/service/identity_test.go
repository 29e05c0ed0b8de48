package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gym-api/internal/core/auth"
	"go-gym-api/internal/domain"
	"go-gym-api/internal/identity"
	"go-gym-api/internal/store"
)

func newTestIdentity(t *testing.T) (*Identity, *identity.LocalProvider) {
	t.Helper()
	db := store.NewMemory()
	local := identity.NewLocalProvider(db)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return NewIdentity(db, local, local, jwter, zap.NewNop()), local
}

func mustRegister(t *testing.T, idn *Identity, email string) *domain.User {
	t.Helper()
	u, err := idn.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: email, Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	idn, _ := newTestIdentity(t)

	u := mustRegister(t, idn, "ana@example.com")
	require.NotEmpty(t, u.ID)
	require.Equal(t, "ana@example.com", u.Email)
	require.True(t, u.Active)
	require.False(t, u.PhenotypeComplete)
	require.NotNil(t, u.RoutineIDs)
}

func TestRegisterDuplicateEmailWritesNoProfile(t *testing.T) {
	ctx := context.Background()
	idn, _ := newTestIdentity(t)

	mustRegister(t, idn, "ana@example.com")

	_, err := idn.Register(ctx, RegisterInput{Name: "Other", Email: "ana@example.com", Password: "pw123456"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	users, err := idn.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	idn, _ := newTestIdentity(t)

	reg := mustRegister(t, idn, "ana@example.com")

	u, token, err := idn.Login(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, reg.ID, u.ID)
	require.NotEmpty(t, token)

	_, _, err = idn.Login(ctx, "ana@example.com", "wrong-pass")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = idn.Login(ctx, "ghost@example.com", "secret123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginBlockedForArchivedProfile(t *testing.T) {
	ctx := context.Background()
	idn, _ := newTestIdentity(t)

	u := mustRegister(t, idn, "ana@example.com")
	require.NoError(t, idn.SoftDeleteUser(ctx, u.ID))

	// credential is intact, the profile gate rejects
	_, _, err := idn.Login(ctx, "ana@example.com", "secret123")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, idn.RestoreUser(ctx, u.ID))
	_, _, err = idn.Login(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
}

func TestPatchPhenotype(t *testing.T) {
	ctx := context.Background()
	idn, _ := newTestIdentity(t)

	u := mustRegister(t, idn, "ana@example.com")
	in := PhenotypeInput{
		WeightKg:  70.5,
		HeightCm:  172,
		Sex:       "F",
		BirthDate: time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, idn.PatchPhenotype(ctx, u.ID, in))

	got, err := idn.User(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.PhenotypeComplete)
	require.NotNil(t, got.WeightKg)
	require.Equal(t, 70.5, *got.WeightKg)
	require.NotNil(t, got.HeightCm)
	require.Equal(t, float64(172), *got.HeightCm)
	require.Equal(t, "F", got.Sex)

	require.ErrorIs(t, idn.PatchPhenotype(ctx, "ghost", in), domain.ErrNotFound)
}

func TestPatchPhenotypeWritesEncodedValues(t *testing.T) {
	ctx := context.Background()
	db := store.NewMemory()
	spy := &patchSpy{DocumentStore: db}
	local := identity.NewLocalProvider(db)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	idn := NewIdentity(spy, local, local, jwter, zap.NewNop())

	u, err := idn.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, idn.PatchPhenotype(ctx, u.ID, PhenotypeInput{
		WeightKg: 70.5, HeightCm: 172, Sex: "F",
		BirthDate: time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC),
	}))

	last := spy.patches[len(spy.patches)-1]
	_, ok := last["birthDate"].(string)
	require.True(t, ok, "birth date must reach the store in encoded form, got %T", last["birthDate"])
	require.Equal(t, true, last["phenotypeComplete"])
}

func TestPatchUserPartial(t *testing.T) {
	ctx := context.Background()
	idn, _ := newTestIdentity(t)

	u := mustRegister(t, idn, "ana@example.com")
	phone := "+34600000000"
	require.NoError(t, idn.PatchUser(ctx, u.ID, UserPatch{Phone: &phone}))

	got, err := idn.User(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, phone, got.Phone)
	require.Equal(t, "Ana", got.Name)
}

func TestSoftDeleteUserKeepsCredential(t *testing.T) {
	ctx := context.Background()
	idn, local := newTestIdentity(t)

	u := mustRegister(t, idn, "ana@example.com")
	require.NoError(t, idn.SoftDeleteUser(ctx, u.ID))

	cred, err := local.CredentialByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, cred.ID)
}

func TestHardDeleteUser(t *testing.T) {
	ctx := context.Background()
	idn, local := newTestIdentity(t)

	u := mustRegister(t, idn, "ana@example.com")
	require.NoError(t, idn.HardDeleteUser(ctx, u.ID))

	_, err := local.CredentialByEmail(ctx, "ana@example.com")
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
	_, err = idn.User(ctx, u.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHardDeleteUserMissingCredentialLeavesProfile(t *testing.T) {
	ctx := context.Background()
	idn, local := newTestIdentity(t)

	u := mustRegister(t, idn, "ana@example.com")
	require.NoError(t, local.DeleteCredential(ctx, u.ID))

	err := idn.HardDeleteUser(ctx, u.ID)
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)

	// profile untouched by the failed credential delete
	got, err := idn.User(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}
