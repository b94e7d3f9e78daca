package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/digimarket/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/digimarket/internal/adapters/security/password"
	"github.com/vncsmyrnk/digimarket/internal/adapters/security/token"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

type authFixture struct {
	store  *memory.Store
	users  *UserService
	auth   *AuthService
	issuer *token.JWTIssuer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := memory.NewStore()
	hasher := password.NewBcryptHasher(4)
	issuer, err := token.NewJWTIssuer("secret")
	require.NoError(t, err)

	return &authFixture{
		store:  store,
		users:  NewUserService(store.Users, hasher),
		auth:   NewAuthService(store.Users, hasher, issuer, store.Revocations, time.Hour),
		issuer: issuer,
	}
}

func TestLogin_TokenCarriesUserIdentity(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, ports.RegisterUserInput{Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	session, err := f.auth.Login(ctx, "ANN@example.com ", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.User.ID)

	identity, err := f.issuer.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, domain.RoleUser, identity.Role)
	assert.Equal(t, session.ExpiresAt.Unix(), identity.ExpiresAt.Unix())
}

func TestLogin_RejectsBadCredentialsUniformly(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.users.Register(ctx, ports.RegisterUserInput{Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	_, wrongPassword := f.auth.Login(ctx, "ann@example.com", "password124")
	_, unknownEmail := f.auth.Login(ctx, "bob@example.com", "password123")

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Zero(t, f.store.Revocations.Len())
}

func TestLogin_RequiredFields(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Login(context.Background(), "  ", "x")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	_, err = f.auth.Login(context.Background(), "a@b.io", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestLogin_StorageFaultFailsClosed(t *testing.T) {
	auth := NewAuthService(failingUsers{}, plainHasher{}, newStubIssuer(), memory.NewRevocationLedger(), time.Hour)

	_, err := auth.Login(context.Background(), "a@b.io", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, err, errStorage)
}

func TestLogout_RevokesPresentedToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.users.Register(ctx, ports.RegisterUserInput{Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	session, err := f.auth.Login(ctx, "ann@example.com", "password123")
	require.NoError(t, err)
	identity, err := f.auth.Authenticate(ctx, session.Token)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, session.Token, identity))
	revoked, err := f.store.Revocations.IsRevoked(ctx, session.Token)
	require.NoError(t, err)
	assert.True(t, revoked)

	// a second revoke of the same token is not an error
	require.NoError(t, f.auth.Logout(ctx, session.Token, identity))

	_, err = f.auth.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogout_LedgerFault(t *testing.T) {
	auth := NewAuthService(memory.NewUserRepository(), plainHasher{}, newStubIssuer(), failingLedger{}, time.Hour)

	err := auth.Logout(context.Background(), "tok", userIdentity())
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)

	assert.ErrorIs(t, auth.Logout(context.Background(), "", userIdentity()), domain.ErrAuthenticationRequired)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		auth := NewAuthService(memory.NewUserRepository(), plainHasher{}, newStubIssuer(), memory.NewRevocationLedger(), time.Hour)
		_, err := auth.Authenticate(ctx, "")
		assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)
	})

	t.Run("ledger fault fails closed", func(t *testing.T) {
		issuer := newStubIssuer()
		tok, _, err := issuer.Issue(userIdentity(), time.Hour)
		require.NoError(t, err)

		auth := NewAuthService(memory.NewUserRepository(), plainHasher{}, issuer, failingLedger{}, time.Hour)
		_, err = auth.Authenticate(ctx, tok)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, errStorage)
	})

	t.Run("verifier error is wrapped", func(t *testing.T) {
		issuer := newStubIssuer()
		issuer.err = errors.New("bad signature")

		auth := NewAuthService(memory.NewUserRepository(), plainHasher{}, issuer, memory.NewRevocationLedger(), time.Hour)
		_, err := auth.Authenticate(ctx, "tok")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("expired token", func(t *testing.T) {
		now := time.Now()
		clock := func() time.Time { return now }
		issuer, err := token.NewJWTIssuer("secret", token.WithClock(clock))
		require.NoError(t, err)
		tok, _, err := issuer.Issue(userIdentity(), time.Minute)
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		auth := NewAuthService(memory.NewUserRepository(), plainHasher{}, issuer, memory.NewRevocationLedger(), time.Hour)
		_, err = auth.Authenticate(ctx, tok)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
