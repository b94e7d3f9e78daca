package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

var errStorage = errors.New("connection refused")

// plainHasher keeps tests fast; it is obviously not a real hash.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, d string) bool       { return d == "hashed:"+p }

type failingUsers struct{ ports.UserRepository }

func (failingUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errStorage
}

type failingLedger struct {
	purges *atomic.Int32
}

func (failingLedger) Revoke(context.Context, string, time.Time) error { return errStorage }
func (failingLedger) IsRevoked(context.Context, string) (bool, error) { return false, errStorage }
func (l failingLedger) PurgeExpired(context.Context, time.Time) (int64, error) {
	if l.purges != nil {
		l.purges.Add(1)
	}
	return 0, errStorage
}

// stubIssuer returns a fixed identity for any token it issued.
type stubIssuer struct {
	issued map[string]domain.Identity
	err    error
}

func newStubIssuer() *stubIssuer {
	return &stubIssuer{issued: make(map[string]domain.Identity)}
}

func (s *stubIssuer) Issue(subject domain.Identity, ttl time.Duration) (string, time.Time, error) {
	tok := uuid.NewString()
	subject.ExpiresAt = time.Now().Add(ttl)
	s.issued[tok] = subject
	return tok, subject.ExpiresAt, nil
}

func (s *stubIssuer) Verify(token string) (domain.Identity, error) {
	if s.err != nil {
		return domain.Identity{}, s.err
	}
	id, ok := s.issued[token]
	if !ok {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	return id, nil
}

func userIdentity() domain.Identity {
	id := uuid.New()
	return domain.Identity{UserID: id, Email: "user-" + id.String()[:8] + "@example.com", Role: domain.RoleUser}
}

func adminIdentity() domain.Identity {
	id := uuid.New()
	return domain.Identity{UserID: id, Email: "admin-" + id.String()[:8] + "@example.com", Role: domain.RoleAdmin}
}

// stored saves a user record behind the identity.
func stored(t *testing.T, users ports.UserRepository, id domain.Identity) domain.Identity {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		ID: id.UserID, Email: id.Email, Role: id.Role, CreatedAt: now, UpdatedAt: now,
	}))
	return id
}
