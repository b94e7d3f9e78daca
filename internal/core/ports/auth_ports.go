package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

// PasswordHasher is a salted, slow, one-way hash. Verify never errors:
// a malformed digest simply does not match.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs and verifies bearer tokens. Verify returns an error
// wrapping domain.ErrInvalidCredentials for bad signatures, malformed
// tokens and expired tokens alike.
type TokenIssuer interface {
	Issue(subject domain.Identity, ttl time.Duration) (token string, expiresAt time.Time, err error)
	Verify(token string) (domain.Identity, error)
}

// RevocationLedger is the persisted set of logged-out, not yet expired tokens.
type RevocationLedger interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type Session struct {
	User      *domain.User `json:"-"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, token string, identity domain.Identity) error
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}
