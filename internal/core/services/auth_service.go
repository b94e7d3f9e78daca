package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

const DefaultTokenTTL = 24 * time.Hour

type AuthService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
	ledger   ports.RevocationLedger
	tokenTTL time.Duration
}

func NewAuthService(userRepo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, ledger ports.RevocationLedger, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		ledger:   ledger,
		tokenTTL: tokenTTL,
	}
}

// Login checks the credentials and issues a bearer token. Unknown emails and
// wrong passwords produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.RequiredField("email")
	}
	if password == "" {
		return nil, domain.RequiredField("password")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: failed to get user: %w", domain.ErrInvalidCredentials, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	subject := domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
	token, expiresAt, err := s.issuer.Issue(subject, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &ports.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes exactly the presented token. Revoking a token twice is not
// an error.
func (s *AuthService) Logout(ctx context.Context, token string, identity domain.Identity) error {
	if token == "" {
		return domain.ErrAuthenticationRequired
	}

	err := s.ledger.Revoke(ctx, token, identity.ExpiresAt)
	if err != nil && !errors.Is(err, domain.ErrDuplicateToken) {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Authenticate consults the revocation ledger before trusting the signature.
// A ledger failure rejects the token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrAuthenticationRequired
	}

	revoked, err := s.ledger.IsRevoked(ctx, token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: revocation lookup failed: %w", domain.ErrInvalidCredentials, err)
	}
	if revoked {
		return domain.Identity{}, domain.ErrTokenRevoked
	}

	identity, err := s.issuer.Verify(token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.Identity{}, err
		}
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}

	return identity, nil
}
