// Package token issues and verifies HS256 bearer tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

// Claims is the payload carried by every bearer token. The random ID (jti)
// keeps two tokens issued to the same user in the same second distinct.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTIssuer struct {
	secret []byte
	now    func() time.Time
}

type Option func(*JWTIssuer)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(i *JWTIssuer) { i.now = now }
}

func NewJWTIssuer(secret string, opts ...Option) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	i := &JWTIssuer{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

func (i *JWTIssuer) Issue(subject domain.Identity, ttl time.Duration) (string, time.Time, error) {
	if subject.UserID == uuid.Nil {
		return "", time.Time{}, errors.New("token subject is required")
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("token ttl must be positive")
	}

	issuedAt := jwt.NewNumericDate(i.now())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(ttl))

	claims := Claims{
		Email: subject.Email,
		Role:  subject.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.UserID.String(),
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt.Time, nil
}

// Verify checks signature and expiry independently; a token is rejected if
// either fails. exp must be strictly after now.
func (i *JWTIssuer) Verify(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: malformed subject", domain.ErrInvalidCredentials)
	}
	if !claims.Role.Valid() {
		return domain.Identity{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidCredentials, claims.Role)
	}

	identity := domain.Identity{
		UserID:    userID,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	return identity, nil
}
