package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the verified subject of a bearer token.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanMutate reports whether the identity may change or remove a resource
// recorded as owned by ownerID: owners and admins only.
func (i Identity) CanMutate(ownerID uuid.UUID) bool {
	if i.UserID == uuid.Nil {
		return false
	}
	return i.UserID == ownerID || i.IsAdmin()
}

// RevocationEntry marks a single bearer token as dead until ExpiresAt, after
// which the token is unverifiable anyway and the entry may be purged.
type RevocationEntry struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
