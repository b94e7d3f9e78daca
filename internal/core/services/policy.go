package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

// authorize applies the owner-or-admin rule shared by every mutable resource.
func authorize(actor domain.Identity, ownerID uuid.UUID) error {
	if actor.UserID == uuid.Nil {
		return domain.ErrAuthenticationRequired
	}
	if !actor.CanMutate(ownerID) {
		return domain.ErrUnauthorized
	}
	return nil
}

// requireAccount rejects a still-valid token whose user has been deleted.
func requireAccount(ctx context.Context, users ports.UserRepository, actor domain.Identity) error {
	if actor.UserID == uuid.Nil {
		return domain.ErrAuthenticationRequired
	}
	if _, err := users.GetByID(ctx, actor.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("%w: account %s no longer exists", domain.ErrInvalidCredentials, actor.UserID)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}
