package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/digimarket/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

func ptr[T any](v T) *T { return &v }

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository(), plainHasher{})

	user, err := svc.Register(ctx, ports.RegisterUserInput{Email: " Ann@Example.com", Password: "password123", Name: " Ann "})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "hashed:password123", user.PasswordHash)

	_, err = svc.Register(ctx, ports.RegisterUserInput{Email: "ann@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(memory.NewUserRepository(), plainHasher{})

	tests := []struct {
		name     string
		input    ports.RegisterUserInput
		wantCode int
	}{
		{name: "missing email", input: ports.RegisterUserInput{Password: "password123"}, wantCode: domain.CodeRequiredField},
		{name: "bad email", input: ports.RegisterUserInput{Email: "ann", Password: "password123"}, wantCode: domain.CodeInvalidEmail},
		{name: "short password", input: ports.RegisterUserInput{Email: "a@b.io", Password: "1234567"}, wantCode: domain.CodeInvalidPassword},
		{name: "bad role", input: ports.RegisterUserInput{Email: "a@b.io", Password: "password123", Role: "root"}, wantCode: domain.CodeInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantCode, verr.Code)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository(), plainHasher{})

	ann, err := svc.Register(ctx, ports.RegisterUserInput{Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)
	bob, err := svc.Register(ctx, ports.RegisterUserInput{Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	annIdentity := domain.Identity{UserID: ann.ID, Role: domain.RoleUser}

	t.Run("owner changes password", func(t *testing.T) {
		updated, err := svc.Update(ctx, annIdentity, ann.ID, ports.UpdateUserInput{Password: ptr("new-password")})
		require.NoError(t, err)
		assert.Equal(t, "hashed:new-password", updated.PasswordHash)
	})

	t.Run("untouched password keeps hash", func(t *testing.T) {
		updated, err := svc.Update(ctx, annIdentity, ann.ID, ports.UpdateUserInput{Name: ptr("Ann")})
		require.NoError(t, err)
		assert.Equal(t, "hashed:new-password", updated.PasswordHash)
	})

	t.Run("other user forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, annIdentity, bob.ID, ports.UpdateUserInput{Name: ptr("Hacked")})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("self promotion forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, annIdentity, ann.ID, ports.UpdateUserInput{Role: ptr(domain.RoleAdmin)})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("role field forbidden even when unchanged", func(t *testing.T) {
		_, err := svc.Update(ctx, annIdentity, ann.ID, ports.UpdateUserInput{Role: ptr(domain.RoleUser)})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("email taken", func(t *testing.T) {
		_, err := svc.Update(ctx, annIdentity, ann.ID, ports.UpdateUserInput{Email: ptr("BOB@example.com")})
		assert.ErrorIs(t, err, domain.ErrEmailInUse)
	})

	t.Run("admin promotes", func(t *testing.T) {
		updated, err := svc.Update(ctx, adminIdentity(), bob.ID, ports.UpdateUserInput{Role: ptr(domain.RoleAdmin)})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, updated.Role)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository(), plainHasher{})
	ann, err := svc.Register(ctx, ports.RegisterUserInput{Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, userIdentity(), ann.ID), domain.ErrUnauthorized)
	require.NoError(t, svc.Delete(ctx, domain.Identity{UserID: ann.ID, Role: domain.RoleUser}, ann.ID))

	_, err = svc.GetByID(ctx, ann.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
