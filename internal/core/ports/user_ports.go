package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Name     *string
	Role     *domain.Role
}

type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, actor domain.Identity, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) error
}
