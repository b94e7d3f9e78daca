package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// List returns every order when userID is nil, otherwise only that user's.
	List(ctx context.Context, userID *uuid.UUID) ([]*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateOrderInput struct {
	ProductID     uuid.UUID
	Email         string
	Quantity      int
	PaymentMethod domain.PaymentMethod
}

type UpdateOrderInput struct {
	Quantity    *int
	Status      *domain.OrderStatus
	DownloadURL *string
}

type OrderService interface {
	Create(ctx context.Context, actor domain.Identity, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, actor domain.Identity, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, actor domain.Identity) ([]*domain.Order, error)
	Update(ctx context.Context, actor domain.Identity, id uuid.UUID, input UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) error
}
