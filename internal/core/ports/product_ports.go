package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, ownerID *uuid.UUID) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       *float64
	FileURL     string
	ImageURL    string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	FileURL     *string
	ImageURL    *string
}

type ProductService interface {
	Create(ctx context.Context, actor domain.Identity, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, ownerID *uuid.UUID) ([]*domain.Product, error)
	Update(ctx context.Context, actor domain.Identity, id uuid.UUID, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) error
}
