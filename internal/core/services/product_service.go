package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

type productService struct {
	repo     ports.ProductRepository
	userRepo ports.UserRepository
}

func NewProductService(repo ports.ProductRepository, userRepo ports.UserRepository) ports.ProductService {
	return &productService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *productService) Create(ctx context.Context, actor domain.Identity, input ports.CreateProductInput) (*domain.Product, error) {
	if actor.UserID == uuid.Nil {
		return nil, domain.ErrAuthenticationRequired
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.RequiredField("name")
	}
	if input.Price == nil {
		return nil, domain.RequiredField("price")
	}
	if err := validatePrice(*input.Price); err != nil {
		return nil, err
	}
	if err := validateURL("file_url", input.FileURL); err != nil {
		return nil, err
	}
	if err := validateURL("image_url", input.ImageURL); err != nil {
		return nil, err
	}

	if err := requireAccount(ctx, s.userRepo, actor); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New(),
		UserID:      actor.UserID,
		Name:        name,
		Description: input.Description,
		Price:       *input.Price,
		FileURL:     input.FileURL,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, ownerID *uuid.UUID) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) Update(ctx context.Context, actor domain.Identity, id uuid.UUID, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, product.UserID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.RequiredField("name")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
		product.Price = *input.Price
	}
	if input.FileURL != nil {
		if err := validateURL("file_url", *input.FileURL); err != nil {
			return nil, err
		}
		product.FileURL = *input.FileURL
	}
	if input.ImageURL != nil {
		if err := validateURL("image_url", *input.ImageURL); err != nil {
			return nil, err
		}
		product.ImageURL = *input.ImageURL
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, product.UserID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
