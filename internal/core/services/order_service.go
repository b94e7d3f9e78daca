package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

type orderService struct {
	productRepo ports.ProductRepository
	orderRepo   ports.OrderRepository
	userRepo    ports.UserRepository
}

func NewOrderService(productRepo ports.ProductRepository, orderRepo ports.OrderRepository, userRepo ports.UserRepository) ports.OrderService {
	return &orderService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

func (s *orderService) Create(ctx context.Context, actor domain.Identity, input ports.CreateOrderInput) (*domain.Order, error) {
	if actor.UserID == uuid.Nil {
		return nil, domain.ErrAuthenticationRequired
	}
	if input.ProductID == uuid.Nil {
		return nil, domain.RequiredField("product_id")
	}
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	if input.PaymentMethod == "" {
		return nil, domain.RequiredField("payment_method")
	}
	if !input.PaymentMethod.Valid() {
		return nil, domain.InvalidValue("payment_method", "Payment method must be card or paypal")
	}

	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		email = actor.Email
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if err := requireAccount(ctx, s.userRepo, actor); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:            uuid.New(),
		ProductID:     product.ID,
		UserID:        actor.UserID,
		Email:         email,
		Quantity:      input.Quantity,
		TotalPrice:    product.Price * float64(input.Quantity),
		Status:        domain.OrderPending,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	order.Product = product
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, actor domain.Identity, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, order.UserID); err != nil {
		return nil, err
	}
	if err := s.withProducts(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns every order to admins and only their own to everyone else.
func (s *orderService) ListOrders(ctx context.Context, actor domain.Identity) ([]*domain.Order, error) {
	if actor.UserID == uuid.Nil {
		return nil, domain.ErrAuthenticationRequired
	}

	var filter *uuid.UUID
	if !actor.IsAdmin() {
		filter = &actor.UserID
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if err := s.withProducts(ctx, orders...); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) Update(ctx context.Context, actor domain.Identity, id uuid.UUID, input ports.UpdateOrderInput) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, order.UserID); err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		if err := validateQuantity(*input.Quantity); err != nil {
			return nil, err
		}
		product, err := s.productRepo.GetByID(ctx, order.ProductID)
		if err != nil {
			return nil, err
		}
		order.Quantity = *input.Quantity
		order.TotalPrice = product.Price * float64(order.Quantity)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.InvalidValue("status", "Status must be pending, processing, completed or failed")
		}
		order.Status = *input.Status
	}
	if input.DownloadURL != nil {
		if err := validateURL("download_url", *input.DownloadURL); err != nil {
			return nil, err
		}
		order.DownloadURL = *input.DownloadURL
	}

	order.UpdatedAt = time.Now().UTC()
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if err := s.withProducts(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, order.UserID); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// withProducts embeds each order's product, loading every product once. An
// order whose product vanished concurrently is returned without one.
func (s *orderService) withProducts(ctx context.Context, orders ...*domain.Order) error {
	loaded := make(map[uuid.UUID]*domain.Product)
	for _, o := range orders {
		p, ok := loaded[o.ProductID]
		if !ok {
			var err error
			p, err = s.productRepo.GetByID(ctx, o.ProductID)
			if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
				return fmt.Errorf("failed to load product: %w", err)
			}
			loaded[o.ProductID] = p
		}
		o.Product = p
	}
	return nil
}
