package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) ports.OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, product_id, user_id, email, quantity, total_price, status, payment_method, download_url, created_at, updated_at`

func (r *OrderRepository) Save(ctx context.Context, o *domain.Order) error {
	query := `
		INSERT INTO orders (id, product_id, user_id, email, quantity, total_price, status, payment_method, download_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.ProductID, o.UserID, o.Email, o.Quantity, o.TotalPrice,
		o.Status, o.PaymentMethod, o.DownloadURL, o.CreatedAt, o.UpdatedAt,
	)
	if constraint, ok := violatedForeignKey(err); ok {
		if constraint == "orders_product_id_fkey" {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("%w: buyer %s no longer exists", domain.ErrInvalidCredentials, o.UserID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, userID *uuid.UUID) ([]*domain.Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if userID != nil {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query, *userID)
	} else {
		query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) error {
	query := `
		UPDATE orders
		SET quantity = $2, total_price = $3, status = $4, download_url = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, o.ID, o.Quantity, o.TotalPrice, o.Status, o.DownloadURL, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return expectAffected(res, domain.ErrOrderNotFound)
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return expectAffected(res, domain.ErrOrderNotFound)
}

func scanOrder(s scanner) (*domain.Order, error) {
	o := &domain.Order{}
	err := s.Scan(
		&o.ID, &o.ProductID, &o.UserID, &o.Email, &o.Quantity, &o.TotalPrice,
		&o.Status, &o.PaymentMethod, &o.DownloadURL, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}
