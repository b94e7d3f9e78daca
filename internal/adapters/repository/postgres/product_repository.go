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

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ports.ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, user_id, name, description, price, file_url, image_url, created_at, updated_at`

func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, user_id, name, description, price, file_url, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.UserID, p.Name, p.Description, p.Price, p.FileURL, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	if _, ok := violatedForeignKey(err); ok {
		return fmt.Errorf("%w: owner %s no longer exists", domain.ErrInvalidCredentials, p.UserID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, ownerID *uuid.UUID) ([]*domain.Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if ownerID != nil {
		query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query, *ownerID)
	} else {
		query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, file_url = $5, image_url = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.Price, p.FileURL, p.ImageURL, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return expectAffected(res, domain.ErrProductNotFound)
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return expectAffected(res, domain.ErrProductNotFound)
}

func scanProduct(s scanner) (*domain.Product, error) {
	p := &domain.Product{}
	err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price, &p.FileURL, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
