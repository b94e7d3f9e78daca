package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
	onDelete []func(productID uuid.UUID)
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[uuid.UUID]domain.Product)}
}

func (r *ProductRepository) Save(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) List(_ context.Context, ownerID *uuid.UUID) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := []*domain.Product{}
	for _, p := range r.products {
		if ownerID != nil && p.UserID != *ownerID {
			continue
		}
		p := p
		products = append(products, &p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (r *ProductRepository) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	if _, ok := r.products[id]; !ok {
		r.mu.Unlock()
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	r.mu.Unlock()

	for _, fn := range r.onDelete {
		fn(id)
	}
	return nil
}

func (r *ProductRepository) deleteOwnedBy(userID uuid.UUID) {
	r.mu.Lock()
	var removed []uuid.UUID
	for id, p := range r.products {
		if p.UserID == userID {
			delete(r.products, id)
			removed = append(removed, id)
		}
	}
	r.mu.Unlock()

	for _, id := range removed {
		for _, fn := range r.onDelete {
			fn(id)
		}
	}
}
