package memory

import (
	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

// Store bundles the repositories with the same delete cascade the Postgres
// schema enforces through foreign keys.
type Store struct {
	Users       *UserRepository
	Products    *ProductRepository
	Orders      *OrderRepository
	Revocations *RevocationLedger
}

func NewStore() *Store {
	s := &Store{
		Users:       NewUserRepository(),
		Products:    NewProductRepository(),
		Orders:      NewOrderRepository(),
		Revocations: NewRevocationLedger(),
	}

	s.Users.onDelete = append(s.Users.onDelete,
		s.Products.deleteOwnedBy,
		func(userID uuid.UUID) {
			s.Orders.deleteWhere(func(o domain.Order) bool { return o.UserID == userID })
		},
	)
	s.Products.onDelete = append(s.Products.onDelete, func(productID uuid.UUID) {
		s.Orders.deleteWhere(func(o domain.Order) bool { return o.ProductID == productID })
	})
	return s
}
