package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderFailed     OrderStatus = "failed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderFailed:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPaypal PaymentMethod = "paypal"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentPaypal
}

// Order is owned by the buying user, not by the product's seller.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	ProductID     uuid.UUID     `json:"product_id"`
	UserID        uuid.UUID     `json:"user_id"`
	Email         string        `json:"email"`
	Quantity      int           `json:"quantity"`
	TotalPrice    float64       `json:"total_price"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	DownloadURL   string        `json:"download_url,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Product is filled in by the order service for responses; it is not stored.
	Product *Product `json:"product,omitempty"`
}
