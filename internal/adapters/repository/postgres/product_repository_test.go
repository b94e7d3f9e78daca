package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

func TestProductRepository_ListByOwner(t *testing.T) {
	db, mock := newMock(t)
	owner := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM products WHERE user_id = \$1`).
		WithArgs(owner.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "description", "price", "file_url", "image_url", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), owner.String(), "Ebook", "", 9.5, "", "", now, now))

	products, err := NewProductRepository(db).List(context.Background(), &owner)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, owner, products[0].UserID)
	assert.Equal(t, 9.5, products[0].Price)
}

func TestProductRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewProductRepository(db).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM products`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewProductRepository(db).Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestOrderRepository_ListAll(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM orders ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "user_id", "email", "quantity", "total_price", "status", "payment_method", "download_url", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), uuid.NewString(), uuid.NewString(), "a@x.io", 2, 19.0, "pending", "card", "", now, now))

	orders, err := NewOrderRepository(db).List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderPending, orders[0].Status)
	assert.Equal(t, domain.PaymentCard, orders[0].PaymentMethod)
}

func TestOrderRepository_UpdateMissing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`UPDATE orders`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewOrderRepository(db).Update(context.Background(), &domain.Order{ID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestProductRepository_SaveForDeletedOwner(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO products`).
		WillReturnError(&pq.Error{Code: foreignKeyViolation, Constraint: "products_user_id_fkey"})

	err := NewProductRepository(db).Save(context.Background(), &domain.Product{ID: uuid.New(), UserID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestOrderRepository_SaveForeignKeyViolations(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{constraint: "orders_user_id_fkey", want: domain.ErrInvalidCredentials},
		{constraint: "orders_product_id_fkey", want: domain.ErrProductNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			db, mock := newMock(t)

			mock.ExpectExec(`INSERT INTO orders`).
				WillReturnError(&pq.Error{Code: foreignKeyViolation, Constraint: tt.constraint})

			err := NewOrderRepository(db).Save(context.Background(), &domain.Order{ID: uuid.New(), UserID: uuid.New()})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
