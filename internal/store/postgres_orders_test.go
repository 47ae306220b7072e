package store

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dviradani/amazon-backend/internal/domain"
)

var orderTestColumns = []string{
	"id", "user_id", "order_items", "shipping_address", "payment_method",
	"items_price", "shipping_price", "tax_price", "total_price", "created_at", "updated_at",
}

func TestPostgresStore_CreateOrder(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	address := json.RawMessage(`{"city":"Tel Aviv"}`)
	orderToCreate := &domain.Order{
		UserID:          7,
		OrderItems:      []domain.OrderItem{{Product: 1}, {Product: 3}},
		ShippingAddress: &address,
		PaymentMethod:   PtrTo("PayPal"),
		ItemsPrice:      132.25,
		ShippingPrice:   10,
		TaxPrice:        19.84,
		TotalPrice:      162.09,
	}

	query := regexp.QuoteMeta(`INSERT INTO orders`)

	rows := sqlmock.NewRows(orderTestColumns).
		AddRow(int64(42), int64(7), []byte(`[{"product":1},{"product":3}]`), []byte(`{"city":"Tel Aviv"}`),
			"PayPal", 132.25, 10.0, 19.84, 162.09, now, now)

	mock.ExpectQuery(query).
		WithArgs(int64(7), []byte(`[{"product":1},{"product":3}]`), []byte(`{"city":"Tel Aviv"}`),
			"PayPal", 132.25, 10.0, 19.84, 162.09).
		WillReturnRows(rows)

	createdOrder, err := store.CreateOrder(context.Background(), orderToCreate)

	require.NoError(t, err, "CreateOrder should not return an error")
	require.NotNil(t, createdOrder)
	assert.Equal(t, int64(42), createdOrder.ID)
	assert.Equal(t, int64(7), createdOrder.UserID)
	require.Len(t, createdOrder.OrderItems, 2)
	assert.Equal(t, int64(1), createdOrder.OrderItems[0].Product)
	assert.Equal(t, int64(3), createdOrder.OrderItems[1].Product)
	require.NotNil(t, createdOrder.ShippingAddress)
	assert.JSONEq(t, `{"city":"Tel Aviv"}`, string(*createdOrder.ShippingAddress))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetOrderByID_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(`FROM orders`)

	mock.ExpectQuery(query).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(orderTestColumns))

	order, err := store.GetOrderByID(context.Background(), 99)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrderNotFound), "error should be ErrOrderNotFound")
	assert.Nil(t, order)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetOrderByID(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	query := regexp.QuoteMeta(`FROM orders`)

	rows := sqlmock.NewRows(orderTestColumns).
		AddRow(int64(42), int64(7), []byte(`[{"product":1}]`), nil,
			nil, 10.0, 0.0, 1.5, 11.5, now, now)

	mock.ExpectQuery(query).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	order, err := store.GetOrderByID(context.Background(), 42)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(42), order.ID)
	require.Len(t, order.OrderItems, 1)
	assert.Nil(t, order.ShippingAddress)
	assert.Nil(t, order.PaymentMethod)

	require.NoError(t, mock.ExpectationsWereMet())
}
