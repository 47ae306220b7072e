package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dviradani/amazon-backend/internal/domain"
)

// --- OrderStorer Implementation ---

// CreateOrder persists a new order. Line items and the shipping address are
// stored as JSONB, matching the document shape the storefront submits.
func (s *PostgresStore) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	itemsJSON, err := json.Marshal(order.OrderItems)
	if err != nil {
		return nil, fmt.Errorf("store: CreateOrder failed to marshal order items: %w", err)
	}
	var addressJSON []byte
	if order.ShippingAddress != nil && len(*order.ShippingAddress) > 0 {
		addressJSON = *order.ShippingAddress
	} else {
		addressJSON = []byte("null")
	}

	query := `
		INSERT INTO orders
			(user_id, order_items, shipping_address, payment_method, items_price, shipping_price, tax_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, order_items, shipping_address, payment_method, items_price, shipping_price, tax_price, total_price, created_at, updated_at;
	`
	row := s.db.QueryRowContext(ctx, query,
		order.UserID, itemsJSON, addressJSON, order.PaymentMethod,
		order.ItemsPrice, order.ShippingPrice, order.TaxPrice, order.TotalPrice,
	)

	createdOrder, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("store: CreateOrder failed to scan row: %w", err)
	}
	return createdOrder, nil
}

func (s *PostgresStore) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, user_id, order_items, shipping_address, payment_method, items_price, shipping_price, tax_price, total_price, created_at, updated_at
		FROM orders
		WHERE id = $1;
	`
	order, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("store: GetOrderByID failed to scan row: %w", err)
	}
	return order, nil
}

// scanOrder scans one order row, unpacking the JSONB columns.
func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var o domain.Order
	var itemsJSON []byte
	var scannedAddress sql.NullString
	err := row.Scan(
		&o.ID, &o.UserID, &itemsJSON, &scannedAddress, &o.PaymentMethod,
		&o.ItemsPrice, &o.ShippingPrice, &o.TaxPrice, &o.TotalPrice,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.OrderItems); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	if scannedAddress.Valid && scannedAddress.String != "" && scannedAddress.String != "null" {
		rawMsg := json.RawMessage(scannedAddress.String)
		o.ShippingAddress = &rawMsg
	}
	return &o, nil
}
