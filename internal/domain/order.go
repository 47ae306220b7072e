package domain

import (
	"encoding/json"
	"time"
)

// OrderItem is the minimal line-item reference kept on an order.
// Whatever else the storefront submits per item is intentionally dropped;
// only the product identifier survives.
type OrderItem struct {
	Product int64 `json:"product"`
}

// Order represents a placed order owned by a user.
// ShippingAddress is kept as raw JSON: the backend never inspects it, it is
// stored and echoed back verbatim (JSONB column in the store).
type Order struct {
	ID              int64            `json:"_id"`
	UserID          int64            `json:"user"`
	OrderItems      []OrderItem      `json:"orderItems"`
	ShippingAddress *json.RawMessage `json:"shippingAddress,omitempty"`
	PaymentMethod   *string          `json:"paymentMethod,omitempty"`
	ItemsPrice      float64          `json:"itemsPrice"`
	ShippingPrice   float64          `json:"shippingPrice"`
	TaxPrice        float64          `json:"taxPrice"`
	TotalPrice      float64          `json:"totalPrice"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}
