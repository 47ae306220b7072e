package domain

import "time"

// Rating holds the aggregate customer rating nested under a product.
// A product that has never been rated carries a zero Rate and Count.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product represents a product in the catalog.
// The json tags follow the wire contract the storefront already consumes,
// hence "_id" for the identifier and camelCase timestamps.
type Product struct {
	ID          int64     `json:"_id"`
	Token       string    `json:"token"` // opaque lookup token, unique per product
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"` // Pointer for nullable fields
	Image       *string   `json:"image,omitempty"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Rating      Rating    `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
