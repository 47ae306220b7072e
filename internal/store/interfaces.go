package store

import (
	"context"

	"github.com/dviradani/amazon-backend/internal/domain"
)

// SearchProductsParams is the query descriptor for the catalog search.
// It is built once per request from the raw (string-typed) query parameters,
// consumed by a single SearchProducts call and then discarded.
//
// Price and Rating stay raw strings on purpose: the sentinel value "all" and
// the empty string steer whether the corresponding filter applies at all, so
// numeric parsing happens inside the predicate assembly.
type SearchProductsParams struct {
	Query    string // free-text match against the title
	Category string // substring match against the category
	Price    string // "<min>-<max>" range, e.g. "1-50"
	Rating   string // minimum rating threshold
	Order    string // lowest | highest | toprated | newest | anything else
	Page     int    // 1-based
	PageSize int
}

// Offset returns the number of matched rows to skip for the requested page.
func (p SearchProductsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ProductStorer defines the database operations for the product catalog.
type ProductStorer interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetProductByToken(ctx context.Context, token string) (*domain.Product, error)
	SearchProducts(ctx context.Context, params SearchProductsParams) ([]domain.Product, error)
	ResetProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error)
}

// UserStorer defines the database operations for user accounts.
type UserStorer interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OrderStorer defines the database operations for orders.
type OrderStorer interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
}
