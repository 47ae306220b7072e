package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dviradani/amazon-backend/internal/domain"
)

// Helper function to create a mock DB and PostgresStore for testing
func newMockDBAndStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresStore) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp)) // Use regexp matcher
	require.NoError(t, err, "Failed to create sqlmock")

	store := NewPostgresStore(db)
	require.NotNil(t, store, "Store should not be nil")

	return db, mock, store
}

// Helper function to get a pointer (useful for optional fields in domain structs)
func PtrTo[T any](v T) *T {
	return &v
}

var productTestColumns = []string{
	"id", "token", "title", "description", "image", "category",
	"price", "rating_rate", "rating_count", "created_at", "updated_at",
}

func productRow(rows *sqlmock.Rows, p domain.Product) *sqlmock.Rows {
	return rows.AddRow(
		p.ID, p.Token, p.Title, p.Description, p.Image, p.Category,
		p.Price, p.Rating.Rate, p.Rating.Count, p.CreatedAt, p.UpdatedAt,
	)
}

func sampleProduct(id int64, title, category string, price float64) domain.Product {
	now := time.Now().Truncate(time.Millisecond)
	return domain.Product{
		ID:        id,
		Token:     "tok-" + title,
		Title:     title,
		Category:  category,
		Price:     price,
		Rating:    domain.Rating{Rate: 4.0, Count: 10},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgresStore_SearchProducts_Defaults(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	// With no filters given, only the always-matching rating and price floors
	// apply (the inverted gating keeps them active for absent parameters).
	query := regexp.QuoteMeta(
		"SELECT id, token, title, description, image, category, price, rating_rate, rating_count, created_at, updated_at " +
			"FROM products WHERE rating_rate >= $1 AND price >= $2 ORDER BY id DESC LIMIT $3 OFFSET $4")

	rows := sqlmock.NewRows(productTestColumns)
	productRow(rows, sampleProduct(2, "Second", "a", 20))
	productRow(rows, sampleProduct(1, "First", "a", 10))

	mock.ExpectQuery(query).
		WithArgs(0.0, 0.0, 6, 0).
		WillReturnRows(rows)

	products, err := store.SearchProducts(context.Background(), SearchProductsParams{Page: 1, PageSize: 6})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[0].ID)
	assert.Equal(t, int64(1), products[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SearchProducts_TextAndCategoryFilters(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(
		"SELECT id, token, title, description, image, category, price, rating_rate, rating_count, created_at, updated_at " +
			"FROM products WHERE title ILIKE $1 AND category ILIKE $2 AND rating_rate >= $3 AND price >= $4 ORDER BY id DESC LIMIT $5 OFFSET $6")

	rows := sqlmock.NewRows(productTestColumns)
	productRow(rows, sampleProduct(1, "Backpack", "men's clothing", 109.95))

	mock.ExpectQuery(query).
		WithArgs("%backpack%", "%clothing%", 0.0, 0.0, 6, 0).
		WillReturnRows(rows)

	params := SearchProductsParams{Query: "backpack", Category: "clothing", Page: 1, PageSize: 6}
	products, err := store.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, products, 1)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SearchProducts_AllSentinelSkipsTextFilters(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	// "all" means no constraint for the text and category dimensions.
	query := regexp.QuoteMeta(
		"SELECT id, token, title, description, image, category, price, rating_rate, rating_count, created_at, updated_at " +
			"FROM products WHERE rating_rate >= $1 AND price >= $2 ORDER BY id DESC LIMIT $3 OFFSET $4")

	mock.ExpectQuery(query).
		WithArgs(0.0, 0.0, 6, 0).
		WillReturnRows(sqlmock.NewRows(productTestColumns))

	params := SearchProductsParams{Query: "all", Category: "all", Page: 1, PageSize: 6}
	_, err := store.SearchProducts(context.Background(), params)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

// A specific rating value disables the rating filter entirely; only the
// sentinel/absent cases keep it. This pins the long-standing gate inversion.
func TestPostgresStore_SearchProducts_SpecificRatingIsNoOp(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(
		"SELECT id, token, title, description, image, category, price, rating_rate, rating_count, created_at, updated_at " +
			"FROM products WHERE price >= $1 ORDER BY id DESC LIMIT $2 OFFSET $3")

	mock.ExpectQuery(query).
		WithArgs(0.0, 6, 0).
		WillReturnRows(sqlmock.NewRows(productTestColumns))

	params := SearchProductsParams{Rating: "4", Page: 1, PageSize: 6}
	_, err := store.SearchProducts(context.Background(), params)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

// Same inversion for price: a concrete "min-max" range applies no constraint.
func TestPostgresStore_SearchProducts_SpecificPriceIsNoOp(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(
		"SELECT id, token, title, description, image, category, price, rating_rate, rating_count, created_at, updated_at " +
			"FROM products WHERE rating_rate >= $1 ORDER BY id DESC LIMIT $2 OFFSET $3")

	mock.ExpectQuery(query).
		WithArgs(0.0, 6, 0).
		WillReturnRows(sqlmock.NewRows(productTestColumns))

	params := SearchProductsParams{Price: "10-50", Page: 1, PageSize: 6}
	_, err := store.SearchProducts(context.Background(), params)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SearchProducts_SortOrders(t *testing.T) {
	tests := []struct {
		order      string
		wantClause string
	}{
		{"lowest", "ORDER BY price ASC"},
		{"highest", "ORDER BY price DESC"},
		{"toprated", "ORDER BY rating_rate ASC"},
		{"newest", "ORDER BY created_at DESC"},
		{"", "ORDER BY id DESC"},
		{"garbage", "ORDER BY id DESC"},
	}

	for _, tc := range tests {
		t.Run("order="+tc.order, func(t *testing.T) {
			db, mock, store := newMockDBAndStore(t)
			defer db.Close()

			// Only the ORDER BY clause varies with the order parameter.
			mock.ExpectQuery(regexp.QuoteMeta(tc.wantClause)).
				WithArgs(0.0, 0.0, 6, 0).
				WillReturnRows(sqlmock.NewRows(productTestColumns))

			params := SearchProductsParams{Order: tc.order, Page: 1, PageSize: 6}
			_, err := store.SearchProducts(context.Background(), params)
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_SearchProducts_Pagination(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	// page=2, pageSize=2 skips the first two matched rows.
	query := regexp.QuoteMeta("LIMIT $3 OFFSET $4")

	rows := sqlmock.NewRows(productTestColumns)
	productRow(rows, sampleProduct(3, "Third", "a", 30))
	productRow(rows, sampleProduct(2, "Second", "a", 20))

	mock.ExpectQuery(query).
		WithArgs(0.0, 0.0, 2, 2).
		WillReturnRows(rows)

	params := SearchProductsParams{Page: 2, PageSize: 2}
	products, err := store.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(3), products[0].ID)
	assert.Equal(t, int64(2), products[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
		hasMax  bool
	}{
		{"empty", "", 0, 0, false},
		{"all sentinel", "all", 0, 0, false},
		{"full range", "10-50", 10, 50, true},
		{"unparsable max", "10-abc", 10, 0, false},
		{"unparsable min", "abc-50", 0, 50, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			minPrice, maxPrice, hasMax := parsePriceRange(tc.input)
			assert.Equal(t, tc.wantMin, minPrice)
			assert.Equal(t, tc.hasMax, hasMax)
			if tc.hasMax {
				assert.Equal(t, tc.wantMax, maxPrice)
			}
		})
	}
}

func TestNumericBound(t *testing.T) {
	assert.Equal(t, 0.0, numericBound(""))
	assert.Equal(t, 0.0, numericBound("all"))
	assert.Equal(t, 3.5, numericBound("3.5"))
}
