package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dviradani/amazon-backend/internal/domain"
)

// ResetProducts wipes the catalog and inserts the given products, assigning
// fresh identifiers. Used by the development reset endpoint.
func (s *PostgresStore) ResetProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: ResetProducts failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE products RESTART IDENTITY;`); err != nil {
		return nil, fmt.Errorf("store: ResetProducts failed to truncate products: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO products (token, title, description, image, category, price, rating_rate, rating_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s;`, productColumns)

	seeded := make([]domain.Product, 0, len(products))
	for _, p := range products {
		row := tx.QueryRowContext(ctx, insertQuery,
			p.Token, p.Title, p.Description, p.Image, p.Category,
			p.Price, p.Rating.Rate, p.Rating.Count,
		)
		created, err := scanProduct(row)
		if err != nil {
			return nil, fmt.Errorf("store: ResetProducts failed to insert %q: %w", p.Title, err)
		}
		seeded = append(seeded, *created)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: ResetProducts failed to commit: %w", err)
	}
	return seeded, nil
}

// SeedProducts returns the built-in sample catalog with freshly generated
// lookup tokens.
func SeedProducts() []domain.Product {
	ptr := func(s string) *string { return &s }
	products := []domain.Product{
		{
			Title:       "Fjallraven Foldsack No. 1 Backpack",
			Description: ptr("Fits 15 inch laptops, with a padded sleeve and everyday styling."),
			Category:    "men's clothing",
			Price:       109.95,
			Rating:      domain.Rating{Rate: 3.9, Count: 120},
		},
		{
			Title:       "Mens Casual Premium Slim Fit T-Shirt",
			Description: ptr("Slim-fitting style, contrast raglan long sleeve."),
			Category:    "men's clothing",
			Price:       22.3,
			Rating:      domain.Rating{Rate: 4.1, Count: 259},
		},
		{
			Title:       "Solid Gold Petite Micropave Ring",
			Description: ptr("Satisfaction guaranteed. Designed and sold by Hafeez Center."),
			Category:    "jewelery",
			Price:       168.0,
			Rating:      domain.Rating{Rate: 3.9, Count: 70},
		},
		{
			Title:       "White Gold Plated Princess Ring",
			Description: ptr("Classic created wedding engagement solitaire ring."),
			Category:    "jewelery",
			Price:       9.99,
			Rating:      domain.Rating{Rate: 3.0, Count: 400},
		},
		{
			Title:       "SanDisk SSD PLUS 1TB Internal SSD",
			Description: ptr("Easy upgrade for faster boot up, shutdown and application load."),
			Category:    "electronics",
			Price:       109.0,
			Rating:      domain.Rating{Rate: 2.9, Count: 470},
		},
		{
			Title:       "Acer SB220Q 21.5 inch Full HD IPS Monitor",
			Description: ptr("Ultra-thin zero-frame monitor with Radeon FreeSync."),
			Category:    "electronics",
			Price:       599.0,
			Rating:      domain.Rating{Rate: 2.9, Count: 250},
		},
		{
			Title:       "DANVOUY Womens Casual V-Neck T-Shirt",
			Description: ptr("Lightweight, soft fabric for a casual spring and summer look."),
			Category:    "women's clothing",
			Price:       12.99,
			Rating:      domain.Rating{Rate: 3.6, Count: 145},
		},
		{
			Title:       "Opna Women's Short Sleeve Moisture Tee",
			Description: ptr("Lightweight, breathable and moisture wicking fabric."),
			Category:    "women's clothing",
			Price:       7.95,
			Rating:      domain.Rating{Rate: 4.5, Count: 146},
		},
	}
	for i := range products {
		products[i].Token = uuid.NewString()
	}
	return products
}
