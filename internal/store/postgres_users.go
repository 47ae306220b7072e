package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/dviradani/amazon-backend/internal/domain"
)

// --- UserStorer Implementation ---

func (s *PostgresStore) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at, updated_at;
	`
	row := s.db.QueryRowContext(ctx, query, user.Name, user.Email, user.PasswordHash)

	var createdUser domain.User
	err := row.Scan(
		&createdUser.ID,
		&createdUser.Name,
		&createdUser.Email,
		&createdUser.PasswordHash,
		&createdUser.CreatedAt,
		&createdUser.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // Unique violation
			if strings.Contains(pqErr.Constraint, "users_email_key") || strings.Contains(pqErr.Detail, "Key (email)") {
				return nil, ErrEmailExists
			}
		}
		return nil, fmt.Errorf("store: CreateUser failed to scan row: %w", err)
	}
	return &createdUser, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1;
	`
	var user domain.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("store: GetUserByEmail failed to scan row: %w", err)
	}
	return &user, nil
}
