package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yeongunheo/kitchenpos/internal/models"
)

const userColumns = "id, email, display_name, password_hash, created_at, updated_at"

// CreateUser inserts a new staff user.
func (r *repo) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.q.Exec(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *repo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

// GetUserByID retrieves a user by their ID.
func (r *repo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *repo) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
