package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/schedulist/schedulist/internal/models"
)

// CreateUser inserts a new user and the personal profile that carries the
// user's event types. Both land in one transaction so a user can never exist
// without a profile.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, display_name, slug, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.DisplayName,
		user.Slug,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO profiles (owner_user_id, slug, name, team_id) VALUES (?, ?, ?, 0)",
		user.ID, user.Slug, user.DisplayName,
	)
	if err != nil {
		return fmt.Errorf("failed to create personal profile: %w", err)
	}

	profileID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read profile id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO profile_members (profile_id, user_id, role) VALUES (?, ?, 'owner')",
		profileID, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to add profile owner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	query := fmt.Sprintf(
		`SELECT id, email, display_name, slug, password_hash, created_at, updated_at
		 FROM users WHERE %s = ?`, column)

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.Slug,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return user, nil
}
