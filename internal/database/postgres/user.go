package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// UserRepository implements the user directory slice for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserByID returns the user, or (nil, nil) if no such user exists.
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT user_id, nickname, coins FROM users WHERE user_id = $1`
	var user domain.User
	err = r.db.QueryRow(ctx, query, userUUID).Scan(&user.ID, &user.Nickname, &user.Coins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", classifyStoreError(err))
	}
	return &user, nil
}

// UpdateUser persists nickname and balance for an existing user.
func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	userUUID, err := parseUserUUID(user.ID)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET nickname = $1, coins = $2, updated_at = NOW()
		WHERE user_id = $3
	`
	tag, err := r.db.Exec(ctx, query, user.Nickname, user.Coins, userUUID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", classifyStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AdjustCoins applies a balance delta in a single statement so Postgres
// row locking serializes concurrent updates to the same user. A debit
// that would go negative affects no rows and fails with
// domain.ErrInsufficientFunds.
func (r *UserRepository) AdjustCoins(ctx context.Context, userID string, delta int) error {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET coins = coins + $1, updated_at = NOW()
		WHERE user_id = $2 AND coins + $1 >= 0
	`
	tag, err := r.db.Exec(ctx, query, delta, userUUID)
	if err != nil {
		return fmt.Errorf("failed to adjust coins: %w", classifyStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing user from a rejected debit.
		exists, err := r.userExists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrUserNotFound
		}
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (r *UserRepository) userExists(ctx context.Context, userID string) (bool, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return false, err
	}
	var exists bool
	err = r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`, userUUID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", classifyStoreError(err))
	}
	return exists, nil
}
