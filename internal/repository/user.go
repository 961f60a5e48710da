package repository

import (
	"context"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// User defines the slice of the user directory the core consumes.
// Returns (nil, nil) when the user does not exist.
type User interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error

	// AdjustCoins applies a delta to the user's balance in one statement
	// so concurrent updates serialize on the row. A negative delta fails
	// with domain.ErrInsufficientFunds if the balance would go negative.
	AdjustCoins(ctx context.Context, userID string, delta int) error
}
