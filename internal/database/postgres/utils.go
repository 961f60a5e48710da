package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// parseUserUUID parses a user ID string to uuid.UUID with consistent error message.
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	return u, nil
}

// classifyStoreError tags a driver error as a constraint violation or a
// transient failure so callers can decide whether the batch fallback path
// is worth attempting. Constraint violations are never retried.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == PgErrorClassIntegrityViolation {
		return fmt.Errorf("%w: %s", domain.ErrStoreConstraint, pgErr.Message)
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreTransient, err)
}
