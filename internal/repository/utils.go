package repository

import (
	"context"

	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/logger"
)

// Rollbacker is the minimal transaction surface SafeRollback needs.
type Rollbacker interface {
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Rollbacker) {
	if err := tx.Rollback(ctx); err != nil {
		// Check for common "closed" errors to avoid noise
		if err.Error() != domain.ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
