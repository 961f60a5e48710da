package repository

import (
	"context"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// Pool defines the pool catalog lookups the core consumes.
type Pool interface {
	// GetPoolByID returns the pool with its items in configured order,
	// or (nil, nil) when it does not exist.
	GetPoolByID(ctx context.Context, poolID int) (*domain.GachaPool, error)
	ListAllPools(ctx context.Context) ([]domain.GachaPool, error)
}

// AuditLog appends and reads gacha audit records. Records are append-only:
// the core never updates or deletes them.
type AuditLog interface {
	AppendGachaRecord(ctx context.Context, record domain.GachaRecord) error
	// AppendGachaRecords writes a batch of records in one transaction.
	AppendGachaRecords(ctx context.Context, records []domain.GachaRecord) error
	GetGachaRecords(ctx context.Context, userID string, limit int) ([]domain.GachaRecord, error)
}

// Achievement is the ledger the core grants titles through.
type Achievement interface {
	// GrantTitle is idempotent: granting an already-held title is a no-op.
	GrantTitle(ctx context.Context, userID string, titleID int) error
	GetUserTitles(ctx context.Context, userID string) ([]int, error)
}
