package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/repository"
)

// PoolRepository implements pool catalog lookups for PostgreSQL
type PoolRepository struct {
	db *pgxpool.Pool
}

// NewPoolRepository creates a new PoolRepository
func NewPoolRepository(db *pgxpool.Pool) *PoolRepository {
	return &PoolRepository{db: db}
}

// GetPoolByID returns the pool with its items in configured order, or
// (nil, nil) when it does not exist.
func (r *PoolRepository) GetPoolByID(ctx context.Context, poolID int) (*domain.GachaPool, error) {
	query := `SELECT pool_id, name, cost_coins FROM gacha_pools WHERE pool_id = $1`
	var pool domain.GachaPool
	err := r.db.QueryRow(ctx, query, poolID).Scan(&pool.ID, &pool.Name, &pool.CostCoins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pool: %w", classifyStoreError(err))
	}

	items, err := r.poolItems(ctx, poolID)
	if err != nil {
		return nil, err
	}
	pool.Items = items
	return &pool, nil
}

// ListAllPools returns every configured pool with its items.
func (r *PoolRepository) ListAllPools(ctx context.Context) ([]domain.GachaPool, error) {
	rows, err := r.db.Query(ctx, `SELECT pool_id, name, cost_coins FROM gacha_pools ORDER BY pool_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", classifyStoreError(err))
	}
	defer rows.Close()

	pools := []domain.GachaPool{}
	for rows.Next() {
		var pool domain.GachaPool
		if err := rows.Scan(&pool.ID, &pool.Name, &pool.CostCoins); err != nil {
			return nil, fmt.Errorf("failed to scan pool: %w", err)
		}
		pools = append(pools, pool)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range pools {
		items, err := r.poolItems(ctx, pools[i].ID)
		if err != nil {
			return nil, err
		}
		pools[i].Items = items
	}
	return pools, nil
}

// poolItems loads a pool's entries in configured order. The draw walk
// depends on this order for stable tie-breaks.
func (r *PoolRepository) poolItems(ctx context.Context, poolID int) ([]domain.GachaPoolItem, error) {
	query := `
		SELECT pool_id, item_kind, template_id, quantity, weight
		FROM gacha_pool_items
		WHERE pool_id = $1
		ORDER BY sort_order, pool_item_id
	`
	rows, err := r.db.Query(ctx, query, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool items: %w", classifyStoreError(err))
	}
	defer rows.Close()

	items := []domain.GachaPoolItem{}
	for rows.Next() {
		var item domain.GachaPoolItem
		if err := rows.Scan(&item.PoolID, &item.Kind, &item.TemplateID, &item.Quantity, &item.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan pool item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AuditLogRepository implements the append-only gacha audit log for PostgreSQL
type AuditLogRepository struct {
	db *pgxpool.Pool
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

const insertGachaRecord = `
	INSERT INTO gacha_records (user_id, pool_id, item_kind, template_id, item_name, quantity, rarity, drawn_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// AppendGachaRecord writes one audit row.
func (r *AuditLogRepository) AppendGachaRecord(ctx context.Context, record domain.GachaRecord) error {
	userUUID, err := parseUserUUID(record.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, insertGachaRecord,
		userUUID, record.PoolID, record.Kind, record.TemplateID,
		record.ItemName, record.Quantity, record.Rarity, record.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append gacha record: %w", classifyStoreError(err))
	}
	return nil
}

// AppendGachaRecords writes a batch of audit rows in one transaction.
func (r *AuditLogRepository) AppendGachaRecords(ctx context.Context, records []domain.GachaRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, classifyStoreError(err))
	}
	defer repository.SafeRollback(ctx, tx)

	for _, record := range records {
		userUUID, err := parseUserUUID(record.UserID)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, insertGachaRecord,
			userUUID, record.PoolID, record.Kind, record.TemplateID,
			record.ItemName, record.Quantity, record.Rarity, record.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to append gacha record: %w", classifyStoreError(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, classifyStoreError(err))
	}
	return nil
}

// GetGachaRecords returns the user's most recent audit rows, newest first.
func (r *AuditLogRepository) GetGachaRecords(ctx context.Context, userID string, limit int) ([]domain.GachaRecord, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT record_id, user_id, pool_id, item_kind, template_id, item_name, quantity, rarity, drawn_at
		FROM gacha_records
		WHERE user_id = $1
		ORDER BY drawn_at DESC, record_id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userUUID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get gacha records: %w", classifyStoreError(err))
	}
	defer rows.Close()

	records := []domain.GachaRecord{}
	for rows.Next() {
		var rec domain.GachaRecord
		if err := rows.Scan(&rec.RecordID, &rec.UserID, &rec.PoolID, &rec.Kind, &rec.TemplateID,
			&rec.ItemName, &rec.Quantity, &rec.Rarity, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan gacha record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
