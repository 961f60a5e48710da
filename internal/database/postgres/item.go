package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// ItemRepository implements template catalog lookups for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

// GetRodTemplate returns the rod template, or (nil, nil) when absent.
func (r *ItemRepository) GetRodTemplate(ctx context.Context, id int) (*domain.RodTemplate, error) {
	query := `SELECT rod_id, name, rarity, base_value, durability FROM rods WHERE rod_id = $1`
	var t domain.RodTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Rarity, &t.BaseValue, &t.Durability)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rod template: %w", classifyStoreError(err))
	}
	return &t, nil
}

// GetAccessoryTemplate returns the accessory template, or (nil, nil) when absent.
func (r *ItemRepository) GetAccessoryTemplate(ctx context.Context, id int) (*domain.AccessoryTemplate, error) {
	query := `SELECT accessory_id, name, rarity, base_value FROM accessories WHERE accessory_id = $1`
	var t domain.AccessoryTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Rarity, &t.BaseValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get accessory template: %w", classifyStoreError(err))
	}
	return &t, nil
}

// GetBaitTemplate returns the bait template, or (nil, nil) when absent.
func (r *ItemRepository) GetBaitTemplate(ctx context.Context, id int) (*domain.BaitTemplate, error) {
	query := `SELECT bait_id, name, rarity, base_value FROM baits WHERE bait_id = $1`
	var t domain.BaitTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Rarity, &t.BaseValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bait template: %w", classifyStoreError(err))
	}
	return &t, nil
}

// GetFishTemplate returns the fish template, or (nil, nil) when absent.
func (r *ItemRepository) GetFishTemplate(ctx context.Context, id int) (*domain.FishTemplate, error) {
	query := `SELECT fish_id, name, rarity, base_value FROM fish WHERE fish_id = $1`
	var t domain.FishTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Rarity, &t.BaseValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fish template: %w", classifyStoreError(err))
	}
	return &t, nil
}

// GetTitleTemplate returns the title template, or (nil, nil) when absent.
func (r *ItemRepository) GetTitleTemplate(ctx context.Context, id int) (*domain.TitleTemplate, error) {
	query := `SELECT title_id, name FROM titles WHERE title_id = $1`
	var t domain.TitleTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get title template: %w", classifyStoreError(err))
	}
	return &t, nil
}
