package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AchievementRepository implements the title ledger for PostgreSQL
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// GrantTitle records a title for the user. Granting an already-held title
// is a no-op.
func (r *AchievementRepository) GrantTitle(ctx context.Context, userID string, titleID int) error {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_titles (user_id, title_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, title_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userUUID, titleID); err != nil {
		return fmt.Errorf("failed to grant title: %w", classifyStoreError(err))
	}
	return nil
}

// GetUserTitles returns the ids of every title the user holds.
func (r *AchievementRepository) GetUserTitles(ctx context.Context, userID string) ([]int, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT title_id FROM user_titles WHERE user_id = $1 ORDER BY title_id`, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user titles: %w", classifyStoreError(err))
	}
	defer rows.Close()

	titles := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan title id: %w", err)
		}
		titles = append(titles, id)
	}
	return titles, rows.Err()
}
