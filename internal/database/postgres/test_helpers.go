package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// applyMigrations runs all migration files in order. Goose markers are
// stripped so the files can be executed directly against the test pool.
func applyMigrations(ctx context.Context, t *testing.T, pool *pgxpool.Pool, migrationsDir string) error {
	t.Helper()

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var migrationFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			migrationFiles = append(migrationFiles, filepath.Join(migrationsDir, entry.Name()))
		}
	}
	sort.Strings(migrationFiles)

	for _, file := range migrationFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		contentStr := string(content)
		contentStr = strings.Replace(contentStr, "-- +goose Up", "", 1)
		if downIdx := strings.Index(contentStr, "-- +goose Down"); downIdx != -1 {
			contentStr = contentStr[:downIdx]
		}
		contentStr = strings.TrimSpace(contentStr)

		t.Logf("Executing: %s", filepath.Base(file))
		if _, err := pool.Exec(ctx, contentStr); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

// createTestUser inserts a user row directly and returns its id.
func createTestUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, nickname string, coins int) string {
	t.Helper()

	var id string
	err := pool.QueryRow(ctx,
		`INSERT INTO users (nickname, coins) VALUES ($1, $2) RETURNING user_id`,
		nickname, coins).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return id
}

// seedTemplates inserts a small template catalog used across the
// integration subtests. Returned ids index into the catalog by kind.
type testCatalog struct {
	RodID       int
	AccessoryID int
	BaitID      int
	FishID      int
	FishRareID  int
	TitleID     int
}

func seedTemplates(ctx context.Context, t *testing.T, pool *pgxpool.Pool) testCatalog {
	t.Helper()

	var c testCatalog
	mustScan := func(query string, args ...interface{}) int {
		var id int
		if err := pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			t.Fatalf("failed to seed template: %v", err)
		}
		return id
	}

	c.RodID = mustScan(
		`INSERT INTO rods (name, rarity, base_value, durability) VALUES ($1, $2, $3, $4) RETURNING rod_id`,
		"Willow Rod", 2, 150, 30)
	c.AccessoryID = mustScan(
		`INSERT INTO accessories (name, rarity, base_value) VALUES ($1, $2, $3) RETURNING accessory_id`,
		"Lucky Bobber", 3, 400)
	c.BaitID = mustScan(
		`INSERT INTO baits (name, rarity, base_value) VALUES ($1, $2, $3) RETURNING bait_id`,
		"Worm", 1, 5)
	c.FishID = mustScan(
		`INSERT INTO fish (name, rarity, base_value) VALUES ($1, $2, $3) RETURNING fish_id`,
		"Carp", 1, 10)
	c.FishRareID = mustScan(
		`INSERT INTO fish (name, rarity, base_value) VALUES ($1, $2, $3) RETURNING fish_id`,
		"Golden Koi", 4, 500)
	c.TitleID = mustScan(
		`INSERT INTO titles (name) VALUES ($1) RETURNING title_id`,
		"Master Angler")
	return c
}
