package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/logger"
	"github.com/pondside/AnglerBot_Go/internal/repository"
)

// stackableTable maps a stackable kind to its physical layout.
type stackableTable struct {
	table         string
	templateCol   string
	templateTable string
}

// equipmentTable maps an equipment category to its physical layout.
type equipmentTable struct {
	table         string
	pkCol         string
	templateCol   string
	templateTable string
	hasDurability bool
}

var stackableTables = map[domain.StackableKind]stackableTable{
	domain.StackableFish: {table: "user_fish_inventory", templateCol: "fish_id", templateTable: "fish"},
	domain.StackableBait: {table: "user_bait_inventory", templateCol: "bait_id", templateTable: "baits"},
}

var equipmentTables = map[domain.EquipmentCategory]equipmentTable{
	domain.EquipmentRod: {
		table: "user_rods", pkCol: "rod_instance_id", templateCol: "rod_id",
		templateTable: "rods", hasDurability: true,
	},
	domain.EquipmentAccessory: {
		table: "user_accessories", pkCol: "accessory_instance_id", templateCol: "accessory_id",
		templateTable: "accessories", hasDurability: false,
	},
}

func stackableLayout(kind domain.StackableKind) (stackableTable, error) {
	layout, ok := stackableTables[kind]
	if !ok {
		return stackableTable{}, fmt.Errorf("%w: unknown stackable kind %q", domain.ErrInvalidInput, kind)
	}
	return layout, nil
}

func equipmentLayout(category domain.EquipmentCategory) (equipmentTable, error) {
	layout, ok := equipmentTables[category]
	if !ok {
		return equipmentTable{}, fmt.Errorf("%w: unknown equipment category %q", domain.ErrInvalidInput, category)
	}
	return layout, nil
}

// InventoryRepository implements the inventory store for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ---- stackable goods ----

// AddStackable upserts the (user, template) row and applies delta, flooring
// the result at zero. A row reaching zero is deleted, not retained.
func (r *InventoryRepository) AddStackable(ctx context.Context, kind domain.StackableKind, userID string, templateID, delta int) error {
	layout, err := stackableLayout(kind)
	if err != nil {
		return err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	upsert := fmt.Sprintf(`
		INSERT INTO %s (user_id, %s, quantity)
		VALUES ($1, $2, GREATEST(0, $3))
		ON CONFLICT (user_id, %s) DO UPDATE
		SET quantity = GREATEST(0, %s.quantity + $3)
	`, layout.table, layout.templateCol, layout.templateCol, layout.table)

	if _, err := r.db.Exec(ctx, upsert, userUUID, templateID, delta); err != nil {
		return fmt.Errorf("failed to upsert %s quantity: %w", kind, classifyStoreError(err))
	}

	cleanup := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND %s = $2 AND quantity <= 0`,
		layout.table, layout.templateCol)
	if _, err := r.db.Exec(ctx, cleanup, userUUID, templateID); err != nil {
		return fmt.Errorf("failed to prune empty %s row: %w", kind, classifyStoreError(err))
	}
	return nil
}

// BatchAddStackable applies all deltas inside one transaction. On a
// transient failure it retries once in item-by-item mode and reports
// the partial outcome via domain.BatchPartialError; constraint
// violations are not retried.
func (r *InventoryRepository) BatchAddStackable(ctx context.Context, kind domain.StackableKind, userID string, deltas []domain.StackableDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	if err := r.batchAddStackableTx(ctx, kind, userID, deltas); err != nil {
		if errors.Is(err, domain.ErrStoreConstraint) {
			return err
		}
		logger.FromContext(ctx).Warn("Batch stackable update failed, falling back to sequential updates",
			"kind", kind, "count", len(deltas), "error", err)
		return r.fallbackAddStackable(ctx, kind, userID, deltas, err)
	}
	return nil
}

func (r *InventoryRepository) batchAddStackableTx(ctx context.Context, kind domain.StackableKind, userID string, deltas []domain.StackableDelta) error {
	layout, err := stackableLayout(kind)
	if err != nil {
		return err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, classifyStoreError(err))
	}
	defer repository.SafeRollback(ctx, tx)

	update := fmt.Sprintf(`
		UPDATE %s SET quantity = GREATEST(0, quantity + $3)
		WHERE user_id = $1 AND %s = $2
	`, layout.table, layout.templateCol)
	insert := fmt.Sprintf(`
		INSERT INTO %s (user_id, %s, quantity) VALUES ($1, $2, $3)
	`, layout.table, layout.templateCol)

	for _, d := range deltas {
		if d.Delta == 0 {
			continue
		}
		tag, err := tx.Exec(ctx, update, userUUID, d.TemplateID, d.Delta)
		if err != nil {
			return fmt.Errorf("failed to update %s quantity: %w", kind, classifyStoreError(err))
		}
		if tag.RowsAffected() == 0 && d.Delta > 0 {
			if _, err := tx.Exec(ctx, insert, userUUID, d.TemplateID, d.Delta); err != nil {
				return fmt.Errorf("failed to insert %s row: %w", kind, classifyStoreError(err))
			}
		}
	}

	cleanup := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND quantity <= 0`, layout.table)
	if _, err := tx.Exec(ctx, cleanup, userUUID); err != nil {
		return fmt.Errorf("failed to prune empty %s rows: %w", kind, classifyStoreError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, classifyStoreError(err))
	}
	return nil
}

func (r *InventoryRepository) fallbackAddStackable(ctx context.Context, kind domain.StackableKind, userID string, deltas []domain.StackableDelta, cause error) error {
	log := logger.FromContext(ctx)
	succeeded := 0
	for _, d := range deltas {
		if d.Delta == 0 {
			succeeded++
			continue
		}
		if err := r.AddStackable(ctx, kind, userID, d.TemplateID, d.Delta); err != nil {
			log.Error("Sequential stackable update failed, skipping",
				"kind", kind, "template_id", d.TemplateID, "error", err)
			continue
		}
		succeeded++
	}
	return &domain.BatchPartialError{Succeeded: succeeded, Attempted: len(deltas), Cause: cause}
}

// ListStackable returns all rows with quantity > 0.
func (r *InventoryRepository) ListStackable(ctx context.Context, kind domain.StackableKind, userID string) ([]domain.StackableEntry, error) {
	layout, err := stackableLayout(kind)
	if err != nil {
		return nil, err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s, quantity FROM %s
		WHERE user_id = $1 AND quantity > 0
		ORDER BY %s
	`, layout.templateCol, layout.table, layout.templateCol)

	rows, err := r.db.Query(ctx, query, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s inventory: %w", kind, classifyStoreError(err))
	}
	defer rows.Close()

	entries := []domain.StackableEntry{}
	for rows.Next() {
		entry := domain.StackableEntry{UserID: userID}
		if err := rows.Scan(&entry.TemplateID, &entry.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// StackableValue sums template base value x quantity, optionally filtered
// by rarity.
func (r *InventoryRepository) StackableValue(ctx context.Context, kind domain.StackableKind, userID string, rarity *int) (int, error) {
	layout, err := stackableLayout(kind)
	if err != nil {
		return 0, err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(t.base_value * inv.quantity), 0)
		FROM %s inv
		JOIN %s t ON inv.%s = t.%s
		WHERE inv.user_id = $1
	`, layout.table, layout.templateTable, layout.templateCol, layout.templateCol)

	args := []interface{}{userUUID}
	if rarity != nil {
		query += " AND t.rarity = $2"
		args = append(args, *rarity)
	}

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to compute %s inventory value: %w", kind, classifyStoreError(err))
	}
	return total, nil
}

// SellAllButOne clamps every row with quantity > 1 to a single unit and
// returns the sale value of the removed units. Value computation and
// clamp happen in one transaction so the total matches what was removed.
func (r *InventoryRepository) SellAllButOne(ctx context.Context, kind domain.StackableKind, userID string) (int, error) {
	layout, err := stackableLayout(kind)
	if err != nil {
		return 0, err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, classifyStoreError(err))
	}
	defer repository.SafeRollback(ctx, tx)

	valueQuery := fmt.Sprintf(`
		SELECT COALESCE(SUM((inv.quantity - 1) * t.base_value), 0)
		FROM %s inv
		JOIN %s t ON inv.%s = t.%s
		WHERE inv.user_id = $1 AND inv.quantity > 1
	`, layout.table, layout.templateTable, layout.templateCol, layout.templateCol)

	var soldValue int
	if err := tx.QueryRow(ctx, valueQuery, userUUID).Scan(&soldValue); err != nil {
		return 0, fmt.Errorf("failed to compute sell-all-but-one value: %w", classifyStoreError(err))
	}

	if soldValue == 0 {
		// Nothing with quantity > 1; leave the inventory untouched.
		return 0, nil
	}

	clamp := fmt.Sprintf(`UPDATE %s SET quantity = 1 WHERE user_id = $1 AND quantity > 1`, layout.table)
	if _, err := tx.Exec(ctx, clamp, userUUID); err != nil {
		return 0, fmt.Errorf("failed to clamp quantities: %w", classifyStoreError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, classifyStoreError(err))
	}
	return soldValue, nil
}

// ClearStackable removes rows, optionally only those of one rarity.
func (r *InventoryRepository) ClearStackable(ctx context.Context, kind domain.StackableKind, userID string, rarity *int) error {
	layout, err := stackableLayout(kind)
	if err != nil {
		return err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	if rarity == nil {
		query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, layout.table)
		if _, err := r.db.Exec(ctx, query, userUUID); err != nil {
			return fmt.Errorf("failed to clear %s inventory: %w", kind, classifyStoreError(err))
		}
		return nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s WHERE user_id = $1 AND %s IN (
			SELECT %s FROM %s WHERE rarity = $2
		)
	`, layout.table, layout.templateCol, layout.templateCol, layout.templateTable)
	if _, err := r.db.Exec(ctx, query, userUUID, *rarity); err != nil {
		return fmt.Errorf("failed to clear %s inventory by rarity: %w", kind, classifyStoreError(err))
	}
	return nil
}

// ---- equipment instances ----

func (r *InventoryRepository) instanceColumns(layout equipmentTable) string {
	cols := fmt.Sprintf("%s, user_id, %s, is_equipped, refine_level", layout.pkCol, layout.templateCol)
	if layout.hasDurability {
		cols += ", current_durability"
	}
	return cols + ", obtained_at"
}

func (r *InventoryRepository) scanInstance(row pgx.Row, category domain.EquipmentCategory, layout equipmentTable) (*domain.EquipmentInstance, error) {
	inst := domain.EquipmentInstance{Category: category}
	dest := []interface{}{&inst.InstanceID, &inst.UserID, &inst.TemplateID, &inst.Equipped, &inst.RefineLevel}
	if layout.hasDurability {
		dest = append(dest, &inst.Durability)
	}
	dest = append(dest, &inst.ObtainedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &inst, nil
}

// AddEquipmentInstance inserts one unequipped instance and returns the
// store-assigned identity.
func (r *InventoryRepository) AddEquipmentInstance(ctx context.Context, userID string, category domain.EquipmentCategory, attrs domain.EquipmentAttrs) (int, error) {
	layout, err := equipmentLayout(category)
	if err != nil {
		return 0, err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	refine := attrs.RefineLevel
	if refine < 1 {
		refine = 1
	}

	var instanceID int
	if layout.hasDurability {
		query := fmt.Sprintf(`
			INSERT INTO %s (user_id, %s, is_equipped, refine_level, current_durability)
			VALUES ($1, $2, FALSE, $3, $4)
			RETURNING %s
		`, layout.table, layout.templateCol, layout.pkCol)
		err = r.db.QueryRow(ctx, query, userUUID, attrs.TemplateID, refine, attrs.Durability).Scan(&instanceID)
	} else {
		query := fmt.Sprintf(`
			INSERT INTO %s (user_id, %s, is_equipped, refine_level)
			VALUES ($1, $2, FALSE, $3)
			RETURNING %s
		`, layout.table, layout.templateCol, layout.pkCol)
		err = r.db.QueryRow(ctx, query, userUUID, attrs.TemplateID, refine).Scan(&instanceID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s instance: %w", category, classifyStoreError(err))
	}
	return instanceID, nil
}

// BatchAddEquipmentInstances inserts all instances in one multi-row
// statement and returns their identities in insertion order. If the bulk
// insert fails for any reason it falls back to inserting one at a time,
// skipping and logging individual failures; the fallback outcome is
// reported via domain.BatchPartialError alongside the ids that made it.
func (r *InventoryRepository) BatchAddEquipmentInstances(ctx context.Context, userID string, category domain.EquipmentCategory, attrs []domain.EquipmentAttrs) ([]int, error) {
	if len(attrs) == 0 {
		return []int{}, nil
	}

	ids, err := r.bulkInsertInstances(ctx, userID, category, attrs)
	if err == nil {
		return ids, nil
	}

	logger.FromContext(ctx).Warn("Bulk equipment insert failed, falling back to individual inserts",
		"category", category, "count", len(attrs), "error", err)

	ids = make([]int, 0, len(attrs))
	for _, a := range attrs {
		id, insertErr := r.AddEquipmentInstance(ctx, userID, category, a)
		if insertErr != nil {
			logger.FromContext(ctx).Error("Individual equipment insert failed, skipping",
				"category", category, "template_id", a.TemplateID, "error", insertErr)
			continue
		}
		ids = append(ids, id)
	}
	return ids, &domain.BatchPartialError{Succeeded: len(ids), Attempted: len(attrs), Cause: err}
}

func (r *InventoryRepository) bulkInsertInstances(ctx context.Context, userID string, category domain.EquipmentCategory, attrs []domain.EquipmentAttrs) ([]int, error) {
	layout, err := equipmentLayout(category)
	if err != nil {
		return nil, err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	valueWidth := 3
	if layout.hasDurability {
		valueWidth = 4
	}

	placeholders := make([]string, 0, len(attrs))
	args := make([]interface{}, 0, len(attrs)*valueWidth)
	for i, a := range attrs {
		refine := a.RefineLevel
		if refine < 1 {
			refine = 1
		}
		base := i * valueWidth
		if layout.hasDurability {
			placeholders = append(placeholders,
				fmt.Sprintf("($%d, $%d, FALSE, $%d, $%d)", base+1, base+2, base+3, base+4))
			args = append(args, userUUID, a.TemplateID, refine, a.Durability)
		} else {
			placeholders = append(placeholders,
				fmt.Sprintf("($%d, $%d, FALSE, $%d)", base+1, base+2, base+3))
			args = append(args, userUUID, a.TemplateID, refine)
		}
	}

	cols := fmt.Sprintf("user_id, %s, is_equipped, refine_level", layout.templateCol)
	if layout.hasDurability {
		cols += ", current_durability"
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, classifyStoreError(err))
	}
	defer repository.SafeRollback(ctx, tx)

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES %s RETURNING %s`,
		layout.table, cols, strings.Join(placeholders, ", "), layout.pkCol)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed bulk insert of %s instances: %w", category, classifyStoreError(err))
	}

	ids := make([]int, 0, len(attrs))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan inserted id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed bulk insert of %s instances: %w", category, classifyStoreError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, classifyStoreError(err))
	}
	return ids, nil
}

// SetEquipped unequips every instance of the category for the user and
// equips the named one. Both updates share a transaction so no reader can
// observe two equipped instances or none mid-switch.
func (r *InventoryRepository) SetEquipped(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) error {
	layout, err := equipmentLayout(category)
	if err != nil {
		return err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, classifyStoreError(err))
	}
	defer repository.SafeRollback(ctx, tx)

	unequip := fmt.Sprintf(`UPDATE %s SET is_equipped = FALSE WHERE user_id = $1`, layout.table)
	if _, err := tx.Exec(ctx, unequip, userUUID); err != nil {
		return fmt.Errorf("failed to unequip %s instances: %w", category, classifyStoreError(err))
	}

	equip := fmt.Sprintf(`UPDATE %s SET is_equipped = TRUE WHERE %s = $1 AND user_id = $2`,
		layout.table, layout.pkCol)
	tag, err := tx.Exec(ctx, equip, instanceID, userUUID)
	if err != nil {
		return fmt.Errorf("failed to equip %s instance: %w", category, classifyStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrInstanceNotFound, category, instanceID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, classifyStoreError(err))
	}
	return nil
}

// DeleteEquipmentInstance removes one instance by identity.
func (r *InventoryRepository) DeleteEquipmentInstance(ctx context.Context, category domain.EquipmentCategory, instanceID int) error {
	layout, err := equipmentLayout(category)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, layout.table, layout.pkCol)
	tag, err := r.db.Exec(ctx, query, instanceID)
	if err != nil {
		return fmt.Errorf("failed to delete %s instance: %w", category, classifyStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrInstanceNotFound, category, instanceID)
	}
	return nil
}

// GetEquippedInstance returns the equipped instance of the category, or
// (nil, nil) when nothing is equipped.
func (r *InventoryRepository) GetEquippedInstance(ctx context.Context, userID string, category domain.EquipmentCategory) (*domain.EquipmentInstance, error) {
	layout, err := equipmentLayout(category)
	if err != nil {
		return nil, err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 AND is_equipped = TRUE`,
		r.instanceColumns(layout), layout.table)
	inst, err := r.scanInstance(r.db.QueryRow(ctx, query, userUUID), category, layout)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get equipped %s: %w", category, classifyStoreError(err))
	}
	return inst, nil
}

// ListInstances returns all instances of the category for the user.
func (r *InventoryRepository) ListInstances(ctx context.Context, userID string, category domain.EquipmentCategory) ([]domain.EquipmentInstance, error) {
	layout, err := equipmentLayout(category)
	if err != nil {
		return nil, err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY %s`,
		r.instanceColumns(layout), layout.table, layout.pkCol)
	rows, err := r.db.Query(ctx, query, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s instances: %w", category, classifyStoreError(err))
	}
	defer rows.Close()

	instances := []domain.EquipmentInstance{}
	for rows.Next() {
		inst, err := r.scanInstance(rows, category, layout)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s instance: %w", category, err)
		}
		instances = append(instances, *inst)
	}
	return instances, rows.Err()
}

// GetInstanceByID returns one instance, or (nil, nil) when it does not
// exist for that user.
func (r *InventoryRepository) GetInstanceByID(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (*domain.EquipmentInstance, error) {
	layout, err := equipmentLayout(category)
	if err != nil {
		return nil, err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 AND %s = $2`,
		r.instanceColumns(layout), layout.table, layout.pkCol)
	inst, err := r.scanInstance(r.db.QueryRow(ctx, query, userUUID, instanceID), category, layout)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s instance: %w", category, classifyStoreError(err))
	}
	return inst, nil
}

// UpdateInstance rewrites the mutable fields of an instance (equip flag,
// refine level, durability, and template/ownership for market rewrites).
func (r *InventoryRepository) UpdateInstance(ctx context.Context, instance domain.EquipmentInstance) error {
	layout, err := equipmentLayout(instance.Category)
	if err != nil {
		return err
	}
	userUUID, err := parseUserUUID(instance.UserID)
	if err != nil {
		return err
	}

	var tag pgconn.CommandTag
	if layout.hasDurability {
		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = $1, is_equipped = $2, refine_level = $3, current_durability = $4
			WHERE %s = $5 AND user_id = $6
		`, layout.table, layout.templateCol, layout.pkCol)
		tag, err = r.db.Exec(ctx, query, instance.TemplateID, instance.Equipped, instance.RefineLevel,
			instance.Durability, instance.InstanceID, userUUID)
	} else {
		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = $1, is_equipped = $2, refine_level = $3
			WHERE %s = $4 AND user_id = $5
		`, layout.table, layout.templateCol, layout.pkCol)
		tag, err = r.db.Exec(ctx, query, instance.TemplateID, instance.Equipped, instance.RefineLevel,
			instance.InstanceID, userUUID)
	}
	if err != nil {
		return fmt.Errorf("failed to update %s instance: %w", instance.Category, classifyStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrInstanceNotFound, instance.Category, instance.InstanceID)
	}
	return nil
}

// ClearUnequippedInstances deletes unequipped instances whose template
// rarity is below the threshold and returns how many were removed.
func (r *InventoryRepository) ClearUnequippedInstances(ctx context.Context, userID string, category domain.EquipmentCategory, rarityBelow int) (int, error) {
	layout, err := equipmentLayout(category)
	if err != nil {
		return 0, err
	}
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND is_equipped = FALSE AND %s IN (
			SELECT %s FROM %s WHERE rarity < $2
		)
	`, layout.table, layout.templateCol, layout.templateCol, layout.templateTable)
	tag, err := r.db.Exec(ctx, query, userUUID, rarityBelow)
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s instances: %w", category, classifyStoreError(err))
	}
	return int(tag.RowsAffected()), nil
}
