package repository

import (
	"context"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// Inventory defines the interface for inventory persistence.
//
// Each method is individually transactional and commits before returning;
// no transaction spans two public calls. Batch methods and SetEquipped and
// SellAllButOne are the multi-statement transactions.
type Inventory interface {
	// --- stackable goods (fish, bait) ---

	// AddStackable upserts a (user, template) row and applies delta.
	// The resulting quantity is floored at zero and a row at zero is
	// deleted rather than retained.
	AddStackable(ctx context.Context, kind domain.StackableKind, userID string, templateID, delta int) error

	// BatchAddStackable applies all deltas in one transaction: update
	// existing rows (floored at zero) or insert new ones for positive
	// deltas. All-or-nothing; on bulk failure the caller may retry via
	// the sequential path, which reports domain.BatchPartialError.
	BatchAddStackable(ctx context.Context, kind domain.StackableKind, userID string, deltas []domain.StackableDelta) error

	ListStackable(ctx context.Context, kind domain.StackableKind, userID string) ([]domain.StackableEntry, error)

	// StackableValue sums template base value x quantity, optionally
	// filtered by rarity (nil = all).
	StackableValue(ctx context.Context, kind domain.StackableKind, userID string, rarity *int) (int, error)

	// SellAllButOne clamps every stackable row with quantity > 1 down to
	// one unit and returns the sale value of the removed units, in a
	// single transaction.
	SellAllButOne(ctx context.Context, kind domain.StackableKind, userID string) (int, error)

	// ClearStackable removes rows, optionally only those of one rarity.
	ClearStackable(ctx context.Context, kind domain.StackableKind, userID string, rarity *int) error

	// --- equipment instances (rods, accessories) ---

	// AddEquipmentInstance inserts one unequipped instance and returns
	// its store-assigned identity.
	AddEquipmentInstance(ctx context.Context, userID string, category domain.EquipmentCategory, attrs domain.EquipmentAttrs) (int, error)

	// BatchAddEquipmentInstances inserts all instances in one transaction
	// and returns their identities in insertion order. If the bulk insert
	// fails, it falls back to one-at-a-time inserts, skipping and logging
	// individual failures, and reports domain.BatchPartialError.
	BatchAddEquipmentInstances(ctx context.Context, userID string, category domain.EquipmentCategory, attrs []domain.EquipmentAttrs) ([]int, error)

	// SetEquipped unequips every instance of the category for the user
	// and equips the named instance, in one transaction.
	SetEquipped(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) error

	DeleteEquipmentInstance(ctx context.Context, category domain.EquipmentCategory, instanceID int) error
	GetEquippedInstance(ctx context.Context, userID string, category domain.EquipmentCategory) (*domain.EquipmentInstance, error)
	ListInstances(ctx context.Context, userID string, category domain.EquipmentCategory) ([]domain.EquipmentInstance, error)
	GetInstanceByID(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (*domain.EquipmentInstance, error)
	UpdateInstance(ctx context.Context, instance domain.EquipmentInstance) error

	// ClearUnequippedInstances deletes unequipped instances whose
	// template rarity is below the given threshold.
	ClearUnequippedInstances(ctx context.Context, userID string, category domain.EquipmentCategory, rarityBelow int) (int, error)
}
