package inventory

import (
	"context"
	"fmt"

	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/logger"
	"github.com/pondside/AnglerBot_Go/internal/metrics"
	"github.com/pondside/AnglerBot_Go/internal/repository"
)

// RefineValueBonusPercent is the per-level value bonus an instance earns
// from refinement. Levels beyond domain.MaxRefineValueLevel add nothing.
const RefineValueBonusPercent = 20

// Service defines the interface for inventory operations
type Service interface {
	GetInventory(ctx context.Context, userID string) (*domain.InventorySummary, error)

	// Equip makes the named instance the only equipped one of its
	// category for the user.
	Equip(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) error

	// SellAllFishKeepOne sells every fish above a single kept unit and
	// credits the proceeds to the user's balance. Returns the amount
	// credited.
	SellAllFishKeepOne(ctx context.Context, userID string) (int, error)

	// StackableValue reports the total sale value of a stackable
	// inventory, optionally filtered by rarity (nil = all).
	StackableValue(ctx context.Context, userID string, kind domain.StackableKind, rarity *int) (int, error)

	// InstanceValue reports one equipment instance's sale value: the
	// template base value scaled by the capped refine level.
	InstanceValue(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (int, error)

	// SellInstance sells one unequipped equipment instance, deleting it
	// and crediting its refine-scaled value. Selling an equipped
	// instance fails with domain.ErrInstanceEquipped.
	SellInstance(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (int, error)

	// RefineInstance increments the instance's refine level by one and
	// returns the updated instance.
	RefineInstance(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (*domain.EquipmentInstance, error)

	// ConsumeDurability subtracts wear from an instance, flooring at
	// zero. Instances with unlimited durability pass through unchanged.
	ConsumeDurability(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID, amount int) (*domain.EquipmentInstance, error)

	// ClearLowRarityEquipment deletes the user's unequipped instances of
	// the category whose template rarity is below the threshold, and
	// returns how many were removed.
	ClearLowRarityEquipment(ctx context.Context, userID string, category domain.EquipmentCategory, rarityBelow int) (int, error)

	// ClearStackables removes stackable rows, optionally only one rarity.
	ClearStackables(ctx context.Context, userID string, kind domain.StackableKind, rarity *int) error

	GetUserTitles(ctx context.Context, userID string) ([]domain.TitleTemplate, error)
}

type service struct {
	users        repository.User
	inventory    repository.Inventory
	items        repository.ItemTemplate
	achievements repository.Achievement
}

// NewService creates a new inventory service
func NewService(users repository.User, inventory repository.Inventory, items repository.ItemTemplate, achievements repository.Achievement) Service {
	return &service{
		users:        users,
		inventory:    inventory,
		items:        items,
		achievements: achievements,
	}
}

// requireUser resolves the user or fails with ErrUserNotFound.
func (s *service) requireUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return user, nil
}

// requireInstance resolves the instance or fails with ErrInstanceNotFound.
func (s *service) requireInstance(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (*domain.EquipmentInstance, error) {
	instance, err := s.inventory.GetInstanceByID(ctx, userID, category, instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load instance: %w", err)
	}
	if instance == nil {
		return nil, fmt.Errorf("%w: %s %d", domain.ErrInstanceNotFound, category, instanceID)
	}
	return instance, nil
}

// GetInventory assembles the user's full inventory view.
func (s *service) GetInventory(ctx context.Context, userID string) (*domain.InventorySummary, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	fish, err := s.inventory.ListStackable(ctx, domain.StackableFish, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fish: %w", err)
	}
	bait, err := s.inventory.ListStackable(ctx, domain.StackableBait, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bait: %w", err)
	}
	rods, err := s.inventory.ListInstances(ctx, userID, domain.EquipmentRod)
	if err != nil {
		return nil, fmt.Errorf("failed to list rods: %w", err)
	}
	accessories, err := s.inventory.ListInstances(ctx, userID, domain.EquipmentAccessory)
	if err != nil {
		return nil, fmt.Errorf("failed to list accessories: %w", err)
	}
	titleIDs, err := s.achievements.GetUserTitles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	return &domain.InventorySummary{
		UserID:      userID,
		Fish:        fish,
		Bait:        bait,
		Rods:        rods,
		Accessories: accessories,
		TitleIDs:    titleIDs,
	}, nil
}

// Equip equips the named instance and unequips the rest of its category.
func (s *service) Equip(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) error {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.requireInstance(ctx, userID, category, instanceID); err != nil {
		return err
	}
	if err := s.inventory.SetEquipped(ctx, userID, category, instanceID); err != nil {
		return fmt.Errorf("failed to equip instance: %w", err)
	}

	logger.FromContext(ctx).Info("Instance equipped",
		"user_id", userID, "category", category, "instance_id", instanceID)
	return nil
}

// SellAllFishKeepOne sells surplus fish and credits the proceeds.
func (s *service) SellAllFishKeepOne(ctx context.Context, userID string) (int, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return 0, err
	}

	value, err := s.inventory.SellAllButOne(ctx, domain.StackableFish, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to sell fish: %w", err)
	}
	if value == 0 {
		return 0, nil
	}

	if err := s.users.AdjustCoins(ctx, userID, value); err != nil {
		// The fish are gone but the credit failed; surface the error so
		// the caller can reconcile rather than silently losing value.
		return 0, fmt.Errorf("fish sold for %d but credit failed: %w", value, err)
	}

	logger.FromContext(ctx).Info("Sold all fish but one",
		"user_id", userID, "value", value)
	return value, nil
}

// StackableValue reports a stackable inventory's total sale value.
func (s *service) StackableValue(ctx context.Context, userID string, kind domain.StackableKind, rarity *int) (int, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return 0, err
	}
	metrics.InventoryValueQueries.Inc()
	return s.inventory.StackableValue(ctx, kind, userID, rarity)
}

// InstanceValue reports one instance's refine-scaled sale value.
func (s *service) InstanceValue(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (int, error) {
	instance, err := s.requireInstance(ctx, userID, category, instanceID)
	if err != nil {
		return 0, err
	}

	baseValue := 0
	switch category {
	case domain.EquipmentRod:
		t, err := s.items.GetRodTemplate(ctx, instance.TemplateID)
		if err != nil {
			return 0, err
		}
		if t == nil {
			return 0, fmt.Errorf("%w: rod %d", domain.ErrTemplateNotFound, instance.TemplateID)
		}
		baseValue = t.BaseValue
	case domain.EquipmentAccessory:
		t, err := s.items.GetAccessoryTemplate(ctx, instance.TemplateID)
		if err != nil {
			return 0, err
		}
		if t == nil {
			return 0, fmt.Errorf("%w: accessory %d", domain.ErrTemplateNotFound, instance.TemplateID)
		}
		baseValue = t.BaseValue
	default:
		return 0, fmt.Errorf("%w: unknown equipment category %q", domain.ErrInvalidInput, category)
	}

	metrics.InventoryValueQueries.Inc()
	bonus := RefineValueBonusPercent * (instance.EffectiveRefineLevel() - 1)
	return baseValue * (100 + bonus) / 100, nil
}

// SellInstance deletes one unequipped instance and credits its value.
func (s *service) SellInstance(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (int, error) {
	instance, err := s.requireInstance(ctx, userID, category, instanceID)
	if err != nil {
		return 0, err
	}
	if instance.Equipped {
		return 0, fmt.Errorf("%w: %s %d", domain.ErrInstanceEquipped, category, instanceID)
	}

	value, err := s.InstanceValue(ctx, userID, category, instanceID)
	if err != nil {
		return 0, err
	}

	if err := s.inventory.DeleteEquipmentInstance(ctx, category, instanceID); err != nil {
		return 0, fmt.Errorf("failed to delete instance: %w", err)
	}

	if err := s.users.AdjustCoins(ctx, userID, value); err != nil {
		// The instance is gone but the credit failed; surface the error
		// so the caller can reconcile rather than silently losing value.
		return 0, fmt.Errorf("instance sold for %d but credit failed: %w", value, err)
	}

	logger.FromContext(ctx).Info("Instance sold",
		"user_id", userID, "category", category, "instance_id", instanceID, "value", value)
	return value, nil
}

// RefineInstance raises the refine level by one.
func (s *service) RefineInstance(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (*domain.EquipmentInstance, error) {
	instance, err := s.requireInstance(ctx, userID, category, instanceID)
	if err != nil {
		return nil, err
	}

	instance.RefineLevel++
	if err := s.inventory.UpdateInstance(ctx, *instance); err != nil {
		return nil, fmt.Errorf("failed to refine instance: %w", err)
	}

	logger.FromContext(ctx).Info("Instance refined",
		"user_id", userID, "category", category, "instance_id", instanceID, "refine_level", instance.RefineLevel)
	return instance, nil
}

// ConsumeDurability applies wear, flooring at zero. The instance row
// survives at zero; destruction is a separate, explicit operation.
func (s *service) ConsumeDurability(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID, amount int) (*domain.EquipmentInstance, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: durability wear must be non-negative, got %d", domain.ErrInvalidInput, amount)
	}

	instance, err := s.requireInstance(ctx, userID, category, instanceID)
	if err != nil {
		return nil, err
	}
	if instance.Durability == nil || amount == 0 {
		return instance, nil
	}

	remaining := *instance.Durability - amount
	if remaining < 0 {
		remaining = 0
	}
	instance.Durability = &remaining

	if err := s.inventory.UpdateInstance(ctx, *instance); err != nil {
		return nil, fmt.Errorf("failed to update durability: %w", err)
	}
	return instance, nil
}

// ClearLowRarityEquipment is an administrative sweep of unequipped
// low-rarity instances.
func (s *service) ClearLowRarityEquipment(ctx context.Context, userID string, category domain.EquipmentCategory, rarityBelow int) (int, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return 0, err
	}

	removed, err := s.inventory.ClearUnequippedInstances(ctx, userID, category, rarityBelow)
	if err != nil {
		return 0, fmt.Errorf("failed to clear instances: %w", err)
	}

	logger.FromContext(ctx).Info("Cleared low-rarity instances",
		"user_id", userID, "category", category, "rarity_below", rarityBelow, "removed", removed)
	return removed, nil
}

// ClearStackables removes stackable rows, optionally one rarity only.
func (s *service) ClearStackables(ctx context.Context, userID string, kind domain.StackableKind, rarity *int) error {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.inventory.ClearStackable(ctx, kind, userID, rarity)
}

// GetUserTitles resolves the user's titles to their templates.
func (s *service) GetUserTitles(ctx context.Context, userID string) ([]domain.TitleTemplate, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.achievements.GetUserTitles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	titles := make([]domain.TitleTemplate, 0, len(ids))
	for _, id := range ids {
		t, err := s.items.GetTitleTemplate(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			logger.FromContext(ctx).Warn("Held title has no template", "title_id", id)
			continue
		}
		titles = append(titles, *t)
	}
	return titles, nil
}
