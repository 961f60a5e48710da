package domain

import "time"

// StackableKind identifies which stackable table a record lives in.
type StackableKind string

const (
	StackableFish StackableKind = "fish"
	StackableBait StackableKind = "bait"
)

// StackableEntry is one (user, template) row of a stackable inventory.
// Quantity is never negative; a row reaching zero is deleted, not kept.
type StackableEntry struct {
	UserID     string `json:"user_id"`
	TemplateID int    `json:"template_id"`
	Quantity   int    `json:"quantity"`
}

// StackableDelta is one template adjustment inside a batch update.
type StackableDelta struct {
	TemplateID int `json:"template_id"`
	Delta      int `json:"delta"`
}

// MaxRefineValueLevel caps the refine level's contribution when an
// instance's value is computed; levels beyond it add nothing.
const MaxRefineValueLevel = 5

// EquipmentInstance is a per-unit inventory entity (rod or accessory).
// The instance ID is assigned by the store on insert and is the only
// stable handle external callers may retain.
type EquipmentInstance struct {
	InstanceID int               `json:"instance_id"`
	UserID     string            `json:"user_id"`
	TemplateID int               `json:"template_id"`
	Category   EquipmentCategory `json:"category"`
	Equipped   bool              `json:"equipped"`
	// RefineLevel starts at 1; contribution to value scaling is capped
	// at MaxRefineValueLevel.
	RefineLevel int `json:"refine_level"`
	// Durability nil means unlimited.
	Durability *int      `json:"durability,omitempty"`
	ObtainedAt time.Time `json:"obtained_at"`
}

// EffectiveRefineLevel returns the refine level clamped to the value cap.
func (e *EquipmentInstance) EffectiveRefineLevel() int {
	if e.RefineLevel > MaxRefineValueLevel {
		return MaxRefineValueLevel
	}
	if e.RefineLevel < 1 {
		return 1
	}
	return e.RefineLevel
}

// EquipmentAttrs describes an instance to be created by a grant.
type EquipmentAttrs struct {
	TemplateID  int  `json:"template_id"`
	RefineLevel int  `json:"refine_level"`
	Durability  *int `json:"durability,omitempty"`
}

// InventorySummary is the full inventory view for one user.
type InventorySummary struct {
	UserID      string              `json:"user_id"`
	Fish        []StackableEntry    `json:"fish"`
	Bait        []StackableEntry    `json:"bait"`
	Rods        []EquipmentInstance `json:"rods"`
	Accessories []EquipmentInstance `json:"accessories"`
	TitleIDs    []int               `json:"title_ids"`
}
