package domain

// EquipmentCategory identifies the slot an equipment instance occupies.
// At most one instance per category may be equipped per user.
type EquipmentCategory string

const (
	EquipmentRod       EquipmentCategory = "rod"
	EquipmentAccessory EquipmentCategory = "accessory"
)

// RodTemplate describes a rod kind. Durability nil means unlimited.
type RodTemplate struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Rarity     int    `json:"rarity"`
	BaseValue  int    `json:"base_value"`
	Durability *int   `json:"durability,omitempty"`
}

// AccessoryTemplate describes an accessory kind.
type AccessoryTemplate struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Rarity    int    `json:"rarity"`
	BaseValue int    `json:"base_value"`
}

// BaitTemplate describes a stackable bait kind.
type BaitTemplate struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Rarity    int    `json:"rarity"`
	BaseValue int    `json:"base_value"`
}

// FishTemplate describes a stackable fish kind.
type FishTemplate struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Rarity    int    `json:"rarity"`
	BaseValue int    `json:"base_value"`
}

// TitleTemplate describes an unlockable title.
type TitleTemplate struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
