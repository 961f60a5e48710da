package domain

import (
	"fmt"
	"time"
)

// RewardKind is the closed set of reward kinds a pool entry can yield.
// Adding a kind is a compile-time-checked change: every switch over
// RewardKind must handle it or fall to the invalid branch.
type RewardKind string

const (
	RewardRod       RewardKind = "rod"
	RewardAccessory RewardKind = "accessory"
	RewardBait      RewardKind = "bait"
	RewardCoins     RewardKind = "coins"
	RewardTitle     RewardKind = "title"
)

// Valid reports whether k is a known reward kind.
func (k RewardKind) Valid() bool {
	switch k {
	case RewardRod, RewardAccessory, RewardBait, RewardCoins, RewardTitle:
		return true
	}
	return false
}

// GachaPoolItem is one weighted entry of a pool.
// For coins, Quantity is the coin amount and TemplateID is unused.
type GachaPoolItem struct {
	PoolID     int        `json:"pool_id"`
	Kind       RewardKind `json:"kind"`
	TemplateID int        `json:"template_id"`
	Quantity   int        `json:"quantity"`
	Weight     int        `json:"weight"`
}

// GachaPool is a configured reward pool. Items keep their configured
// order; the draw walk depends on it for stable tie-breaks.
type GachaPool struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	CostCoins int             `json:"cost_coins"`
	Items     []GachaPoolItem `json:"items"`
}

// TotalWeight sums the entry weights. A pool is drawable only if > 0.
func (p *GachaPool) TotalWeight() int {
	total := 0
	for _, item := range p.Items {
		total += item.Weight
	}
	return total
}

// GachaRecord is one append-only audit row, written once per drawn unit.
type GachaRecord struct {
	RecordID   int64      `json:"record_id"`
	UserID     string     `json:"user_id"`
	PoolID     int        `json:"pool_id"`
	Kind       RewardKind `json:"kind"`
	TemplateID int        `json:"template_id"`
	ItemName   string     `json:"item_name"`
	Quantity   int        `json:"quantity"`
	Rarity     int        `json:"rarity"`
	Timestamp  time.Time  `json:"timestamp"`
}

// RewardDescriptor is one user-facing result entry: one per template per
// request for equipment and stackables, one total for coins, one per
// unique title. Equipment is not expanded per unit; Count carries it.
type RewardDescriptor struct {
	Kind       RewardKind `json:"kind"`
	TemplateID int        `json:"template_id,omitempty"`
	Name       string     `json:"name"`
	Rarity     int        `json:"rarity,omitempty"`
	Count      int        `json:"count,omitempty"`
	Quantity   int        `json:"quantity,omitempty"`
}

// PoolItemProbability is a pool entry resolved for display.
type PoolItemProbability struct {
	Kind        RewardKind `json:"kind"`
	TemplateID  int        `json:"template_id"`
	Name        string     `json:"name"`
	Rarity      int        `json:"rarity"`
	Weight      int        `json:"weight"`
	Probability float64    `json:"probability"`
}

// DrawResult is the outcome of a normal-sized draw request.
type DrawResult struct {
	Rewards []RewardDescriptor `json:"rewards"`
	Draws   int                `json:"draws"`
	Cost    int                `json:"cost"`
}

// OversizedDrawResult reports an oversized (sub-batched) draw request,
// including partial completion after a sub-batch failure.
type OversizedDrawResult struct {
	Rewards        []RewardDescriptor `json:"rewards"`
	RequestedDraws int                `json:"requested_draws"`
	CompletedDraws int                `json:"completed_draws"`
	RefundedCoins  int                `json:"refunded_coins"`
	Partial        bool               `json:"partial"`
	FailureMessage string             `json:"failure_message,omitempty"`
}

func (r *OversizedDrawResult) String() string {
	if !r.Partial {
		return fmt.Sprintf("completed %d draws", r.CompletedDraws)
	}
	return fmt.Sprintf("partial: %d/%d draws, %d coins refunded",
		r.CompletedDraws, r.RequestedDraws, r.RefundedCoins)
}
