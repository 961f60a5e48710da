package gacha

import (
	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// aggregated groups a draw sequence by settlement path. Equipment keeps
// one element per drawn unit because every unit becomes its own instance;
// stackables and coins collapse to totals; titles dedupe but remember how
// often each was drawn so the audit log stays one row per unit.
type aggregated struct {
	rods        []domain.GachaPoolItem
	accessories []domain.GachaPoolItem

	baitTotals map[int]int
	baitOrder  []int

	coins int

	titleOrder  []int
	titleCounts map[int]int

	// draws preserves the raw sequence for per-unit audit rows.
	draws []domain.GachaPoolItem
}

// aggregateDraws folds a draw sequence into per-kind settlement groups.
// Entries of unknown kind are dropped here; the caller has already
// validated pool configuration, so this is a guard, not a code path.
func aggregateDraws(draws []domain.GachaPoolItem) *aggregated {
	agg := &aggregated{
		baitTotals:  make(map[int]int),
		titleCounts: make(map[int]int),
		draws:       draws,
	}

	for _, d := range draws {
		switch d.Kind {
		case domain.RewardRod:
			agg.rods = append(agg.rods, d)
		case domain.RewardAccessory:
			agg.accessories = append(agg.accessories, d)
		case domain.RewardBait:
			if _, seen := agg.baitTotals[d.TemplateID]; !seen {
				agg.baitOrder = append(agg.baitOrder, d.TemplateID)
			}
			agg.baitTotals[d.TemplateID] += d.Quantity
		case domain.RewardCoins:
			agg.coins += d.Quantity
		case domain.RewardTitle:
			if agg.titleCounts[d.TemplateID] == 0 {
				agg.titleOrder = append(agg.titleOrder, d.TemplateID)
			}
			agg.titleCounts[d.TemplateID]++
		}
	}
	return agg
}

// mergeDescriptors combines reward descriptors from consecutive
// sub-batches: equipment and bait merge by (kind, template), coins merge
// into one total, titles stay unique. First-seen order is preserved.
func mergeDescriptors(batches ...[]domain.RewardDescriptor) []domain.RewardDescriptor {
	type key struct {
		kind       domain.RewardKind
		templateID int
	}

	merged := []domain.RewardDescriptor{}
	index := make(map[key]int)

	for _, batch := range batches {
		for _, d := range batch {
			k := key{kind: d.Kind, templateID: d.TemplateID}
			i, seen := index[k]
			if !seen {
				index[k] = len(merged)
				merged = append(merged, d)
				continue
			}
			switch d.Kind {
			case domain.RewardCoins:
				merged[i].Quantity += d.Quantity
			case domain.RewardTitle:
				// Already held; nothing accumulates.
			default:
				merged[i].Count += d.Count
				merged[i].Quantity += d.Quantity
			}
		}
	}
	return merged
}
