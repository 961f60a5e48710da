package gacha

import (
	"context"
	"errors"
	"fmt"

	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/logger"
	"github.com/pondside/AnglerBot_Go/internal/metrics"
)

// rewardInfo is a resolved template, cached per grant so a 2000-draw
// sub-batch does not look the same template up 2000 times.
type rewardInfo struct {
	name       string
	rarity     int
	durability *int
}

type rewardKey struct {
	kind       domain.RewardKind
	templateID int
}

// grantRewards persists one aggregated draw group: equipment instances,
// stackable totals, the coin credit, title grants, and the per-unit audit
// rows. A batch store falling back to item-by-item mode is tolerated and
// logged; any other store failure aborts the grant.
func (s *service) grantRewards(ctx context.Context, userID string, pool *domain.GachaPool, agg *aggregated) ([]domain.RewardDescriptor, error) {
	log := logger.FromContext(ctx)
	info := make(map[rewardKey]rewardInfo)

	resolve := func(kind domain.RewardKind, templateID int) (rewardInfo, error) {
		k := rewardKey{kind: kind, templateID: templateID}
		if ri, ok := info[k]; ok {
			return ri, nil
		}
		name, rarity, durability, err := s.resolveReward(ctx, kind, templateID)
		if err != nil {
			return rewardInfo{}, err
		}
		ri := rewardInfo{name: name, rarity: rarity, durability: durability}
		info[k] = ri
		return ri, nil
	}

	rewards := []domain.RewardDescriptor{}

	rodRewards, err := s.grantEquipment(ctx, userID, domain.EquipmentRod, domain.RewardRod, agg.rods, resolve)
	if err != nil {
		return nil, err
	}
	rewards = append(rewards, rodRewards...)

	accessoryRewards, err := s.grantEquipment(ctx, userID, domain.EquipmentAccessory, domain.RewardAccessory, agg.accessories, resolve)
	if err != nil {
		return nil, err
	}
	rewards = append(rewards, accessoryRewards...)

	if len(agg.baitOrder) > 0 {
		deltas := make([]domain.StackableDelta, 0, len(agg.baitOrder))
		for _, templateID := range agg.baitOrder {
			deltas = append(deltas, domain.StackableDelta{TemplateID: templateID, Delta: agg.baitTotals[templateID]})
		}
		if err := s.inventory.BatchAddStackable(ctx, domain.StackableBait, userID, deltas); err != nil {
			var partial *domain.BatchPartialError
			if !errors.As(err, &partial) {
				return nil, fmt.Errorf("failed to grant bait: %w", err)
			}
			metrics.StoreBatchFallbacks.WithLabelValues(string(domain.RewardBait)).Inc()
			log.Warn("Bait grant fell back to sequential updates",
				"user_id", userID, "succeeded", partial.Succeeded, "attempted", partial.Attempted)
		}
		for _, templateID := range agg.baitOrder {
			ri, err := resolve(domain.RewardBait, templateID)
			if err != nil {
				return nil, err
			}
			rewards = append(rewards, domain.RewardDescriptor{
				Kind:       domain.RewardBait,
				TemplateID: templateID,
				Name:       ri.name,
				Rarity:     ri.rarity,
				Quantity:   agg.baitTotals[templateID],
			})
			metrics.RewardsGranted.WithLabelValues(string(domain.RewardBait)).Add(float64(agg.baitTotals[templateID]))
		}
	}

	if agg.coins > 0 {
		if err := s.users.AdjustCoins(ctx, userID, agg.coins); err != nil {
			return nil, fmt.Errorf("failed to credit coin reward: %w", err)
		}
		rewards = append(rewards, domain.RewardDescriptor{
			Kind:     domain.RewardCoins,
			Name:     CoinsRewardName,
			Quantity: agg.coins,
		})
		metrics.RewardsGranted.WithLabelValues(string(domain.RewardCoins)).Add(float64(agg.coins))
	}

	for _, titleID := range agg.titleOrder {
		ri, err := resolve(domain.RewardTitle, titleID)
		if err != nil {
			return nil, err
		}
		if err := s.achievements.GrantTitle(ctx, userID, titleID); err != nil {
			return nil, fmt.Errorf("failed to grant title %d: %w", titleID, err)
		}
		rewards = append(rewards, domain.RewardDescriptor{
			Kind:       domain.RewardTitle,
			TemplateID: titleID,
			Name:       ri.name,
			Count:      1,
		})
		metrics.RewardsGranted.WithLabelValues(string(domain.RewardTitle)).Inc()
	}

	if err := s.appendAuditRecords(ctx, userID, pool, agg, resolve); err != nil {
		// The rewards are already settled; a failed audit append is
		// logged, not unwound.
		log.Error("Failed to append gacha audit records",
			"user_id", userID, "pool_id", pool.ID, "count", len(agg.draws), "error", err)
	}

	return rewards, nil
}

// grantEquipment inserts one instance per drawn unit and returns one
// descriptor per template with the unit count.
func (s *service) grantEquipment(
	ctx context.Context,
	userID string,
	category domain.EquipmentCategory,
	kind domain.RewardKind,
	draws []domain.GachaPoolItem,
	resolve func(domain.RewardKind, int) (rewardInfo, error),
) ([]domain.RewardDescriptor, error) {
	if len(draws) == 0 {
		return nil, nil
	}
	log := logger.FromContext(ctx)

	attrs := make([]domain.EquipmentAttrs, 0, len(draws))
	counts := make(map[int]int)
	order := []int{}
	for _, d := range draws {
		ri, err := resolve(kind, d.TemplateID)
		if err != nil {
			return nil, err
		}
		units := d.Quantity
		if units < 1 {
			units = 1
		}
		for i := 0; i < units; i++ {
			attrs = append(attrs, domain.EquipmentAttrs{
				TemplateID:  d.TemplateID,
				RefineLevel: 1,
				Durability:  ri.durability,
			})
		}
		if counts[d.TemplateID] == 0 {
			order = append(order, d.TemplateID)
		}
		counts[d.TemplateID] += units
	}

	ids, err := s.inventory.BatchAddEquipmentInstances(ctx, userID, category, attrs)
	if err != nil {
		var partial *domain.BatchPartialError
		if !errors.As(err, &partial) {
			return nil, fmt.Errorf("failed to grant %s instances: %w", category, err)
		}
		metrics.StoreBatchFallbacks.WithLabelValues(string(kind)).Inc()
		log.Warn("Equipment grant fell back to individual inserts",
			"user_id", userID, "category", category,
			"succeeded", partial.Succeeded, "attempted", partial.Attempted)
	}
	metrics.RewardsGranted.WithLabelValues(string(kind)).Add(float64(len(ids)))

	rewards := make([]domain.RewardDescriptor, 0, len(order))
	for _, templateID := range order {
		ri, err := resolve(kind, templateID)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, domain.RewardDescriptor{
			Kind:       kind,
			TemplateID: templateID,
			Name:       ri.name,
			Rarity:     ri.rarity,
			Count:      counts[templateID],
		})
	}
	return rewards, nil
}

// appendAuditRecords writes one row per drawn unit, in draw order.
func (s *service) appendAuditRecords(
	ctx context.Context,
	userID string,
	pool *domain.GachaPool,
	agg *aggregated,
	resolve func(domain.RewardKind, int) (rewardInfo, error),
) error {
	if len(agg.draws) == 0 {
		return nil
	}

	timestamp := s.now()
	records := make([]domain.GachaRecord, 0, len(agg.draws))
	for _, d := range agg.draws {
		ri, err := resolve(d.Kind, d.TemplateID)
		if err != nil {
			return err
		}
		records = append(records, domain.GachaRecord{
			UserID:     userID,
			PoolID:     pool.ID,
			Kind:       d.Kind,
			TemplateID: d.TemplateID,
			ItemName:   ri.name,
			Quantity:   d.Quantity,
			Rarity:     ri.rarity,
			Timestamp:  timestamp,
		})
	}
	return s.audit.AppendGachaRecords(ctx, records)
}
