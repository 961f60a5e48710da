package gacha

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pondside/AnglerBot_Go/internal/concurrency"
	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/logger"
	"github.com/pondside/AnglerBot_Go/internal/metrics"
	"github.com/pondside/AnglerBot_Go/internal/repository"
	"github.com/pondside/AnglerBot_Go/internal/utils"
)

// Service defines the interface for gacha operations
type Service interface {
	// Draw settles a normal-sized draw request: debit, draw, grant,
	// audit. Count must be within OversizedDrawThreshold.
	Draw(ctx context.Context, userID string, poolID, count int) (*domain.DrawResult, error)

	// DrawOversized settles a request above the threshold in sub-batches
	// under the process-wide admission slot. A sub-batch failure keeps
	// everything settled so far and refunds the untouched remainder.
	DrawOversized(ctx context.Context, userID string, poolID, count int) (*domain.OversizedDrawResult, error)

	ListPools(ctx context.Context) ([]domain.GachaPool, error)
	GetPoolProbabilities(ctx context.Context, poolID int) ([]domain.PoolItemProbability, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]domain.GachaRecord, error)
}

type service struct {
	users        repository.User
	inventory    repository.Inventory
	items        repository.ItemTemplate
	pools        repository.Pool
	audit        repository.AuditLog
	achievements repository.Achievement
	slot         *concurrency.AdmissionSlot

	// rnd and now are injectable for deterministic tests.
	rnd func() float64
	now func() time.Time
}

// NewService creates a new gacha service
func NewService(
	users repository.User,
	inventory repository.Inventory,
	items repository.ItemTemplate,
	pools repository.Pool,
	audit repository.AuditLog,
	achievements repository.Achievement,
	slot *concurrency.AdmissionSlot,
) Service {
	return &service{
		users:        users,
		inventory:    inventory,
		items:        items,
		pools:        pools,
		audit:        audit,
		achievements: achievements,
		slot:         slot,
		rnd:          utils.RandomFloat,
		now:          time.Now,
	}
}

// loadDrawContext validates the user and pool for a draw request.
func (s *service) loadDrawContext(ctx context.Context, userID string, poolID int) (*domain.User, *domain.GachaPool, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	pool, err := s.pools.GetPoolByID(ctx, poolID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load pool: %w", err)
	}
	if pool == nil {
		return nil, nil, fmt.Errorf("%w: %d", domain.ErrPoolNotFound, poolID)
	}
	if pool.TotalWeight() <= 0 {
		return nil, nil, fmt.Errorf("%w: pool %d", domain.ErrPoolEmpty, poolID)
	}
	return user, pool, nil
}

// Draw performs count draws against the pool and settles the rewards.
func (s *service) Draw(ctx context.Context, userID string, poolID, count int) (*domain.DrawResult, error) {
	log := logger.FromContext(ctx)

	if count < 1 {
		return nil, fmt.Errorf("%w: draw count must be positive, got %d", domain.ErrInvalidInput, count)
	}
	if count > OversizedDrawThreshold {
		return nil, fmt.Errorf("%w: draw count %d exceeds the single-request limit %d",
			domain.ErrInvalidInput, count, OversizedDrawThreshold)
	}

	user, pool, err := s.loadDrawContext(ctx, userID, poolID)
	if err != nil {
		return nil, err
	}

	cost := pool.CostCoins * count
	if !user.CanAfford(cost) {
		return nil, &domain.InsufficientFundsError{Required: cost, Balance: user.Coins}
	}

	// The single-statement debit is the arbiter under concurrency; the
	// CanAfford check above only short-circuits the obvious case.
	if cost > 0 {
		if err := s.users.AdjustCoins(ctx, userID, -cost); err != nil {
			return nil, fmt.Errorf("failed to debit draw cost: %w", err)
		}
	}

	draws, err := drawMany(pool, count, s.rnd)
	if err != nil {
		return nil, err
	}

	rewards, err := s.grantRewards(ctx, userID, pool, aggregateDraws(draws))
	if err != nil {
		return nil, fmt.Errorf("failed to settle draw rewards: %w", err)
	}

	metrics.DrawsPerformed.WithLabelValues(strconv.Itoa(pool.ID)).Add(float64(count))
	metrics.CoinsSpent.Add(float64(cost))

	log.Info("Draw settled",
		"user_id", userID, "pool_id", poolID, "draws", count, "cost", cost)

	return &domain.DrawResult{Rewards: rewards, Draws: count, Cost: cost}, nil
}

// ListPools returns every configured pool.
func (s *service) ListPools(ctx context.Context) ([]domain.GachaPool, error) {
	return s.pools.ListAllPools(ctx)
}

// GetPoolProbabilities resolves a pool's entries for display, with each
// entry's probability over the total weight.
func (s *service) GetPoolProbabilities(ctx context.Context, poolID int) ([]domain.PoolItemProbability, error) {
	pool, err := s.pools.GetPoolByID(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pool: %w", err)
	}
	if pool == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrPoolNotFound, poolID)
	}

	total := pool.TotalWeight()
	probabilities := make([]domain.PoolItemProbability, 0, len(pool.Items))
	for _, item := range pool.Items {
		name, rarity, _, err := s.resolveReward(ctx, item.Kind, item.TemplateID)
		if err != nil {
			return nil, err
		}

		p := 0.0
		if total > 0 {
			p = float64(item.Weight) / float64(total)
		}
		probabilities = append(probabilities, domain.PoolItemProbability{
			Kind:        item.Kind,
			TemplateID:  item.TemplateID,
			Name:        name,
			Rarity:      rarity,
			Weight:      item.Weight,
			Probability: p,
		})
	}
	return probabilities, nil
}

// GetHistory returns the user's most recent audit rows.
func (s *service) GetHistory(ctx context.Context, userID string, limit int) ([]domain.GachaRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	return s.audit.GetGachaRecords(ctx, userID, limit)
}

// resolveReward looks up display attributes for a pool entry. Coins have
// no template; titles have no rarity or durability.
func (s *service) resolveReward(ctx context.Context, kind domain.RewardKind, templateID int) (name string, rarity int, durability *int, err error) {
	switch kind {
	case domain.RewardRod:
		t, err := s.items.GetRodTemplate(ctx, templateID)
		if err != nil {
			return "", 0, nil, err
		}
		if t == nil {
			return "", 0, nil, fmt.Errorf("%w: rod %d", domain.ErrTemplateNotFound, templateID)
		}
		return t.Name, t.Rarity, t.Durability, nil
	case domain.RewardAccessory:
		t, err := s.items.GetAccessoryTemplate(ctx, templateID)
		if err != nil {
			return "", 0, nil, err
		}
		if t == nil {
			return "", 0, nil, fmt.Errorf("%w: accessory %d", domain.ErrTemplateNotFound, templateID)
		}
		return t.Name, t.Rarity, nil, nil
	case domain.RewardBait:
		t, err := s.items.GetBaitTemplate(ctx, templateID)
		if err != nil {
			return "", 0, nil, err
		}
		if t == nil {
			return "", 0, nil, fmt.Errorf("%w: bait %d", domain.ErrTemplateNotFound, templateID)
		}
		return t.Name, t.Rarity, nil, nil
	case domain.RewardCoins:
		return CoinsRewardName, 0, nil, nil
	case domain.RewardTitle:
		t, err := s.items.GetTitleTemplate(ctx, templateID)
		if err != nil {
			return "", 0, nil, err
		}
		if t == nil {
			return "", 0, nil, fmt.Errorf("%w: title %d", domain.ErrTemplateNotFound, templateID)
		}
		return t.Name, 0, nil, nil
	}
	return "", 0, nil, fmt.Errorf("%w: reward kind %q", domain.ErrInvalidInput, kind)
}
