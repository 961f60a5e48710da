package gacha

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/logger"
	"github.com/pondside/AnglerBot_Go/internal/metrics"
)

// DrawOversized settles a draw request above OversizedDrawThreshold.
//
// The whole cost is debited up front, then the request runs in sub-batches
// of OversizedSubBatchSize under the process-wide admission slot. When a
// sub-batch fails mid-settlement its draws count as consumed: whatever it
// granted and logged stays, and only the sub-batches that never started
// are refunded.
func (s *service) DrawOversized(ctx context.Context, userID string, poolID, count int) (*domain.OversizedDrawResult, error) {
	log := logger.FromContext(ctx)

	if count < 1 {
		return nil, fmt.Errorf("%w: draw count must be positive, got %d", domain.ErrInvalidInput, count)
	}

	user, pool, err := s.loadDrawContext(ctx, userID, poolID)
	if err != nil {
		return nil, err
	}

	if holder, ok := s.slot.TryAcquire(userID, user.Nickname); !ok {
		metrics.OversizedRejected.Inc()
		return nil, &domain.BusyError{HolderID: holder.ID, HolderName: holder.Name}
	}
	defer s.slot.Release()

	totalCost := pool.CostCoins * count
	if !user.CanAfford(totalCost) {
		return nil, &domain.InsufficientFundsError{Required: totalCost, Balance: user.Coins}
	}
	if totalCost > 0 {
		if err := s.users.AdjustCoins(ctx, userID, -totalCost); err != nil {
			return nil, fmt.Errorf("failed to debit draw cost: %w", err)
		}
	}

	metrics.CoinsSpent.Add(float64(totalCost))

	sizes := subBatchSizes(count)
	log.Info("Oversized draw started",
		"user_id", userID, "pool_id", poolID, "draws", count, "sub_batches", len(sizes), "cost", totalCost)

	result := &domain.OversizedDrawResult{RequestedDraws: count}
	var batches [][]domain.RewardDescriptor

	for i, size := range sizes {
		// A cancelled context before a sub-batch starts leaves that
		// sub-batch unconsumed, so it is part of the refund.
		if err := ctx.Err(); err != nil {
			s.refundRemaining(ctx, userID, pool, sizes[i:], result, fmt.Sprintf("cancelled: %v", err))
			break
		}

		draws, err := drawMany(pool, size, s.rnd)
		if err != nil {
			s.refundRemaining(ctx, userID, pool, sizes[i:], result, err.Error())
			break
		}

		rewards, err := s.grantRewards(ctx, userID, pool, aggregateDraws(draws))
		if err != nil {
			// The failing sub-batch is forfeit: its draws happened and
			// whatever settled before the failure stays settled. Only
			// the sub-batches after it are refunded.
			log.Error("Oversized sub-batch failed",
				"user_id", userID, "pool_id", poolID, "sub_batch", i+1, "of", len(sizes), "error", err)
			result.CompletedDraws += size
			batches = append(batches, rewards)
			s.refundRemaining(ctx, userID, pool, sizes[i+1:], result, err.Error())
			break
		}

		result.CompletedDraws += size
		batches = append(batches, rewards)
		metrics.DrawsPerformed.WithLabelValues(strconv.Itoa(pool.ID)).Add(float64(size))
	}

	result.Rewards = mergeDescriptors(batches...)

	log.Info("Oversized draw finished",
		"user_id", userID, "pool_id", poolID,
		"completed", result.CompletedDraws, "requested", result.RequestedDraws,
		"partial", result.Partial, "refunded", result.RefundedCoins)

	return result, nil
}

// subBatchSizes splits count into chunks of at most OversizedSubBatchSize.
func subBatchSizes(count int) []int {
	sizes := []int{}
	for count > 0 {
		size := count
		if size > OversizedSubBatchSize {
			size = OversizedSubBatchSize
		}
		sizes = append(sizes, size)
		count -= size
	}
	return sizes
}

// refundRemaining credits back the cost of sub-batches that never ran and
// marks the result partial. A failed refund is logged loudly: the money is
// gone until an operator reconciles the audit log against the debit.
func (s *service) refundRemaining(ctx context.Context, userID string, pool *domain.GachaPool, remaining []int, result *domain.OversizedDrawResult, reason string) {
	result.Partial = true
	result.FailureMessage = reason
	metrics.OversizedPartial.Inc()

	draws := 0
	for _, size := range remaining {
		draws += size
	}
	refund := draws * pool.CostCoins
	if refund == 0 {
		return
	}

	// The refund must go through even when the request context is already
	// cancelled; that is one of the paths that gets here.
	refundCtx := context.WithoutCancel(ctx)
	if err := s.users.AdjustCoins(refundCtx, userID, refund); err != nil {
		logger.FromContext(ctx).Error("Failed to refund unconsumed draws",
			"user_id", userID, "pool_id", pool.ID, "refund", refund, "error", err)
		return
	}
	result.RefundedCoins = refund
	metrics.CoinsRefunded.Add(float64(refund))
}
