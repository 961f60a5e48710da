package gacha

import (
	"fmt"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// drawOne picks one pool entry by weighted choice. The walk accumulates
// weights in configured order and selects the first entry whose running
// sum reaches r, so a draw landing exactly on a boundary goes to the
// earlier entry. Zero-weight entries are never selected.
func drawOne(pool *domain.GachaPool, rnd func() float64) (domain.GachaPoolItem, error) {
	total := pool.TotalWeight()
	if total <= 0 {
		return domain.GachaPoolItem{}, fmt.Errorf("%w: pool %d", domain.ErrPoolEmpty, pool.ID)
	}

	r := rnd() * float64(total)
	cum := 0
	var last *domain.GachaPoolItem
	for i := range pool.Items {
		item := &pool.Items[i]
		if item.Weight <= 0 {
			continue
		}
		cum += item.Weight
		if r <= float64(cum) {
			return *item, nil
		}
		last = item
	}

	// Floating-point edge at the top of the range lands on the final
	// positive-weight entry.
	if last != nil {
		return *last, nil
	}
	return domain.GachaPoolItem{}, fmt.Errorf("%w: pool %d", domain.ErrDrawFailed, pool.ID)
}

// drawMany performs count independent draws against the pool.
func drawMany(pool *domain.GachaPool, count int, rnd func() float64) ([]domain.GachaPoolItem, error) {
	draws := make([]domain.GachaPoolItem, 0, count)
	for i := 0; i < count; i++ {
		item, err := drawOne(pool, rnd)
		if err != nil {
			return nil, err
		}
		draws = append(draws, item)
	}
	return draws, nil
}
