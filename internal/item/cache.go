package item

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/repository"
)

// DefaultCacheSize bounds each per-kind template cache. Templates are
// small and change rarely, so a modest LRU covers the working set.
const DefaultCacheSize = 512

// CachedTemplates is a read-through cache in front of the template
// catalog. Templates are immutable at runtime; entries are never
// invalidated, only evicted. Misses (nil, nil) are not cached so a
// template created later becomes visible on its next lookup.
type CachedTemplates struct {
	source repository.ItemTemplate

	rods        *lru.Cache[int, *domain.RodTemplate]
	accessories *lru.Cache[int, *domain.AccessoryTemplate]
	baits       *lru.Cache[int, *domain.BaitTemplate]
	fish        *lru.Cache[int, *domain.FishTemplate]
	titles      *lru.Cache[int, *domain.TitleTemplate]
}

// NewCachedTemplates wraps source with per-kind LRU caches of the given
// size.
func NewCachedTemplates(source repository.ItemTemplate, size int) (*CachedTemplates, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	rods, err := lru.New[int, *domain.RodTemplate](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create rod cache: %w", err)
	}
	accessories, err := lru.New[int, *domain.AccessoryTemplate](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create accessory cache: %w", err)
	}
	baits, err := lru.New[int, *domain.BaitTemplate](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create bait cache: %w", err)
	}
	fish, err := lru.New[int, *domain.FishTemplate](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create fish cache: %w", err)
	}
	titles, err := lru.New[int, *domain.TitleTemplate](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create title cache: %w", err)
	}

	return &CachedTemplates{
		source:      source,
		rods:        rods,
		accessories: accessories,
		baits:       baits,
		fish:        fish,
		titles:      titles,
	}, nil
}

// GetRodTemplate returns the rod template, or (nil, nil) when absent.
func (c *CachedTemplates) GetRodTemplate(ctx context.Context, id int) (*domain.RodTemplate, error) {
	if t, ok := c.rods.Get(id); ok {
		return t, nil
	}
	t, err := c.source.GetRodTemplate(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	c.rods.Add(id, t)
	return t, nil
}

// GetAccessoryTemplate returns the accessory template, or (nil, nil) when absent.
func (c *CachedTemplates) GetAccessoryTemplate(ctx context.Context, id int) (*domain.AccessoryTemplate, error) {
	if t, ok := c.accessories.Get(id); ok {
		return t, nil
	}
	t, err := c.source.GetAccessoryTemplate(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	c.accessories.Add(id, t)
	return t, nil
}

// GetBaitTemplate returns the bait template, or (nil, nil) when absent.
func (c *CachedTemplates) GetBaitTemplate(ctx context.Context, id int) (*domain.BaitTemplate, error) {
	if t, ok := c.baits.Get(id); ok {
		return t, nil
	}
	t, err := c.source.GetBaitTemplate(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	c.baits.Add(id, t)
	return t, nil
}

// GetFishTemplate returns the fish template, or (nil, nil) when absent.
func (c *CachedTemplates) GetFishTemplate(ctx context.Context, id int) (*domain.FishTemplate, error) {
	if t, ok := c.fish.Get(id); ok {
		return t, nil
	}
	t, err := c.source.GetFishTemplate(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	c.fish.Add(id, t)
	return t, nil
}

// GetTitleTemplate returns the title template, or (nil, nil) when absent.
func (c *CachedTemplates) GetTitleTemplate(ctx context.Context, id int) (*domain.TitleTemplate, error) {
	if t, ok := c.titles.Get(id); ok {
		return t, nil
	}
	t, err := c.source.GetTitleTemplate(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	c.titles.Add(id, t)
	return t, nil
}
