package repository

import (
	"context"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// ItemTemplate defines the template catalog lookups the core consumes.
// Each getter returns (nil, nil) when the template does not exist.
type ItemTemplate interface {
	GetRodTemplate(ctx context.Context, id int) (*domain.RodTemplate, error)
	GetAccessoryTemplate(ctx context.Context, id int) (*domain.AccessoryTemplate, error)
	GetBaitTemplate(ctx context.Context, id int) (*domain.BaitTemplate, error)
	GetFishTemplate(ctx context.Context, id int) (*domain.FishTemplate, error)
	GetTitleTemplate(ctx context.Context, id int) (*domain.TitleTemplate, error)
}
