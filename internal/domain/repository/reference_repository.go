package repository

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
)

// Reference data has no natural key beyond id and no mutation methods, so
// the contracts are slimmer than the aggregate repositories.

type AssetCategoryRepository interface {
	Save(ctx context.Context, c *entity.AssetCategory) error
	FindByID(ctx context.Context, id string) (*entity.AssetCategory, error)
	FindAll(ctx context.Context, page, limit int) ([]*entity.AssetCategory, error)
	Delete(ctx context.Context, id string) error
}

type LocationRepository interface {
	Save(ctx context.Context, l *entity.Location) error
	FindByID(ctx context.Context, id string) (*entity.Location, error)
	FindAll(ctx context.Context, page, limit int) ([]*entity.Location, error)
	Delete(ctx context.Context, id string) error
}
