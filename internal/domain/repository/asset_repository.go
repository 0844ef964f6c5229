package repository

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// AssetRepository is the persistence contract for the asset aggregate.
// FindAll pages 1-indexed in descending creation order.
type AssetRepository interface {
	Save(ctx context.Context, a *entity.Asset) error
	FindByID(ctx context.Context, id string) (*entity.Asset, error)
	FindByCode(ctx context.Context, code valueobject.AssetCode) (*entity.Asset, error)
	ExistsByCode(ctx context.Context, code valueobject.AssetCode) (bool, error)
	FindAll(ctx context.Context, page, limit int) ([]*entity.Asset, error)
	Delete(ctx context.Context, id string) error

	AddDocument(ctx context.Context, doc *entity.AssetDocument) error
	FindDocuments(ctx context.Context, assetID string) ([]*entity.AssetDocument, error)
}
