package repository

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

type WorkOrderRepository interface {
	Save(ctx context.Context, w *entity.WorkOrder) error
	FindByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	FindByNumber(ctx context.Context, number valueobject.WorkOrderNumber) (*entity.WorkOrder, error)
	ExistsByNumber(ctx context.Context, number valueobject.WorkOrderNumber) (bool, error)
	FindAll(ctx context.Context, page, limit int) ([]*entity.WorkOrder, error)
	FindByAssetID(ctx context.Context, assetID string, page, limit int) ([]*entity.WorkOrder, error)
	Delete(ctx context.Context, id string) error
}
