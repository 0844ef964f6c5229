package repository

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

type PartRepository interface {
	Save(ctx context.Context, p *entity.Part) error
	FindByID(ctx context.Context, id string) (*entity.Part, error)
	FindByNumber(ctx context.Context, number valueobject.PartNumber) (*entity.Part, error)
	ExistsByNumber(ctx context.Context, number valueobject.PartNumber) (bool, error)
	FindAll(ctx context.Context, page, limit int) ([]*entity.Part, error)
	FindBelowMinimum(ctx context.Context) ([]*entity.Part, error)
	Delete(ctx context.Context, id string) error

	// AdjustStock persists the mutated part and its movement audit row in a
	// single transaction; neither write survives alone.
	AdjustStock(ctx context.Context, p *entity.Part, mv *entity.InventoryTransaction) error
	FindTransactions(ctx context.Context, partID string, page, limit int) ([]*entity.InventoryTransaction, error)
}
