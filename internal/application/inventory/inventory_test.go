package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zagroshq/cmms-api/internal/application/inventory"
	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

type memoryPartRepo struct {
	parts     map[string]*entity.Part
	txs       []*entity.InventoryTransaction
	adjustErr error
}

func newMemoryPartRepo() *memoryPartRepo {
	return &memoryPartRepo{parts: map[string]*entity.Part{}}
}

func (r *memoryPartRepo) Save(_ context.Context, p *entity.Part) error {
	r.parts[p.ID] = p
	return nil
}

// FindByID hands out a copy so handler mutations only land via a write call,
// mirroring a database round trip.
func (r *memoryPartRepo) FindByID(_ context.Context, id string) (*entity.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, domain.NewNotFoundError("part not found")
	}
	cp := *p
	return &cp, nil
}

func (r *memoryPartRepo) FindByNumber(_ context.Context, number valueobject.PartNumber) (*entity.Part, error) {
	for _, p := range r.parts {
		if p.Number.Equals(number) {
			return p, nil
		}
	}
	return nil, domain.NewNotFoundError("part not found")
}

func (r *memoryPartRepo) ExistsByNumber(ctx context.Context, number valueobject.PartNumber) (bool, error) {
	_, err := r.FindByNumber(ctx, number)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *memoryPartRepo) FindAll(_ context.Context, page, limit int) ([]*entity.Part, error) {
	out := make([]*entity.Part, 0, len(r.parts))
	for _, p := range r.parts {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryPartRepo) FindBelowMinimum(_ context.Context) ([]*entity.Part, error) {
	out := []*entity.Part{}
	for _, p := range r.parts {
		if p.BelowMinimum() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryPartRepo) Delete(_ context.Context, id string) error {
	delete(r.parts, id)
	return nil
}

func (r *memoryPartRepo) AdjustStock(_ context.Context, p *entity.Part, mv *entity.InventoryTransaction) error {
	if r.adjustErr != nil {
		return r.adjustErr
	}
	cp := *p
	r.parts[p.ID] = &cp
	r.txs = append(r.txs, mv)
	return nil
}

func (r *memoryPartRepo) FindTransactions(_ context.Context, partID string, page, limit int) ([]*entity.InventoryTransaction, error) {
	out := []*entity.InventoryTransaction{}
	for _, tx := range r.txs {
		if tx.PartID == partID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func TestCreatePart_DuplicateNumberConflicts(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPartRepo()
	h := inventory.NewCreatePartHandler(repo)

	_, err := h.Handle(ctx, inventory.CreatePartCommand{Number: "BRG-6204", Name: "Ball bearing", Unit: "pcs"})
	require.NoError(t, err)

	_, err = h.Handle(ctx, inventory.CreatePartCommand{Number: "brg-6204", Name: "Other bearing", Unit: "pcs"})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Len(t, repo.parts, 1)
}

func TestAdjustStock_ReceiveThenIssue(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPartRepo()
	create := inventory.NewCreatePartHandler(repo)
	adjust := inventory.NewAdjustStockHandler(repo)

	id, err := create.Handle(ctx, inventory.CreatePartCommand{Number: "FLT-22", Name: "Air filter", Unit: "pcs"})
	require.NoError(t, err)

	dto, err := adjust.Handle(ctx, inventory.AdjustStockCommand{PartID: id, Type: entity.TxReceive, Quantity: 10, CreatedBy: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 10, dto.Quantity)

	dto, err = adjust.Handle(ctx, inventory.AdjustStockCommand{PartID: id, Type: entity.TxIssue, Quantity: 4, ReferenceType: "work_order", ReferenceID: "wo-1"})
	require.NoError(t, err)
	assert.Equal(t, 6, dto.Quantity)

	txs, err := inventory.NewListTransactionsHandler(repo).Handle(ctx, inventory.ListTransactionsQuery{PartID: id, Page: 1, Limit: 30})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, entity.TxReceive, txs[0].Type)
	assert.Equal(t, entity.TxIssue, txs[1].Type)
	assert.Equal(t, "work_order", txs[1].ReferenceType)
}

func TestAdjustStock_IssueBeyondStockWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPartRepo()
	create := inventory.NewCreatePartHandler(repo)
	adjust := inventory.NewAdjustStockHandler(repo)

	id, err := create.Handle(ctx, inventory.CreatePartCommand{Number: "GSK-9", Name: "Gasket", Unit: "pcs"})
	require.NoError(t, err)

	_, err = adjust.Handle(ctx, inventory.AdjustStockCommand{PartID: id, Type: entity.TxReceive, Quantity: 3})
	require.NoError(t, err)

	_, err = adjust.Handle(ctx, inventory.AdjustStockCommand{PartID: id, Type: entity.TxIssue, Quantity: 5})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	p, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity, "rejected issue must not change stock")
	assert.Len(t, repo.txs, 1, "rejected issue must not append a transaction")
}

func TestAdjustStock_FailedWriteLeavesNoPartialState(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPartRepo()
	create := inventory.NewCreatePartHandler(repo)

	id, err := create.Handle(ctx, inventory.CreatePartCommand{Number: "HOSE-12", Name: "Hydraulic hose", Unit: "pcs"})
	require.NoError(t, err)

	repo.adjustErr = errors.New("connection reset")
	_, err = inventory.NewAdjustStockHandler(repo).Handle(ctx, inventory.AdjustStockCommand{PartID: id, Type: entity.TxReceive, Quantity: 7})
	require.Error(t, err)

	p, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity, "failed write must not change stock")
	assert.Empty(t, repo.txs, "failed write must not append a transaction")
}

func TestAdjustStock_UnknownMovementType(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPartRepo()
	create := inventory.NewCreatePartHandler(repo)

	id, err := create.Handle(ctx, inventory.CreatePartCommand{Number: "SEAL-3", Name: "Shaft seal", Unit: "pcs"})
	require.NoError(t, err)

	_, err = inventory.NewAdjustStockHandler(repo).Handle(ctx, inventory.AdjustStockCommand{PartID: id, Type: "teleport", Quantity: 1})
	assert.True(t, domain.IsValidation(err))
}

func TestListBelowMinimum(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPartRepo()
	create := inventory.NewCreatePartHandler(repo)
	adjust := inventory.NewAdjustStockHandler(repo)

	min := 5
	low, err := create.Handle(ctx, inventory.CreatePartCommand{Number: "BELT-A", Name: "V-belt A", Unit: "pcs", MinStockLevel: &min})
	require.NoError(t, err)
	ok, err := create.Handle(ctx, inventory.CreatePartCommand{Number: "BELT-B", Name: "V-belt B", Unit: "pcs", MinStockLevel: &min})
	require.NoError(t, err)

	_, err = adjust.Handle(ctx, inventory.AdjustStockCommand{PartID: low, Type: entity.TxReceive, Quantity: 2})
	require.NoError(t, err)
	_, err = adjust.Handle(ctx, inventory.AdjustStockCommand{PartID: ok, Type: entity.TxReceive, Quantity: 8})
	require.NoError(t, err)

	dtos, err := inventory.NewListBelowMinimumHandler(repo).Handle(ctx, inventory.ListBelowMinimumQuery{})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "BELT-A", dtos[0].Number)
	assert.True(t, dtos[0].BelowMinimum)
}
