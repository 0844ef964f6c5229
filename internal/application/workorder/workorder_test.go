package workorder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zagroshq/cmms-api/internal/application/workorder"
	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
	"github.com/zagroshq/cmms-api/pkg/mailer"
)

type memoryOrderRepo struct {
	orders map[string]*entity.WorkOrder
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{orders: map[string]*entity.WorkOrder{}}
}

func (r *memoryOrderRepo) Save(_ context.Context, w *entity.WorkOrder) error {
	r.orders[w.ID] = w
	return nil
}

func (r *memoryOrderRepo) FindByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	w, ok := r.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("work order not found")
	}
	return w, nil
}

func (r *memoryOrderRepo) FindByNumber(_ context.Context, number valueobject.WorkOrderNumber) (*entity.WorkOrder, error) {
	for _, w := range r.orders {
		if w.Number.Equals(number) {
			return w, nil
		}
	}
	return nil, domain.NewNotFoundError("work order not found")
}

func (r *memoryOrderRepo) ExistsByNumber(ctx context.Context, number valueobject.WorkOrderNumber) (bool, error) {
	_, err := r.FindByNumber(ctx, number)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *memoryOrderRepo) FindAll(_ context.Context, page, limit int) ([]*entity.WorkOrder, error) {
	out := make([]*entity.WorkOrder, 0, len(r.orders))
	for _, w := range r.orders {
		out = append(out, w)
	}
	return out, nil
}

func (r *memoryOrderRepo) FindByAssetID(_ context.Context, assetID string, page, limit int) ([]*entity.WorkOrder, error) {
	out := []*entity.WorkOrder{}
	for _, w := range r.orders {
		if w.AssetID == assetID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memoryOrderRepo) Delete(_ context.Context, id string) error {
	delete(r.orders, id)
	return nil
}

// capturePublisher records published notification jobs.
type capturePublisher struct {
	jobs []any
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return nil
}

func seedAsset(t *testing.T, repo *memoryAssetRepo, code, name string) *entity.Asset {
	t.Helper()
	c, err := valueobject.NewAssetCode(code)
	require.NoError(t, err)
	a := entity.NewAsset(c, name, "cat-1", "loc-1")
	require.NoError(t, repo.Save(context.Background(), a))
	return a
}

func seedUser(t *testing.T, repo *memoryUserRepo, email string) *entity.User {
	t.Helper()
	e, err := valueobject.NewEmail(email)
	require.NoError(t, err)
	u := entity.NewUser(e, "hash", "Jo", "Tech", "")
	u.AddRole(entity.RoleTechnician)
	require.NoError(t, repo.Save(context.Background(), u))
	return u
}

func TestCreateWorkOrder_GeneratesNumberAndValidatesAsset(t *testing.T) {
	ctx := context.Background()
	orders := newMemoryOrderRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets, "PUMP-9", "Sump pump")
	h := workorder.NewCreateHandler(orders, assets)

	id, err := h.Handle(ctx, workorder.CreateCommand{Title: "Replace seal", AssetID: a.ID, Type: "corrective"})
	require.NoError(t, err)

	w, err := orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Regexp(t, `^WO-\d{8}-[0-9A-F]{8}$`, w.Number.String())
	assert.Equal(t, valueobject.WorkOrderPending, w.Status)
	assert.Equal(t, valueobject.DefaultWorkOrderPriority, w.Priority)

	// Missing asset must fail before any write.
	_, err = h.Handle(ctx, workorder.CreateCommand{Title: "Orphan", AssetID: "missing", Type: "corrective"})
	assert.True(t, domain.IsNotFound(err))
	assert.Len(t, orders.orders, 1)
}

func TestCreateWorkOrder_DuplicateNumberConflicts(t *testing.T) {
	ctx := context.Background()
	orders := newMemoryOrderRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets, "CNV-1", "Conveyor")
	h := workorder.NewCreateHandler(orders, assets)

	_, err := h.Handle(ctx, workorder.CreateCommand{Number: "WO-CUSTOM-1", Title: "First", AssetID: a.ID, Type: "inspection"})
	require.NoError(t, err)

	_, err = h.Handle(ctx, workorder.CreateCommand{Number: "wo-custom-1", Title: "Second", AssetID: a.ID, Type: "inspection"})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestAssign_PublishesNotification(t *testing.T) {
	ctx := context.Background()
	orders := newMemoryOrderRepo()
	assets := newMemoryAssetRepo()
	users := newMemoryUserRepo()
	a := seedAsset(t, assets, "BLR-2", "Boiler 2")
	u := seedUser(t, users, "jo@plant.io")

	create := workorder.NewCreateHandler(orders, assets)
	id, err := create.Handle(ctx, workorder.CreateCommand{Title: "Inspect burners", AssetID: a.ID, Type: "inspection"})
	require.NoError(t, err)

	pub := &capturePublisher{}
	assign := workorder.NewAssignHandler(orders, users, assets, pub, nil)

	dto, err := assign.Handle(ctx, workorder.AssignCommand{WorkOrderID: id, AssigneeID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, u.ID, dto.AssignedTo)

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.NotificationJob)
	require.True(t, ok)
	assert.Equal(t, "jo@plant.io", job.To)
	assert.Equal(t, mailer.KindWorkOrderAssigned, job.Kind)
	assert.Equal(t, "Boiler 2", job.Data["AssetName"])
}

func TestAssign_UnknownAssigneeDoesNotPublish(t *testing.T) {
	ctx := context.Background()
	orders := newMemoryOrderRepo()
	assets := newMemoryAssetRepo()
	users := newMemoryUserRepo()
	a := seedAsset(t, assets, "FAN-3", "Exhaust fan")

	create := workorder.NewCreateHandler(orders, assets)
	id, err := create.Handle(ctx, workorder.CreateCommand{Title: "Balance blades", AssetID: a.ID, Type: "corrective"})
	require.NoError(t, err)

	pub := &capturePublisher{}
	assign := workorder.NewAssignHandler(orders, users, assets, pub, nil)

	_, err = assign.Handle(ctx, workorder.AssignCommand{WorkOrderID: id, AssigneeID: "ghost"})
	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, pub.jobs)
}

func TestTransition_Lifecycle(t *testing.T) {
	ctx := context.Background()
	orders := newMemoryOrderRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets, "LFT-1", "Forklift")

	create := workorder.NewCreateHandler(orders, assets)
	id, err := create.Handle(ctx, workorder.CreateCommand{Title: "Hydraulics", AssetID: a.ID, Type: "corrective"})
	require.NoError(t, err)

	transition := workorder.NewTransitionHandler(orders)

	dto, err := transition.Handle(ctx, workorder.TransitionCommand{WorkOrderID: id, Action: workorder.ActionStart})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", dto.Status)
	require.NotNil(t, dto.ActualStart)

	dto, err = transition.Handle(ctx, workorder.TransitionCommand{WorkOrderID: id, Action: workorder.ActionComplete})
	require.NoError(t, err)
	assert.Equal(t, "completed", dto.Status)
	require.NotNil(t, dto.ActualHours)

	// Completed is terminal.
	_, err = transition.Handle(ctx, workorder.TransitionCommand{WorkOrderID: id, Action: workorder.ActionCancel})
	assert.True(t, domain.IsValidation(err))

	_, err = transition.Handle(ctx, workorder.TransitionCommand{WorkOrderID: id, Action: "reopen"})
	assert.True(t, domain.IsValidation(err))
}

func TestListByAsset(t *testing.T) {
	ctx := context.Background()
	orders := newMemoryOrderRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets, "AHU-1", "Air handler")
	b := seedAsset(t, assets, "AHU-2", "Air handler 2")

	create := workorder.NewCreateHandler(orders, assets)
	_, err := create.Handle(ctx, workorder.CreateCommand{Title: "Filter A", AssetID: a.ID, Type: "preventive"})
	require.NoError(t, err)
	_, err = create.Handle(ctx, workorder.CreateCommand{Title: "Filter B", AssetID: b.ID, Type: "preventive"})
	require.NoError(t, err)

	list := workorder.NewListHandler(orders)
	rows, err := list.Handle(ctx, workorder.ListQuery{AssetID: a.ID, Page: 1, Limit: 30})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Filter A", rows[0].Title)
}
