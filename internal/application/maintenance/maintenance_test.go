package maintenance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zagroshq/cmms-api/internal/application/maintenance"
	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
	"github.com/zagroshq/cmms-api/pkg/mailer"
)

type memoryScheduleRepo struct {
	schedules map[string]*entity.MaintenanceSchedule
	generated []*entity.WorkOrder
	genErr    error
}

func newMemoryScheduleRepo() *memoryScheduleRepo {
	return &memoryScheduleRepo{schedules: map[string]*entity.MaintenanceSchedule{}}
}

func (r *memoryScheduleRepo) Save(_ context.Context, s *entity.MaintenanceSchedule) error {
	r.schedules[s.ID] = s
	return nil
}

func (r *memoryScheduleRepo) SaveWithWorkOrder(_ context.Context, s *entity.MaintenanceSchedule, w *entity.WorkOrder) error {
	if r.genErr != nil {
		return r.genErr
	}
	cp := *s
	r.schedules[s.ID] = &cp
	r.generated = append(r.generated, w)
	return nil
}

// FindByID hands out a copy so handler mutations only land via a write call,
// mirroring a database round trip.
func (r *memoryScheduleRepo) FindByID(_ context.Context, id string) (*entity.MaintenanceSchedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, domain.NewNotFoundError("schedule not found")
	}
	cp := *s
	return &cp, nil
}

func (r *memoryScheduleRepo) FindAll(_ context.Context, page, limit int) ([]*entity.MaintenanceSchedule, error) {
	out := make([]*entity.MaintenanceSchedule, 0, len(r.schedules))
	for _, s := range r.schedules {
		out = append(out, s)
	}
	return out, nil
}

func (r *memoryScheduleRepo) FindDue(_ context.Context, before time.Time) ([]*entity.MaintenanceSchedule, error) {
	out := []*entity.MaintenanceSchedule{}
	for _, s := range r.schedules {
		if s.Due(before) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryScheduleRepo) Delete(_ context.Context, id string) error {
	delete(r.schedules, id)
	return nil
}

type memoryAssetRepo struct {
	assets map[string]*entity.Asset
}

func newMemoryAssetRepo() *memoryAssetRepo {
	return &memoryAssetRepo{assets: map[string]*entity.Asset{}}
}

func (r *memoryAssetRepo) Save(_ context.Context, a *entity.Asset) error {
	r.assets[a.ID] = a
	return nil
}

func (r *memoryAssetRepo) FindByID(_ context.Context, id string) (*entity.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, domain.NewNotFoundError("asset not found")
	}
	return a, nil
}

func (r *memoryAssetRepo) FindByCode(_ context.Context, _ valueobject.AssetCode) (*entity.Asset, error) {
	return nil, domain.NewNotFoundError("asset not found")
}

func (r *memoryAssetRepo) ExistsByCode(_ context.Context, _ valueobject.AssetCode) (bool, error) {
	return false, nil
}

func (r *memoryAssetRepo) FindAll(_ context.Context, page, limit int) ([]*entity.Asset, error) {
	return nil, nil
}

func (r *memoryAssetRepo) Delete(_ context.Context, id string) error {
	delete(r.assets, id)
	return nil
}

func (r *memoryAssetRepo) AddDocument(_ context.Context, _ *entity.AssetDocument) error { return nil }

func (r *memoryAssetRepo) FindDocuments(_ context.Context, _ string) ([]*entity.AssetDocument, error) {
	return nil, nil
}

type memoryUserRepo struct {
	users map[string]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*entity.User{}}
}

func (r *memoryUserRepo) Save(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user not found")
	}
	return u, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email valueobject.Email) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email.Equals(email) {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("user not found")
}

func (r *memoryUserRepo) ExistsByEmail(_ context.Context, _ valueobject.Email) (bool, error) {
	return false, nil
}

func (r *memoryUserRepo) FindAll(_ context.Context, page, limit int) ([]*entity.User, error) {
	return nil, nil
}

func (r *memoryUserRepo) FindByRole(_ context.Context, role string) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, u := range r.users {
		if u.Active && u.HasRole(role) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type capturePublisher struct {
	jobs []mailer.NotificationJob
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	job, ok := body.(mailer.NotificationJob)
	if !ok {
		return errors.New("unexpected payload type")
	}
	p.jobs = append(p.jobs, job)
	return nil
}

func seedAsset(t *testing.T, repo *memoryAssetRepo) *entity.Asset {
	t.Helper()
	code, err := valueobject.NewAssetCode("CHLR-1")
	require.NoError(t, err)
	a := entity.NewAsset(code, "Chiller 1", "cat-1", "loc-1")
	require.NoError(t, repo.Save(context.Background(), a))
	return a
}

func TestCreateSchedule(t *testing.T) {
	ctx := context.Background()
	schedules := newMemoryScheduleRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets)
	h := maintenance.NewCreateScheduleHandler(schedules, assets)

	due := time.Now().UTC().Add(24 * time.Hour)
	id, err := h.Handle(ctx, maintenance.CreateScheduleCommand{
		Name: "Monthly filter change", AssetID: a.ID, IntervalValue: 1, IntervalUnit: entity.IntervalMonth, FirstDue: due,
	})
	require.NoError(t, err)

	s, err := schedules.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, s.Active)
	assert.Equal(t, due, *s.NextDueDate)

	_, err = h.Handle(ctx, maintenance.CreateScheduleCommand{
		Name: "Bad interval", AssetID: a.ID, IntervalValue: 1, IntervalUnit: "fortnight", FirstDue: due,
	})
	assert.True(t, domain.IsValidation(err))

	_, err = h.Handle(ctx, maintenance.CreateScheduleCommand{
		Name: "Orphan", AssetID: "missing", IntervalValue: 1, IntervalUnit: entity.IntervalWeek, FirstDue: due,
	})
	assert.True(t, domain.IsNotFound(err))
}

func TestGenerateWorkOrder_CreatesPreventiveAndAdvancesSchedule(t *testing.T) {
	ctx := context.Background()
	schedules := newMemoryScheduleRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets)

	due := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Second)
	create := maintenance.NewCreateScheduleHandler(schedules, assets)
	sid, err := create.Handle(ctx, maintenance.CreateScheduleCommand{
		Name: "Weekly lube", AssetID: a.ID, IntervalValue: 2, IntervalUnit: entity.IntervalWeek, FirstDue: due,
	})
	require.NoError(t, err)

	gen := maintenance.NewGenerateWorkOrderHandler(schedules)
	wid, err := gen.Handle(ctx, maintenance.GenerateWorkOrderCommand{ScheduleID: sid, CreatedBy: "u1"})
	require.NoError(t, err)

	require.Len(t, schedules.generated, 1)
	w := schedules.generated[0]
	assert.Equal(t, wid, w.ID)
	assert.Equal(t, valueobject.WorkPreventive, w.Type)
	assert.Equal(t, valueobject.WorkOrderPending, w.Status)
	require.NotNil(t, w.DueDate)
	assert.Equal(t, due, *w.DueDate)

	s, err := schedules.FindByID(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, s.NextDueDate)
	assert.Equal(t, due.AddDate(0, 0, 14), *s.NextDueDate)
	require.NotNil(t, s.LastGeneratedAt)
}

func TestGenerateWorkOrder_InactiveScheduleRejected(t *testing.T) {
	ctx := context.Background()
	schedules := newMemoryScheduleRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets)

	create := maintenance.NewCreateScheduleHandler(schedules, assets)
	sid, err := create.Handle(ctx, maintenance.CreateScheduleCommand{
		Name: "Quarterly belt check", AssetID: a.ID, IntervalValue: 3, IntervalUnit: entity.IntervalMonth, FirstDue: time.Now().UTC().Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = maintenance.NewSetScheduleActiveHandler(schedules).Handle(ctx, maintenance.SetScheduleActiveCommand{ScheduleID: sid, Active: false})
	require.NoError(t, err)

	gen := maintenance.NewGenerateWorkOrderHandler(schedules)
	_, err = gen.Handle(ctx, maintenance.GenerateWorkOrderCommand{ScheduleID: sid})
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, schedules.generated)
}

func TestGenerateWorkOrder_NotYetDueRejected(t *testing.T) {
	ctx := context.Background()
	schedules := newMemoryScheduleRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets)

	future := time.Now().UTC().Add(72 * time.Hour)
	create := maintenance.NewCreateScheduleHandler(schedules, assets)
	sid, err := create.Handle(ctx, maintenance.CreateScheduleCommand{
		Name: "Annual overhaul prep", AssetID: a.ID, IntervalValue: 6, IntervalUnit: entity.IntervalMonth, FirstDue: future,
	})
	require.NoError(t, err)

	gen := maintenance.NewGenerateWorkOrderHandler(schedules)
	_, err = gen.Handle(ctx, maintenance.GenerateWorkOrderCommand{ScheduleID: sid})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	s, err := schedules.FindByID(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, future, *s.NextDueDate, "rejected generation must not advance the schedule")
	assert.Nil(t, s.LastGeneratedAt)
	assert.Empty(t, schedules.generated)
}

func TestGenerateWorkOrder_FailedWriteLeavesScheduleUnchanged(t *testing.T) {
	ctx := context.Background()
	schedules := newMemoryScheduleRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets)

	due := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	create := maintenance.NewCreateScheduleHandler(schedules, assets)
	sid, err := create.Handle(ctx, maintenance.CreateScheduleCommand{
		Name: "Weekly lube", AssetID: a.ID, IntervalValue: 1, IntervalUnit: entity.IntervalWeek, FirstDue: due,
	})
	require.NoError(t, err)

	schedules.genErr = errors.New("connection reset")
	gen := maintenance.NewGenerateWorkOrderHandler(schedules)
	_, err = gen.Handle(ctx, maintenance.GenerateWorkOrderCommand{ScheduleID: sid})
	require.Error(t, err)

	s, err := schedules.FindByID(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, due, *s.NextDueDate, "failed write must not advance the schedule")
	assert.Nil(t, s.LastGeneratedAt)
	assert.Empty(t, schedules.generated, "failed write must not keep a work order")
}

func TestListDue(t *testing.T) {
	ctx := context.Background()
	schedules := newMemoryScheduleRepo()
	assets := newMemoryAssetRepo()
	a := seedAsset(t, assets)
	create := maintenance.NewCreateScheduleHandler(schedules, assets)

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(48 * time.Hour)

	_, err := create.Handle(ctx, maintenance.CreateScheduleCommand{Name: "Overdue", AssetID: a.ID, IntervalValue: 1, IntervalUnit: entity.IntervalDay, FirstDue: past})
	require.NoError(t, err)
	_, err = create.Handle(ctx, maintenance.CreateScheduleCommand{Name: "Later", AssetID: a.ID, IntervalValue: 1, IntervalUnit: entity.IntervalDay, FirstDue: future})
	require.NoError(t, err)

	due, err := maintenance.NewListDueHandler(schedules).Handle(ctx, maintenance.ListDueQuery{})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Overdue", due[0].Name)
}

func TestNotifyDue_QueuesReminderPerManagerAndDueSchedule(t *testing.T) {
	ctx := context.Background()
	schedules := newMemoryScheduleRepo()
	assets := newMemoryAssetRepo()
	users := newMemoryUserRepo()
	pub := &capturePublisher{}
	a := seedAsset(t, assets)

	manager := entity.NewUser(mustEmail(t, "lead@plant.example"), "hash", "Robin", "Vega", "")
	manager.AddRole(entity.RoleManager)
	require.NoError(t, users.Save(ctx, manager))
	worker := entity.NewUser(mustEmail(t, "tech@plant.example"), "hash", "Sam", "Ortiz", "")
	worker.AddRole(entity.RoleTechnician)
	require.NoError(t, users.Save(ctx, worker))

	create := maintenance.NewCreateScheduleHandler(schedules, assets)
	overdue := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	_, err := create.Handle(ctx, maintenance.CreateScheduleCommand{
		Name: "Quarterly filter change", AssetID: a.ID, IntervalValue: 3, IntervalUnit: entity.IntervalMonth, FirstDue: overdue,
	})
	require.NoError(t, err)
	_, err = create.Handle(ctx, maintenance.CreateScheduleCommand{
		Name: "Not yet", AssetID: a.ID, IntervalValue: 1, IntervalUnit: entity.IntervalWeek, FirstDue: time.Now().UTC().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	h := maintenance.NewNotifyDueHandler(schedules, assets, users, pub, nil)
	queued, err := h.Handle(ctx, maintenance.NotifyDueCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, queued)

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0]
	assert.Equal(t, mailer.KindMaintenanceDue, job.Kind)
	assert.Equal(t, "lead@plant.example", job.To)
	assert.Equal(t, "Quarterly filter change", job.Data["ScheduleName"])
	assert.Equal(t, a.Name, job.Data["AssetName"])
	assert.Equal(t, overdue.Format(time.RFC3339), job.Data["DueDate"])
}

func TestNotifyDue_WithoutPublisherRejected(t *testing.T) {
	schedules := newMemoryScheduleRepo()
	assets := newMemoryAssetRepo()
	users := newMemoryUserRepo()

	h := maintenance.NewNotifyDueHandler(schedules, assets, users, nil, nil)
	_, err := h.Handle(context.Background(), maintenance.NotifyDueCommand{})
	assert.True(t, domain.IsValidation(err))
}

func mustEmail(t *testing.T, raw string) valueobject.Email {
	t.Helper()
	email, err := valueobject.NewEmail(raw)
	require.NoError(t, err)
	return email
}
