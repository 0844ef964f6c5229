package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

func mustEmail(t *testing.T, s string) valueobject.Email {
	t.Helper()
	e, err := valueobject.NewEmail(s)
	require.NoError(t, err)
	return e
}

func mustCode(t *testing.T, s string) valueobject.AssetCode {
	t.Helper()
	c, err := valueobject.NewAssetCode(s)
	require.NoError(t, err)
	return c
}

func TestUser_RolesAlwaysIncludeBaseRole(t *testing.T) {
	u := entity.NewUser(mustEmail(t, "tech@zagros.io"), "hash", "Ada", "Kara", "")
	assert.Equal(t, []string{entity.RoleUser}, u.Roles())

	// Even a reconstituted user with an empty stored role set reads the base role.
	restored := entity.RestoreUser(u.ID, u.Email, "hash", "Ada", "Kara", "", nil, true, u.CreatedAt, u.UpdatedAt)
	assert.Equal(t, []string{entity.RoleUser}, restored.Roles())
}

func TestUser_AddRoleIsIdempotent(t *testing.T) {
	u := entity.NewUser(mustEmail(t, "tech@zagros.io"), "hash", "Ada", "Kara", "")
	u.AddRole(entity.RoleManager)
	u.AddRole(entity.RoleManager)

	roles := u.Roles()
	count := 0
	for _, r := range roles {
		if r == entity.RoleManager {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.True(t, u.HasRole(entity.RoleManager))
}

func TestUser_RemoveRoleAbsentIsNoop(t *testing.T) {
	u := entity.NewUser(mustEmail(t, "tech@zagros.io"), "hash", "Ada", "Kara", "")
	u.RemoveRole(entity.RoleAdmin)
	assert.Equal(t, []string{entity.RoleUser}, u.Roles())
}

func TestUser_MutatorsTouchUpdatedAt(t *testing.T) {
	u := entity.NewUser(mustEmail(t, "tech@zagros.io"), "hash", "Ada", "Kara", "")
	before := u.UpdatedAt
	time.Sleep(time.Millisecond)
	u.UpdateProfile("Ada", "Lovelace", "+15550001111")
	assert.True(t, u.UpdatedAt.After(before))
	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.Equal(t, "+15550001111", u.Phone)
}

func TestAsset_DefaultsOnCreate(t *testing.T) {
	a := entity.NewAsset(mustCode(t, "pump-001"), "Feed pump", "cat-1", "loc-1")
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "PUMP-001", a.Code.String())
	assert.Equal(t, valueobject.AssetOperational, a.Status)
	assert.Equal(t, valueobject.CriticalityMedium, a.Criticality)
	assert.NotNil(t, a.Metadata)
}

func TestAsset_StatusTransitionsAreUnrestricted(t *testing.T) {
	a := entity.NewAsset(mustCode(t, "pump-001"), "Feed pump", "cat-1", "loc-1")

	a.MarkForMaintenance()
	assert.Equal(t, valueobject.AssetMaintenance, a.Status)

	// No transition guard: straight back to operational is allowed.
	a.Activate()
	assert.Equal(t, valueobject.AssetOperational, a.Status)

	a.Retire()
	a.Activate()
	assert.Equal(t, valueobject.AssetOperational, a.Status)
}

func TestAsset_SetMetadataUpsertsAndTouches(t *testing.T) {
	a := entity.NewAsset(mustCode(t, "pump-001"), "Feed pump", "cat-1", "loc-1")
	before := a.UpdatedAt
	time.Sleep(time.Millisecond)

	a.SetMetadata("voltage", 230)
	a.SetMetadata("voltage", 400)

	assert.Equal(t, 400, a.Metadata["voltage"])
	assert.True(t, a.UpdatedAt.After(before))
}

func TestWorkOrder_Lifecycle(t *testing.T) {
	num, err := valueobject.NewWorkOrderNumber("WO-1")
	require.NoError(t, err)
	w := entity.NewWorkOrder(num, "Replace bearing", "", "asset-1", valueobject.WorkCorrective, 0, "user-1")

	assert.Equal(t, valueobject.WorkOrderPending, w.Status)
	assert.Equal(t, valueobject.DefaultWorkOrderPriority, w.Priority)

	require.NoError(t, w.Assign("tech-1"))
	require.NoError(t, w.Start())
	assert.Equal(t, valueobject.WorkOrderInProgress, w.Status)
	assert.NotNil(t, w.ActualStart)

	require.NoError(t, w.Complete())
	assert.Equal(t, valueobject.WorkOrderCompleted, w.Status)
	assert.NotNil(t, w.CompletedAt)
	assert.NotNil(t, w.ActualHours)
}

func TestWorkOrder_TerminalStatesRejectFurtherWork(t *testing.T) {
	num, err := valueobject.NewWorkOrderNumber("WO-2")
	require.NoError(t, err)
	w := entity.NewWorkOrder(num, "Inspect", "", "asset-1", valueobject.WorkInspection, 0, "user-1")
	require.NoError(t, w.Cancel())

	err = w.Complete()
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Error(t, w.Start())
	assert.Error(t, w.Assign("tech-2"))
}

func TestMaintenanceSchedule_MarkGeneratedAdvancesOneInterval(t *testing.T) {
	due := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s, err := entity.NewMaintenanceSchedule("Monthly lube", "asset-1", 1, entity.IntervalMonth, due)
	require.NoError(t, err)

	assert.True(t, s.Due(time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)))

	s.MarkGenerated(time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, s.NextDueDate)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *s.NextDueDate)
	assert.NotNil(t, s.LastGeneratedAt)
}

func TestMaintenanceSchedule_RejectsBadInterval(t *testing.T) {
	_, err := entity.NewMaintenanceSchedule("Bad", "asset-1", 0, entity.IntervalDay, time.Now())
	assert.True(t, domain.IsValidation(err))
	_, err = entity.NewMaintenanceSchedule("Bad", "asset-1", 2, "fortnight", time.Now())
	assert.True(t, domain.IsValidation(err))
}

func TestPart_StockNeverGoesNegative(t *testing.T) {
	pn, err := valueobject.NewPartNumber("BRG-6204")
	require.NoError(t, err)
	p := entity.NewPart(pn, "Ball bearing", "pcs")

	require.NoError(t, p.Receive(10))
	require.NoError(t, p.Issue(4))
	assert.Equal(t, 6, p.Quantity)

	err = p.Issue(7)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 6, p.Quantity)
}

func TestPart_BelowMinimum(t *testing.T) {
	pn, err := valueobject.NewPartNumber("FLT-01")
	require.NoError(t, err)
	p := entity.NewPart(pn, "Oil filter", "pcs")
	min := 5
	p.MinStockLevel = &min

	require.NoError(t, p.Receive(5))
	assert.False(t, p.BelowMinimum())
	require.NoError(t, p.Issue(1))
	assert.True(t, p.BelowMinimum())
}
