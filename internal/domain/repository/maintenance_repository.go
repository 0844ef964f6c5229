package repository

import (
	"context"
	"time"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
)

type MaintenanceScheduleRepository interface {
	Save(ctx context.Context, s *entity.MaintenanceSchedule) error
	// SaveWithWorkOrder persists the advanced schedule and the work order it
	// generated in a single transaction, so a failed write cannot leave the
	// schedule behind and invite a duplicate order on retry.
	SaveWithWorkOrder(ctx context.Context, s *entity.MaintenanceSchedule, w *entity.WorkOrder) error
	FindByID(ctx context.Context, id string) (*entity.MaintenanceSchedule, error)
	FindAll(ctx context.Context, page, limit int) ([]*entity.MaintenanceSchedule, error)
	// FindDue returns active schedules whose next due date is at or before the cutoff.
	FindDue(ctx context.Context, before time.Time) ([]*entity.MaintenanceSchedule, error)
	Delete(ctx context.Context, id string) error
}
