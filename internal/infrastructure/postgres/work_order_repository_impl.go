package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

type WorkOrderRepository struct {
	pool *pgxpool.Pool
}

func NewWorkOrderRepository(pool *pgxpool.Pool) *WorkOrderRepository {
	return &WorkOrderRepository{pool: pool}
}

func (r *WorkOrderRepository) Save(ctx context.Context, w *entity.WorkOrder) error {
	return saveWorkOrder(ctx, r.pool, w)
}

func saveWorkOrder(ctx context.Context, db dbExec, w *entity.WorkOrder) error {
	_, err := db.Exec(ctx, `
		INSERT INTO work_orders (id, number, title, description, asset_id, type, priority, status,
			assigned_to, created_by, due_date, scheduled_start, actual_start, actual_end,
			estimated_hours, actual_hours, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			priority = EXCLUDED.priority,
			status = EXCLUDED.status,
			assigned_to = EXCLUDED.assigned_to,
			due_date = EXCLUDED.due_date,
			scheduled_start = EXCLUDED.scheduled_start,
			actual_start = EXCLUDED.actual_start,
			actual_end = EXCLUDED.actual_end,
			estimated_hours = EXCLUDED.estimated_hours,
			actual_hours = EXCLUDED.actual_hours,
			updated_at = EXCLUDED.updated_at,
			completed_at = EXCLUDED.completed_at
	`, w.ID, w.Number.String(), w.Title, w.Description, w.AssetID, w.Type.String(), w.Priority.Int(),
		w.Status.String(), nullableString(w.AssignedTo), nullableString(w.CreatedBy), w.DueDate,
		w.ScheduledStart, w.ActualStart, w.ActualEnd, w.EstimatedHours, w.ActualHours,
		w.CreatedAt, w.UpdatedAt, w.CompletedAt)
	return err
}

const workOrderColumns = `id, number, title, description, asset_id, type, priority, status,
	assigned_to, created_by, due_date, scheduled_start, actual_start, actual_end,
	estimated_hours, actual_hours, created_at, updated_at, completed_at`

func (r *WorkOrderRepository) FindByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id = $1`, id)
	return scanWorkOrder(row)
}

func (r *WorkOrderRepository) FindByNumber(ctx context.Context, number valueobject.WorkOrderNumber) (*entity.WorkOrder, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE number = $1`, number.String())
	return scanWorkOrder(row)
}

func (r *WorkOrderRepository) ExistsByNumber(ctx context.Context, number valueobject.WorkOrderNumber) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM work_orders WHERE number = $1)`, number.String()).Scan(&exists)
	return exists, err
}

func (r *WorkOrderRepository) FindAll(ctx context.Context, page, limit int) ([]*entity.WorkOrder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+workOrderColumns+`
		FROM work_orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWorkOrders(rows)
}

func (r *WorkOrderRepository) FindByAssetID(ctx context.Context, assetID string, page, limit int) ([]*entity.WorkOrder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+workOrderColumns+`
		FROM work_orders
		WHERE asset_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, assetID, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWorkOrders(rows)
}

func (r *WorkOrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("work order %s not found", id)
	}
	return nil
}

func collectWorkOrders(rows pgx.Rows) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var (
		w                      entity.WorkOrder
		number, woType, status string
		priority               int
		assignedTo, createdBy  *string
	)
	if err := row.Scan(&w.ID, &number, &w.Title, &w.Description, &w.AssetID, &woType, &priority,
		&status, &assignedTo, &createdBy, &w.DueDate, &w.ScheduledStart, &w.ActualStart,
		&w.ActualEnd, &w.EstimatedHours, &w.ActualHours, &w.CreatedAt, &w.UpdatedAt,
		&w.CompletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("work order not found")
		}
		return nil, err
	}
	w.Number = valueobject.RestoreWorkOrderNumber(number)
	w.Type = valueobject.WorkOrderType(woType)
	w.Priority = valueobject.WorkOrderPriority(priority)
	w.Status = valueobject.WorkOrderStatus(status)
	if assignedTo != nil {
		w.AssignedTo = *assignedTo
	}
	if createdBy != nil {
		w.CreatedBy = *createdBy
	}
	return &w, nil
}

// nullableString maps "" to SQL NULL for columns with FK constraints.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ repository.WorkOrderRepository = (*WorkOrderRepository)(nil)
