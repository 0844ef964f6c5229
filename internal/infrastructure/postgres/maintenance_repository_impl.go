package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
)

type MaintenanceScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewMaintenanceScheduleRepository(pool *pgxpool.Pool) *MaintenanceScheduleRepository {
	return &MaintenanceScheduleRepository{pool: pool}
}

func (r *MaintenanceScheduleRepository) Save(ctx context.Context, s *entity.MaintenanceSchedule) error {
	return saveSchedule(ctx, r.pool, s)
}

// SaveWithWorkOrder commits the advanced schedule and the generated work
// order together; on any failure both writes roll back.
func (r *MaintenanceScheduleRepository) SaveWithWorkOrder(ctx context.Context, s *entity.MaintenanceSchedule, w *entity.WorkOrder) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := saveWorkOrder(ctx, tx, w); err != nil {
			return err
		}
		return saveSchedule(ctx, tx, s)
	})
}

func saveSchedule(ctx context.Context, db dbExec, s *entity.MaintenanceSchedule) error {
	_, err := db.Exec(ctx, `
		INSERT INTO maintenance_schedules (id, name, asset_id, interval_value, interval_unit,
			next_due_date, last_generated_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			interval_value = EXCLUDED.interval_value,
			interval_unit = EXCLUDED.interval_unit,
			next_due_date = EXCLUDED.next_due_date,
			last_generated_at = EXCLUDED.last_generated_at,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`, s.ID, s.Name, s.AssetID, s.IntervalValue, s.IntervalUnit, s.NextDueDate, s.LastGeneratedAt,
		s.Active, s.CreatedAt, s.UpdatedAt)
	return err
}

const scheduleColumns = `id, name, asset_id, interval_value, interval_unit,
	next_due_date, last_generated_at, is_active, created_at, updated_at`

func (r *MaintenanceScheduleRepository) FindByID(ctx context.Context, id string) (*entity.MaintenanceSchedule, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM maintenance_schedules WHERE id = $1`, id)
	return scanSchedule(row)
}

func (r *MaintenanceScheduleRepository) FindAll(ctx context.Context, page, limit int) ([]*entity.MaintenanceSchedule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM maintenance_schedules
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func (r *MaintenanceScheduleRepository) FindDue(ctx context.Context, before time.Time) ([]*entity.MaintenanceSchedule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM maintenance_schedules
		WHERE is_active AND next_due_date IS NOT NULL AND next_due_date <= $1
		ORDER BY next_due_date ASC
	`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func (r *MaintenanceScheduleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM maintenance_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("maintenance schedule %s not found", id)
	}
	return nil
}

func collectSchedules(rows pgx.Rows) ([]*entity.MaintenanceSchedule, error) {
	var out []*entity.MaintenanceSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSchedule(row pgx.Row) (*entity.MaintenanceSchedule, error) {
	s := &entity.MaintenanceSchedule{}
	if err := row.Scan(&s.ID, &s.Name, &s.AssetID, &s.IntervalValue, &s.IntervalUnit,
		&s.NextDueDate, &s.LastGeneratedAt, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("maintenance schedule not found")
		}
		return nil, err
	}
	return s, nil
}

var _ repository.MaintenanceScheduleRepository = (*MaintenanceScheduleRepository)(nil)
