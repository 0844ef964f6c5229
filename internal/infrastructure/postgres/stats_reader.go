package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zagroshq/cmms-api/internal/application/stats"
)

// StatsReader computes the dashboard counters in a single round trip.
type StatsReader struct {
	pool *pgxpool.Pool
}

func NewStatsReader(pool *pgxpool.Pool) *StatsReader {
	return &StatsReader{pool: pool}
}

func (r *StatsReader) Read(ctx context.Context) (*stats.Snapshot, error) {
	s := &stats.Snapshot{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM assets),
			(SELECT count(*) FROM assets WHERE status = 'down'),
			(SELECT count(*) FROM work_orders WHERE status IN ('pending', 'in_progress')),
			(SELECT count(*) FROM work_orders WHERE status IN ('pending', 'in_progress')
				AND due_date IS NOT NULL AND due_date < now()),
			(SELECT count(*) FROM parts WHERE min_stock_level IS NOT NULL AND quantity < min_stock_level),
			(SELECT count(*) FROM maintenance_schedules WHERE is_active
				AND next_due_date IS NOT NULL AND next_due_date <= now())
	`).Scan(&s.Assets, &s.AssetsDown, &s.OpenWorkOrders, &s.OverdueWorkOrders,
		&s.PartsBelowMinimum, &s.SchedulesDue)
	if err != nil {
		return nil, err
	}
	return s, nil
}

var _ stats.Reader = (*StatsReader)(nil)
