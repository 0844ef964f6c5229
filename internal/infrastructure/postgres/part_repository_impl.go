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

// PartRepository persists inventory parts and their stock movement audit rows.
type PartRepository struct {
	pool *pgxpool.Pool
}

func NewPartRepository(pool *pgxpool.Pool) *PartRepository {
	return &PartRepository{pool: pool}
}

func (r *PartRepository) Save(ctx context.Context, p *entity.Part) error {
	return savePart(ctx, r.pool, p)
}

func savePart(ctx context.Context, db dbExec, p *entity.Part) error {
	_, err := db.Exec(ctx, `
		INSERT INTO parts (id, number, name, description, category_id, quantity, unit, unit_price,
			min_stock_level, max_stock_level, shelf_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category_id = EXCLUDED.category_id,
			quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			unit_price = EXCLUDED.unit_price,
			min_stock_level = EXCLUDED.min_stock_level,
			max_stock_level = EXCLUDED.max_stock_level,
			shelf_location = EXCLUDED.shelf_location,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.Number.String(), p.Name, p.Description, p.CategoryID, p.Quantity, p.Unit, p.UnitPrice,
		p.MinStockLevel, p.MaxStockLevel, p.ShelfLocation, p.CreatedAt, p.UpdatedAt)
	return err
}

const partColumns = `id, number, name, description, category_id, quantity, unit, unit_price,
	min_stock_level, max_stock_level, shelf_location, created_at, updated_at`

func (r *PartRepository) FindByID(ctx context.Context, id string) (*entity.Part, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id)
	return scanPart(row)
}

func (r *PartRepository) FindByNumber(ctx context.Context, number valueobject.PartNumber) (*entity.Part, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE number = $1`, number.String())
	return scanPart(row)
}

func (r *PartRepository) ExistsByNumber(ctx context.Context, number valueobject.PartNumber) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM parts WHERE number = $1)`, number.String()).Scan(&exists)
	return exists, err
}

func (r *PartRepository) FindAll(ctx context.Context, page, limit int) ([]*entity.Part, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+partColumns+`
		FROM parts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParts(rows)
}

func (r *PartRepository) FindBelowMinimum(ctx context.Context) ([]*entity.Part, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+partColumns+`
		FROM parts
		WHERE min_stock_level IS NOT NULL AND quantity < min_stock_level
		ORDER BY number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParts(rows)
}

func (r *PartRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("part %s not found", id)
	}
	return nil
}

// AdjustStock writes the stock change and its audit row atomically; a failed
// insert rolls back the part update so a retry starts from clean state.
func (r *PartRepository) AdjustStock(ctx context.Context, p *entity.Part, mv *entity.InventoryTransaction) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := savePart(ctx, tx, p); err != nil {
			return err
		}
		return insertInventoryTransaction(ctx, tx, mv)
	})
}

func insertInventoryTransaction(ctx context.Context, db dbExec, mv *entity.InventoryTransaction) error {
	_, err := db.Exec(ctx, `
		INSERT INTO inventory_transactions (id, part_id, type, quantity, unit_price,
			reference_type, reference_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, mv.ID, mv.PartID, mv.Type, mv.Quantity, mv.UnitPrice, mv.ReferenceType, mv.ReferenceID,
		mv.Notes, nullableString(mv.CreatedBy), mv.CreatedAt)
	return err
}

func (r *PartRepository) FindTransactions(ctx context.Context, partID string, page, limit int) ([]*entity.InventoryTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, part_id, type, quantity, unit_price, reference_type, reference_id, notes, created_by, created_at
		FROM inventory_transactions
		WHERE part_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, partID, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.InventoryTransaction
	for rows.Next() {
		tx := &entity.InventoryTransaction{}
		var createdBy *string
		if err := rows.Scan(&tx.ID, &tx.PartID, &tx.Type, &tx.Quantity, &tx.UnitPrice,
			&tx.ReferenceType, &tx.ReferenceID, &tx.Notes, &createdBy, &tx.CreatedAt); err != nil {
			return nil, err
		}
		if createdBy != nil {
			tx.CreatedBy = *createdBy
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func collectParts(rows pgx.Rows) ([]*entity.Part, error) {
	var out []*entity.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var (
		p      entity.Part
		number string
	)
	if err := row.Scan(&p.ID, &number, &p.Name, &p.Description, &p.CategoryID, &p.Quantity,
		&p.Unit, &p.UnitPrice, &p.MinStockLevel, &p.MaxStockLevel, &p.ShelfLocation,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("part not found")
		}
		return nil, err
	}
	p.Number = valueobject.RestorePartNumber(number)
	return &p, nil
}

var _ repository.PartRepository = (*PartRepository)(nil)
