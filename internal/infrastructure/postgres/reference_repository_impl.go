package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
)

// Reference repositories back the flat category and location lookups.
// parent_id is nullable in both tables; "" maps to NULL.

type AssetCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewAssetCategoryRepository(pool *pgxpool.Pool) *AssetCategoryRepository {
	return &AssetCategoryRepository{pool: pool}
}

func (r *AssetCategoryRepository) Save(ctx context.Context, c *entity.AssetCategory) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO asset_categories (id, name, parent_id, description, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			parent_id = EXCLUDED.parent_id,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon
	`, c.ID, c.Name, nullableString(c.ParentID), c.Description, c.Icon, c.CreatedAt)
	return err
}

func (r *AssetCategoryRepository) FindByID(ctx context.Context, id string) (*entity.AssetCategory, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, parent_id, description, icon, created_at
		FROM asset_categories WHERE id = $1
	`, id)
	return scanCategory(row)
}

func (r *AssetCategoryRepository) FindAll(ctx context.Context, page, limit int) ([]*entity.AssetCategory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, parent_id, description, icon, created_at
		FROM asset_categories
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.AssetCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *AssetCategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM asset_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("asset category %s not found", id)
	}
	return nil
}

func scanCategory(row pgx.Row) (*entity.AssetCategory, error) {
	c := &entity.AssetCategory{}
	var parentID *string
	if err := row.Scan(&c.ID, &c.Name, &parentID, &c.Description, &c.Icon, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("asset category not found")
		}
		return nil, err
	}
	if parentID != nil {
		c.ParentID = *parentID
	}
	return c, nil
}

type LocationRepository struct {
	pool *pgxpool.Pool
}

func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

func (r *LocationRepository) Save(ctx context.Context, l *entity.Location) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO locations (id, name, parent_id, address, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			parent_id = EXCLUDED.parent_id,
			address = EXCLUDED.address,
			type = EXCLUDED.type
	`, l.ID, l.Name, nullableString(l.ParentID), l.Address, l.Type, l.CreatedAt)
	return err
}

func (r *LocationRepository) FindByID(ctx context.Context, id string) (*entity.Location, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, parent_id, address, type, created_at
		FROM locations WHERE id = $1
	`, id)
	return scanLocation(row)
}

func (r *LocationRepository) FindAll(ctx context.Context, page, limit int) ([]*entity.Location, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, parent_id, address, type, created_at
		FROM locations
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("location %s not found", id)
	}
	return nil
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	l := &entity.Location{}
	var parentID *string
	if err := row.Scan(&l.ID, &l.Name, &parentID, &l.Address, &l.Type, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("location not found")
		}
		return nil, err
	}
	if parentID != nil {
		l.ParentID = *parentID
	}
	return l, nil
}

var (
	_ repository.AssetCategoryRepository = (*AssetCategoryRepository)(nil)
	_ repository.LocationRepository     = (*LocationRepository)(nil)
)
