package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// AssetRepository persists assets and their attached documents. Metadata is a
// free-form JSONB column.
type AssetRepository struct {
	pool *pgxpool.Pool
}

func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

func (r *AssetRepository) Save(ctx context.Context, a *entity.Asset) error {
	meta, err := json.Marshal(a.Metadata)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO assets (id, code, name, category_id, location_id, serial_number, manufacturer, model,
			purchase_date, purchase_cost, warranty_expiry, status, criticality, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			category_id = EXCLUDED.category_id,
			location_id = EXCLUDED.location_id,
			serial_number = EXCLUDED.serial_number,
			manufacturer = EXCLUDED.manufacturer,
			model = EXCLUDED.model,
			purchase_date = EXCLUDED.purchase_date,
			purchase_cost = EXCLUDED.purchase_cost,
			warranty_expiry = EXCLUDED.warranty_expiry,
			status = EXCLUDED.status,
			criticality = EXCLUDED.criticality,
			metadata = EXCLUDED.metadata,
			updated_at = EXCLUDED.updated_at
	`, a.ID, a.Code.String(), a.Name, a.CategoryID, a.LocationID, a.SerialNumber, a.Manufacturer, a.Model,
		a.PurchaseDate, a.PurchaseCost, a.WarrantyExpiry, a.Status.String(), a.Criticality.Int(), meta,
		a.CreatedAt, a.UpdatedAt)
	return err
}

const assetColumns = `id, code, name, category_id, location_id, serial_number, manufacturer, model,
	purchase_date, purchase_cost, warranty_expiry, status, criticality, metadata, created_at, updated_at`

func (r *AssetRepository) FindByID(ctx context.Context, id string) (*entity.Asset, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	return scanAsset(row)
}

func (r *AssetRepository) FindByCode(ctx context.Context, code valueobject.AssetCode) (*entity.Asset, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE code = $1`, code.String())
	return scanAsset(row)
}

func (r *AssetRepository) ExistsByCode(ctx context.Context, code valueobject.AssetCode) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM assets WHERE code = $1)`, code.String()).Scan(&exists)
	return exists, err
}

func (r *AssetRepository) FindAll(ctx context.Context, page, limit int) ([]*entity.Asset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+assetColumns+`
		FROM assets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("asset %s not found", id)
	}
	return nil
}

func (r *AssetRepository) AddDocument(ctx context.Context, doc *entity.AssetDocument) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO asset_documents (id, asset_id, title, file_url, file_type, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, doc.ID, doc.AssetID, doc.Title, doc.FileURL, doc.FileType, doc.UploadedBy, doc.UploadedAt)
	return err
}

func (r *AssetRepository) FindDocuments(ctx context.Context, assetID string) ([]*entity.AssetDocument, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, asset_id, title, file_url, file_type, uploaded_by, uploaded_at
		FROM asset_documents
		WHERE asset_id = $1
		ORDER BY uploaded_at DESC
	`, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.AssetDocument
	for rows.Next() {
		doc := &entity.AssetDocument{}
		if err := rows.Scan(&doc.ID, &doc.AssetID, &doc.Title, &doc.FileURL, &doc.FileType,
			&doc.UploadedBy, &doc.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var (
		a           entity.Asset
		code        string
		status      string
		criticality int
		metaRaw     []byte
	)
	if err := row.Scan(&a.ID, &code, &a.Name, &a.CategoryID, &a.LocationID, &a.SerialNumber,
		&a.Manufacturer, &a.Model, &a.PurchaseDate, &a.PurchaseCost, &a.WarrantyExpiry,
		&status, &criticality, &metaRaw, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("asset not found")
		}
		return nil, err
	}
	a.Code = valueobject.RestoreAssetCode(code)
	a.Status = valueobject.AssetStatus(status)
	a.Criticality = valueobject.CriticalityLevel(criticality)
	if len(metaRaw) > 0 {
		if err := json.Unmarshal(metaRaw, &a.Metadata); err != nil {
			return nil, err
		}
	}
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	return &a, nil
}

var _ repository.AssetRepository = (*AssetRepository)(nil)
