package asset

import (
	"time"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
)

type DTO struct {
	ID             string         `json:"id"`
	Code           string         `json:"code"`
	Name           string         `json:"name"`
	CategoryID     string         `json:"category_id,omitempty"`
	LocationID     string         `json:"location_id,omitempty"`
	SerialNumber   string         `json:"serial_number,omitempty"`
	Manufacturer   string         `json:"manufacturer,omitempty"`
	Model          string         `json:"model,omitempty"`
	PurchaseDate   *string        `json:"purchase_date,omitempty"`
	PurchaseCost   *float64       `json:"purchase_cost,omitempty"`
	Status         string         `json:"status"`
	Criticality    int            `json:"criticality_level"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

func FromEntity(a *entity.Asset) *DTO {
	d := &DTO{
		ID:           a.ID,
		Code:         a.Code.String(),
		Name:         a.Name,
		CategoryID:   a.CategoryID,
		LocationID:   a.LocationID,
		SerialNumber: a.SerialNumber,
		Manufacturer: a.Manufacturer,
		Model:        a.Model,
		PurchaseCost: a.PurchaseCost,
		Status:       a.Status.String(),
		Criticality:  a.Criticality.Int(),
		Metadata:     a.Metadata,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.PurchaseDate != nil {
		s := a.PurchaseDate.Format("2006-01-02")
		d.PurchaseDate = &s
	}
	return d
}

type DocumentDTO struct {
	ID         string `json:"id"`
	AssetID    string `json:"asset_id"`
	Title      string `json:"title"`
	FileURL    string `json:"file_url"`
	FileType   string `json:"file_type,omitempty"`
	UploadedBy string `json:"uploaded_by,omitempty"`
	UploadedAt string `json:"uploaded_at"`
}

func DocumentFromEntity(d *entity.AssetDocument) *DocumentDTO {
	return &DocumentDTO{
		ID:         d.ID,
		AssetID:    d.AssetID,
		Title:      d.Title,
		FileURL:    d.FileURL,
		FileType:   d.FileType,
		UploadedBy: d.UploadedBy,
		UploadedAt: d.UploadedAt.Format(time.RFC3339),
	}
}
