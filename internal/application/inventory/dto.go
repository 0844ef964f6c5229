package inventory

import (
	"time"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
)

type DTO struct {
	ID            string   `json:"id"`
	Number        string   `json:"part_number"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	CategoryID    string   `json:"category_id,omitempty"`
	Quantity      int      `json:"quantity"`
	Unit          string   `json:"unit"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	MinStockLevel *int     `json:"min_stock_level,omitempty"`
	MaxStockLevel *int     `json:"max_stock_level,omitempty"`
	ShelfLocation string   `json:"location,omitempty"`
	BelowMinimum  bool     `json:"below_minimum"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func FromEntity(p *entity.Part) *DTO {
	return &DTO{
		ID:            p.ID,
		Number:        p.Number.String(),
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		Quantity:      p.Quantity,
		Unit:          p.Unit,
		UnitPrice:     p.UnitPrice,
		MinStockLevel: p.MinStockLevel,
		MaxStockLevel: p.MaxStockLevel,
		ShelfLocation: p.ShelfLocation,
		BelowMinimum:  p.BelowMinimum(),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}

type TransactionDTO struct {
	ID            string   `json:"id"`
	PartID        string   `json:"part_id"`
	Type          string   `json:"type"`
	Quantity      int      `json:"quantity"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	ReferenceType string   `json:"reference_type,omitempty"`
	ReferenceID   string   `json:"reference_id,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	CreatedBy     string   `json:"created_by,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

func TransactionFromEntity(tx *entity.InventoryTransaction) *TransactionDTO {
	return &TransactionDTO{
		ID:            tx.ID,
		PartID:        tx.PartID,
		Type:          tx.Type,
		Quantity:      tx.Quantity,
		UnitPrice:     tx.UnitPrice,
		ReferenceType: tx.ReferenceType,
		ReferenceID:   tx.ReferenceID,
		Notes:         tx.Notes,
		CreatedBy:     tx.CreatedBy,
		CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
	}
}
