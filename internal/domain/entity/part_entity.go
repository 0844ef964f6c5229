package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// Part is an inventory stock item. Quantity never goes negative; every
// movement is recorded as an InventoryTransaction by the application layer.
type Part struct {
	ID            string
	Number        valueobject.PartNumber
	Name          string
	Description   string
	CategoryID    string
	Quantity      int
	Unit          string
	UnitPrice     *float64
	MinStockLevel *int
	MaxStockLevel *int
	ShelfLocation string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewPart(number valueobject.PartNumber, name, unit string) *Part {
	now := time.Now().UTC()
	return &Part{
		ID:        uuid.NewString(),
		Number:    number,
		Name:      name,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Receive adds stock.
func (p *Part) Receive(qty int) error {
	if qty <= 0 {
		return domain.NewValidationError("received quantity must be positive, got %d", qty)
	}
	p.Quantity += qty
	p.touch()
	return nil
}

// Issue removes stock and refuses to drive the quantity negative.
func (p *Part) Issue(qty int) error {
	if qty <= 0 {
		return domain.NewValidationError("issued quantity must be positive, got %d", qty)
	}
	if qty > p.Quantity {
		return domain.NewValidationError("cannot issue %d of part %s: only %d in stock", qty, p.Number, p.Quantity)
	}
	p.Quantity -= qty
	p.touch()
	return nil
}

// BelowMinimum reports whether stock has dropped under the reorder point.
func (p *Part) BelowMinimum() bool {
	return p.MinStockLevel != nil && p.Quantity < *p.MinStockLevel
}

func (p *Part) UpdateDetails(name, description, shelfLocation string, unitPrice *float64, minStock, maxStock *int) {
	p.Name = name
	p.Description = description
	p.ShelfLocation = shelfLocation
	p.UnitPrice = unitPrice
	p.MinStockLevel = minStock
	p.MaxStockLevel = maxStock
	p.touch()
}

func (p *Part) touch() {
	p.UpdatedAt = time.Now().UTC()
}

// Inventory transaction kinds.
const (
	TxReceive    = "receive"
	TxIssue      = "issue"
	TxAdjustment = "adjustment"
)

// InventoryTransaction is an append-only audit record of a stock movement.
type InventoryTransaction struct {
	ID            string
	PartID        string
	Type          string
	Quantity      int
	UnitPrice     *float64
	ReferenceType string
	ReferenceID   string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}

func NewInventoryTransaction(partID, txType string, qty int, createdBy string) *InventoryTransaction {
	return &InventoryTransaction{
		ID:        uuid.NewString(),
		PartID:    partID,
		Type:      txType,
		Quantity:  qty,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
}
