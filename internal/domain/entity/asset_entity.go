package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// Asset is the aggregate root for physical equipment under maintenance.
// References to category and location are by id only.
type Asset struct {
	ID             string
	Code           valueobject.AssetCode
	Name           string
	CategoryID     string
	LocationID     string
	SerialNumber   string
	Manufacturer   string
	Model          string
	PurchaseDate   *time.Time
	PurchaseCost   *float64
	WarrantyExpiry *time.Time
	Status         valueobject.AssetStatus
	Criticality    valueobject.CriticalityLevel
	Metadata       map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAsset generates the identity and applies defaults: operational status,
// medium criticality, empty metadata.
func NewAsset(code valueobject.AssetCode, name, categoryID, locationID string) *Asset {
	now := time.Now().UTC()
	return &Asset{
		ID:          uuid.NewString(),
		Code:        code,
		Name:        name,
		CategoryID:  categoryID,
		LocationID:  locationID,
		Status:      valueobject.AssetOperational,
		Criticality: valueobject.CriticalityMedium,
		Metadata:    map[string]any{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Status changes are unconditional: there is no transition table, and e.g.
// retired -> operational is allowed.

func (a *Asset) Activate() {
	a.Status = valueobject.AssetOperational
	a.touch()
}

func (a *Asset) Deactivate() {
	a.Status = valueobject.AssetDown
	a.touch()
}

func (a *Asset) MarkForMaintenance() {
	a.Status = valueobject.AssetMaintenance
	a.touch()
}

func (a *Asset) Retire() {
	a.Status = valueobject.AssetRetired
	a.touch()
}

func (a *Asset) UpdateCriticality(level valueobject.CriticalityLevel) {
	a.Criticality = level
	a.touch()
}

// SetMetadata upserts a single key.
func (a *Asset) SetMetadata(key string, value any) {
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	a.Metadata[key] = value
	a.touch()
}

// UpdateDetails replaces the descriptive fields in one call.
func (a *Asset) UpdateDetails(name, serialNumber, manufacturer, model string) {
	a.Name = name
	a.SerialNumber = serialNumber
	a.Manufacturer = manufacturer
	a.Model = model
	a.touch()
}

func (a *Asset) touch() {
	a.UpdatedAt = time.Now().UTC()
}
