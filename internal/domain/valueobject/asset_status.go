package valueobject

import "github.com/zagroshq/cmms-api/internal/domain"

// AssetStatus is the operational state of an asset. Transitions are
// intentionally unrestricted: a retired asset may be reactivated.
type AssetStatus string

const (
	AssetOperational AssetStatus = "operational"
	AssetDown        AssetStatus = "down"
	AssetMaintenance AssetStatus = "maintenance"
	AssetRetired     AssetStatus = "retired"
)

// ParseAssetStatus validates a raw status string.
func ParseAssetStatus(value string) (AssetStatus, error) {
	switch AssetStatus(value) {
	case AssetOperational, AssetDown, AssetMaintenance, AssetRetired:
		return AssetStatus(value), nil
	}
	return "", domain.NewValidationError("unknown asset status: %q", value)
}

func (s AssetStatus) String() string { return string(s) }

func (s AssetStatus) IsOperational() bool { return s == AssetOperational }

func (s AssetStatus) IsDown() bool { return s == AssetDown }
