package valueobject

import (
	"strings"

	"github.com/zagroshq/cmms-api/internal/domain"
)

const assetCodeMaxLen = 50

// AssetCode is the business identifier printed on an asset's tag.
// Stored uppercase; equality is on the normalized value.
type AssetCode struct {
	value string
}

// NewAssetCode trims, validates and uppercases the input.
func NewAssetCode(value string) (AssetCode, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return AssetCode{}, domain.NewValidationError("asset code cannot be empty")
	}
	if len(v) > assetCodeMaxLen {
		return AssetCode{}, domain.NewValidationError("asset code cannot exceed %d characters", assetCodeMaxLen)
	}
	return AssetCode{value: strings.ToUpper(v)}, nil
}

// RestoreAssetCode wraps an already-normalized value from storage.
func RestoreAssetCode(value string) AssetCode { return AssetCode{value: value} }

func (c AssetCode) String() string { return c.value }

func (c AssetCode) Equals(other AssetCode) bool { return c.value == other.value }

func (c AssetCode) IsZero() bool { return c.value == "" }
