package valueobject

import (
	"strings"

	"github.com/zagroshq/cmms-api/internal/domain"
)

const partNumberMaxLen = 100

// PartNumber is the natural key of an inventory part.
type PartNumber struct {
	value string
}

func NewPartNumber(value string) (PartNumber, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return PartNumber{}, domain.NewValidationError("part number cannot be empty")
	}
	if len(v) > partNumberMaxLen {
		return PartNumber{}, domain.NewValidationError("part number cannot exceed %d characters", partNumberMaxLen)
	}
	return PartNumber{value: strings.ToUpper(v)}, nil
}

// RestorePartNumber wraps an already-normalized value from storage.
func RestorePartNumber(value string) PartNumber { return PartNumber{value: value} }

func (p PartNumber) String() string { return p.value }

func (p PartNumber) Equals(other PartNumber) bool { return p.value == other.value }

func (p PartNumber) IsZero() bool { return p.value == "" }
