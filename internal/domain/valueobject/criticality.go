package valueobject

import "github.com/zagroshq/cmms-api/internal/domain"

// CriticalityLevel ranks how disruptive an asset failure is.
// The integer values match the check constraint on the assets table.
type CriticalityLevel int

const (
	CriticalityLow    CriticalityLevel = 1
	CriticalityMedium CriticalityLevel = 3
	CriticalityHigh   CriticalityLevel = 5
)

// NewCriticalityLevel validates the raw integer against the closed set.
func NewCriticalityLevel(value int) (CriticalityLevel, error) {
	switch CriticalityLevel(value) {
	case CriticalityLow, CriticalityMedium, CriticalityHigh:
		return CriticalityLevel(value), nil
	}
	return 0, domain.NewValidationError("criticality level must be 1, 3 or 5, got %d", value)
}

func (l CriticalityLevel) Int() int { return int(l) }

func (l CriticalityLevel) IsHigh() bool { return l == CriticalityHigh }

func (l CriticalityLevel) Label() string {
	switch l {
	case CriticalityLow:
		return "low"
	case CriticalityMedium:
		return "medium"
	case CriticalityHigh:
		return "high"
	}
	return "unknown"
}
