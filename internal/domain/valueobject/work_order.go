package valueobject

import (
	"strings"

	"github.com/zagroshq/cmms-api/internal/domain"
)

const workOrderNumberMaxLen = 50

// WorkOrderNumber is the natural key of a work order (e.g. "WO-20260828-A1B2").
type WorkOrderNumber struct {
	value string
}

func NewWorkOrderNumber(value string) (WorkOrderNumber, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return WorkOrderNumber{}, domain.NewValidationError("work order number cannot be empty")
	}
	if len(v) > workOrderNumberMaxLen {
		return WorkOrderNumber{}, domain.NewValidationError("work order number cannot exceed %d characters", workOrderNumberMaxLen)
	}
	return WorkOrderNumber{value: strings.ToUpper(v)}, nil
}

// RestoreWorkOrderNumber wraps an already-normalized value from storage.
func RestoreWorkOrderNumber(value string) WorkOrderNumber { return WorkOrderNumber{value: value} }

func (n WorkOrderNumber) String() string { return n.value }

func (n WorkOrderNumber) Equals(other WorkOrderNumber) bool { return n.value == other.value }

func (n WorkOrderNumber) IsZero() bool { return n.value == "" }

// WorkOrderStatus is the lifecycle state of a work order.
type WorkOrderStatus string

const (
	WorkOrderPending    WorkOrderStatus = "pending"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderCancelled  WorkOrderStatus = "cancelled"
)

func ParseWorkOrderStatus(value string) (WorkOrderStatus, error) {
	switch WorkOrderStatus(value) {
	case WorkOrderPending, WorkOrderInProgress, WorkOrderCompleted, WorkOrderCancelled:
		return WorkOrderStatus(value), nil
	}
	return "", domain.NewValidationError("unknown work order status: %q", value)
}

func (s WorkOrderStatus) String() string { return string(s) }

// IsTerminal reports whether no further transitions are meaningful.
func (s WorkOrderStatus) IsTerminal() bool {
	return s == WorkOrderCompleted || s == WorkOrderCancelled
}

// WorkOrderType distinguishes how the work was initiated.
type WorkOrderType string

const (
	WorkCorrective WorkOrderType = "corrective"
	WorkPreventive WorkOrderType = "preventive"
	WorkInspection WorkOrderType = "inspection"
)

func ParseWorkOrderType(value string) (WorkOrderType, error) {
	switch WorkOrderType(value) {
	case WorkCorrective, WorkPreventive, WorkInspection:
		return WorkOrderType(value), nil
	}
	return "", domain.NewValidationError("unknown work order type: %q", value)
}

func (t WorkOrderType) String() string { return string(t) }

// WorkOrderPriority is a 1 (lowest) to 5 (highest) urgency ranking.
type WorkOrderPriority int

const DefaultWorkOrderPriority WorkOrderPriority = 3

func NewWorkOrderPriority(value int) (WorkOrderPriority, error) {
	if value < 1 || value > 5 {
		return 0, domain.NewValidationError("work order priority must be between 1 and 5, got %d", value)
	}
	return WorkOrderPriority(value), nil
}

func (p WorkOrderPriority) Int() int { return int(p) }
