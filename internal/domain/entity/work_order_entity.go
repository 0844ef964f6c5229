package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// WorkOrder tracks a single maintenance job against an asset.
type WorkOrder struct {
	ID             string
	Number         valueobject.WorkOrderNumber
	Title          string
	Description    string
	AssetID        string
	Type           valueobject.WorkOrderType
	Priority       valueobject.WorkOrderPriority
	Status         valueobject.WorkOrderStatus
	AssignedTo     string
	CreatedBy      string
	DueDate        *time.Time
	ScheduledStart *time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// NewWorkOrder generates the identity and applies defaults: pending status,
// priority 3 when the zero value is passed.
func NewWorkOrder(number valueobject.WorkOrderNumber, title, description, assetID string, woType valueobject.WorkOrderType, priority valueobject.WorkOrderPriority, createdBy string) *WorkOrder {
	if priority == 0 {
		priority = valueobject.DefaultWorkOrderPriority
	}
	now := time.Now().UTC()
	return &WorkOrder{
		ID:          uuid.NewString(),
		Number:      number,
		Title:       title,
		Description: description,
		AssetID:     assetID,
		Type:        woType,
		Priority:    priority,
		Status:      valueobject.WorkOrderPending,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Assign sets the assignee. Allowed in any non-terminal state.
func (w *WorkOrder) Assign(userID string) error {
	if w.Status.IsTerminal() {
		return domain.NewValidationError("work order %s is %s and cannot be assigned", w.Number, w.Status)
	}
	w.AssignedTo = userID
	w.touch()
	return nil
}

// Start moves the order to in_progress and stamps the actual start time.
func (w *WorkOrder) Start() error {
	if w.Status.IsTerminal() {
		return domain.NewValidationError("work order %s is %s and cannot be started", w.Number, w.Status)
	}
	now := time.Now().UTC()
	w.Status = valueobject.WorkOrderInProgress
	if w.ActualStart == nil {
		w.ActualStart = &now
	}
	w.touch()
	return nil
}

// Complete closes the order. When no actual hours were recorded, they are
// derived from the elapsed time since the actual start.
func (w *WorkOrder) Complete() error {
	if w.Status.IsTerminal() {
		return domain.NewValidationError("work order %s is already %s", w.Number, w.Status)
	}
	now := time.Now().UTC()
	w.Status = valueobject.WorkOrderCompleted
	w.ActualEnd = &now
	w.CompletedAt = &now
	if w.ActualHours == nil && w.ActualStart != nil {
		hours := now.Sub(*w.ActualStart).Hours()
		w.ActualHours = &hours
	}
	w.touch()
	return nil
}

// Cancel abandons the order from any non-terminal state.
func (w *WorkOrder) Cancel() error {
	if w.Status.IsTerminal() {
		return domain.NewValidationError("work order %s is already %s", w.Number, w.Status)
	}
	w.Status = valueobject.WorkOrderCancelled
	w.touch()
	return nil
}

func (w *WorkOrder) Reprioritize(priority valueobject.WorkOrderPriority) {
	w.Priority = priority
	w.touch()
}

// Overdue reports whether the due date has passed for an open order.
func (w *WorkOrder) Overdue(at time.Time) bool {
	return w.DueDate != nil && !w.Status.IsTerminal() && at.After(*w.DueDate)
}

func (w *WorkOrder) touch() {
	w.UpdatedAt = time.Now().UTC()
}
