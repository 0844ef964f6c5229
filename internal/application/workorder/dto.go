package workorder

import (
	"time"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
)

type DTO struct {
	ID             string   `json:"id"`
	Number         string   `json:"number"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	AssetID        string   `json:"asset_id"`
	Type           string   `json:"type"`
	Priority       int      `json:"priority"`
	Status         string   `json:"status"`
	AssignedTo     string   `json:"assigned_to,omitempty"`
	CreatedBy      string   `json:"created_by,omitempty"`
	DueDate        *string  `json:"due_date,omitempty"`
	ScheduledStart *string  `json:"scheduled_start,omitempty"`
	ActualStart    *string  `json:"actual_start,omitempty"`
	ActualEnd      *string  `json:"actual_end,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	ActualHours    *float64 `json:"actual_hours,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
	CompletedAt    *string  `json:"completed_at,omitempty"`
}

func FromEntity(w *entity.WorkOrder) *DTO {
	return &DTO{
		ID:             w.ID,
		Number:         w.Number.String(),
		Title:          w.Title,
		Description:    w.Description,
		AssetID:        w.AssetID,
		Type:           w.Type.String(),
		Priority:       w.Priority.Int(),
		Status:         w.Status.String(),
		AssignedTo:     w.AssignedTo,
		CreatedBy:      w.CreatedBy,
		DueDate:        fmtTime(w.DueDate),
		ScheduledStart: fmtTime(w.ScheduledStart),
		ActualStart:    fmtTime(w.ActualStart),
		ActualEnd:      fmtTime(w.ActualEnd),
		EstimatedHours: w.EstimatedHours,
		ActualHours:    w.ActualHours,
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      w.UpdatedAt.Format(time.RFC3339),
		CompletedAt:    fmtTime(w.CompletedAt),
	}
}

func fmtTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
