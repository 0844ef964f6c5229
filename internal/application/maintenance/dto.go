package maintenance

import (
	"time"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
)

type DTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	AssetID         string  `json:"asset_id"`
	IntervalValue   int     `json:"interval_value"`
	IntervalUnit    string  `json:"interval_unit"`
	NextDueDate     *string `json:"next_due_date,omitempty"`
	LastGeneratedAt *string `json:"last_generated_at,omitempty"`
	Active          bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func FromEntity(s *entity.MaintenanceSchedule) *DTO {
	return &DTO{
		ID:              s.ID,
		Name:            s.Name,
		AssetID:         s.AssetID,
		IntervalValue:   s.IntervalValue,
		IntervalUnit:    s.IntervalUnit,
		NextDueDate:     fmtTime(s.NextDueDate),
		LastGeneratedAt: fmtTime(s.LastGeneratedAt),
		Active:          s.Active,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}

func fmtTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
