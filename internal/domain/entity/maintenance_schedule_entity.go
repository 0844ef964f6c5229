package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/zagroshq/cmms-api/internal/domain"
)

// Interval units for recurring maintenance.
const (
	IntervalDay   = "day"
	IntervalWeek  = "week"
	IntervalMonth = "month"
)

// MaintenanceSchedule describes recurring preventive maintenance for an
// asset. Due dates are inert data: nothing fires automatically, callers query
// FindDue and generate work orders explicitly.
type MaintenanceSchedule struct {
	ID              string
	Name            string
	AssetID         string
	IntervalValue   int
	IntervalUnit    string
	NextDueDate     *time.Time
	LastGeneratedAt *time.Time
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewMaintenanceSchedule validates the interval and seeds the first due date.
func NewMaintenanceSchedule(name, assetID string, intervalValue int, intervalUnit string, firstDue time.Time) (*MaintenanceSchedule, error) {
	if intervalValue <= 0 {
		return nil, domain.NewValidationError("maintenance interval must be positive, got %d", intervalValue)
	}
	switch intervalUnit {
	case IntervalDay, IntervalWeek, IntervalMonth:
	default:
		return nil, domain.NewValidationError("unknown interval unit: %q", intervalUnit)
	}
	now := time.Now().UTC()
	due := firstDue.UTC()
	return &MaintenanceSchedule{
		ID:            uuid.NewString(),
		Name:          name,
		AssetID:       assetID,
		IntervalValue: intervalValue,
		IntervalUnit:  intervalUnit,
		NextDueDate:   &due,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (s *MaintenanceSchedule) Activate() {
	s.Active = true
	s.touch()
}

func (s *MaintenanceSchedule) Deactivate() {
	s.Active = false
	s.touch()
}

// Due reports whether the schedule is active and its next due date has passed.
func (s *MaintenanceSchedule) Due(at time.Time) bool {
	return s.Active && s.NextDueDate != nil && !s.NextDueDate.After(at)
}

// MarkGenerated records a work order generation and advances the next due
// date by exactly one interval.
func (s *MaintenanceSchedule) MarkGenerated(at time.Time) {
	at = at.UTC()
	s.LastGeneratedAt = &at
	if s.NextDueDate != nil {
		next := s.advance(*s.NextDueDate)
		s.NextDueDate = &next
	}
	s.touch()
}

func (s *MaintenanceSchedule) advance(from time.Time) time.Time {
	switch s.IntervalUnit {
	case IntervalWeek:
		return from.AddDate(0, 0, 7*s.IntervalValue)
	case IntervalMonth:
		return from.AddDate(0, s.IntervalValue, 0)
	default:
		return from.AddDate(0, 0, s.IntervalValue)
	}
}

func (s *MaintenanceSchedule) touch() {
	s.UpdatedAt = time.Now().UTC()
}
