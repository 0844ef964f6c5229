package maintenance

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zagroshq/cmms-api/internal/application/workorder"
	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
	"github.com/zagroshq/cmms-api/pkg/mailer"
)

type CreateScheduleCommand struct {
	Name          string
	AssetID       string
	IntervalValue int
	IntervalUnit  string
	FirstDue      time.Time
}

type CreateScheduleHandler struct {
	Schedules repository.MaintenanceScheduleRepository
	Assets    repository.AssetRepository
}

func NewCreateScheduleHandler(schedules repository.MaintenanceScheduleRepository, assets repository.AssetRepository) *CreateScheduleHandler {
	return &CreateScheduleHandler{Schedules: schedules, Assets: assets}
}

func (h *CreateScheduleHandler) Handle(ctx context.Context, cmd CreateScheduleCommand) (string, error) {
	if cmd.Name == "" {
		return "", domain.NewValidationError("schedule name cannot be empty")
	}
	if _, err := h.Assets.FindByID(ctx, cmd.AssetID); err != nil {
		return "", err
	}
	s, err := entity.NewMaintenanceSchedule(cmd.Name, cmd.AssetID, cmd.IntervalValue, cmd.IntervalUnit, cmd.FirstDue)
	if err != nil {
		return "", err
	}
	if err := h.Schedules.Save(ctx, s); err != nil {
		return "", err
	}
	return s.ID, nil
}

type SetScheduleActiveCommand struct {
	ScheduleID string
	Active     bool
}

type SetScheduleActiveHandler struct {
	Schedules repository.MaintenanceScheduleRepository
}

func NewSetScheduleActiveHandler(schedules repository.MaintenanceScheduleRepository) *SetScheduleActiveHandler {
	return &SetScheduleActiveHandler{Schedules: schedules}
}

func (h *SetScheduleActiveHandler) Handle(ctx context.Context, cmd SetScheduleActiveCommand) (*DTO, error) {
	s, err := h.Schedules.FindByID(ctx, cmd.ScheduleID)
	if err != nil {
		return nil, err
	}
	if cmd.Active {
		s.Activate()
	} else {
		s.Deactivate()
	}
	if err := h.Schedules.Save(ctx, s); err != nil {
		return nil, err
	}
	return FromEntity(s), nil
}

type GenerateWorkOrderCommand struct {
	ScheduleID string
	CreatedBy  string
}

// GenerateWorkOrderHandler turns a due schedule into a pending preventive
// work order and advances the schedule by one interval, committing both in a
// single repository write. Generation is always explicit; nothing runs in
// the background.
type GenerateWorkOrderHandler struct {
	Schedules repository.MaintenanceScheduleRepository
}

func NewGenerateWorkOrderHandler(schedules repository.MaintenanceScheduleRepository) *GenerateWorkOrderHandler {
	return &GenerateWorkOrderHandler{Schedules: schedules}
}

func (h *GenerateWorkOrderHandler) Handle(ctx context.Context, cmd GenerateWorkOrderCommand) (string, error) {
	s, err := h.Schedules.FindByID(ctx, cmd.ScheduleID)
	if err != nil {
		return "", err
	}
	if !s.Active {
		return "", domain.NewValidationError("schedule %s is inactive", s.Name)
	}
	now := time.Now().UTC()
	if !s.Due(now) {
		next := "unscheduled"
		if s.NextDueDate != nil {
			next = s.NextDueDate.UTC().Format(time.RFC3339)
		}
		return "", domain.NewValidationError("schedule %s is not due yet (next due %s)", s.Name, next)
	}

	number := workorder.GenerateNumber(now)
	w := entity.NewWorkOrder(number, s.Name, "Generated from maintenance schedule", s.AssetID, valueobject.WorkPreventive, 0, cmd.CreatedBy)
	w.DueDate = s.NextDueDate

	s.MarkGenerated(now)
	if err := h.Schedules.SaveWithWorkOrder(ctx, s, w); err != nil {
		return "", err
	}
	return w.ID, nil
}

type NotifyDueCommand struct{}

// NotifyDueHandler queues a maintenance-due email to every manager for each
// schedule whose next due date has passed. Like generation, it only runs
// when called; there is no background sweep.
type NotifyDueHandler struct {
	Schedules repository.MaintenanceScheduleRepository
	Assets    repository.AssetRepository
	Users     repository.UserRepository
	Publisher workorder.NotificationPublisher
	Logger    *logrus.Logger
}

func NewNotifyDueHandler(schedules repository.MaintenanceScheduleRepository, assets repository.AssetRepository, users repository.UserRepository, pub workorder.NotificationPublisher, logger *logrus.Logger) *NotifyDueHandler {
	return &NotifyDueHandler{Schedules: schedules, Assets: assets, Users: users, Publisher: pub, Logger: logger}
}

// Handle returns the number of reminder jobs queued.
func (h *NotifyDueHandler) Handle(ctx context.Context, _ NotifyDueCommand) (int, error) {
	if h.Publisher == nil {
		return 0, domain.NewValidationError("notification publishing is not configured")
	}
	due, err := h.Schedules.FindDue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}
	managers, err := h.Users.FindByRole(ctx, entity.RoleManager)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, s := range due {
		assetName := s.AssetID
		if a, err := h.Assets.FindByID(ctx, s.AssetID); err == nil {
			assetName = a.Name
		}
		dueDate := ""
		if s.NextDueDate != nil {
			dueDate = s.NextDueDate.UTC().Format(time.RFC3339)
		}
		for _, m := range managers {
			job := mailer.NotificationJob{
				To:   m.Email.String(),
				Kind: mailer.KindMaintenanceDue,
				Data: map[string]any{
					"ScheduleName": s.Name,
					"AssetName":    assetName,
					"DueDate":      dueDate,
				},
			}
			if err := h.Publisher.PublishJSON(ctx, job); err != nil {
				if h.Logger != nil {
					h.Logger.WithError(err).WithField("schedule", s.Name).Warn("notification publish failed")
				}
				continue
			}
			queued++
		}
	}
	return queued, nil
}

type DeleteScheduleCommand struct {
	ScheduleID string
}

type DeleteScheduleHandler struct {
	Schedules repository.MaintenanceScheduleRepository
}

func NewDeleteScheduleHandler(schedules repository.MaintenanceScheduleRepository) *DeleteScheduleHandler {
	return &DeleteScheduleHandler{Schedules: schedules}
}

func (h *DeleteScheduleHandler) Handle(ctx context.Context, cmd DeleteScheduleCommand) error {
	if _, err := h.Schedules.FindByID(ctx, cmd.ScheduleID); err != nil {
		return err
	}
	return h.Schedules.Delete(ctx, cmd.ScheduleID)
}
