package maintenance

import (
	"context"
	"time"

	"github.com/zagroshq/cmms-api/internal/domain/repository"
)

type GetByIDQuery struct {
	ScheduleID string
}

type GetByIDHandler struct {
	Schedules repository.MaintenanceScheduleRepository
}

func NewGetByIDHandler(schedules repository.MaintenanceScheduleRepository) *GetByIDHandler {
	return &GetByIDHandler{Schedules: schedules}
}

func (h *GetByIDHandler) Handle(ctx context.Context, q GetByIDQuery) (*DTO, error) {
	s, err := h.Schedules.FindByID(ctx, q.ScheduleID)
	if err != nil {
		return nil, err
	}
	return FromEntity(s), nil
}

type ListQuery struct {
	Page  int
	Limit int
}

type ListHandler struct {
	Schedules repository.MaintenanceScheduleRepository
}

func NewListHandler(schedules repository.MaintenanceScheduleRepository) *ListHandler {
	return &ListHandler{Schedules: schedules}
}

func (h *ListHandler) Handle(ctx context.Context, q ListQuery) ([]*DTO, error) {
	rows, err := h.Schedules.FindAll(ctx, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*DTO, 0, len(rows))
	for _, s := range rows {
		out = append(out, FromEntity(s))
	}
	return out, nil
}

type ListDueQuery struct {
	Before time.Time // zero means "now"
}

type ListDueHandler struct {
	Schedules repository.MaintenanceScheduleRepository
}

func NewListDueHandler(schedules repository.MaintenanceScheduleRepository) *ListDueHandler {
	return &ListDueHandler{Schedules: schedules}
}

func (h *ListDueHandler) Handle(ctx context.Context, q ListDueQuery) ([]*DTO, error) {
	before := q.Before
	if before.IsZero() {
		before = time.Now().UTC()
	}
	rows, err := h.Schedules.FindDue(ctx, before)
	if err != nil {
		return nil, err
	}
	out := make([]*DTO, 0, len(rows))
	for _, s := range rows {
		out = append(out, FromEntity(s))
	}
	return out, nil
}
