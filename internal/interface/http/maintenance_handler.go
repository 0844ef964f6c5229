package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/application/maintenance"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/response"
	"github.com/zagroshq/cmms-api/pkg/validation"
)

// MaintenanceHandler exposes preventive maintenance schedules and the
// explicit due-schedule to work-order conversion.
type MaintenanceHandler struct {
	Create    *maintenance.CreateScheduleHandler
	GetByID   *maintenance.GetByIDHandler
	List      *maintenance.ListHandler
	ListDue   *maintenance.ListDueHandler
	SetActive *maintenance.SetScheduleActiveHandler
	Generate  *maintenance.GenerateWorkOrderHandler
	Notify    *maintenance.NotifyDueHandler
	Delete    *maintenance.DeleteScheduleHandler
}

func NewMaintenanceHandler(create *maintenance.CreateScheduleHandler, getByID *maintenance.GetByIDHandler, list *maintenance.ListHandler, listDue *maintenance.ListDueHandler, setActive *maintenance.SetScheduleActiveHandler, generate *maintenance.GenerateWorkOrderHandler, notify *maintenance.NotifyDueHandler, del *maintenance.DeleteScheduleHandler) *MaintenanceHandler {
	return &MaintenanceHandler{
		Create:    create,
		GetByID:   getByID,
		List:      list,
		ListDue:   listDue,
		SetActive: setActive,
		Generate:  generate,
		Notify:    notify,
		Delete:    del,
	}
}

type createScheduleRequest struct {
	Name          string `json:"name" binding:"required"`
	AssetID       string `json:"asset_id" binding:"required,uuid"`
	IntervalValue int    `json:"interval_value" binding:"required,gte=1"`
	IntervalUnit  string `json:"interval_unit" binding:"required,oneof=day week month"`
	FirstDue      string `json:"first_due" binding:"required,datetime=2006-01-02"`
}

// CreateSchedule POST /api/maintenance/schedules
func (h *MaintenanceHandler) CreateSchedule(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	firstDue, _ := time.Parse("2006-01-02", req.FirstDue)
	id, err := h.Create.Handle(c.Request.Context(), maintenance.CreateScheduleCommand{
		Name:          req.Name,
		AssetID:       req.AssetID,
		IntervalValue: req.IntervalValue,
		IntervalUnit:  req.IntervalUnit,
		FirstDue:      firstDue,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id}, "schedule created", nil)
}

// GetSchedule GET /api/maintenance/schedules/:id
func (h *MaintenanceHandler) GetSchedule(c *gin.Context) {
	dto, err := h.GetByID.Handle(c.Request.Context(), maintenance.GetByIDQuery{ScheduleID: c.Param("id")})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "schedule", nil)
}

// ListSchedules GET /api/maintenance/schedules
func (h *MaintenanceHandler) ListSchedules(c *gin.Context) {
	page, limit := pagination(c)
	schedules, err := h.List.Handle(c.Request.Context(), maintenance.ListQuery{Page: page, Limit: limit})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, schedules, "schedules", gin.H{"page": page, "limit": limit})
}

// ListDueSchedules GET /api/maintenance/schedules/due
func (h *MaintenanceHandler) ListDueSchedules(c *gin.Context) {
	schedules, err := h.ListDue.Handle(c.Request.Context(), maintenance.ListDueQuery{Before: time.Now().UTC()})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, schedules, "due schedules", nil)
}

type scheduleActiveRequest struct {
	Active *bool `json:"is_active" binding:"required"`
}

// SetScheduleActive PATCH /api/maintenance/schedules/:id/active
func (h *MaintenanceHandler) SetScheduleActive(c *gin.Context) {
	var req scheduleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.SetActive.Handle(c.Request.Context(), maintenance.SetScheduleActiveCommand{
		ScheduleID: c.Param("id"),
		Active:     *req.Active,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "schedule updated", nil)
}

// GenerateWorkOrder POST /api/maintenance/schedules/:id/generate
func (h *MaintenanceHandler) GenerateWorkOrder(c *gin.Context) {
	id, err := h.Generate.Handle(c.Request.Context(), maintenance.GenerateWorkOrderCommand{
		ScheduleID: c.Param("id"),
		CreatedBy:  c.GetString(middleware.CtxUserIDKey),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"work_order_id": id}, "work order generated", nil)
}

// NotifyDue POST /api/maintenance/schedules/notify-due
func (h *MaintenanceHandler) NotifyDue(c *gin.Context) {
	queued, err := h.Notify.Handle(c.Request.Context(), maintenance.NotifyDueCommand{})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"queued": queued}, "maintenance reminders queued", nil)
}

// DeleteSchedule DELETE /api/maintenance/schedules/:id
func (h *MaintenanceHandler) DeleteSchedule(c *gin.Context) {
	if err := h.Delete.Handle(c.Request.Context(), maintenance.DeleteScheduleCommand{ScheduleID: c.Param("id")}); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "schedule deleted", nil)
}
