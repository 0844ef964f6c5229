package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/application/workorder"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/response"
	"github.com/zagroshq/cmms-api/pkg/validation"
)

// WorkOrderHandler exposes the work order lifecycle. State transitions are a
// single endpoint taking an action verb rather than one route per transition.
type WorkOrderHandler struct {
	Create       *workorder.CreateHandler
	GetByID      *workorder.GetByIDHandler
	List         *workorder.ListHandler
	Assign       *workorder.AssignHandler
	Transition   *workorder.TransitionHandler
	Reprioritize *workorder.ReprioritizeHandler
	Delete       *workorder.DeleteHandler
}

func NewWorkOrderHandler(create *workorder.CreateHandler, getByID *workorder.GetByIDHandler, list *workorder.ListHandler, assign *workorder.AssignHandler, transition *workorder.TransitionHandler, reprioritize *workorder.ReprioritizeHandler, del *workorder.DeleteHandler) *WorkOrderHandler {
	return &WorkOrderHandler{
		Create:       create,
		GetByID:      getByID,
		List:         list,
		Assign:       assign,
		Transition:   transition,
		Reprioritize: reprioritize,
		Delete:       del,
	}
}

type createWorkOrderRequest struct {
	Number         string   `json:"number"`
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	AssetID        string   `json:"asset_id" binding:"required,uuid"`
	Type           string   `json:"type" binding:"required,oneof=preventive corrective inspection"`
	Priority       int      `json:"priority" binding:"omitempty,gte=1,lte=5"`
	DueDate        *string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	ScheduledStart *string  `json:"scheduled_start" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EstimatedHours *float64 `json:"estimated_hours" binding:"omitempty,gte=0"`
}

// CreateWorkOrder POST /api/work-orders
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var req createWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	id, err := h.Create.Handle(c.Request.Context(), workorder.CreateCommand{
		Number:         req.Number,
		Title:          req.Title,
		Description:    req.Description,
		AssetID:        req.AssetID,
		Type:           req.Type,
		Priority:       req.Priority,
		CreatedBy:      c.GetString(middleware.CtxUserIDKey),
		DueDate:        parseDate(req.DueDate),
		ScheduledStart: parseRFC3339(req.ScheduledStart),
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id}, "work order created", nil)
}

func parseRFC3339(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}

// GetWorkOrder GET /api/work-orders/:id
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	dto, err := h.GetByID.Handle(c.Request.Context(), workorder.GetByIDQuery{WorkOrderID: c.Param("id")})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "work order", nil)
}

// ListWorkOrders GET /api/work-orders?asset_id=
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	page, limit := pagination(c)
	orders, err := h.List.Handle(c.Request.Context(), workorder.ListQuery{
		Page:    page,
		Limit:   limit,
		AssetID: c.Query("asset_id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "work orders", gin.H{"page": page, "limit": limit})
}

type assignRequest struct {
	AssigneeID string `json:"assignee_id" binding:"required,uuid"`
}

// AssignWorkOrder PATCH /api/work-orders/:id/assign
func (h *WorkOrderHandler) AssignWorkOrder(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.Assign.Handle(c.Request.Context(), workorder.AssignCommand{
		WorkOrderID: c.Param("id"),
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "work order assigned", nil)
}

type transitionRequest struct {
	Action string `json:"action" binding:"required,oneof=start complete cancel"`
}

// TransitionWorkOrder PATCH /api/work-orders/:id/transition
func (h *WorkOrderHandler) TransitionWorkOrder(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.Transition.Handle(c.Request.Context(), workorder.TransitionCommand{
		WorkOrderID: c.Param("id"),
		Action:      req.Action,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "work order updated", nil)
}

type reprioritizeRequest struct {
	Priority int `json:"priority" binding:"required,gte=1,lte=5"`
}

// ReprioritizeWorkOrder PATCH /api/work-orders/:id/priority
func (h *WorkOrderHandler) ReprioritizeWorkOrder(c *gin.Context) {
	var req reprioritizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.Reprioritize.Handle(c.Request.Context(), workorder.ReprioritizeCommand{
		WorkOrderID: c.Param("id"),
		Priority:    req.Priority,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "priority updated", nil)
}

// DeleteWorkOrder DELETE /api/work-orders/:id
func (h *WorkOrderHandler) DeleteWorkOrder(c *gin.Context) {
	if err := h.Delete.Handle(c.Request.Context(), workorder.DeleteCommand{WorkOrderID: c.Param("id")}); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "work order deleted", nil)
}
