package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/application/reference"
	"github.com/zagroshq/cmms-api/pkg/response"
	"github.com/zagroshq/cmms-api/pkg/validation"
)

// ReferenceHandler serves asset categories and locations.
type ReferenceHandler struct {
	Svc *reference.Service
}

func NewReferenceHandler(svc *reference.Service) *ReferenceHandler {
	return &ReferenceHandler{Svc: svc}
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	ParentID    string `json:"parent_id" binding:"omitempty,uuid"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CreateCategory POST /api/categories
func (h *ReferenceHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	id, err := h.Svc.CreateCategory(c.Request.Context(), reference.CreateCategoryCommand{
		Name:        req.Name,
		ParentID:    req.ParentID,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id}, "category created", nil)
}

// ListCategories GET /api/categories
func (h *ReferenceHandler) ListCategories(c *gin.Context) {
	page, limit := pagination(c)
	rows, err := h.Svc.ListCategories(c.Request.Context(), page, limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows, "categories", gin.H{"page": page, "limit": limit})
}

// DeleteCategory DELETE /api/categories/:id
func (h *ReferenceHandler) DeleteCategory(c *gin.Context) {
	if err := h.Svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "category deleted", nil)
}

type createLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parent_id" binding:"omitempty,uuid"`
	Address  string `json:"address"`
	Type     string `json:"type"`
}

// CreateLocation POST /api/locations
func (h *ReferenceHandler) CreateLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	id, err := h.Svc.CreateLocation(c.Request.Context(), reference.CreateLocationCommand{
		Name:     req.Name,
		ParentID: req.ParentID,
		Address:  req.Address,
		Type:     req.Type,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id}, "location created", nil)
}

// ListLocations GET /api/locations
func (h *ReferenceHandler) ListLocations(c *gin.Context) {
	page, limit := pagination(c)
	rows, err := h.Svc.ListLocations(c.Request.Context(), page, limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows, "locations", gin.H{"page": page, "limit": limit})
}

// DeleteLocation DELETE /api/locations/:id
func (h *ReferenceHandler) DeleteLocation(c *gin.Context) {
	if err := h.Svc.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "location deleted", nil)
}
