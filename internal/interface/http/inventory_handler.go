package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/application/inventory"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/response"
	"github.com/zagroshq/cmms-api/pkg/validation"
)

// InventoryHandler exposes the spare parts catalog and stock movements.
type InventoryHandler struct {
	Create       *inventory.CreatePartHandler
	GetByID      *inventory.GetPartByIDHandler
	List         *inventory.ListPartsHandler
	BelowMin     *inventory.ListBelowMinimumHandler
	Adjust       *inventory.AdjustStockHandler
	Update       *inventory.UpdatePartHandler
	Transactions *inventory.ListTransactionsHandler
	Delete       *inventory.DeletePartHandler
}

func NewInventoryHandler(create *inventory.CreatePartHandler, getByID *inventory.GetPartByIDHandler, list *inventory.ListPartsHandler, belowMin *inventory.ListBelowMinimumHandler, adjust *inventory.AdjustStockHandler, update *inventory.UpdatePartHandler, transactions *inventory.ListTransactionsHandler, del *inventory.DeletePartHandler) *InventoryHandler {
	return &InventoryHandler{
		Create:       create,
		GetByID:      getByID,
		List:         list,
		BelowMin:     belowMin,
		Adjust:       adjust,
		Update:       update,
		Transactions: transactions,
		Delete:       del,
	}
}

type createPartRequest struct {
	Number        string   `json:"part_number" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	CategoryID    string   `json:"category_id"`
	Unit          string   `json:"unit" binding:"required"`
	UnitPrice     *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	MinStockLevel *int     `json:"min_stock_level" binding:"omitempty,gte=0"`
	MaxStockLevel *int     `json:"max_stock_level" binding:"omitempty,gte=0"`
	ShelfLocation string   `json:"location"`
}

// CreatePart POST /api/inventory/parts
func (h *InventoryHandler) CreatePart(c *gin.Context) {
	var req createPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	id, err := h.Create.Handle(c.Request.Context(), inventory.CreatePartCommand{
		Number:        req.Number,
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Unit:          req.Unit,
		UnitPrice:     req.UnitPrice,
		MinStockLevel: req.MinStockLevel,
		MaxStockLevel: req.MaxStockLevel,
		ShelfLocation: req.ShelfLocation,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id}, "part created", nil)
}

// GetPart GET /api/inventory/parts/:id
func (h *InventoryHandler) GetPart(c *gin.Context) {
	dto, err := h.GetByID.Handle(c.Request.Context(), inventory.GetPartByIDQuery{PartID: c.Param("id")})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "part", nil)
}

// ListParts GET /api/inventory/parts
func (h *InventoryHandler) ListParts(c *gin.Context) {
	page, limit := pagination(c)
	parts, err := h.List.Handle(c.Request.Context(), inventory.ListPartsQuery{Page: page, Limit: limit})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, parts, "parts", gin.H{"page": page, "limit": limit})
}

// ListPartsBelowMinimum GET /api/inventory/parts/below-minimum
func (h *InventoryHandler) ListPartsBelowMinimum(c *gin.Context) {
	parts, err := h.BelowMin.Handle(c.Request.Context(), inventory.ListBelowMinimumQuery{})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, parts, "parts below minimum stock", nil)
}

type adjustStockRequest struct {
	Type          string   `json:"type" binding:"required,oneof=receive issue"`
	Quantity      int      `json:"quantity" binding:"required,gte=1"`
	UnitPrice     *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	ReferenceType string   `json:"reference_type"`
	ReferenceID   string   `json:"reference_id"`
	Notes         string   `json:"notes"`
}

// AdjustStock POST /api/inventory/parts/:id/adjust
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.Adjust.Handle(c.Request.Context(), inventory.AdjustStockCommand{
		PartID:        c.Param("id"),
		Type:          req.Type,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Notes:         req.Notes,
		CreatedBy:     c.GetString(middleware.CtxUserIDKey),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "stock adjusted", nil)
}

type updatePartRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	ShelfLocation string   `json:"location"`
	UnitPrice     *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	MinStockLevel *int     `json:"min_stock_level" binding:"omitempty,gte=0"`
	MaxStockLevel *int     `json:"max_stock_level" binding:"omitempty,gte=0"`
}

// UpdatePart PUT /api/inventory/parts/:id
func (h *InventoryHandler) UpdatePart(c *gin.Context) {
	var req updatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.Update.Handle(c.Request.Context(), inventory.UpdatePartCommand{
		PartID:        c.Param("id"),
		Name:          req.Name,
		Description:   req.Description,
		ShelfLocation: req.ShelfLocation,
		UnitPrice:     req.UnitPrice,
		MinStockLevel: req.MinStockLevel,
		MaxStockLevel: req.MaxStockLevel,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "part updated", nil)
}

// ListTransactions GET /api/inventory/parts/:id/transactions
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	page, limit := pagination(c)
	txs, err := h.Transactions.Handle(c.Request.Context(), inventory.ListTransactionsQuery{
		PartID: c.Param("id"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, txs, "transactions", gin.H{"page": page, "limit": limit})
}

// DeletePart DELETE /api/inventory/parts/:id
func (h *InventoryHandler) DeletePart(c *gin.Context) {
	if err := h.Delete.Handle(c.Request.Context(), inventory.DeletePartCommand{PartID: c.Param("id")}); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "part deleted", nil)
}
