package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/application/asset"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/response"
	"github.com/zagroshq/cmms-api/pkg/validation"
)

const maxDocumentSize = 20 << 20 // 20 MiB

// AssetHandler exposes the asset registry: CRUD, status and criticality
// changes, metadata, search and document attachments.
type AssetHandler struct {
	Create        *asset.CreateAssetHandler
	GetByID       *asset.GetByIDHandler
	List          *asset.ListHandler
	Search        *asset.SearchHandler
	ChangeStatus  *asset.ChangeStatusHandler
	Criticality   *asset.UpdateCriticalityHandler
	SetMetadata   *asset.SetMetadataHandler
	UpdateDetails *asset.UpdateDetailsHandler
	Delete        *asset.DeleteAssetHandler
	AttachDoc     *asset.AttachDocumentHandler
	ListDocs      *asset.ListDocumentsHandler
}

func NewAssetHandler(create *asset.CreateAssetHandler, getByID *asset.GetByIDHandler, list *asset.ListHandler, search *asset.SearchHandler, changeStatus *asset.ChangeStatusHandler, criticality *asset.UpdateCriticalityHandler, setMetadata *asset.SetMetadataHandler, updateDetails *asset.UpdateDetailsHandler, del *asset.DeleteAssetHandler, attachDoc *asset.AttachDocumentHandler, listDocs *asset.ListDocumentsHandler) *AssetHandler {
	return &AssetHandler{
		Create:        create,
		GetByID:       getByID,
		List:          list,
		Search:        search,
		ChangeStatus:  changeStatus,
		Criticality:   criticality,
		SetMetadata:   setMetadata,
		UpdateDetails: updateDetails,
		Delete:        del,
		AttachDoc:     attachDoc,
		ListDocs:      listDocs,
	}
}

type createAssetRequest struct {
	Code         string   `json:"code" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	CategoryID   string   `json:"category_id"`
	LocationID   string   `json:"location_id"`
	SerialNumber string   `json:"serial_number"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	PurchaseDate *string  `json:"purchase_date" binding:"omitempty,datetime=2006-01-02"`
	PurchaseCost *float64 `json:"purchase_cost" binding:"omitempty,gte=0"`
}

// CreateAsset POST /api/assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req createAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	id, err := h.Create.Handle(c.Request.Context(), asset.CreateAssetCommand{
		Code:         req.Code,
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		LocationID:   req.LocationID,
		SerialNumber: req.SerialNumber,
		Manufacturer: req.Manufacturer,
		Model:        req.Model,
		PurchaseDate: parseDate(req.PurchaseDate),
		PurchaseCost: req.PurchaseCost,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id}, "asset created", nil)
}

// parseDate assumes the binding validated the layout already.
func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

// GetAsset GET /api/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	dto, err := h.GetByID.Handle(c.Request.Context(), asset.GetByIDQuery{AssetID: c.Param("id")})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "asset", nil)
}

// ListAssets GET /api/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	page, limit := pagination(c)
	assets, err := h.List.Handle(c.Request.Context(), asset.ListQuery{Page: page, Limit: limit})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, assets, "assets", gin.H{"page": page, "limit": limit})
}

// SearchAssets GET /api/assets/search?q=&size=
func (h *AssetHandler) SearchAssets(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Search.Handle(c.Request.Context(), asset.SearchQuery{Query: q, Size: size})
	if err != nil {
		response.Error(c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"query": q})
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeAssetStatus PATCH /api/assets/:id/status
func (h *AssetHandler) ChangeAssetStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.ChangeStatus.Handle(c.Request.Context(), asset.ChangeStatusCommand{
		AssetID: c.Param("id"),
		Status:  req.Status,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "status updated", nil)
}

type criticalityRequest struct {
	Level int `json:"level" binding:"required"`
}

// UpdateAssetCriticality PATCH /api/assets/:id/criticality
func (h *AssetHandler) UpdateAssetCriticality(c *gin.Context) {
	var req criticalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.Criticality.Handle(c.Request.Context(), asset.UpdateCriticalityCommand{
		AssetID: c.Param("id"),
		Level:   req.Level,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "criticality updated", nil)
}

type metadataRequest struct {
	Key   string `json:"key" binding:"required"`
	Value any    `json:"value"`
}

// SetAssetMetadata PATCH /api/assets/:id/metadata
func (h *AssetHandler) SetAssetMetadata(c *gin.Context) {
	var req metadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.SetMetadata.Handle(c.Request.Context(), asset.SetMetadataCommand{
		AssetID: c.Param("id"),
		Key:     req.Key,
		Value:   req.Value,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "metadata updated", nil)
}

type updateAssetRequest struct {
	Name         string `json:"name" binding:"required"`
	SerialNumber string `json:"serial_number"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
}

// UpdateAsset PUT /api/assets/:id
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.UpdateDetails.Handle(c.Request.Context(), asset.UpdateDetailsCommand{
		AssetID:      c.Param("id"),
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Manufacturer: req.Manufacturer,
		Model:        req.Model,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "asset updated", nil)
}

// DeleteAsset DELETE /api/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.Delete.Handle(c.Request.Context(), asset.DeleteAssetCommand{AssetID: c.Param("id")}); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "asset deleted", nil)
}

// AttachAssetDocument POST /api/assets/:id/documents
// Multipart form: "file" plus an optional "title" field (defaults to the
// original filename).
func (h *AssetHandler) AttachAssetDocument(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > maxDocumentSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}
	title := c.PostForm("title")
	if title == "" {
		title = fh.Filename
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read file", nil)
		return
	}
	defer f.Close()

	doc, err := h.AttachDoc.Handle(c.Request.Context(), asset.AttachDocumentCommand{
		AssetID:     c.Param("id"),
		Title:       title,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
		UploadedBy:  c.GetString(middleware.CtxUserIDKey),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, doc, "document attached", nil)
}

// ListAssetDocuments GET /api/assets/:id/documents
func (h *AssetHandler) ListAssetDocuments(c *gin.Context) {
	docs, err := h.ListDocs.Handle(c.Request.Context(), asset.ListDocumentsQuery{AssetID: c.Param("id")})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "documents", nil)
}
