package asset

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// Index is the search collaborator. Indexing is best-effort: failures are
// logged, never surfaced to the API caller.
type Index interface {
	Index(ctx context.Context, a *entity.Asset) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, size int) ([]*DTO, error)
}

// ObjectStore uploads document payloads and returns a public URL.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type CreateAssetCommand struct {
	Code         string
	Name         string
	CategoryID   string
	LocationID   string
	SerialNumber string
	Manufacturer string
	Model        string
	PurchaseDate *time.Time
	PurchaseCost *float64
}

// CreateAssetHandler validates code uniqueness before constructing the asset.
type CreateAssetHandler struct {
	Assets repository.AssetRepository
	Idx    Index
	Logger *logrus.Logger
}

func NewCreateAssetHandler(assets repository.AssetRepository, idx Index, logger *logrus.Logger) *CreateAssetHandler {
	return &CreateAssetHandler{Assets: assets, Idx: idx, Logger: logger}
}

func (h *CreateAssetHandler) Handle(ctx context.Context, cmd CreateAssetCommand) (string, error) {
	code, err := valueobject.NewAssetCode(cmd.Code)
	if err != nil {
		return "", err
	}

	exists, err := h.Assets.ExistsByCode(ctx, code)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.NewConflictError("asset with code %s already exists", code)
	}

	a := entity.NewAsset(code, cmd.Name, cmd.CategoryID, cmd.LocationID)
	a.SerialNumber = cmd.SerialNumber
	a.Manufacturer = cmd.Manufacturer
	a.Model = cmd.Model
	a.PurchaseDate = cmd.PurchaseDate
	a.PurchaseCost = cmd.PurchaseCost

	if err := h.Assets.Save(ctx, a); err != nil {
		return "", err
	}
	h.reindex(ctx, a)
	return a.ID, nil
}

func (h *CreateAssetHandler) reindex(ctx context.Context, a *entity.Asset) {
	reindex(ctx, h.Idx, h.Logger, a)
}

func reindex(ctx context.Context, idx Index, logger *logrus.Logger, a *entity.Asset) {
	if idx == nil {
		return
	}
	if err := idx.Index(ctx, a); err != nil && logger != nil {
		logger.WithError(err).WithField("asset_id", a.ID).Warn("asset index failed")
	}
}

type ChangeStatusCommand struct {
	AssetID string
	Status  string
}

// ChangeStatusHandler routes to the entity's status methods. Transitions are
// unrestricted by design.
type ChangeStatusHandler struct {
	Assets repository.AssetRepository
	Idx    Index
	Logger *logrus.Logger
}

func NewChangeStatusHandler(assets repository.AssetRepository, idx Index, logger *logrus.Logger) *ChangeStatusHandler {
	return &ChangeStatusHandler{Assets: assets, Idx: idx, Logger: logger}
}

func (h *ChangeStatusHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) (*DTO, error) {
	status, err := valueobject.ParseAssetStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	a, err := h.Assets.FindByID(ctx, cmd.AssetID)
	if err != nil {
		return nil, err
	}
	switch status {
	case valueobject.AssetOperational:
		a.Activate()
	case valueobject.AssetDown:
		a.Deactivate()
	case valueobject.AssetMaintenance:
		a.MarkForMaintenance()
	case valueobject.AssetRetired:
		a.Retire()
	}
	if err := h.Assets.Save(ctx, a); err != nil {
		return nil, err
	}
	reindex(ctx, h.Idx, h.Logger, a)
	return FromEntity(a), nil
}

type UpdateCriticalityCommand struct {
	AssetID string
	Level   int
}

type UpdateCriticalityHandler struct {
	Assets repository.AssetRepository
}

func NewUpdateCriticalityHandler(assets repository.AssetRepository) *UpdateCriticalityHandler {
	return &UpdateCriticalityHandler{Assets: assets}
}

func (h *UpdateCriticalityHandler) Handle(ctx context.Context, cmd UpdateCriticalityCommand) (*DTO, error) {
	level, err := valueobject.NewCriticalityLevel(cmd.Level)
	if err != nil {
		return nil, err
	}
	a, err := h.Assets.FindByID(ctx, cmd.AssetID)
	if err != nil {
		return nil, err
	}
	a.UpdateCriticality(level)
	if err := h.Assets.Save(ctx, a); err != nil {
		return nil, err
	}
	return FromEntity(a), nil
}

type SetMetadataCommand struct {
	AssetID string
	Key     string
	Value   any
}

type SetMetadataHandler struct {
	Assets repository.AssetRepository
}

func NewSetMetadataHandler(assets repository.AssetRepository) *SetMetadataHandler {
	return &SetMetadataHandler{Assets: assets}
}

func (h *SetMetadataHandler) Handle(ctx context.Context, cmd SetMetadataCommand) (*DTO, error) {
	if cmd.Key == "" {
		return nil, domain.NewValidationError("metadata key cannot be empty")
	}
	a, err := h.Assets.FindByID(ctx, cmd.AssetID)
	if err != nil {
		return nil, err
	}
	a.SetMetadata(cmd.Key, cmd.Value)
	if err := h.Assets.Save(ctx, a); err != nil {
		return nil, err
	}
	return FromEntity(a), nil
}

type UpdateDetailsCommand struct {
	AssetID      string
	Name         string
	SerialNumber string
	Manufacturer string
	Model        string
}

type UpdateDetailsHandler struct {
	Assets repository.AssetRepository
	Idx    Index
	Logger *logrus.Logger
}

func NewUpdateDetailsHandler(assets repository.AssetRepository, idx Index, logger *logrus.Logger) *UpdateDetailsHandler {
	return &UpdateDetailsHandler{Assets: assets, Idx: idx, Logger: logger}
}

func (h *UpdateDetailsHandler) Handle(ctx context.Context, cmd UpdateDetailsCommand) (*DTO, error) {
	a, err := h.Assets.FindByID(ctx, cmd.AssetID)
	if err != nil {
		return nil, err
	}
	a.UpdateDetails(cmd.Name, cmd.SerialNumber, cmd.Manufacturer, cmd.Model)
	if err := h.Assets.Save(ctx, a); err != nil {
		return nil, err
	}
	reindex(ctx, h.Idx, h.Logger, a)
	return FromEntity(a), nil
}

type DeleteAssetCommand struct {
	AssetID string
}

type DeleteAssetHandler struct {
	Assets repository.AssetRepository
	Idx    Index
	Logger *logrus.Logger
}

func NewDeleteAssetHandler(assets repository.AssetRepository, idx Index, logger *logrus.Logger) *DeleteAssetHandler {
	return &DeleteAssetHandler{Assets: assets, Idx: idx, Logger: logger}
}

func (h *DeleteAssetHandler) Handle(ctx context.Context, cmd DeleteAssetCommand) error {
	if _, err := h.Assets.FindByID(ctx, cmd.AssetID); err != nil {
		return err
	}
	if err := h.Assets.Delete(ctx, cmd.AssetID); err != nil {
		return err
	}
	if h.Idx != nil {
		if err := h.Idx.Remove(ctx, cmd.AssetID); err != nil && h.Logger != nil {
			h.Logger.WithError(err).WithField("asset_id", cmd.AssetID).Warn("asset index remove failed")
		}
	}
	return nil
}

type AttachDocumentCommand struct {
	AssetID     string
	Title       string
	Filename    string
	ContentType string
	Body        io.Reader
	UploadedBy  string
}

// AttachDocumentHandler uploads the payload to object storage and records the
// document against the asset.
type AttachDocumentHandler struct {
	Assets repository.AssetRepository
	Store  ObjectStore
}

func NewAttachDocumentHandler(assets repository.AssetRepository, store ObjectStore) *AttachDocumentHandler {
	return &AttachDocumentHandler{Assets: assets, Store: store}
}

func (h *AttachDocumentHandler) Handle(ctx context.Context, cmd AttachDocumentCommand) (*DocumentDTO, error) {
	if cmd.Title == "" {
		return nil, domain.NewValidationError("document title cannot be empty")
	}
	a, err := h.Assets.FindByID(ctx, cmd.AssetID)
	if err != nil {
		return nil, err
	}

	objectPath := "assets/" + a.ID + "/" + cmd.Filename
	url, err := h.Store.Upload(ctx, objectPath, cmd.ContentType, cmd.Body)
	if err != nil {
		return nil, err
	}

	doc := entity.NewAssetDocument(a.ID, cmd.Title, url, cmd.ContentType, cmd.UploadedBy)
	if err := h.Assets.AddDocument(ctx, doc); err != nil {
		return nil, err
	}
	return DocumentFromEntity(doc), nil
}
