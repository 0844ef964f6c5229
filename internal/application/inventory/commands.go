package inventory

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

type CreatePartCommand struct {
	Number        string
	Name          string
	Description   string
	CategoryID    string
	Unit          string
	UnitPrice     *float64
	MinStockLevel *int
	MaxStockLevel *int
	ShelfLocation string
}

type CreatePartHandler struct {
	Parts repository.PartRepository
}

func NewCreatePartHandler(parts repository.PartRepository) *CreatePartHandler {
	return &CreatePartHandler{Parts: parts}
}

func (h *CreatePartHandler) Handle(ctx context.Context, cmd CreatePartCommand) (string, error) {
	number, err := valueobject.NewPartNumber(cmd.Number)
	if err != nil {
		return "", err
	}
	if cmd.Name == "" {
		return "", domain.NewValidationError("part name cannot be empty")
	}
	if cmd.Unit == "" {
		return "", domain.NewValidationError("part unit cannot be empty")
	}

	exists, err := h.Parts.ExistsByNumber(ctx, number)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.NewConflictError("part with number %s already exists", number)
	}

	p := entity.NewPart(number, cmd.Name, cmd.Unit)
	p.Description = cmd.Description
	p.CategoryID = cmd.CategoryID
	p.UnitPrice = cmd.UnitPrice
	p.MinStockLevel = cmd.MinStockLevel
	p.MaxStockLevel = cmd.MaxStockLevel
	p.ShelfLocation = cmd.ShelfLocation

	if err := h.Parts.Save(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

type AdjustStockCommand struct {
	PartID        string
	Type          string // receive or issue
	Quantity      int
	UnitPrice     *float64
	ReferenceType string
	ReferenceID   string
	Notes         string
	CreatedBy     string
}

// AdjustStockHandler mutates stock and appends an inventory transaction in
// one repository write. The stock guard lives on the entity; a rejected
// movement writes nothing, and a failed write persists neither side.
type AdjustStockHandler struct {
	Parts repository.PartRepository
}

func NewAdjustStockHandler(parts repository.PartRepository) *AdjustStockHandler {
	return &AdjustStockHandler{Parts: parts}
}

func (h *AdjustStockHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (*DTO, error) {
	p, err := h.Parts.FindByID(ctx, cmd.PartID)
	if err != nil {
		return nil, err
	}

	switch cmd.Type {
	case entity.TxReceive:
		err = p.Receive(cmd.Quantity)
	case entity.TxIssue:
		err = p.Issue(cmd.Quantity)
	default:
		return nil, domain.NewValidationError("unknown stock movement type: %q", cmd.Type)
	}
	if err != nil {
		return nil, err
	}

	mv := entity.NewInventoryTransaction(p.ID, cmd.Type, cmd.Quantity, cmd.CreatedBy)
	mv.UnitPrice = cmd.UnitPrice
	mv.ReferenceType = cmd.ReferenceType
	mv.ReferenceID = cmd.ReferenceID
	mv.Notes = cmd.Notes
	if err := h.Parts.AdjustStock(ctx, p, mv); err != nil {
		return nil, err
	}
	return FromEntity(p), nil
}

type UpdatePartCommand struct {
	PartID        string
	Name          string
	Description   string
	ShelfLocation string
	UnitPrice     *float64
	MinStockLevel *int
	MaxStockLevel *int
}

type UpdatePartHandler struct {
	Parts repository.PartRepository
}

func NewUpdatePartHandler(parts repository.PartRepository) *UpdatePartHandler {
	return &UpdatePartHandler{Parts: parts}
}

func (h *UpdatePartHandler) Handle(ctx context.Context, cmd UpdatePartCommand) (*DTO, error) {
	p, err := h.Parts.FindByID(ctx, cmd.PartID)
	if err != nil {
		return nil, err
	}
	if cmd.Name == "" {
		return nil, domain.NewValidationError("part name cannot be empty")
	}
	p.UpdateDetails(cmd.Name, cmd.Description, cmd.ShelfLocation, cmd.UnitPrice, cmd.MinStockLevel, cmd.MaxStockLevel)
	if err := h.Parts.Save(ctx, p); err != nil {
		return nil, err
	}
	return FromEntity(p), nil
}

type DeletePartCommand struct {
	PartID string
}

type DeletePartHandler struct {
	Parts repository.PartRepository
}

func NewDeletePartHandler(parts repository.PartRepository) *DeletePartHandler {
	return &DeletePartHandler{Parts: parts}
}

func (h *DeletePartHandler) Handle(ctx context.Context, cmd DeletePartCommand) error {
	if _, err := h.Parts.FindByID(ctx, cmd.PartID); err != nil {
		return err
	}
	return h.Parts.Delete(ctx, cmd.PartID)
}
