package inventory

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain/repository"
)

type GetPartByIDQuery struct {
	PartID string
}

type GetPartByIDHandler struct {
	Parts repository.PartRepository
}

func NewGetPartByIDHandler(parts repository.PartRepository) *GetPartByIDHandler {
	return &GetPartByIDHandler{Parts: parts}
}

func (h *GetPartByIDHandler) Handle(ctx context.Context, q GetPartByIDQuery) (*DTO, error) {
	p, err := h.Parts.FindByID(ctx, q.PartID)
	if err != nil {
		return nil, err
	}
	return FromEntity(p), nil
}

type ListPartsQuery struct {
	Page  int
	Limit int
}

type ListPartsHandler struct {
	Parts repository.PartRepository
}

func NewListPartsHandler(parts repository.PartRepository) *ListPartsHandler {
	return &ListPartsHandler{Parts: parts}
}

func (h *ListPartsHandler) Handle(ctx context.Context, q ListPartsQuery) ([]*DTO, error) {
	rows, err := h.Parts.FindAll(ctx, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*DTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, FromEntity(p))
	}
	return out, nil
}

// ListBelowMinimumQuery drives the reorder report.
type ListBelowMinimumQuery struct{}

type ListBelowMinimumHandler struct {
	Parts repository.PartRepository
}

func NewListBelowMinimumHandler(parts repository.PartRepository) *ListBelowMinimumHandler {
	return &ListBelowMinimumHandler{Parts: parts}
}

func (h *ListBelowMinimumHandler) Handle(ctx context.Context, _ ListBelowMinimumQuery) ([]*DTO, error) {
	rows, err := h.Parts.FindBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*DTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, FromEntity(p))
	}
	return out, nil
}

type ListTransactionsQuery struct {
	PartID string
	Page   int
	Limit  int
}

type ListTransactionsHandler struct {
	Parts repository.PartRepository
}

func NewListTransactionsHandler(parts repository.PartRepository) *ListTransactionsHandler {
	return &ListTransactionsHandler{Parts: parts}
}

func (h *ListTransactionsHandler) Handle(ctx context.Context, q ListTransactionsQuery) ([]*TransactionDTO, error) {
	if _, err := h.Parts.FindByID(ctx, q.PartID); err != nil {
		return nil, err
	}
	rows, err := h.Parts.FindTransactions(ctx, q.PartID, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*TransactionDTO, 0, len(rows))
	for _, tx := range rows {
		out = append(out, TransactionFromEntity(tx))
	}
	return out, nil
}
