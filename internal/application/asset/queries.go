package asset

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain/repository"
)

type GetByIDQuery struct {
	AssetID string
}

type GetByIDHandler struct {
	Assets repository.AssetRepository
}

func NewGetByIDHandler(assets repository.AssetRepository) *GetByIDHandler {
	return &GetByIDHandler{Assets: assets}
}

func (h *GetByIDHandler) Handle(ctx context.Context, q GetByIDQuery) (*DTO, error) {
	a, err := h.Assets.FindByID(ctx, q.AssetID)
	if err != nil {
		return nil, err
	}
	return FromEntity(a), nil
}

type ListQuery struct {
	Page  int
	Limit int
}

type ListHandler struct {
	Assets repository.AssetRepository
}

func NewListHandler(assets repository.AssetRepository) *ListHandler {
	return &ListHandler{Assets: assets}
}

func (h *ListHandler) Handle(ctx context.Context, q ListQuery) ([]*DTO, error) {
	as, err := h.Assets.FindAll(ctx, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*DTO, 0, len(as))
	for _, a := range as {
		out = append(out, FromEntity(a))
	}
	return out, nil
}

type SearchQuery struct {
	Query string
	Size  int
}

// SearchHandler queries the Elasticsearch index. With no index configured it
// returns an empty result rather than failing.
type SearchHandler struct {
	Idx Index
}

func NewSearchHandler(idx Index) *SearchHandler {
	return &SearchHandler{Idx: idx}
}

func (h *SearchHandler) Handle(ctx context.Context, q SearchQuery) ([]*DTO, error) {
	if h.Idx == nil {
		return []*DTO{}, nil
	}
	size := q.Size
	if size <= 0 || size > 50 {
		size = 10
	}
	return h.Idx.Search(ctx, q.Query, size)
}

type ListDocumentsQuery struct {
	AssetID string
}

type ListDocumentsHandler struct {
	Assets repository.AssetRepository
}

func NewListDocumentsHandler(assets repository.AssetRepository) *ListDocumentsHandler {
	return &ListDocumentsHandler{Assets: assets}
}

func (h *ListDocumentsHandler) Handle(ctx context.Context, q ListDocumentsQuery) ([]*DocumentDTO, error) {
	if _, err := h.Assets.FindByID(ctx, q.AssetID); err != nil {
		return nil, err
	}
	docs, err := h.Assets.FindDocuments(ctx, q.AssetID)
	if err != nil {
		return nil, err
	}
	out := make([]*DocumentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentFromEntity(d))
	}
	return out, nil
}
