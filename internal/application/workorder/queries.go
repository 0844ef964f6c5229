package workorder

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
)

type GetByIDQuery struct {
	WorkOrderID string
}

type GetByIDHandler struct {
	Orders repository.WorkOrderRepository
}

func NewGetByIDHandler(orders repository.WorkOrderRepository) *GetByIDHandler {
	return &GetByIDHandler{Orders: orders}
}

func (h *GetByIDHandler) Handle(ctx context.Context, q GetByIDQuery) (*DTO, error) {
	w, err := h.Orders.FindByID(ctx, q.WorkOrderID)
	if err != nil {
		return nil, err
	}
	return FromEntity(w), nil
}

type ListQuery struct {
	Page    int
	Limit   int
	AssetID string // optional filter
}

type ListHandler struct {
	Orders repository.WorkOrderRepository
}

func NewListHandler(orders repository.WorkOrderRepository) *ListHandler {
	return &ListHandler{Orders: orders}
}

func (h *ListHandler) Handle(ctx context.Context, q ListQuery) ([]*DTO, error) {
	var (
		rows []*entity.WorkOrder
		err  error
	)
	if q.AssetID != "" {
		rows, err = h.Orders.FindByAssetID(ctx, q.AssetID, q.Page, q.Limit)
	} else {
		rows, err = h.Orders.FindAll(ctx, q.Page, q.Limit)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*DTO, 0, len(rows))
	for _, w := range rows {
		out = append(out, FromEntity(w))
	}
	return out, nil
}
