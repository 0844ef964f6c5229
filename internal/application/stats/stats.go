package stats

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/zagroshq/cmms-api/pkg/helpers"
)

const (
	cacheKey = "cmms:dashboard:stats"
	cacheTTL = time.Minute
)

// Snapshot is the dashboard counters DTO.
type Snapshot struct {
	Assets            int64 `json:"assets"`
	AssetsDown        int64 `json:"assets_down"`
	OpenWorkOrders    int64 `json:"open_work_orders"`
	OverdueWorkOrders int64 `json:"overdue_work_orders"`
	PartsBelowMinimum int64 `json:"parts_below_minimum"`
	SchedulesDue      int64 `json:"schedules_due"`
}

// Reader produces a fresh snapshot from storage.
type Reader interface {
	Read(ctx context.Context) (*Snapshot, error)
}

// GetDashboardHandler serves dashboard counters with a short Redis cache in
// front of the storage read.
type GetDashboardHandler struct {
	Reader Reader
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewGetDashboardHandler(reader Reader, rdb *redis.Client, logger *logrus.Logger) *GetDashboardHandler {
	return &GetDashboardHandler{Reader: reader, Redis: rdb, Logger: logger}
}

func (h *GetDashboardHandler) Handle(ctx context.Context) (*Snapshot, error) {
	if h.Redis != nil {
		var cached Snapshot
		if ok, err := helpers.RedisGetJSON(ctx, h.Redis, cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	snap, err := h.Reader.Read(ctx)
	if err != nil {
		return nil, err
	}

	if h.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, h.Redis, cacheKey, snap, cacheTTL); err != nil && h.Logger != nil {
			h.Logger.WithError(err).Warn("dashboard stats cache write failed")
		}
	}
	return snap, nil
}
