package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/zagroshq/cmms-api/internal/application/stats"
	"github.com/zagroshq/cmms-api/pkg/response"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	Dashboard *stats.GetDashboardHandler
}

func NewStatsHandler(dashboard *stats.GetDashboardHandler) *StatsHandler {
	return &StatsHandler{Dashboard: dashboard}
}

// GetDashboard GET /api/stats/dashboard
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	snap, err := h.Dashboard.Handle(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap, "dashboard stats", nil)
}

// HealthHandler reports liveness plus readiness of the two hard dependencies.
type HealthHandler struct {
	DB  *pgxpool.Pool
	RDB *redis.Client
}

func NewHealthHandler(db *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{DB: db, RDB: rdb}
}

// Live GET /api/health/live
func (h *HealthHandler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "alive", nil)
}

// Ready GET /api/health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{"postgres": "ok", "redis": "ok"}
	healthy := true

	if h.DB == nil {
		checks["postgres"] = "not configured"
		healthy = false
	} else if err := h.DB.Ping(c.Request.Context()); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}

	if h.RDB == nil {
		checks["redis"] = "not configured"
		healthy = false
	} else if err := h.RDB.Ping(c.Request.Context()).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "not ready", checks)
		return
	}
	response.Success(c, http.StatusOK, checks, "ready", nil)
}
