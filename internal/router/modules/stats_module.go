package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/container"
	handlers "github.com/zagroshq/cmms-api/internal/interface/http"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/helpers"
)

// StatsModule wires the dashboard counters and the health probes. Health is
// public so load balancers can reach it without a session.

type StatsModule struct {
	Stats  *handlers.StatsHandler
	Health *handlers.HealthHandler
	JWT    *helpers.JWTManager
}

func NewStatsModule(stats *handlers.StatsHandler, health *handlers.HealthHandler, jwt *helpers.JWTManager) *StatsModule {
	return &StatsModule{Stats: stats, Health: health, JWT: jwt}
}

func (m *StatsModule) Register(rg *gin.RouterGroup) {
	healthLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/health/live", healthLimiter, m.Health.Live)
	rg.GET("/health/ready", healthLimiter, m.Health.Ready)

	auth := rg.Group("/stats")
	auth.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	auth.GET("/dashboard", m.Stats.GetDashboard)
}
