package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/container"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	handlers "github.com/zagroshq/cmms-api/internal/interface/http"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/helpers"
)

// MaintenanceModule wires preventive maintenance schedules.

type MaintenanceModule struct {
	Handler *handlers.MaintenanceHandler
	JWT     *helpers.JWTManager
}

func NewMaintenanceModule(h *handlers.MaintenanceHandler, jwt *helpers.JWTManager) *MaintenanceModule {
	return &MaintenanceModule{Handler: h, JWT: jwt}
}

func (m *MaintenanceModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/maintenance/schedules")
	grp.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil),
	)

	grp.GET("", m.Handler.ListSchedules)
	grp.GET("/due", m.Handler.ListDueSchedules)
	grp.GET("/:id", m.Handler.GetSchedule)

	manage := grp.Group("")
	manage.Use(middleware.RequireRole(entity.RoleManager, entity.RoleAdmin))
	{
		manage.POST("", m.Handler.CreateSchedule)
		manage.PATCH("/:id/active", m.Handler.SetScheduleActive)
		manage.POST("/:id/generate", m.Handler.GenerateWorkOrder)
		manage.POST("/notify-due", m.Handler.NotifyDue)
		manage.DELETE("/:id", m.Handler.DeleteSchedule)
	}
}
