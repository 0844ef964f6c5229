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

// InventoryModule wires the parts catalog. Technicians can move stock; the
// catalog itself is manager territory.

type InventoryModule struct {
	Handler *handlers.InventoryHandler
	JWT     *helpers.JWTManager
}

func NewInventoryModule(h *handlers.InventoryHandler, jwt *helpers.JWTManager) *InventoryModule {
	return &InventoryModule{Handler: h, JWT: jwt}
}

func (m *InventoryModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/inventory/parts")
	grp.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil),
	)

	grp.GET("", m.Handler.ListParts)
	grp.GET("/below-minimum", m.Handler.ListPartsBelowMinimum)
	grp.GET("/:id", m.Handler.GetPart)
	grp.GET("/:id/transactions", m.Handler.ListTransactions)

	move := grp.Group("")
	move.Use(middleware.RequireRole(entity.RoleTechnician, entity.RoleManager, entity.RoleAdmin))
	{
		move.POST("/:id/adjust", m.Handler.AdjustStock)
	}

	manage := grp.Group("")
	manage.Use(middleware.RequireRole(entity.RoleManager, entity.RoleAdmin))
	{
		manage.POST("", m.Handler.CreatePart)
		manage.PUT("/:id", m.Handler.UpdatePart)
		manage.DELETE("/:id", m.Handler.DeletePart)
	}
}
