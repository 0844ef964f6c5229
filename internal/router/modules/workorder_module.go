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

// WorkOrderModule wires the work order lifecycle. Technicians can move orders
// through their states; creation, assignment and deletion stay with managers.

type WorkOrderModule struct {
	Handler *handlers.WorkOrderHandler
	JWT     *helpers.JWTManager
}

func NewWorkOrderModule(h *handlers.WorkOrderHandler, jwt *helpers.JWTManager) *WorkOrderModule {
	return &WorkOrderModule{Handler: h, JWT: jwt}
}

func (m *WorkOrderModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/work-orders")
	grp.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil),
	)

	grp.GET("", m.Handler.ListWorkOrders)
	grp.GET("/:id", m.Handler.GetWorkOrder)

	work := grp.Group("")
	work.Use(middleware.RequireRole(entity.RoleTechnician, entity.RoleManager, entity.RoleAdmin))
	{
		work.PATCH("/:id/transition", m.Handler.TransitionWorkOrder)
	}

	manage := grp.Group("")
	manage.Use(middleware.RequireRole(entity.RoleManager, entity.RoleAdmin))
	{
		manage.POST("", m.Handler.CreateWorkOrder)
		manage.PATCH("/:id/assign", m.Handler.AssignWorkOrder)
		manage.PATCH("/:id/priority", m.Handler.ReprioritizeWorkOrder)
		manage.DELETE("/:id", m.Handler.DeleteWorkOrder)
	}
}
