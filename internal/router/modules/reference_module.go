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

// ReferenceModule wires asset categories and locations.

type ReferenceModule struct {
	Handler *handlers.ReferenceHandler
	JWT     *helpers.JWTManager
}

func NewReferenceModule(h *handlers.ReferenceHandler, jwt *helpers.JWTManager) *ReferenceModule {
	return &ReferenceModule{Handler: h, JWT: jwt}
}

func (m *ReferenceModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("")
	auth.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil),
	)

	auth.GET("/categories", m.Handler.ListCategories)
	auth.GET("/locations", m.Handler.ListLocations)

	manage := auth.Group("")
	manage.Use(middleware.RequireRole(entity.RoleManager, entity.RoleAdmin))
	{
		manage.POST("/categories", m.Handler.CreateCategory)
		manage.DELETE("/categories/:id", m.Handler.DeleteCategory)
		manage.POST("/locations", m.Handler.CreateLocation)
		manage.DELETE("/locations/:id", m.Handler.DeleteLocation)
	}
}
