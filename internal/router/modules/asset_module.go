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

// AssetModule wires the asset registry. Reads need a session; mutations need
// the manager or admin role.

type AssetModule struct {
	Handler *handlers.AssetHandler
	JWT     *helpers.JWTManager
}

func NewAssetModule(h *handlers.AssetHandler, jwt *helpers.JWTManager) *AssetModule {
	return &AssetModule{Handler: h, JWT: jwt}
}

func (m *AssetModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/assets")
	grp.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil),
	)

	grp.GET("", m.Handler.ListAssets)
	grp.GET("/search", m.Handler.SearchAssets)
	grp.GET("/:id", m.Handler.GetAsset)
	grp.GET("/:id/documents", m.Handler.ListAssetDocuments)

	manage := grp.Group("")
	manage.Use(middleware.RequireRole(entity.RoleManager, entity.RoleAdmin))
	{
		manage.POST("", m.Handler.CreateAsset)
		manage.PUT("/:id", m.Handler.UpdateAsset)
		manage.PATCH("/:id/status", m.Handler.ChangeAssetStatus)
		manage.PATCH("/:id/criticality", m.Handler.UpdateAssetCriticality)
		manage.PATCH("/:id/metadata", m.Handler.SetAssetMetadata)
		manage.POST("/:id/documents", m.Handler.AttachAssetDocument)
		manage.DELETE("/:id", m.Handler.DeleteAsset)
	}
}
