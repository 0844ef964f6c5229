package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/container"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/helpers"
)

// DebugModule exposes process expvars to admins for live inspection.

type DebugModule struct {
	JWT *helpers.JWTManager
}

func NewDebugModule(jwt *helpers.JWTManager) *DebugModule {
	return &DebugModule{JWT: jwt}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars",
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RequireRole(entity.RoleAdmin),
		middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil),
		gin.WrapH(expvar.Handler()),
	)
}
