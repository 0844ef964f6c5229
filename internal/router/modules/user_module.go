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

// UserModule wires user administration. The self-service profile update lives
// at /profile; everything under /users requires the admin role.

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("")
	auth.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)

	auth.PUT("/profile", m.Handler.UpdateMyProfile)

	admin := auth.Group("/users")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("", m.Handler.ListUsers)
		admin.GET("/:id", m.Handler.GetUser)
		admin.PUT("/:id", m.Handler.UpdateUserProfile)
		admin.PATCH("/:id/active", m.Handler.SetUserActive)
		admin.PATCH("/:id/roles", m.Handler.ChangeUserRoles)
		admin.DELETE("/:id", m.Handler.DeleteUser)
	}
}
