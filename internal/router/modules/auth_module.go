package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/container"
	handlers "github.com/zagroshq/cmms-api/internal/interface/http"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/helpers"
)

// AuthModule wires the session endpoints.
// Public: POST /api/auth/register, /api/auth/login, /api/auth/refresh
// Protected: POST /api/auth/logout, GET /api/auth/me

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	grp := rg.Group("/auth")
	grp.POST("/register", registerLimiter, m.Handler.RegisterUser)
	grp.POST("/login", loginLimiter, m.Handler.Login)
	grp.POST("/refresh", refreshLimiter, m.Handler.RefreshToken)

	auth := grp.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
