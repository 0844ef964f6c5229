package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/zagroshq/cmms-api/pkg/helpers"
	"github.com/zagroshq/cmms-api/pkg/response"
)

// Context keys populated by Auth.
const (
	CtxUserIDKey = "userID"
	CtxRolesKey  = "userRoles"
)

// Auth validates the access token and ensures an active session exists in
// Redis. Logout deletes the session hash, which invalidates tokens that have
// not yet expired. On success userID and userRoles land in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.Error(c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}
		if claims.SessionID != "" && data["session_id"] != claims.SessionID {
			response.Error(c, http.StatusUnauthorized, "session superseded", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRolesKey, claims.Roles)
		c.Next()
	}
}
