package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxRequestIDKey holds the per-request correlation id in the gin context.
const CtxRequestIDKey = "request_id"

// RequestIDMiddleware tags every request with a correlation id. An inbound
// X-Request-ID is honored when it looks like a UUID; otherwise a fresh one is
// minted. The id is echoed back on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
