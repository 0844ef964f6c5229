package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/pkg/response"
)

// RequireRole guards a route group behind one of the given roles. It runs
// after Auth, reading the role snapshot the token carried.
func RequireRole(roles ...string) gin.HandlerFunc {
	want := make(map[string]bool, len(roles))
	for _, r := range roles {
		want[r] = true
	}
	return func(c *gin.Context) {
		held, _ := c.Get(CtxRolesKey)
		if hs, ok := held.([]string); ok {
			for _, r := range hs {
				if want[r] {
					c.Next()
					return
				}
			}
		}
		response.Error(c, http.StatusForbidden, "insufficient role", nil)
		c.Abort()
	}
}
