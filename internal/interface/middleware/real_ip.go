package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the resolved client IP in the gin context.
const CtxRealIPKey = "real_ip"

// RealIP resolves the client IP behind proxies and stores it in the context.
// CF-Connecting-IP wins over the left-most X-Forwarded-For entry; when
// neither header carries a parseable address, gin's ClientIP is the fallback.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := firstParseableIP(
			c.GetHeader("CF-Connecting-IP"),
			leftmost(c.GetHeader("X-Forwarded-For")),
		)
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(CtxRealIPKey, ip)
		c.Next()
	}
}

func leftmost(xff string) string {
	if i := strings.IndexByte(xff, ','); i >= 0 {
		return xff[:i]
	}
	return xff
}

func firstParseableIP(candidates ...string) string {
	for _, cand := range candidates {
		cand = strings.TrimSpace(cand)
		if cand == "" {
			continue
		}
		if ip := net.ParseIP(cand); ip != nil {
			return ip.String()
		}
	}
	return ""
}
