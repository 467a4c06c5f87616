package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DomainValidator rejects requests whose Host does not match the configured
// domain. A panel bound behind a reverse proxy sets webDomain so that direct
// IP access is refused.
func DomainValidator(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if host != domain {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
