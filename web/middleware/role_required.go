package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/web/session"
)

// PermissionRequired rejects requests whose session role lacks the given
// capability. Must run after SessionGate.
func PermissionRequired(p model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := session.GetLoginClaims(c)
		if claims == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !claims.Role.Can(p) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"msg":     "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
