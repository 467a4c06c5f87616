package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/web/service"
	"github.com/daftarhq/daftar/web/session"
)

// publicRoutes are the exact routes (relative to the base path) reachable
// without a session.
var publicRoutes = []string{
	"login",
	"api/auth/login",
	"api/auth/register",
	"api/seed",
	"api/server/status",
}

// assetPrefix serves static files without a session and is exempt from the
// logged-in redirect.
const assetPrefix = "assets/"

func isPublicPath(basePath, path string) (public, asset bool) {
	rel := strings.TrimPrefix(path, basePath)
	if strings.HasPrefix(rel, assetPrefix) {
		return true, true
	}
	for _, route := range publicRoutes {
		if rel == route {
			return true, false
		}
	}
	return false, false
}

func isApiRequest(c *gin.Context) bool {
	if strings.Contains(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// SessionGate verifies the token cookie on every request and routes the
// caller accordingly:
//
//   - public path other than assets, valid token: redirect to the dashboard
//   - public path, no or bad token: pass through
//   - protected path, valid token: stash claims and pass through
//   - protected path, no or bad token: clear the cookie, then redirect
//     browsers to the login page and answer API calls with 401
func SessionGate(authService *service.AuthService, basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		token := session.GetToken(c)
		var claims *session.Claims
		if token != "" {
			claims, _ = authService.VerifyToken(token)
		}

		if public, asset := isPublicPath(basePath, path); public {
			if claims != nil && !asset {
				c.Redirect(http.StatusTemporaryRedirect, basePath+"dashboard")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if claims == nil {
			if token != "" {
				session.ClearTokenCookie(c)
			}
			if isApiRequest(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"msg":     "session expired, please log in again",
				})
				return
			}
			c.Redirect(http.StatusTemporaryRedirect, basePath+"login")
			c.Abort()
			return
		}

		session.SetLoginClaims(c, claims)
		c.Next()
	}
}
