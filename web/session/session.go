// Package session handles the client-held session state: the signed token
// cookie and the verified claims stashed in the request context. Nothing is
// persisted server-side; logout just clears the cookie.
package session

import (
	"github.com/daftarhq/daftar/database/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session token cookie, shared with the SPA.
const CookieName = "token"

const claimsKey = "SESSION_CLAIMS"

// Claims is the payload of a session token.
type Claims struct {
	UserId int        `json:"userId"`
	Role   model.Role `json:"role"`
	Name   string     `json:"name"`
	jwt.RegisteredClaims
}

// SetTokenCookie stores the signed token in an HTTP-only cookie. The cookie
// is marked Secure outside debug runs.
func SetTokenCookie(c *gin.Context, token string, maxAgeSeconds int, secure bool) {
	c.SetCookie(CookieName, token, maxAgeSeconds, "/", "", secure, true)
}

// ClearTokenCookie expires the session cookie immediately.
func ClearTokenCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// GetToken returns the raw token cookie value, or "" when absent.
func GetToken(c *gin.Context) string {
	token, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return token
}

// SetLoginClaims makes verified claims available to downstream handlers.
func SetLoginClaims(c *gin.Context, claims *Claims) {
	c.Set(claimsKey, claims)
}

// GetLoginClaims returns the verified claims of the request, or nil.
func GetLoginClaims(c *gin.Context) *Claims {
	if obj, ok := c.Get(claimsKey); ok {
		if claims, ok := obj.(*Claims); ok {
			return claims
		}
	}
	return nil
}

// IsLogin reports whether the request carries verified claims.
func IsLogin(c *gin.Context) bool {
	return GetLoginClaims(c) != nil
}
