// Package controller provides the HTTP handlers of the back-office panel:
// login and session endpoints, attendance, clients, projects, tasks,
// finance, users and the dashboard API.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/web/session"
)

// BaseController provides common functionality for all controllers.
type BaseController struct{}

// checkLogin rejects requests without a verified session. The session gate
// normally runs first; this is the per-group backstop.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "session expired, please log in again")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"login")
		}
		c.Abort()
		return
	}
	c.Next()
}
