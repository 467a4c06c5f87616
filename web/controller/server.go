package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/web/middleware"
	"github.com/daftarhq/daftar/web/service"
)

// ServerController exposes host health for monitoring. Status is public so
// an uptime probe can hit it without a session; logs are admin only.
type ServerController struct {
	BaseController

	serverService service.ServerService
}

func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/server")

	g.GET("/status", a.status)
	g.GET("/logs", middleware.PermissionRequired(model.PermManageUsers), a.logs)
}

func (a *ServerController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *ServerController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil || count <= 0 {
		count = 100
	}
	level := c.DefaultQuery("level", "info")
	jsonObj(c, logger.GetLogs(count, level), nil)
}
