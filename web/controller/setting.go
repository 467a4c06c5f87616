package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/web/entity"
	"github.com/daftarhq/daftar/web/middleware"
	"github.com/daftarhq/daftar/web/service"
)

// SettingController manages panel settings. Changes to listen address, port
// or TLS paths take effect on the next restart.
type SettingController struct {
	BaseController

	settingService service.SettingService
}

func NewSettingController(g *gin.RouterGroup) *SettingController {
	a := &SettingController{}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/settings")
	g.Use(middleware.PermissionRequired(model.PermManageUsers))

	g.GET("", a.getAll)
	g.POST("", a.update)
}

func (a *SettingController) getAll(c *gin.Context) {
	allSetting, err := a.settingService.GetAllSetting()
	jsonObj(c, allSetting, err)
}

func (a *SettingController) update(c *gin.Context) {
	allSetting := &entity.AllSetting{}
	if err := c.ShouldBind(allSetting); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if err := allSetting.CheckValid(); err != nil {
		jsonMsg(c, "update settings", err)
		return
	}
	jsonMsg(c, "settings saved", a.settingService.UpdateAllSetting(allSetting))
}
