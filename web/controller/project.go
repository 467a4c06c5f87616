package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/web/middleware"
	"github.com/daftarhq/daftar/web/service"
)

type ProjectController struct {
	BaseController

	projectService service.ProjectService
}

func NewProjectController(g *gin.RouterGroup) *ProjectController {
	a := &ProjectController{}
	a.initRouter(g)
	return a
}

func (a *ProjectController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/projects")

	g.GET("", a.list)
	g.POST("", middleware.PermissionRequired(model.PermManageProjects), a.create)
}

func (a *ProjectController) list(c *gin.Context) {
	projects, err := a.projectService.GetAll()
	jsonObj(c, projects, err)
}

func (a *ProjectController) create(c *gin.Context) {
	project := &model.Project{}
	if err := c.ShouldBind(project); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if project.Title == "" || project.ClientId == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, "title and clientId are required")
		return
	}
	if err := a.projectService.Create(project); err != nil {
		jsonMsg(c, "create project", err)
		return
	}
	jsonObj(c, project, nil)
}
