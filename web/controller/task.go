package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/web/service"
)

type TaskController struct {
	BaseController

	taskService service.TaskService
}

func NewTaskController(g *gin.RouterGroup) *TaskController {
	a := &TaskController{}
	a.initRouter(g)
	return a
}

func (a *TaskController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/tasks")

	g.GET("", a.list)
	g.POST("", a.create)
}

func (a *TaskController) list(c *gin.Context) {
	tasks, err := a.taskService.GetAll()
	jsonObj(c, tasks, err)
}

func (a *TaskController) create(c *gin.Context) {
	task := &model.Task{}
	if err := c.ShouldBind(task); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if task.Title == "" || task.ProjectId == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, "title and projectId are required")
		return
	}
	if err := a.taskService.Create(task); err != nil {
		jsonMsg(c, "create task", err)
		return
	}
	jsonObj(c, task, nil)
}
