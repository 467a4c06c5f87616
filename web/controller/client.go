package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/web/service"
)

// QuickClientForm is the minimal payload of the quick-add dialog.
type QuickClientForm struct {
	Name  string `json:"name" form:"name"`
	Phone string `json:"phone" form:"phone"`
}

type ClientController struct {
	BaseController

	clientService service.ClientService
}

func NewClientController(g *gin.RouterGroup) *ClientController {
	a := &ClientController{}
	a.initRouter(g)
	return a
}

func (a *ClientController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/clients")

	g.GET("", a.list)
	g.GET("/:id", a.get)
	g.POST("", a.create)
	g.POST("/quick", a.quickCreate)
}

func (a *ClientController) list(c *gin.Context) {
	clients, err := a.clientService.GetAll()
	jsonObj(c, clients, err)
}

func (a *ClientController) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "parse id", err)
		return
	}
	client, err := a.clientService.GetByID(id)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "client not found")
		return
	}
	jsonObj(c, client, err)
}

func (a *ClientController) create(c *gin.Context) {
	client := &model.Client{}
	if err := c.ShouldBind(client); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if client.Name == "" || client.Phone == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "name and phone are required")
		return
	}
	if err := a.clientService.Create(client); err != nil {
		jsonMsg(c, "create client", err)
		return
	}
	jsonObj(c, client, nil)
}

func (a *ClientController) quickCreate(c *gin.Context) {
	var form QuickClientForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.Name == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "name is required")
		return
	}
	client, err := a.clientService.QuickCreate(form.Name, form.Phone)
	jsonObj(c, client, err)
}
