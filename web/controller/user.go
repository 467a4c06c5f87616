package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/web/middleware"
	"github.com/daftarhq/daftar/web/service"
	"github.com/daftarhq/daftar/web/session"
)

// UserForm is the admin payload for creating an account. Password may be
// empty; the response then carries a generated temporary one.
type UserForm struct {
	Name     string     `json:"name" form:"name"`
	Email    string     `json:"email" form:"email"`
	Password string     `json:"password" form:"password"`
	Role     model.Role `json:"role" form:"role"`
}

// ProfileForm is the self-service profile update payload.
type ProfileForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type UserController struct {
	BaseController

	userService service.UserService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/users")
	g.Use(a.checkLogin)

	manage := middleware.PermissionRequired(model.PermManageUsers)
	g.GET("", manage, a.list)
	g.POST("", manage, a.create)

	g.PUT("/profile", a.updateProfile)
}

func (a *UserController) list(c *gin.Context) {
	users, err := a.userService.GetUsers()
	jsonObj(c, users, err)
}

func (a *UserController) create(c *gin.Context) {
	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.Name == "" || form.Email == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "name and email are required")
		return
	}

	user, tempPassword, err := a.userService.CreateUser(form.Name, form.Email, form.Password, form.Role)
	if err != nil {
		jsonMsg(c, "create user", err)
		return
	}
	obj := gin.H{"user": user}
	if tempPassword != "" {
		obj["tempPassword"] = tempPassword
	}
	jsonObj(c, obj, nil)
}

// updateProfile lets the logged-in user change their own name, email or
// password.
func (a *UserController) updateProfile(c *gin.Context) {
	claims := session.GetLoginClaims(c)

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}

	user, err := a.userService.UpdateProfile(claims.UserId, form.Name, form.Email, form.Password)
	if err != nil {
		jsonMsg(c, "update profile", err)
		return
	}
	jsonObj(c, user, nil)
}
