package controller

import (
	"net/http"
	"text/template"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/config"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/web/service"
	"github.com/daftarhq/daftar/web/session"
)

// LoginForm is the login request payload.
type LoginForm struct {
	Email         string `json:"email" form:"email"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"twoFactorCode" form:"twoFactorCode"`
}

// RegisterForm is the self-service signup payload. New accounts always start
// as plain employees; the admin account is seeded on first start.
type RegisterForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the pages, the auth endpoints and seeding.
type IndexController struct {
	BaseController

	settingService service.SettingService
	userService    service.UserService
	authService    service.AuthService
	notifyService  service.NotifyService
	seedService    service.SeedService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/login", a.loginPage)
	g.GET("/dashboard", a.dashboardPage)

	g.POST("/api/auth/login", a.login)
	g.POST("/api/auth/register", a.register)
	g.POST("/api/auth/logout", a.logout)
	g.GET("/api/auth/logout", a.logout)
	g.GET("/api/me", a.me)
	g.GET("/api/seed", a.seed)
}

func (a *IndexController) index(c *gin.Context) {
	base := c.GetString("base_path")
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, base+"dashboard")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, base+"login")
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, "login.html", "Sign in", nil)
}

func (a *IndexController) dashboardPage(c *gin.Context) {
	claims := session.GetLoginClaims(c)
	html(c, "dashboard.html", "Dashboard", gin.H{
		"userName": claims.Name,
		"userRole": claims.Role,
	})
}

// login authenticates the user and sets the session token cookie.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.Email == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "email and password are required")
		return
	}

	safeEmail := template.HTMLEscapeString(form.Email)

	user := a.userService.CheckUser(form.Email, form.Password, form.TwoFactorCode)
	if user == nil {
		logger.Warningf("failed login for \"%s\", IP: %s", safeEmail, getRemoteIp(c))
		go a.notifyService.NotifyLogin(safeEmail, getRemoteIp(c), false)
		pureJsonMsg(c, http.StatusUnauthorized, false, "wrong email or password")
		return
	}

	token, err := a.authService.IssueToken(user)
	if err != nil {
		jsonMsg(c, "login", err)
		return
	}

	maxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("get session max age:", err)
	}
	session.SetTokenCookie(c, token, maxAge*60, !config.IsDebug())

	logger.Infof("%s logged in, IP: %s", safeEmail, getRemoteIp(c))
	go a.notifyService.NotifyLogin(safeEmail, getRemoteIp(c), true)
	jsonObj(c, user, nil)
}

// register creates an account and logs it straight in.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.Name == "" || form.Email == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "name, email and password are required")
		return
	}

	user, _, err := a.userService.CreateUser(form.Name, form.Email, form.Password, model.RoleEmployee)
	if err != nil {
		jsonMsg(c, "register", err)
		return
	}

	token, err := a.authService.IssueToken(user)
	if err != nil {
		jsonMsg(c, "register", err)
		return
	}
	maxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("get session max age:", err)
	}
	session.SetTokenCookie(c, token, maxAge*60, !config.IsDebug())
	jsonObj(c, user, nil)
}

// logout clears the cookie. There is no server-side session to tear down.
func (a *IndexController) logout(c *gin.Context) {
	if claims := session.GetLoginClaims(c); claims != nil {
		logger.Infof("%s logged out", claims.Name)
	}
	session.ClearTokenCookie(c)
	if isAjax(c) {
		jsonMsg(c, "logout", nil)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"login")
}

// me returns the profile of the logged-in user.
func (a *IndexController) me(c *gin.Context) {
	claims := session.GetLoginClaims(c)
	if claims == nil {
		pureJsonMsg(c, http.StatusUnauthorized, false, "not logged in")
		return
	}
	user, err := a.userService.GetUser(claims.UserId)
	if err != nil {
		jsonMsg(c, "get profile", err)
		return
	}
	jsonObj(c, user, nil)
}

// seed loads the demo dataset. Safe to call repeatedly.
func (a *IndexController) seed(c *gin.Context) {
	seeded, err := a.seedService.Seed()
	if err != nil {
		jsonMsg(c, "seed", err)
		return
	}
	if !seeded {
		jsonMsg(c, "demo data already present", nil)
		return
	}
	jsonMsg(c, "demo data seeded", nil)
}
