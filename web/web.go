// Package web provides the web server of the panel: HTTP/HTTPS serving,
// routing, templates and background job scheduling.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/daftarhq/daftar/config"
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/util/common"
	"github.com/daftarhq/daftar/web/controller"
	"github.com/daftarhq/daftar/web/job"
	"github.com/daftarhq/daftar/web/middleware"
	"github.com/daftarhq/daftar/web/network"
	"github.com/daftarhq/daftar/web/service"
)

//go:embed html/*
var htmlFS embed.FS

//go:embed assets
var assetsFS embed.FS

// Server is the web server of the panel with its controllers, services and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index      *controller.IndexController
	attendance *controller.AttendanceController
	clients    *controller.ClientController
	projects   *controller.ProjectController
	tasks      *controller.TaskController
	finance    *controller.FinanceController
	users      *controller.UserController
	dashboard  *controller.DashboardController
	settings   *controller.SettingController
	server     *controller.ServerController

	settingService service.SettingService
	authService    service.AuthService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

func (s *Server) getHtmlTemplate() (*template.Template, error) {
	return template.New("").ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes Gin, registers middleware, templates, static
// assets and controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	webDomain, err := s.settingService.GetWebDomain()
	if err != nil {
		return nil, err
	}
	if webDomain != "" {
		engine.Use(middleware.DomainValidator(webDomain))
	}

	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
		c.Next()
	})

	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{basePath + "api/"}),
	))
	engine.Use(middleware.RequestId())
	engine.Use(func(c *gin.Context) {
		c.Next()
		service.CountRequest(c.Writer.Status() >= http.StatusBadRequest)
	})

	tpl, err := s.getHtmlTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	staticFS, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return nil, err
	}
	engine.StaticFS(basePath+"assets", http.FS(staticFS))

	engine.Use(middleware.SessionGate(&s.authService, basePath))

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g)

	api := g.Group("api")
	s.attendance = controller.NewAttendanceController(api)
	s.clients = controller.NewClientController(api)
	s.projects = controller.NewProjectController(api)
	s.tasks = controller.NewTaskController(api)
	s.finance = controller.NewFinanceController(api)
	s.users = controller.NewUserController(api)
	s.dashboard = controller.NewDashboardController(api)
	s.settings = controller.NewSettingController(api)
	s.server = controller.NewServerController(api)

	engine.NoRoute(func(c *gin.Context) {
		if strings.Contains(c.Request.URL.Path, "/api/") {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, basePath)
	})

	return engine, nil
}

// startTask schedules the background jobs: the attendance close, the
// invoice overdue sweep and log rotation.
func (s *Server) startTask() {
	hour, minute, err := s.settingService.GetAttendanceCloseTime()
	if err != nil {
		logger.Warning("get attendance close time:", err)
		hour, minute = 20, 0
	}
	closeSpec := fmt.Sprintf("0 %d %d * * *", minute, hour)
	if _, err := s.cron.AddJob(closeSpec, job.NewMarkAbsentJob()); err != nil {
		logger.Warning("schedule mark absent job:", err)
	}

	if _, err := s.cron.AddJob("@daily", job.NewInvoiceOverdueJob()); err != nil {
		logger.Warning("schedule invoice overdue job:", err)
	}
	if _, err := s.cron.AddJob("@daily", job.NewClearLogsJob()); err != nil {
		logger.Warning("schedule clear logs job:", err)
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	certFile, err := s.settingService.GetCertFile()
	if err != nil {
		return err
	}
	keyFile, err := s.settingService.GetKeyFile()
	if err != nil {
		return err
	}
	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if certFile != "" || keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = network.NewAutoHttpsListener(listener)
			listener = tls.NewListener(listener, cfg)
			logger.Info("web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("error loading certificates:", err)
			logger.Info("web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
