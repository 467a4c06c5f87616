package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/web/service"
	"github.com/daftarhq/daftar/web/session"
)

func newGateRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	logger.InitLogger(logging.ERROR)
	if err := database.InitDB(filepath.Join(t.TempDir(), "daftar.db")); err != nil {
		t.Fatalf("init test db: %v", err)
	}

	gin.SetMode(gin.TestMode)
	authService := &service.AuthService{}

	engine := gin.New()
	engine.Use(SessionGate(authService, "/"))
	engine.GET("/login", func(c *gin.Context) { c.String(http.StatusOK, "login page") })
	engine.GET("/dashboard", func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })
	engine.GET("/api/me", func(c *gin.Context) {
		claims := session.GetLoginClaims(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserId})
	})
	engine.POST("/api/auth/login", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	engine.GET("/api/seed", func(c *gin.Context) { c.String(http.StatusOK, "seeded") })
	engine.GET("/assets/css/app.css", func(c *gin.Context) { c.String(http.StatusOK, "body{}") })
	engine.GET("/login-admin", func(c *gin.Context) { c.String(http.StatusOK, "not public") })
	return engine, authService
}

func issueTestToken(t *testing.T, authService *service.AuthService) string {
	t.Helper()
	token, err := authService.IssueToken(&model.User{Id: 1, Name: "Admin", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestSessionGateDecisions(t *testing.T) {
	engine, authService := newGateRouter(t)
	validToken := issueTestToken(t, authService)

	tests := []struct {
		name         string
		method       string
		path         string
		token        string
		ajax         bool
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "public login page without token",
			method:     http.MethodGet,
			path:       "/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "public login api without token",
			method:     http.MethodPost,
			path:       "/api/auth/login",
			wantStatus: http.StatusOK,
		},
		{
			name:         "login page with valid token redirects to dashboard",
			method:       http.MethodGet,
			path:         "/login",
			token:        validToken,
			wantStatus:   http.StatusTemporaryRedirect,
			wantLocation: "/dashboard",
		},
		{
			name:         "seed api with valid token redirects to dashboard",
			method:       http.MethodGet,
			path:         "/api/seed",
			token:        validToken,
			wantStatus:   http.StatusTemporaryRedirect,
			wantLocation: "/dashboard",
		},
		{
			name:       "asset with valid token passes",
			method:     http.MethodGet,
			path:       "/assets/css/app.css",
			token:      validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:         "login lookalike path stays protected",
			method:       http.MethodGet,
			path:         "/login-admin",
			wantStatus:   http.StatusTemporaryRedirect,
			wantLocation: "/login",
		},
		{
			name:         "protected page without token redirects to login",
			method:       http.MethodGet,
			path:         "/dashboard",
			wantStatus:   http.StatusTemporaryRedirect,
			wantLocation: "/login",
		},
		{
			name:       "protected api without token gets 401",
			method:     http.MethodGet,
			path:       "/api/me",
			ajax:       true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:         "protected page with garbage token redirects to login",
			method:       http.MethodGet,
			path:         "/dashboard",
			token:        "not-a-jwt",
			wantStatus:   http.StatusTemporaryRedirect,
			wantLocation: "/login",
		},
		{
			name:       "protected api with valid token passes",
			method:     http.MethodGet,
			path:       "/api/me",
			token:      validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "protected page with valid token passes",
			method:     http.MethodGet,
			path:       "/dashboard",
			token:      validToken,
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tc.token})
			}
			if tc.ajax {
				req.Header.Set("X-Requested-With", "XMLHttpRequest")
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantLocation != "" && w.Header().Get("Location") != tc.wantLocation {
				t.Errorf("expected redirect to %s, got %s", tc.wantLocation, w.Header().Get("Location"))
			}
		})
	}
}

func TestSessionGateClearsBadCookie(t *testing.T) {
	engine, _ := newGateRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "expired-or-forged"})
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the token cookie to be cleared")
	}
}

func TestPermissionRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/finance",
		func(c *gin.Context) {
			session.SetLoginClaims(c, &session.Claims{UserId: 2, Role: model.RoleEngineer})
		},
		PermissionRequired(model.PermManageFinance),
		func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	engine.GET("/projects",
		func(c *gin.Context) {
			session.SetLoginClaims(c, &session.Claims{UserId: 2, Role: model.RoleEngineer})
		},
		PermissionRequired(model.PermManageProjects),
		func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/finance", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("engineer should not manage finance, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))
	if w.Code != http.StatusOK {
		t.Errorf("engineer should manage projects, got %d", w.Code)
	}
}
