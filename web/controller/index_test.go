package controller

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/web/service"
	"github.com/daftarhq/daftar/web/session"
)

func newIndexRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logger.InitLogger(logging.ERROR)
	if err := database.InitDB(filepath.Join(t.TempDir(), "daftar.db")); err != nil {
		t.Fatalf("init test db: %v", err)
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewIndexController(engine.Group("/"))
	return engine
}

func postForm(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRegisterCreatesEmployee(t *testing.T) {
	t.Setenv("DAFTAR_DEBUG", "false")
	engine := newIndexRouter(t)

	w := postForm(engine, "/api/auth/register",
		"name=Nadia&email=nadia@example.com&password=s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Registration may never hand out anything above the employee role,
	// even though the user table only holds the seeded admin at this point.
	userService := service.UserService{}
	user := userService.CheckUser("nadia@example.com", "s3cret", "")
	if user == nil {
		t.Fatal("registered user cannot log in")
	}
	if user.Role != model.RoleEmployee {
		t.Errorf("expected employee role, got %s", user.Role)
	}

	logged := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName && cookie.Value != "" {
			logged = true
			if !cookie.Secure {
				t.Error("expected a Secure session cookie outside debug")
			}
		}
	}
	if !logged {
		t.Error("expected register to set the session cookie")
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	engine := newIndexRouter(t)

	w := postForm(engine, "/api/auth/register", "name=Nadia&email=nadia@example.com")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a missing password, got %d", w.Code)
	}
}
