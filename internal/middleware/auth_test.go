package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/mithuan2002/dropenote-sub000/internal/config"
	"github.com/mithuan2002/dropenote-sub000/internal/database"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
	"github.com/mithuan2002/dropenote-sub000/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *services.AuthService, *config.Config) {
	t.Helper()
	dsn := fmt.Sprintf("file:middleware_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			SessionTTL:   time.Hour,
			CookieName:   "dropenote_session",
			JWTSecret:    "test-secret",
			AccessExpiry: 15 * time.Minute,
		},
	}
	auth := services.NewAuthService(db, cfg)

	app := fiber.New()
	app.Get("/whoami", SessionProtected(auth, cfg), func(c *fiber.Ctx) error {
		identity, _ := GetIdentity(c)
		return c.JSON(fiber.Map{"username": identity.Username, "role": identity.Role})
	})
	app.Get("/brand-only", SessionProtected(auth, cfg), RoleRequired(models.RoleBrand), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, auth, cfg
}

func TestSessionProtectedRejectsAnonymous(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSessionProtectedAcceptsCookie(t *testing.T) {
	app, auth, cfg := newAuthTestApp(t)

	result, err := auth.Register("cookiebrand", "password123", models.RoleBrand)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Auth.CookieName, Value: result.SessionToken})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with session cookie, got %d", resp.StatusCode)
	}
}

func TestSessionProtectedAcceptsBearerToken(t *testing.T) {
	app, auth, _ := newAuthTestApp(t)

	result, err := auth.Register("bearerbrand", "password123", models.RoleBrand)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+result.AccessToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", resp.StatusCode)
	}
}

func TestSessionProtectedRejectsRevokedSession(t *testing.T) {
	app, auth, cfg := newAuthTestApp(t)

	result, err := auth.Register("revokedbrand", "password123", models.RoleBrand)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := auth.Logout(result.SessionToken); err != nil {
		t.Fatalf("logout: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Auth.CookieName, Value: result.SessionToken})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestRoleRequiredForbidsWrongRole(t *testing.T) {
	app, auth, cfg := newAuthTestApp(t)

	result, err := auth.Register("counterstaff", "password123", models.RoleStaff)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	req := httptest.NewRequest("GET", "/brand-only", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Auth.CookieName, Value: result.SessionToken})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for staff on brand route, got %d", resp.StatusCode)
	}
}
