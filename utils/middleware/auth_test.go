package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/utils/auth"
)

func newTestApp(t *testing.T) (*fiber.App, *auth.JWTManager, *auth.MemoryRevoker) {
	t.Helper()
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:   "0123456789abcdef0123456789abcdef",
		Issuer:   "online-lms-api",
		Audience: "online-lms-frontend",
		Expiry:   time.Hour,
	})
	revoker := auth.NewMemoryRevoker()
	m := NewAuthMiddleware(jwtManager, revoker, nil)

	app := fiber.New()
	api := app.Group("/api", m.Required())
	api.Get("/me", func(c *fiber.Ctx) error {
		id, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		return c.JSON(fiber.Map{"id": id, "role": role})
	})
	api.Get("/mentor", m.RequireRole(model.RoleMentor), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/unguarded", m.RequireRole(model.RoleMentor), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, jwtManager, revoker
}

func doGet(t *testing.T, app *fiber.App, path, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp.StatusCode
}

func TestRequired(t *testing.T) {
	app, jwtManager, revoker := newTestApp(t)

	token, jti, exp, err := jwtManager.GenerateAccessToken(7, model.RoleStudent)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if code := doGet(t, app, "/api/me", ""); code != 401 {
		t.Fatalf("missing header: expected 401, got %d", code)
	}
	if code := doGet(t, app, "/api/me", "Token "+token); code != 401 {
		t.Fatalf("wrong scheme: expected 401, got %d", code)
	}
	if code := doGet(t, app, "/api/me", "Bearer not-a-jwt"); code != 401 {
		t.Fatalf("garbage token: expected 401, got %d", code)
	}
	if code := doGet(t, app, "/api/me", "Bearer "+token); code != 200 {
		t.Fatalf("valid token: expected 200, got %d", code)
	}

	if err := revoker.Revoke(context.Background(), jti, exp); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if code := doGet(t, app, "/api/me", "Bearer "+token); code != 401 {
		t.Fatalf("revoked token: expected 401, got %d", code)
	}
}

func TestRequireRole(t *testing.T) {
	app, jwtManager, _ := newTestApp(t)

	student, _, _, _ := jwtManager.GenerateAccessToken(1, model.RoleStudent)
	mentor, _, _, _ := jwtManager.GenerateAccessToken(2, model.RoleMentor)

	if code := doGet(t, app, "/api/mentor", "Bearer "+student); code != 403 {
		t.Fatalf("student on mentor route: expected 403, got %d", code)
	}
	if code := doGet(t, app, "/api/mentor", "Bearer "+mentor); code != 200 {
		t.Fatalf("mentor on mentor route: expected 200, got %d", code)
	}
	if code := doGet(t, app, "/unguarded", ""); code != 401 {
		t.Fatalf("role guard without claims: expected 401, got %d", code)
	}
}

func TestLockoutFor(t *testing.T) {
	cases := map[int64]time.Duration{1: 0, 4: 0, 5: 2 * time.Minute, 10: time.Hour, 30: 24 * time.Hour}
	for attempts, want := range cases {
		if got := lockoutFor(attempts); got != want {
			t.Fatalf("attempts=%d: expected %s, got %s", attempts, want, got)
		}
	}
}
