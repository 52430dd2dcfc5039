package serverutils

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newGuardedApp(store session.Store) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())

	civ := app.Group("/civilian", RequireRole(store, entity.UserRoleCivilian))
	civ.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("civilian view", nil))
	})

	adm := app.Group("/admin", RequireRole(store, entity.UserRoleAdmin))
	adm.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("admin view", nil))
	})

	return app
}

func seedSession(t *testing.T, store session.Store, role entity.UserRole) string {
	t.Helper()
	token := uuid.NewString()
	user := &entity.User{
		Id:        uuid.New(),
		Email:     string(role) + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Status:    entity.UserStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	assert.NoError(t, store.Save(context.Background(), session.NewRecord(token, user)))
	return token
}

func doGet(t *testing.T, app *fiber.App, path, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	assert.NoError(t, err)

	var body map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestGuardRejectsMissingToken(t *testing.T) {
	store := session.NewMemoryStore()
	app := newGuardedApp(store)

	code, body := doGet(t, app, "/civilian/", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	data, _ := body["data"].(map[string]interface{})
	assert.Equal(t, "/login", data["redirect"])
}

func TestGuardRejectsUnknownToken(t *testing.T) {
	store := session.NewMemoryStore()
	app := newGuardedApp(store)

	code, body := doGet(t, app, "/admin/", uuid.NewString())
	assert.Equal(t, fiber.StatusUnauthorized, code)

	data, _ := body["data"].(map[string]interface{})
	assert.Equal(t, "/login", data["redirect"])
}

func TestGuardRoleMatrix(t *testing.T) {
	store := session.NewMemoryStore()
	app := newGuardedApp(store)

	civToken := seedSession(t, store, entity.UserRoleCivilian)
	admToken := seedSession(t, store, entity.UserRoleAdmin)

	cases := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"civilian reaches civilian area", "/civilian/", civToken, fiber.StatusOK},
		{"civilian blocked from admin area", "/admin/", civToken, fiber.StatusUnauthorized},
		{"admin reaches admin area", "/admin/", admToken, fiber.StatusOK},
		{"admin blocked from civilian area", "/civilian/", admToken, fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := doGet(t, app, tc.path, tc.token)
			assert.Equal(t, tc.want, code)
		})
	}
}

func TestGuardNeverPanicsOnGarbageHeader(t *testing.T) {
	store := session.NewMemoryStore()
	app := newGuardedApp(store)

	for _, header := range []string{"Bearer", "bear hug", "Bearer ", "Basic abc"} {
		req := httptest.NewRequest("GET", "/civilian/", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestGuardStashesSessionInLocals(t *testing.T) {
	store := session.NewMemoryStore()
	token := seedSession(t, store, entity.UserRoleCivilian)

	app := fiber.New()
	app.Get("/me", RequireRole(store, entity.UserRoleCivilian), func(c *fiber.Ctx) error {
		rec := SessionFromLocals(c)
		if rec == nil {
			return fiber.ErrInternalServerError
		}
		return c.JSON(SuccessResponse("OK", rec.User.Email))
	})

	code, body := doGet(t, app, "/me", token)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "CIVILIAN@example.com", body["data"])
}
