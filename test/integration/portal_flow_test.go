package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"civicvoice-be/internal/controller"
	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/pkg/logger"
	"civicvoice-be/internal/pkg/serverutils"
	"civicvoice-be/internal/portal"
	"civicvoice-be/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// portalApp wires the portal surface against an in-memory session store,
// no database or brokers needed.
func portalApp(t *testing.T) (*fiber.App, session.Store) {
	t.Helper()

	store := session.NewMemoryStore()
	log := logger.NewIsolatedLogger(t.TempDir() + "/integration.log")
	shell := portal.NewShellService(store, nil, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	controller.NewPortalController(shell, store).RegisterRoutes(api)

	return app, store
}

func login(t *testing.T, store session.Store, role entity.UserRole) string {
	t.Helper()
	token := uuid.NewString()
	user := &entity.User{
		Id:        uuid.New(),
		Email:     "flow@example.com",
		FirstName: "Flow",
		LastName:  "Tester",
		Role:      role,
		Status:    entity.UserStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	assert.NoError(t, store.Save(context.Background(), session.NewRecord(token, user)))
	return token
}

type envelope struct {
	Success bool                   `json:"success"`
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	assert.NoError(t, err)

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

func TestShellRequiresSession(t *testing.T) {
	app, _ := portalApp(t)

	code, env := request(t, app, "GET", "/api/portal/shell?path=/civilian", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "/login", env.Data["redirect"])
}

func TestCivilianCannotOpenAdminShell(t *testing.T) {
	app, store := portalApp(t)
	token := login(t, store, entity.UserRoleCivilian)

	code, env := request(t, app, "GET", "/api/portal/shell?path=/admin", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "/login", env.Data["redirect"])

	// Their own area still works on the same token.
	code, env = request(t, app, "GET", "/api/portal/shell?path=/civilian", token, nil)
	assert.Equal(t, fiber.StatusOK, code)

	nav, _ := env.Data["nav"].(map[string]interface{})
	assert.Equal(t, "myfeedbacks", nav["active_tab"])
	assert.Equal(t, "feedback-list", env.Data["view"])
}

func TestAdminCannotOpenCivilianShell(t *testing.T) {
	app, store := portalApp(t)
	token := login(t, store, entity.UserRoleAdmin)

	code, _ := request(t, app, "GET", "/api/portal/shell?path=/civilian", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, env := request(t, app, "GET", "/api/portal/shell?path=/admin", token, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "admin-overview", env.Data["view"])
}

func TestAdminAccordionSelectionFlow(t *testing.T) {
	app, store := portalApp(t)
	token := login(t, store, entity.UserRoleAdmin)

	code, _ := request(t, app, "POST", "/api/portal/nav/toggle", token, map[string]string{"title": "Feedback Management"})
	assert.Equal(t, fiber.StatusOK, code)

	code, env := request(t, app, "POST", "/api/portal/nav/tab", token, map[string]string{"tab_id": "pending-feedback"})
	assert.Equal(t, fiber.StatusOK, code)

	nav, _ := env.Data["nav"].(map[string]interface{})
	assert.Equal(t, "pending-feedback", nav["active_tab"])
	assert.Equal(t, "Feedback Management", nav["expanded_parent"])
	assert.Equal(t, "feedback-table", env.Data["view"])
}

func TestLogoutFlow(t *testing.T) {
	app, store := portalApp(t)
	token := login(t, store, entity.UserRoleCivilian)

	code, env := request(t, app, "POST", "/api/portal/logout", token, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "/", env.Data["redirect"])

	// The cleared token no longer opens the shell.
	code, _ = request(t, app, "GET", "/api/portal/shell?path=/civilian", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	// Logging out again is harmless.
	code, env = request(t, app, "POST", "/api/portal/logout", token, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "/", env.Data["redirect"])
}
