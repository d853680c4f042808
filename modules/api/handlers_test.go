package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "github.com/mtfsantos/task-manager/domain/task"
	"github.com/mtfsantos/task-manager/modules/auth"
	"github.com/mtfsantos/task-manager/modules/task"
)

// setupTestApp wires the full router against real services backed by an
// in-memory SQLite database, bypassing the service container.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	tokens, err := auth.NewTokenManager(auth.Config{
		Username:  "user",
		Password:  "password",
		SecretKey: "test-secret-key",
		Algorithm: "HS256",
		TokenTTL:  30 * time.Minute,
		Issuer:    "test-issuer",
	})
	require.NoError(t, err)
	authService := auth.NewService(auth.NewStaticCredentials("user", "password"), tokens)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Task{}))
	taskService := task.NewService(task.NewRepository(db), nil)

	return newApp(authService, taskService, "http://localhost:3000")
}

// doJSON performs a request with an optional bearer token and JSON body,
// returning the response and its decoded body (nil for empty bodies).
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	if len(raw) == 0 {
		return resp, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// List endpoints return arrays; callers decode those themselves.
		return resp, nil
	}
	return resp, decoded
}

// loginToken obtains a valid bearer token through the login endpoint.
func loginToken(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/api/v1/login", "", map[string]string{
		"username": "user",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "bearer", body["token_type"])

	token, ok := body["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestLogin_Failure(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/v1/login", "", map[string]string{
		"username": "wronguser",
		"password": "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect username or password", body["detail"])
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
}

func TestLogin_FormEncoded(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/login", bytes.NewReader([]byte("username=user&password=password")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTasks_RequireAuthentication(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/v1/tasks", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authenticated", body["detail"])
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
}

func TestTasks_RejectsInvalidToken(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/v1/tasks", "not-a-real-token", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Could not validate credentials", body["detail"])
}

func TestCreateTask(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	resp, body := doJSON(t, app, "POST", "/api/v1/tasks", token, map[string]any{
		"title":       "Test Task",
		"description": "This is a test task.",
		"status":      "pending",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Test Task", body["title"])
	assert.Equal(t, "This is a test task.", body["description"])
	assert.Equal(t, "pending", body["status"])
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["created_at"])
	assert.Nil(t, body["updated_at"])
}

func TestCreateTask_DefaultsAndNulls(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	resp, body := doJSON(t, app, "POST", "/api/v1/tasks", token, map[string]any{
		"title": "Bare Task",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Nil(t, body["description"])
	assert.Nil(t, body["updated_at"])
}

func TestCreateTask_ValidationError(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	resp, _ := doJSON(t, app, "POST", "/api/v1/tasks", token, map[string]any{
		"title": "",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestListTasks_FilterByStatus(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	for _, seed := range []map[string]any{
		{"title": "Pending Task", "status": "pending"},
		{"title": "Completed Task", "status": "completed"},
	} {
		resp, _ := doJSON(t, app, "POST", "/api/v1/tasks", token, seed)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/v1/tasks?status=pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tasks []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Pending Task", tasks[0]["title"])
	assert.Equal(t, "pending", tasks[0]["status"])
}

func TestTaskLifecycle(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	// Create.
	resp, created := doJSON(t, app, "POST", "/api/v1/tasks", token, map[string]any{
		"title":       "Task to Update",
		"description": "Original description",
		"status":      "pending",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := created["id"].(string)

	// Read it back.
	resp, got := doJSON(t, app, "GET", "/api/v1/tasks/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "Task to Update", got["title"])

	// Partial update: only status changes; title and description survive.
	resp, updated := doJSON(t, app, "PUT", "/api/v1/tasks/"+id, token, map[string]any{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", updated["status"])
	assert.Equal(t, "Task to Update", updated["title"])
	assert.Equal(t, "Original description", updated["description"])
	assert.NotNil(t, updated["updated_at"])

	// Delete returns 204 with an empty body.
	resp, body := doJSON(t, app, "DELETE", "/api/v1/tasks/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Nil(t, body)

	// Gone afterwards.
	resp, body = doJSON(t, app, "GET", "/api/v1/tasks/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found", body["detail"])

	// Deleting again is a 404 too.
	resp, _ = doJSON(t, app, "DELETE", "/api/v1/tasks/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateTask_NotFound(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	resp, body := doJSON(t, app, "PUT", "/api/v1/tasks/99999999-9999-9999-9999-999999999999", token, map[string]any{
		"status": "completed",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found", body["detail"])
}

func TestGetTask_NotFound(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/api/v1/tasks/%s", "99999999-9999-9999-9999-999999999999"), token, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found", body["detail"])
}

func TestWelcomeAndHealth(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "GET", "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Welcome to the Task Management API!", body["message"])

	resp, body = doJSON(t, app, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}
