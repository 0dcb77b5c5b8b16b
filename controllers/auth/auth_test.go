package authController_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stockwatch/config"
	"stockwatch/models"
	authRoutes "stockwatch/routers/authRoutes"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	// low bcrypt cost keeps the test fast
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app, db)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp, env
}

const signupBody = `{"name": "Tester", "email": "tester@example.com", "password": "secret123"}`

func TestSignupAndLogin(t *testing.T) {
	app := setupApp(t)

	resp, env := post(t, app, "/api/users/signup", signupBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Status)

	resp, env = post(t, app, "/api/users/login", `{"email": "tester@example.com", "password": "secret123"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	_, _ = post(t, app, "/api/users/signup", signupBody)
	resp, env := post(t, app, "/api/users/signup", signupBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Status)
}

func TestSignupValidation(t *testing.T) {
	app := setupApp(t)

	resp, _ := post(t, app, "/api/users/signup", `{"name": "", "email": "bad", "password": "short"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	_, _ = post(t, app, "/api/users/signup", signupBody)
	resp, _ := post(t, app, "/api/users/login", `{"email": "tester@example.com", "password": "wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownEmail(t *testing.T) {
	app := setupApp(t)

	resp, _ := post(t, app, "/api/users/login", `{"email": "nobody@example.com", "password": "whatever1"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
