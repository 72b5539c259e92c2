package routes

import (
	"net/http/httptest"
	"testing"

	"muni-votaciones/internal/config"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenHours: 12,
			RefreshTokenDays: 7,
		},
	}
	config.AppConfig = cfg

	app := fiber.New()
	Setup(app, db, cfg)
	return app
}

// statusOf sends an unauthenticated request and returns the status code.
// 404 means the path is not registered; 401 means it exists behind auth.
func statusOf(t *testing.T, app *fiber.App, method, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRegisteredPaths(t *testing.T) {
	app := setupApp(t)

	cases := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/auth/login"},
		{"POST", "/api/v1/auth/verify"},
		{"POST", "/api/v1/auth/refresh"},
		{"POST", "/api/v1/auth/logout"},
		{"GET", "/api/v1/auth/me"},
		{"GET", "/api/v1/mesas?periodo=2025"},
		{"GET", "/api/v1/mesas/user-permissions?periodo=2025"},
		{"PUT", "/api/v1/mesas/1/estado"},
		{"GET", "/api/v1/votos?mesa_id=1&periodo=2025"},
		{"POST", "/api/v1/votos"},
		{"GET", "/api/v1/votantes?mesa_id=1&periodo=2025"},
		{"POST", "/api/v1/votantes"},
		{"GET", "/api/v1/statistics?periodo=2025"},
		{"GET", "/api/v1/statistics/detailed?periodo=2025"},
		{"GET", "/api/v1/statistics/winners?periodo=2025"},
		{"GET", "/api/v1/statistics/polling-places?periodo=2025"},
		{"GET", "/api/v1/statistics/mesa-status?periodo=2025"},
		{"GET", "/api/v1/statistics/export?periodo=2025"},
		{"GET", "/api/v1/sedes"},
		{"GET", "/api/v1/tipos-proyecto"},
		{"GET", "/api/v1/sectores"},
		{"GET", "/api/v1/proyectos?periodo=2025"},
		{"GET", "/api/v1/permisos?periodo=2025"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			assert.NotEqual(t, fiber.StatusNotFound, statusOf(t, app, tc.method, tc.path))
		})
	}
}

func TestPublicPaths(t *testing.T) {
	app := setupApp(t)

	assert.Equal(t, fiber.StatusOK, statusOf(t, app, "GET", "/"))
	assert.Equal(t, fiber.StatusOK, statusOf(t, app, "GET", "/health"))
}
