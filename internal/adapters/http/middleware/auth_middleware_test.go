package middleware

import (
	"net/http/httptest"
	"testing"

	"muni-votaciones/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appWithRole builds an app whose first middleware injects the given role
// into the locals, the way AuthMiddleware does after validating a token.
func appWithRole(rol domain.Role, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if rol != "" {
			c.Locals("rol", rol)
		}
		return c.Next()
	})
	app.Get("/", guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func guardStatus(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestMesaOperators(t *testing.T) {
	for _, rol := range []domain.Role{
		domain.RoleAdministrador,
		domain.RoleEncargado,
		domain.RoleDigitador,
		domain.RoleMinistroDeFe,
	} {
		t.Run(string(rol), func(t *testing.T) {
			app := appWithRole(rol, MesaOperators())
			assert.Equal(t, fiber.StatusOK, guardStatus(t, app))
		})
	}

	t.Run("missing role", func(t *testing.T) {
		app := appWithRole("", MesaOperators())
		assert.Equal(t, fiber.StatusUnauthorized, guardStatus(t, app))
	})
}

func TestAdminOnly(t *testing.T) {
	t.Run("administrador passes", func(t *testing.T) {
		app := appWithRole(domain.RoleAdministrador, AdminOnly())
		assert.Equal(t, fiber.StatusOK, guardStatus(t, app))
	})

	t.Run("digitador forbidden", func(t *testing.T) {
		app := appWithRole(domain.RoleDigitador, AdminOnly())
		assert.Equal(t, fiber.StatusForbidden, guardStatus(t, app))
	})

	t.Run("missing role", func(t *testing.T) {
		app := appWithRole("", AdminOnly())
		assert.Equal(t, fiber.StatusUnauthorized, guardStatus(t, app))
	})
}
