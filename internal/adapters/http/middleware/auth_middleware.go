package middleware

import (
	"strings"

	"muni-votaciones/internal/config"
	"muni-votaciones/internal/core/domain"
	"muni-votaciones/internal/pkg/jwt"
	"muni-votaciones/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the Bearer access token and loads the caller's
// identity into the request locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "Access token required")
		}
		accessToken := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		rol, ok := domain.ParseRole(claims.Rol)
		if !ok {
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("usuario", claims.Usuario)
		c.Locals("nombre", claims.Nombre)
		c.Locals("email", claims.Email)
		c.Locals("rol", rol)

		return c.Next()
	}
}

// RoleMiddleware restricts a route to the given roles
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, ok := c.Locals("rol").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if rol == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only Administrador
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdministrador)
}

// MesaOperators allows the roles that work against mesas: vote and voter
// registration plus statistics reads.
func MesaOperators() fiber.Handler {
	return RoleMiddleware(
		domain.RoleAdministrador,
		domain.RoleEncargado,
		domain.RoleDigitador,
		domain.RoleMinistroDeFe,
	)
}
