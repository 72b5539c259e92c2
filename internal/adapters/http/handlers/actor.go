package handlers

import (
	"muni-votaciones/internal/core/domain"
	"muni-votaciones/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// actorFrom rebuilds the caller identity from the locals set by the auth
// middleware. The bool is false when the route is not behind auth.
func actorFrom(c *fiber.Ctx) (services.Actor, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return services.Actor{}, false
	}
	rol, ok := c.Locals("rol").(domain.Role)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{UserID: userID, Rol: rol}, true
}
