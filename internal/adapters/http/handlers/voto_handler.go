package handlers

import (
	"errors"

	"muni-votaciones/internal/core/domain"
	"muni-votaciones/internal/core/services"
	"muni-votaciones/internal/pkg/response"
	"muni-votaciones/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// VotoHandler handles vote registration endpoints
type VotoHandler struct {
	votoService *services.VotoService
}

// NewVotoHandler creates a new voto handler
func NewVotoHandler(votoService *services.VotoService) *VotoHandler {
	return &VotoHandler{votoService: votoService}
}

// Register handles a vote totals submission
// @Summary Register vote totals
// @Description Submit the desired per-bucket totals of a mesa; the mesa closes on success
// @Tags Votos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterTotalsInput true "Desired totals"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /votos [post]
func (h *VotoHandler) Register(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.RegisterTotalsInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	result, err := h.votoService.RegisterTotals(c.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleCannotVote):
			return response.Forbidden(c, "Role cannot register votes")
		case errors.Is(err, domain.ErrNoPermiso):
			return response.Forbidden(c, "No permission for this mesa")
		case errors.Is(err, domain.ErrMesaNotFound):
			return response.NotFound(c, "Mesa not found in this periodo")
		case errors.Is(err, domain.ErrMesaCerrada):
			return response.Conflict(c, "Mesa is already closed")
		case errors.Is(err, services.ErrConcurrentRegistration):
			return response.Conflict(c, "Mesa was closed by a concurrent registration")
		case errors.Is(err, domain.ErrProyectoNotFound):
			return response.BadRequest(c, "Unknown id_proyecto for this periodo")
		case errors.Is(err, domain.ErrInvalidTipoVoto):
			return response.BadRequest(c, "Invalid tipo_voto")
		case errors.Is(err, domain.ErrNegativeTotal):
			return response.BadRequest(c, "Vote totals must be non-negative")
		case errors.Is(err, services.ErrDuplicateBucket):
			return response.BadRequest(c, "Duplicate bucket in request")
		default:
			return response.InternalServerError(c, "Failed to register votes")
		}
	}

	return response.Success(c, "Votes registered and mesa closed", result)
}

// Counts handles reading the persisted tally of a mesa
// @Summary Get mesa vote counts
// @Description Per-bucket persisted tally of a mesa
// @Tags Votos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mesa_id query int true "Mesa ID"
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /votos [get]
func (h *VotoHandler) Counts(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	mesaID := c.QueryInt("mesa_id")
	if mesaID < 1 {
		return response.BadRequest(c, "Valid mesa_id query parameter is required")
	}
	periodo := c.QueryInt("periodo")
	if periodo < 2000 {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	counts, err := h.votoService.GetCounts(c.Context(), actor, uint(mesaID), periodo)
	if err != nil {
		if errors.Is(err, domain.ErrNoPermiso) {
			return response.Forbidden(c, "No permission for this mesa")
		}
		return response.InternalServerError(c, "Failed to get vote counts")
	}

	return response.Success(c, "Vote counts retrieved successfully", counts)
}
