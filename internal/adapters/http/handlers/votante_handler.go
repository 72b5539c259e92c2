package handlers

import (
	"errors"
	"strings"

	"muni-votaciones/internal/core/domain"
	"muni-votaciones/internal/core/services"
	"muni-votaciones/internal/pkg/response"
	"muni-votaciones/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// VotanteHandler handles voter registration endpoints
type VotanteHandler struct {
	votanteService *services.VotanteService
}

// NewVotanteHandler creates a new votante handler
func NewVotanteHandler(votanteService *services.VotanteService) *VotanteHandler {
	return &VotanteHandler{votanteService: votanteService}
}

// Register handles voter registration
// @Summary Register voter
// @Description Register one voter against an open mesa
// @Tags Votantes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterVotanteInput true "Voter data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /votantes [post]
func (h *VotanteHandler) Register(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.RegisterVotanteInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Rut = strings.TrimSpace(req.Rut)
	req.Nombre = strings.TrimSpace(req.Nombre)

	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	votante, err := h.votanteService.Register(c.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleCannotRegister):
			return response.Forbidden(c, "Role cannot register voters")
		case errors.Is(err, domain.ErrNoPermiso):
			return response.Forbidden(c, "No permission for this mesa")
		case errors.Is(err, domain.ErrMesaNotFound):
			return response.NotFound(c, "Mesa not found in this periodo")
		case errors.Is(err, domain.ErrMesaCerrada):
			return response.Conflict(c, "Mesa is closed")
		case errors.Is(err, domain.ErrDuplicateRut):
			return response.Conflict(c, "Rut already registered in this periodo")
		default:
			return response.InternalServerError(c, "Failed to register voter")
		}
	}

	return response.Created(c, "Voter registered successfully", votante)
}

// ListByMesa handles listing the voters of a mesa
// @Summary List voters of a mesa
// @Description Voters registered on one mesa
// @Tags Votantes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mesa_id query int true "Mesa ID"
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /votantes [get]
func (h *VotanteHandler) ListByMesa(c *fiber.Ctx) error {
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

	votantes, err := h.votanteService.ListByMesa(c.Context(), actor, uint(mesaID), periodo)
	if err != nil {
		if errors.Is(err, domain.ErrNoPermiso) {
			return response.Forbidden(c, "No permission for this mesa")
		}
		return response.InternalServerError(c, "Failed to list voters")
	}

	return response.Success(c, "Voters retrieved successfully", votantes)
}
