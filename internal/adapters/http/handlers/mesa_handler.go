package handlers

import (
	"errors"

	"muni-votaciones/internal/core/domain"
	"muni-votaciones/internal/core/services"
	"muni-votaciones/internal/pkg/response"
	"muni-votaciones/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// MesaHandler handles mesa endpoints
type MesaHandler struct {
	mesaService *services.MesaService
}

// NewMesaHandler creates a new mesa handler
func NewMesaHandler(mesaService *services.MesaService) *MesaHandler {
	return &MesaHandler{mesaService: mesaService}
}

// EstadoRequest represents the open/close request body
type EstadoRequest struct {
	Abierta *bool `json:"abierta" validate:"required"`
}

// List handles listing mesas for a periodo
// @Summary List mesas
// @Description List the mesas of a periodo visible to the caller, with live counters
// @Tags Mesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Router /mesas [get]
func (h *MesaHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	periodo := c.QueryInt("periodo")
	if periodo < 2000 {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	mesas, err := h.mesaService.ListForActor(c.Context(), actor, periodo)
	if err != nil {
		return response.InternalServerError(c, "Failed to list mesas")
	}

	return response.Success(c, "Mesas retrieved successfully", mesas)
}

// UserPermissions handles listing the mesas the caller may operate
// @Summary List accessible mesas
// @Description List the mesas of a periodo the caller may operate, each with live voto and votante counters
// @Tags Mesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Router /mesas/user-permissions [get]
func (h *MesaHandler) UserPermissions(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	periodo := c.QueryInt("periodo")
	if periodo < 2000 {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	mesas, err := h.mesaService.ListForActor(c.Context(), actor, periodo)
	if err != nil {
		return response.InternalServerError(c, "Failed to list accessible mesas")
	}

	return response.Success(c, "Accessible mesas retrieved successfully", mesas)
}

// Create handles mesa creation
// @Summary Create mesa
// @Description Create a mesa in a sede; new mesas start Abierta
// @Tags Mesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMesaInput true "Mesa data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /mesas [post]
func (h *MesaHandler) Create(c *fiber.Ctx) error {
	var req services.CreateMesaInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	mesa, err := h.mesaService.CreateMesa(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrSedeNotFound) {
			return response.BadRequest(c, "Sede not found")
		}
		return response.InternalServerError(c, "Failed to create mesa")
	}

	return response.Created(c, "Mesa created successfully", mesa)
}

// Update handles mesa updates
// @Summary Update mesa
// @Description Update mesa name or sede
// @Tags Mesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mesa ID"
// @Param body body services.UpdateMesaInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mesas/{id} [put]
func (h *MesaHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid mesa ID")
	}

	var req services.UpdateMesaInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	mesa, err := h.mesaService.UpdateMesa(c.Context(), uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMesaNotFound):
			return response.NotFound(c, "Mesa not found")
		case errors.Is(err, domain.ErrSedeNotFound):
			return response.BadRequest(c, "Sede not found")
		default:
			return response.InternalServerError(c, "Failed to update mesa")
		}
	}

	return response.Success(c, "Mesa updated successfully", mesa)
}

// Delete handles mesa deletion
// @Summary Delete mesa
// @Description Delete a mesa without recorded votes
// @Tags Mesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mesa ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /mesas/{id} [delete]
func (h *MesaHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid mesa ID")
	}

	if err := h.mesaService.DeleteMesa(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrMesaNotFound):
			return response.NotFound(c, "Mesa not found")
		case errors.Is(err, domain.ErrMesaHasVotes):
			return response.Conflict(c, "Mesa has recorded votes and cannot be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete mesa")
		}
	}

	return response.Success(c, "Mesa deleted successfully", nil)
}

// SetEstado handles opening and closing a mesa
// @Summary Open or close mesa
// @Description Toggle a mesa between Abierta and Cerrada
// @Tags Mesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mesa ID"
// @Param body body EstadoRequest true "Desired state"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mesas/{id}/estado [put]
func (h *MesaHandler) SetEstado(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid mesa ID")
	}

	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req EstadoRequest
	if err := c.BodyParser(&req); err != nil || req.Abierta == nil {
		return response.BadRequest(c, "Field 'abierta' is required")
	}

	mesa, err := h.mesaService.SetEstado(c.Context(), actor, uint(id), *req.Abierta)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMesaNotFound):
			return response.NotFound(c, "Mesa not found")
		case errors.Is(err, services.ErrRoleCannotToggle):
			return response.Forbidden(c, "Role cannot change mesa state")
		case errors.Is(err, domain.ErrNoPermiso):
			return response.Forbidden(c, "No permission for this mesa")
		default:
			return response.InternalServerError(c, "Failed to change mesa state")
		}
	}

	estado := domain.EstadoCerrada
	if mesa.EstadoMesa {
		estado = domain.EstadoAbierta
	}
	return response.Success(c, "Mesa state updated", fiber.Map{
		"mesa":   mesa,
		"estado": estado,
	})
}
