package handlers

import (
	"errors"
	"strings"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/core/services"
	"muni-votaciones/internal/pkg/response"
	"muni-votaciones/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogHandler handles the admin catalog endpoints: sedes, tipos de
// proyecto, sectores, proyectos and permisos. Catalog rows referenced by
// recorded votes or projects cannot be deleted.
type CatalogHandler struct {
	sedeRepo     repositories.SedeRepository
	tipoRepo     repositories.TipoProyectoRepository
	sectorRepo   repositories.SectorRepository
	proyectoRepo repositories.ProyectoRepository
	permisoRepo  repositories.PermisoRepository
	mesaRepo     repositories.MesaRepository
	userRepo     repositories.UserRepository
	permission   *services.PermissionService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	sedeRepo repositories.SedeRepository,
	tipoRepo repositories.TipoProyectoRepository,
	sectorRepo repositories.SectorRepository,
	proyectoRepo repositories.ProyectoRepository,
	permisoRepo repositories.PermisoRepository,
	mesaRepo repositories.MesaRepository,
	userRepo repositories.UserRepository,
	permission *services.PermissionService,
) *CatalogHandler {
	return &CatalogHandler{
		sedeRepo:     sedeRepo,
		tipoRepo:     tipoRepo,
		sectorRepo:   sectorRepo,
		proyectoRepo: proyectoRepo,
		permisoRepo:  permisoRepo,
		mesaRepo:     mesaRepo,
		userRepo:     userRepo,
		permission:   permission,
	}
}

// NombreRequest is the shared body of the name-only catalog entities
type NombreRequest struct {
	Nombre    string `json:"nombre" validate:"required,max=150"`
	Direccion string `json:"direccion" validate:"max=200"`
}

// ============================================================
// Sedes
// ============================================================

// ListSedes handles listing sedes
// @Summary List sedes
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /sedes [get]
func (h *CatalogHandler) ListSedes(c *fiber.Ctx) error {
	sedes, err := h.sedeRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list sedes")
	}
	return response.Success(c, "Sedes retrieved successfully", sedes)
}

// CreateSede handles sede creation
// @Summary Create sede
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NombreRequest true "Sede data"
// @Success 201 {object} response.Response
// @Router /sedes [post]
func (h *CatalogHandler) CreateSede(c *fiber.Ctx) error {
	var req NombreRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	sede := &models.Sede{Nombre: req.Nombre, Direccion: req.Direccion}
	if err := h.sedeRepo.Create(c.Context(), sede); err != nil {
		return response.InternalServerError(c, "Failed to create sede")
	}
	return response.Created(c, "Sede created successfully", sede)
}

// UpdateSede handles sede updates
// @Summary Update sede
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sede ID"
// @Param body body NombreRequest true "Sede data"
// @Success 200 {object} response.Response
// @Router /sedes/{id} [put]
func (h *CatalogHandler) UpdateSede(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid sede ID")
	}

	sede, err := h.sedeRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Sede not found")
		}
		return response.InternalServerError(c, "Failed to get sede")
	}

	var req NombreRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	sede.Nombre = req.Nombre
	sede.Direccion = req.Direccion
	if err := h.sedeRepo.Update(c.Context(), sede); err != nil {
		return response.InternalServerError(c, "Failed to update sede")
	}
	return response.Success(c, "Sede updated successfully", sede)
}

// DeleteSede handles sede deletion
// @Summary Delete sede
// @Description Delete a sede whose mesas hold no recorded votes
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sede ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /sedes/{id} [delete]
func (h *CatalogHandler) DeleteSede(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid sede ID")
	}

	if _, err := h.sedeRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Sede not found")
		}
		return response.InternalServerError(c, "Failed to get sede")
	}

	count, err := h.sedeRepo.CountVotos(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to check sede votes")
	}
	if count > 0 {
		return response.Conflict(c, "Sede has recorded votes and cannot be deleted")
	}

	if err := h.sedeRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete sede")
	}
	return response.Success(c, "Sede deleted successfully", nil)
}

// ============================================================
// Tipos de proyecto
// ============================================================

// ListTipos handles listing project types
// @Summary List tipos de proyecto
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /tipos-proyecto [get]
func (h *CatalogHandler) ListTipos(c *fiber.Ctx) error {
	tipos, err := h.tipoRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list project types")
	}
	return response.Success(c, "Project types retrieved successfully", tipos)
}

// CreateTipo handles project type creation
// @Summary Create tipo de proyecto
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NombreRequest true "Type data"
// @Success 201 {object} response.Response
// @Router /tipos-proyecto [post]
func (h *CatalogHandler) CreateTipo(c *fiber.Ctx) error {
	var req NombreRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	tipo := &models.TipoProyecto{Nombre: req.Nombre}
	if err := h.tipoRepo.Create(c.Context(), tipo); err != nil {
		return response.InternalServerError(c, "Failed to create project type")
	}
	return response.Created(c, "Project type created successfully", tipo)
}

// DeleteTipo handles project type deletion
// @Summary Delete tipo de proyecto
// @Description Delete a project type not referenced by any project
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Type ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tipos-proyecto/{id} [delete]
func (h *CatalogHandler) DeleteTipo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid type ID")
	}

	if _, err := h.tipoRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Project type not found")
		}
		return response.InternalServerError(c, "Failed to get project type")
	}

	count, err := h.tipoRepo.CountProyectos(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to check project type usage")
	}
	if count > 0 {
		return response.Conflict(c, "Project type is referenced by projects and cannot be deleted")
	}

	if err := h.tipoRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete project type")
	}
	return response.Success(c, "Project type deleted successfully", nil)
}

// ============================================================
// Sectores
// ============================================================

// ListSectores handles listing sectors
// @Summary List sectores
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /sectores [get]
func (h *CatalogHandler) ListSectores(c *fiber.Ctx) error {
	sectores, err := h.sectorRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list sectors")
	}
	return response.Success(c, "Sectors retrieved successfully", sectores)
}

// CreateSector handles sector creation
// @Summary Create sector
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NombreRequest true "Sector data"
// @Success 201 {object} response.Response
// @Router /sectores [post]
func (h *CatalogHandler) CreateSector(c *fiber.Ctx) error {
	var req NombreRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	sector := &models.Sector{Nombre: req.Nombre}
	if err := h.sectorRepo.Create(c.Context(), sector); err != nil {
		return response.InternalServerError(c, "Failed to create sector")
	}
	return response.Created(c, "Sector created successfully", sector)
}

// DeleteSector handles sector deletion
// @Summary Delete sector
// @Description Delete a sector not referenced by any project
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sector ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /sectores/{id} [delete]
func (h *CatalogHandler) DeleteSector(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid sector ID")
	}

	if _, err := h.sectorRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Sector not found")
		}
		return response.InternalServerError(c, "Failed to get sector")
	}

	count, err := h.sectorRepo.CountProyectos(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to check sector usage")
	}
	if count > 0 {
		return response.Conflict(c, "Sector is referenced by projects and cannot be deleted")
	}

	if err := h.sectorRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete sector")
	}
	return response.Success(c, "Sector deleted successfully", nil)
}

// ============================================================
// Proyectos
// ============================================================

// ProyectoRequest represents project create/update body
type ProyectoRequest struct {
	IDProyecto     string `json:"id_proyecto" validate:"required,max=20"`
	Nombre         string `json:"nombre" validate:"required,max=200"`
	Periodo        int    `json:"periodo" validate:"required,min=2000"`
	TipoProyectoID uint   `json:"tipo_proyecto_id" validate:"required"`
	SectorID       *uint  `json:"sector_id"`
}

// ListProyectos handles listing projects of a periodo
// @Summary List proyectos
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Router /proyectos [get]
func (h *CatalogHandler) ListProyectos(c *fiber.Ctx) error {
	periodo := c.QueryInt("periodo")
	if periodo < 2000 {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	proyectos, err := h.proyectoRepo.List(c.Context(), periodo)
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}
	return response.Success(c, "Projects retrieved successfully", proyectos)
}

// CreateProyecto handles project creation
// @Summary Create proyecto
// @Description Create a project; the code must be unique within the periodo
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProyectoRequest true "Project data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /proyectos [post]
func (h *CatalogHandler) CreateProyecto(c *fiber.Ctx) error {
	var req ProyectoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.IDProyecto = strings.TrimSpace(req.IDProyecto)
	req.Nombre = strings.TrimSpace(req.Nombre)
	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	if _, err := h.tipoRepo.GetByID(c.Context(), req.TipoProyectoID); err != nil {
		return response.BadRequest(c, "Project type not found")
	}
	if req.SectorID != nil {
		if _, err := h.sectorRepo.GetByID(c.Context(), *req.SectorID); err != nil {
			return response.BadRequest(c, "Sector not found")
		}
	}

	exists, err := h.proyectoRepo.ExistsByCodigo(c.Context(), req.IDProyecto, req.Periodo, 0)
	if err != nil {
		return response.InternalServerError(c, "Failed to check project code")
	}
	if exists {
		return response.Conflict(c, "Project code already exists in this periodo")
	}

	proyecto := &models.Proyecto{
		IDProyecto:     req.IDProyecto,
		Nombre:         req.Nombre,
		Periodo:        req.Periodo,
		TipoProyectoID: req.TipoProyectoID,
		SectorID:       req.SectorID,
	}
	if err := h.proyectoRepo.Create(c.Context(), proyecto); err != nil {
		return response.InternalServerError(c, "Failed to create project")
	}
	return response.Created(c, "Project created successfully", proyecto)
}

// UpdateProyecto handles project updates
// @Summary Update proyecto
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param body body ProyectoRequest true "Project data"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /proyectos/{id} [put]
func (h *CatalogHandler) UpdateProyecto(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	proyecto, err := h.proyectoRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to get project")
	}

	var req ProyectoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.IDProyecto = strings.TrimSpace(req.IDProyecto)
	req.Nombre = strings.TrimSpace(req.Nombre)
	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	exists, err := h.proyectoRepo.ExistsByCodigo(c.Context(), req.IDProyecto, req.Periodo, proyecto.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check project code")
	}
	if exists {
		return response.Conflict(c, "Project code already exists in this periodo")
	}

	proyecto.IDProyecto = req.IDProyecto
	proyecto.Nombre = req.Nombre
	proyecto.Periodo = req.Periodo
	proyecto.TipoProyectoID = req.TipoProyectoID
	proyecto.SectorID = req.SectorID
	if err := h.proyectoRepo.Update(c.Context(), proyecto); err != nil {
		return response.InternalServerError(c, "Failed to update project")
	}
	return response.Success(c, "Project updated successfully", proyecto)
}

// DeleteProyecto handles project deletion
// @Summary Delete proyecto
// @Description Delete a project without recorded votes
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /proyectos/{id} [delete]
func (h *CatalogHandler) DeleteProyecto(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	if _, err := h.proyectoRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to get project")
	}

	count, err := h.proyectoRepo.CountVotos(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to check project votes")
	}
	if count > 0 {
		return response.Conflict(c, "Project has recorded votes and cannot be deleted")
	}

	if err := h.proyectoRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete project")
	}
	return response.Success(c, "Project deleted successfully", nil)
}

// ============================================================
// Permisos
// ============================================================

// PermisoRequest represents permiso creation body
type PermisoRequest struct {
	Periodo int  `json:"periodo" validate:"required,min=2000"`
	SedeID  uint `json:"sede_id" validate:"required"`
	MesaID  uint `json:"mesa_id" validate:"required"`
	UserID  uint `json:"id_usuario" validate:"required"`
}

// ListPermisos handles listing permisos of a periodo
// @Summary List permisos
// @Description List grants of a periodo; scoped roles see only their own grants
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Router /permisos [get]
func (h *CatalogHandler) ListPermisos(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	periodo := c.QueryInt("periodo")
	if periodo < 2000 {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	permisos, err := h.permission.GrantsFor(c.Context(), actor, periodo)
	if err != nil {
		return response.InternalServerError(c, "Failed to list permisos")
	}
	return response.Success(c, "Permisos retrieved successfully", permisos)
}

// CreatePermiso handles granting a user access to a mesa
// @Summary Create permiso
// @Description Grant a user access to one mesa for a periodo
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PermisoRequest true "Permiso data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /permisos [post]
func (h *CatalogHandler) CreatePermiso(c *fiber.Ctx) error {
	var req PermisoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields, err := validation.Struct(&req); err != nil {
		return response.ValidationError(c, "Missing or invalid fields", fields)
	}

	if _, err := h.userRepo.GetByID(c.Context(), req.UserID); err != nil {
		return response.BadRequest(c, "User not found")
	}
	if _, err := h.sedeRepo.GetByID(c.Context(), req.SedeID); err != nil {
		return response.BadRequest(c, "Sede not found")
	}
	mesa, err := h.mesaRepo.GetByID(c.Context(), req.MesaID)
	if err != nil {
		return response.BadRequest(c, "Mesa not found")
	}
	if mesa.SedeID != req.SedeID {
		return response.BadRequest(c, "Mesa does not belong to the given sede")
	}

	exists, err := h.permisoRepo.Exists(c.Context(), req.Periodo, req.SedeID, req.MesaID, req.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check permiso")
	}
	if exists {
		return response.Conflict(c, "Permiso already exists")
	}

	permiso := &models.Permiso{
		Periodo: req.Periodo,
		SedeID:  req.SedeID,
		MesaID:  req.MesaID,
		UserID:  req.UserID,
	}
	if err := h.permisoRepo.Create(c.Context(), permiso); err != nil {
		return response.InternalServerError(c, "Failed to create permiso")
	}
	return response.Created(c, "Permiso created successfully", permiso)
}

// DeletePermiso handles revoking a permiso
// @Summary Delete permiso
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Permiso ID"
// @Success 200 {object} response.Response
// @Router /permisos/{id} [delete]
func (h *CatalogHandler) DeletePermiso(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid permiso ID")
	}

	if _, err := h.permisoRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Permiso not found")
		}
		return response.InternalServerError(c, "Failed to get permiso")
	}

	if err := h.permisoRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete permiso")
	}
	return response.Success(c, "Permiso deleted successfully", nil)
}
