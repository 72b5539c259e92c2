package services

import (
	"context"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/core/domain"
)

// Actor is the authenticated identity a request acts as. Handlers build
// it from the verified token claims.
type Actor struct {
	UserID uint
	Rol    domain.Role
}

// PermissionService is the single place permiso scoping is decided.
// Role capabilities live on domain.Role; this service combines them
// with the stored permiso grants.
type PermissionService struct {
	permisoRepo repositories.PermisoRepository
}

// NewPermissionService creates a new permission service
func NewPermissionService(permisoRepo repositories.PermisoRepository) *PermissionService {
	return &PermissionService{permisoRepo: permisoRepo}
}

// CanActOnMesa reports whether the actor may touch the given mesa in the
// periodo. Administrador is unscoped; every other role needs a permiso
// grant for that exact mesa.
func (s *PermissionService) CanActOnMesa(ctx context.Context, actor Actor, periodo int, mesaID uint) (bool, error) {
	if !actor.Rol.IsValid() {
		return false, nil
	}
	if !actor.Rol.ScopedByPermiso() {
		return true, nil
	}
	return s.permisoRepo.HasMesaGrant(ctx, periodo, mesaID, actor.UserID)
}

// StatisticsScoped reports whether statistics for the actor must be
// narrowed to permiso-granted mesas.
func (s *PermissionService) StatisticsScoped(actor Actor) bool {
	return actor.Rol.ScopedByPermiso()
}

// GrantsFor returns the permiso grants visible to the actor in a
// periodo. Scoped roles see only their own grants; Administrador sees
// every grant of the periodo.
func (s *PermissionService) GrantsFor(ctx context.Context, actor Actor, periodo int) ([]*models.Permiso, error) {
	if actor.Rol.ScopedByPermiso() {
		return s.permisoRepo.ListByUser(ctx, periodo, actor.UserID)
	}
	return s.permisoRepo.List(ctx, periodo)
}
