package services

import (
	"context"
	"errors"
	"log"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/core/domain"

	"gorm.io/gorm"
)

// ErrRoleCannotToggle rejects estado changes from roles without the
// capability. Lookup and guard failures reuse the domain sentinels.
var ErrRoleCannotToggle = errors.New("role cannot change mesa state")

// MesaService handles mesa management and the open/close lifecycle
type MesaService struct {
	mesaRepo   repositories.MesaRepository
	sedeRepo   repositories.SedeRepository
	permission *PermissionService
}

// NewMesaService creates a new mesa service
func NewMesaService(
	mesaRepo repositories.MesaRepository,
	sedeRepo repositories.SedeRepository,
	permission *PermissionService,
) *MesaService {
	return &MesaService{
		mesaRepo:   mesaRepo,
		sedeRepo:   sedeRepo,
		permission: permission,
	}
}

// CreateMesaInput represents mesa creation input
type CreateMesaInput struct {
	Nombre  string `json:"nombre" validate:"required,max=100"`
	SedeID  uint   `json:"sede_id" validate:"required"`
	Periodo int    `json:"periodo" validate:"required,min=2000"`
}

// UpdateMesaInput represents mesa update input
type UpdateMesaInput struct {
	Nombre *string `json:"nombre"`
	SedeID *uint   `json:"sede_id"`
}

// CreateMesa creates a mesa; new mesas always start Abierta
func (s *MesaService) CreateMesa(ctx context.Context, input *CreateMesaInput) (*models.Mesa, error) {
	if _, err := s.sedeRepo.GetByID(ctx, input.SedeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSedeNotFound
		}
		return nil, err
	}

	mesa := &models.Mesa{
		Nombre:  input.Nombre,
		SedeID:  input.SedeID,
		Periodo: input.Periodo,
	}
	if err := s.mesaRepo.Create(ctx, mesa); err != nil {
		return nil, err
	}
	return mesa, nil
}

// GetMesa gets a mesa by ID
func (s *MesaService) GetMesa(ctx context.Context, id uint) (*models.Mesa, error) {
	mesa, err := s.mesaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMesaNotFound
		}
		return nil, err
	}
	return mesa, nil
}

// UpdateMesa updates mesa name/sede
func (s *MesaService) UpdateMesa(ctx context.Context, id uint, input *UpdateMesaInput) (*models.Mesa, error) {
	mesa, err := s.GetMesa(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		mesa.Nombre = *input.Nombre
	}
	if input.SedeID != nil {
		if _, err := s.sedeRepo.GetByID(ctx, *input.SedeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrSedeNotFound
			}
			return nil, err
		}
		mesa.SedeID = *input.SedeID
	}

	if err := s.mesaRepo.Update(ctx, mesa); err != nil {
		return nil, err
	}
	return mesa, nil
}

// DeleteMesa deletes a mesa unless it has recorded votes
func (s *MesaService) DeleteMesa(ctx context.Context, id uint) error {
	if _, err := s.GetMesa(ctx, id); err != nil {
		return err
	}

	count, err := s.mesaRepo.CountVotos(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrMesaHasVotes
	}

	return s.mesaRepo.Delete(ctx, id)
}

// ListForActor lists the mesas of a periodo the actor may see, each
// annotated with live voto/votante counters.
func (s *MesaService) ListForActor(ctx context.Context, actor Actor, periodo int) ([]*models.MesaResponse, error) {
	scoped := actor.Rol.ScopedByPermiso()
	return s.mesaRepo.ListScoped(ctx, periodo, actor.UserID, scoped)
}

// SetEstado toggles the mesa between Abierta (true) and Cerrada (false).
// Only Encargado de Local and Administrador may toggle, and scoped roles
// additionally need a permiso on the mesa. Re-opening a Cerrada mesa is
// allowed; its votes drop out of statistics until it closes again.
func (s *MesaService) SetEstado(ctx context.Context, actor Actor, mesaID uint, abierta bool) (*models.Mesa, error) {
	mesa, err := s.GetMesa(ctx, mesaID)
	if err != nil {
		return nil, err
	}

	if !actor.Rol.CanChangeMesaState() {
		return nil, ErrRoleCannotToggle
	}

	allowed, err := s.permission.CanActOnMesa(ctx, actor, mesa.Periodo, mesa.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrNoPermiso
	}

	if mesa.EstadoMesa == abierta {
		return mesa, nil // Already in the requested state
	}

	if err := s.mesaRepo.SetEstado(ctx, mesa.ID, abierta); err != nil {
		return nil, err
	}
	mesa.EstadoMesa = abierta

	estado := "Cerrada"
	if abierta {
		estado = "Abierta"
	}
	log.Printf("🔄 Mesa %d (%s) -> %s [user %d]", mesa.ID, mesa.Nombre, estado, actor.UserID)

	return mesa, nil
}

// RequireAbierta loads a mesa within a periodo and fails unless it is open.
func (s *MesaService) RequireAbierta(ctx context.Context, mesaID uint, periodo int) (*models.Mesa, error) {
	mesa, err := s.mesaRepo.GetByIDAndPeriodo(ctx, mesaID, periodo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMesaNotFound
		}
		return nil, err
	}
	if !mesa.EstadoMesa {
		return nil, domain.ErrMesaCerrada
	}
	return mesa, nil
}
