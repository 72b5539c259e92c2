package services

import (
	"context"
	"errors"
	"time"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/core/domain"
)

// ErrRoleCannotRegister rejects voter registration from roles without
// the capability. Everything else reuses the domain sentinels.
var ErrRoleCannotRegister = errors.New("role cannot register voters")

// VotanteService handles voter (headcount) registration. Votantes are a
// reconciliation reference; they never gate how many ballots a mesa takes.
type VotanteService struct {
	votanteRepo repositories.VotanteRepository
	mesaSvc     *MesaService
	permission  *PermissionService
}

// NewVotanteService creates a new votante service
func NewVotanteService(
	votanteRepo repositories.VotanteRepository,
	mesaSvc *MesaService,
	permission *PermissionService,
) *VotanteService {
	return &VotanteService{
		votanteRepo: votanteRepo,
		mesaSvc:     mesaSvc,
		permission:  permission,
	}
}

// RegisterVotanteInput represents voter registration input. Rut holds the
// national ID, or a free-text identifier for foreign voters.
type RegisterVotanteInput struct {
	MesaID          uint       `json:"mesa_id" validate:"required"`
	Periodo         int        `json:"periodo" validate:"required,min=2000"`
	Rut             string     `json:"rut" validate:"required,max=20"`
	Nombre          string     `json:"nombre" validate:"required,max=150"`
	Direccion       string     `json:"direccion" validate:"max=200"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
}

// Register registers one voter against an open mesa. The rut must be
// unique within the periodo (the same rut may re-appear in another year).
func (s *VotanteService) Register(ctx context.Context, actor Actor, input *RegisterVotanteInput) (*models.Votante, error) {
	if !actor.Rol.CanRegisterVotantes() {
		return nil, ErrRoleCannotRegister
	}

	allowed, err := s.permission.CanActOnMesa(ctx, actor, input.Periodo, input.MesaID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrNoPermiso
	}

	// Mesa must be Abierta: closed mesas take no more registrations.
	if _, err := s.mesaSvc.RequireAbierta(ctx, input.MesaID, input.Periodo); err != nil {
		return nil, err
	}

	exists, err := s.votanteRepo.ExistsByRut(ctx, input.Rut, input.Periodo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateRut
	}

	votante := &models.Votante{
		MesaID:          input.MesaID,
		Periodo:         input.Periodo,
		Rut:             input.Rut,
		Nombre:          input.Nombre,
		Direccion:       input.Direccion,
		FechaNacimiento: input.FechaNacimiento,
	}
	if err := s.votanteRepo.Create(ctx, votante); err != nil {
		return nil, err
	}

	return votante, nil
}

// ListByMesa lists the voters registered on a mesa; scoped roles only
// see mesas they hold a permiso for.
func (s *VotanteService) ListByMesa(ctx context.Context, actor Actor, mesaID uint, periodo int) ([]*models.Votante, error) {
	allowed, err := s.permission.CanActOnMesa(ctx, actor, periodo, mesaID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrNoPermiso
	}

	return s.votanteRepo.ListByMesa(ctx, mesaID, periodo)
}
