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

// Voto service errors. Validation and lookup failures reuse the domain
// sentinels; these cover what only this write path can detect.
var (
	ErrRoleCannotVote         = errors.New("role cannot register votes")
	ErrDuplicateBucket        = errors.New("duplicate bucket in request")
	ErrConcurrentRegistration = errors.New("mesa was closed by a concurrent registration")
)

// VotoService owns the vote tabulation write path. The client submits
// the desired total per bucket and the server re-derives the signed
// delta against the persisted counts, applying it inside one
// transaction that also closes the mesa. Accepting raw deltas from the
// client is exactly the kind of trust this service exists to remove.
type VotoService struct {
	db         *gorm.DB
	votoRepo   repositories.VotoRepository
	mesaSvc    *MesaService
	permission *PermissionService
}

// NewVotoService creates a new voto service
func NewVotoService(
	db *gorm.DB,
	votoRepo repositories.VotoRepository,
	mesaSvc *MesaService,
	permission *PermissionService,
) *VotoService {
	return &VotoService{
		db:         db,
		votoRepo:   votoRepo,
		mesaSvc:    mesaSvc,
		permission: permission,
	}
}

// BucketTotal is one entry of the registration payload: the desired
// total for a project code, or for the Blanco/Nulo buckets.
type BucketTotal struct {
	IDProyecto string `json:"id_proyecto,omitempty"`
	TipoVoto   string `json:"tipo_voto" validate:"required"`
	Total      int    `json:"cantidad"`
}

// RegisterTotalsInput represents the vote registration input
type RegisterTotalsInput struct {
	Periodo int           `json:"periodo" validate:"required,min=2000"`
	MesaID  uint          `json:"id_mesa" validate:"required"`
	Votos   []BucketTotal `json:"votos" validate:"required,min=1,dive"`
}

// RegisterTotalsOutput summarizes what a registration batch changed
type RegisterTotalsOutput struct {
	Inserted   int  `json:"inserted"`
	Deleted    int  `json:"deleted"`
	MesaCerrada bool `json:"mesa_cerrada"`
}

// RegisterTotals reconciles the desired totals against the persisted
// ballot rows of the mesa and closes it. The full read-count, apply
// delta, close sequence runs in a single transaction so two concurrent
// submissions for one mesa cannot double-apply; the loser fails on the
// guarded close and rolls back.
func (s *VotoService) RegisterTotals(ctx context.Context, actor Actor, input *RegisterTotalsInput) (*RegisterTotalsOutput, error) {
	if !actor.Rol.CanRegisterVotes() {
		return nil, ErrRoleCannotVote
	}

	allowed, err := s.permission.CanActOnMesa(ctx, actor, input.Periodo, input.MesaID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrNoPermiso
	}

	out := &RegisterTotalsOutput{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Mesa must exist in the periodo and still be Abierta.
		var mesa models.Mesa
		if err := tx.Where("id = ? AND periodo = ?", input.MesaID, input.Periodo).First(&mesa).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMesaNotFound
			}
			return err
		}
		if !mesa.EstadoMesa {
			return domain.ErrMesaCerrada
		}

		// 2. Resolve every bucket up front. Unknown project codes are
		// rejected, not skipped.
		buckets, err := s.resolveBuckets(tx, input)
		if err != nil {
			return err
		}

		// 3. Apply the signed delta per bucket.
		for _, b := range buckets {
			current, err := s.currentCount(tx, input.MesaID, input.Periodo, b)
			if err != nil {
				return err
			}

			delta := int64(b.total) - current
			switch {
			case delta > 0:
				if err := s.insertBallots(tx, input.MesaID, input.Periodo, b, delta); err != nil {
					return err
				}
				out.Inserted += int(delta)
			case delta < 0:
				if err := s.deleteBallots(tx, input.MesaID, input.Periodo, b, -delta); err != nil {
					return err
				}
				out.Deleted += int(-delta)
			}
		}

		// 4. Close the mesa as an explicit final step. The guard on
		// estado_mesa makes concurrent batches mutually exclusive: the
		// second writer finds the mesa already Cerrada and rolls back.
		res := tx.Model(&models.Mesa{}).
			Where("id = ? AND estado_mesa = ?", mesa.ID, true).
			Update("estado_mesa", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentRegistration
		}
		out.MesaCerrada = true

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🗳️ Mesa %d periodo %d: +%d/-%d votos, mesa cerrada [user %d]",
		input.MesaID, input.Periodo, out.Inserted, out.Deleted, actor.UserID)

	return out, nil
}

// resolvedBucket is a validated payload entry with its project row resolved.
type resolvedBucket struct {
	tipo       domain.TipoVoto
	proyectoID *uint
	total      int
}

// resolveBuckets validates the payload and resolves project codes within
// the periodo. Each bucket may appear at most once.
func (s *VotoService) resolveBuckets(tx *gorm.DB, input *RegisterTotalsInput) ([]resolvedBucket, error) {
	seen := make(map[string]bool, len(input.Votos))
	buckets := make([]resolvedBucket, 0, len(input.Votos))

	for _, v := range input.Votos {
		tipo := domain.TipoVoto(v.TipoVoto)
		if !tipo.IsValid() {
			return nil, domain.ErrInvalidTipoVoto
		}
		if v.Total < 0 {
			return nil, domain.ErrNegativeTotal
		}

		key := string(tipo)
		var proyectoID *uint
		if tipo == domain.VotoNormal {
			if v.IDProyecto == "" {
				return nil, domain.ErrProyectoNotFound
			}
			var proyecto models.Proyecto
			err := tx.Where("id_proyecto = ? AND periodo = ?", v.IDProyecto, input.Periodo).First(&proyecto).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, domain.ErrProyectoNotFound
				}
				return nil, err
			}
			proyectoID = &proyecto.ID
			key = "Normal:" + v.IDProyecto
		}

		if seen[key] {
			return nil, ErrDuplicateBucket
		}
		seen[key] = true

		buckets = append(buckets, resolvedBucket{tipo: tipo, proyectoID: proyectoID, total: v.Total})
	}

	return buckets, nil
}

// currentCount counts the persisted ballots of one bucket.
func (s *VotoService) currentCount(tx *gorm.DB, mesaID uint, periodo int, b resolvedBucket) (int64, error) {
	query := tx.Model(&models.Voto{}).
		Where("mesa_id = ? AND periodo = ? AND tipo_voto = ?", mesaID, periodo, string(b.tipo))
	if b.proyectoID != nil {
		query = query.Where("proyecto_id = ?", *b.proyectoID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// insertBallots inserts delta ballot rows for the bucket.
func (s *VotoService) insertBallots(tx *gorm.DB, mesaID uint, periodo int, b resolvedBucket, delta int64) error {
	votos := make([]models.Voto, delta)
	for i := range votos {
		votos[i] = models.Voto{
			Periodo:    periodo,
			MesaID:     mesaID,
			TipoVoto:   string(b.tipo),
			ProyectoID: b.proyectoID,
		}
	}
	return tx.Create(&votos).Error
}

// deleteBallots removes the newest |delta| ballot rows of the bucket so
// a corrected-down total is honored instead of silently ignored.
func (s *VotoService) deleteBallots(tx *gorm.DB, mesaID uint, periodo int, b resolvedBucket, delta int64) error {
	query := tx.Model(&models.Voto{}).
		Where("mesa_id = ? AND periodo = ? AND tipo_voto = ?", mesaID, periodo, string(b.tipo))
	if b.proyectoID != nil {
		query = query.Where("proyecto_id = ?", *b.proyectoID)
	}

	var ids []uint
	if err := query.Order("id DESC").Limit(int(delta)).Pluck("id", &ids).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Voto{}, ids).Error
}

// GetCounts returns the persisted per-bucket tally of a mesa. Scoped
// roles only see mesas they hold a permiso for.
func (s *VotoService) GetCounts(ctx context.Context, actor Actor, mesaID uint, periodo int) ([]*repositories.BucketCount, error) {
	allowed, err := s.permission.CanActOnMesa(ctx, actor, periodo, mesaID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrNoPermiso
	}

	return s.votoRepo.CountsByMesa(ctx, mesaID, periodo)
}
