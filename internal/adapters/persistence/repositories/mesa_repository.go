package repositories

import (
	"context"

	"muni-votaciones/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// mesaRepository implements MesaRepository interface
type mesaRepository struct {
	db *gorm.DB
}

// NewMesaRepository creates a new mesa repository
func NewMesaRepository(db *gorm.DB) MesaRepository {
	return &mesaRepository{db: db}
}

// Create creates a new mesa (always Abierta)
func (r *mesaRepository) Create(ctx context.Context, mesa *models.Mesa) error {
	mesa.EstadoMesa = true
	return r.db.WithContext(ctx).Create(mesa).Error
}

// GetByID gets a mesa by ID
func (r *mesaRepository) GetByID(ctx context.Context, id uint) (*models.Mesa, error) {
	var mesa models.Mesa
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&mesa).Error
	if err != nil {
		return nil, err
	}
	return &mesa, nil
}

// GetByIDAndPeriodo gets a mesa by ID restricted to a periodo
func (r *mesaRepository) GetByIDAndPeriodo(ctx context.Context, id uint, periodo int) (*models.Mesa, error) {
	var mesa models.Mesa
	err := r.db.WithContext(ctx).
		Where("id = ? AND periodo = ?", id, periodo).
		First(&mesa).Error
	if err != nil {
		return nil, err
	}
	return &mesa, nil
}

// Update updates a mesa
func (r *mesaRepository) Update(ctx context.Context, mesa *models.Mesa) error {
	return r.db.WithContext(ctx).Save(mesa).Error
}

// Delete deletes a mesa
func (r *mesaRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Mesa{}, id).Error
}

// ListScoped lists mesas of a periodo annotated with live counters.
// With scoped=true only mesas the user holds a permiso for are included.
func (r *mesaRepository) ListScoped(ctx context.Context, periodo int, userID uint, scoped bool) ([]*models.MesaResponse, error) {
	var mesas []*models.MesaResponse

	query := r.db.WithContext(ctx).
		Table("mesas").
		Select(`mesas.id, mesas.nombre, mesas.sede_id, sedes.nombre AS sede_nombre,
			mesas.periodo, mesas.estado_mesa,
			(SELECT COUNT(*) FROM votos WHERE votos.mesa_id = mesas.id AND votos.periodo = mesas.periodo) AS votos_count,
			(SELECT COUNT(*) FROM votantes WHERE votantes.mesa_id = mesas.id AND votantes.periodo = mesas.periodo) AS votantes_count`).
		Joins("JOIN sedes ON sedes.id = mesas.sede_id").
		Where("mesas.periodo = ?", periodo)

	if scoped {
		query = query.Where(`EXISTS (
			SELECT 1 FROM permisos
			WHERE permisos.mesa_id = mesas.id
			  AND permisos.periodo = mesas.periodo
			  AND permisos.id_usuario = ?)`, userID)
	}

	err := query.Order("sedes.nombre ASC, mesas.nombre ASC").Scan(&mesas).Error
	if err != nil {
		return nil, err
	}
	return mesas, nil
}

// SetEstado flips the mesa state (true = Abierta)
func (r *mesaRepository) SetEstado(ctx context.Context, id uint, abierta bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Mesa{}).
		Where("id = ?", id).
		Update("estado_mesa", abierta).Error
}

// CountVotos counts recorded ballots for a mesa
func (r *mesaRepository) CountVotos(ctx context.Context, mesaID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Voto{}).
		Where("mesa_id = ?", mesaID).
		Count(&count).Error
	return count, err
}
