package repositories

import (
	"context"

	"muni-votaciones/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// proyectoRepository implements ProyectoRepository interface
type proyectoRepository struct {
	db *gorm.DB
}

// NewProyectoRepository creates a new proyecto repository
func NewProyectoRepository(db *gorm.DB) ProyectoRepository {
	return &proyectoRepository{db: db}
}

// Create creates a new proyecto
func (r *proyectoRepository) Create(ctx context.Context, proyecto *models.Proyecto) error {
	return r.db.WithContext(ctx).Create(proyecto).Error
}

// GetByID gets a proyecto by primary key
func (r *proyectoRepository) GetByID(ctx context.Context, id uint) (*models.Proyecto, error) {
	var proyecto models.Proyecto
	err := r.db.WithContext(ctx).
		Preload("TipoProyecto").
		Preload("Sector").
		Where("id = ?", id).
		First(&proyecto).Error
	if err != nil {
		return nil, err
	}
	return &proyecto, nil
}

// GetByCodigo resolves a public project code within a periodo
func (r *proyectoRepository) GetByCodigo(ctx context.Context, idProyecto string, periodo int) (*models.Proyecto, error) {
	var proyecto models.Proyecto
	err := r.db.WithContext(ctx).
		Where("id_proyecto = ? AND periodo = ?", idProyecto, periodo).
		First(&proyecto).Error
	if err != nil {
		return nil, err
	}
	return &proyecto, nil
}

// Update updates a proyecto
func (r *proyectoRepository) Update(ctx context.Context, proyecto *models.Proyecto) error {
	return r.db.WithContext(ctx).Save(proyecto).Error
}

// Delete deletes a proyecto
func (r *proyectoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Proyecto{}, id).Error
}

// List lists proyectos of a periodo
func (r *proyectoRepository) List(ctx context.Context, periodo int) ([]*models.Proyecto, error) {
	var proyectos []*models.Proyecto
	err := r.db.WithContext(ctx).
		Preload("TipoProyecto").
		Preload("Sector").
		Where("periodo = ?", periodo).
		Order("id_proyecto ASC").
		Find(&proyectos).Error
	return proyectos, err
}

// ExistsByCodigo checks project-code uniqueness within a periodo,
// optionally excluding one row (for renames).
func (r *proyectoRepository) ExistsByCodigo(ctx context.Context, idProyecto string, periodo int, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Proyecto{}).
		Where("id_proyecto = ? AND periodo = ?", idProyecto, periodo)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountVotos counts ballots referencing the proyecto
func (r *proyectoRepository) CountVotos(ctx context.Context, proyectoID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Voto{}).
		Where("proyecto_id = ?", proyectoID).
		Count(&count).Error
	return count, err
}
