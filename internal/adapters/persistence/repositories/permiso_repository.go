package repositories

import (
	"context"

	"muni-votaciones/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// permisoRepository implements PermisoRepository interface
type permisoRepository struct {
	db *gorm.DB
}

// NewPermisoRepository creates a new permiso repository
func NewPermisoRepository(db *gorm.DB) PermisoRepository {
	return &permisoRepository{db: db}
}

// Create creates a new permiso grant
func (r *permisoRepository) Create(ctx context.Context, permiso *models.Permiso) error {
	return r.db.WithContext(ctx).Create(permiso).Error
}

// GetByID gets a permiso by ID
func (r *permisoRepository) GetByID(ctx context.Context, id uint) (*models.Permiso, error) {
	var permiso models.Permiso
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&permiso).Error
	if err != nil {
		return nil, err
	}
	return &permiso, nil
}

// Delete deletes a permiso
func (r *permisoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Permiso{}, id).Error
}

// DeleteByUserID removes all grants of a user. Called when an account is
// deleted so grants never outlive their grantee.
func (r *permisoRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("id_usuario = ?", userID).
		Delete(&models.Permiso{}).Error
}

// List lists permisos of a periodo
func (r *permisoRepository) List(ctx context.Context, periodo int) ([]*models.Permiso, error) {
	var permisos []*models.Permiso
	err := r.db.WithContext(ctx).
		Where("periodo = ?", periodo).
		Order("id ASC").
		Find(&permisos).Error
	return permisos, err
}

// ListByUser lists the grants a user holds in a periodo
func (r *permisoRepository) ListByUser(ctx context.Context, periodo int, userID uint) ([]*models.Permiso, error) {
	var permisos []*models.Permiso
	err := r.db.WithContext(ctx).
		Where("periodo = ? AND id_usuario = ?", periodo, userID).
		Order("mesa_id ASC").
		Find(&permisos).Error
	return permisos, err
}

// Exists checks the full natural key (periodo, sede, mesa, usuario)
func (r *permisoRepository) Exists(ctx context.Context, periodo int, sedeID, mesaID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Permiso{}).
		Where("periodo = ? AND sede_id = ? AND mesa_id = ? AND id_usuario = ?", periodo, sedeID, mesaID, userID).
		Count(&count).Error
	return count > 0, err
}

// HasMesaGrant checks whether the user holds a grant for the mesa in the
// periodo. This is the permission resolver's write-path check.
func (r *permisoRepository) HasMesaGrant(ctx context.Context, periodo int, mesaID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Permiso{}).
		Where("periodo = ? AND mesa_id = ? AND id_usuario = ?", periodo, mesaID, userID).
		Count(&count).Error
	return count > 0, err
}
