package repositories

import (
	"context"

	"muni-votaciones/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// votanteRepository implements VotanteRepository interface
type votanteRepository struct {
	db *gorm.DB
}

// NewVotanteRepository creates a new votante repository
func NewVotanteRepository(db *gorm.DB) VotanteRepository {
	return &votanteRepository{db: db}
}

// Create creates a new votante
func (r *votanteRepository) Create(ctx context.Context, votante *models.Votante) error {
	return r.db.WithContext(ctx).Create(votante).Error
}

// ListByMesa lists votantes registered on a mesa within a periodo
func (r *votanteRepository) ListByMesa(ctx context.Context, mesaID uint, periodo int) ([]*models.Votante, error) {
	var votantes []*models.Votante
	err := r.db.WithContext(ctx).
		Where("mesa_id = ? AND periodo = ?", mesaID, periodo).
		Order("id ASC").
		Find(&votantes).Error
	return votantes, err
}

// ExistsByRut checks rut uniqueness within a periodo
func (r *votanteRepository) ExistsByRut(ctx context.Context, rut string, periodo int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Votante{}).
		Where("rut = ? AND periodo = ?", rut, periodo).
		Count(&count).Error
	return count > 0, err
}

// Delete deletes a votante
func (r *votanteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Votante{}, id).Error
}
