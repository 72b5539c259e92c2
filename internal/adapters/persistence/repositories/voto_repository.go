package repositories

import (
	"context"

	"muni-votaciones/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// votoRepository implements VotoRepository interface
type votoRepository struct {
	db *gorm.DB
}

// NewVotoRepository creates a new voto repository
func NewVotoRepository(db *gorm.DB) VotoRepository {
	return &votoRepository{db: db}
}

// CountsByMesa returns the persisted tally of a mesa grouped by bucket.
// Normal ballots are grouped per project code; Blanco/Nulo each form one
// bucket. Ballot rows are counted, never summed from a quantity column.
func (r *votoRepository) CountsByMesa(ctx context.Context, mesaID uint, periodo int) ([]*BucketCount, error) {
	var counts []*BucketCount
	err := r.db.WithContext(ctx).
		Model(&models.Voto{}).
		Select(`votos.tipo_voto,
			COALESCE(proyectos.id_proyecto, '') AS id_proyecto,
			COALESCE(proyectos.nombre, '') AS proyecto_nombre,
			COUNT(*) AS cantidad`).
		Joins("LEFT JOIN proyectos ON proyectos.id = votos.proyecto_id").
		Where("votos.mesa_id = ? AND votos.periodo = ?", mesaID, periodo).
		Group("votos.tipo_voto, proyectos.id_proyecto, proyectos.nombre").
		Order("votos.tipo_voto ASC, proyectos.id_proyecto ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
