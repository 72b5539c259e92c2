package repositories

import (
	"context"

	"muni-votaciones/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Sede Repository
// ============================================================

// sedeRepository implements SedeRepository interface
type sedeRepository struct {
	db *gorm.DB
}

// NewSedeRepository creates a new sede repository
func NewSedeRepository(db *gorm.DB) SedeRepository {
	return &sedeRepository{db: db}
}

func (r *sedeRepository) Create(ctx context.Context, sede *models.Sede) error {
	return r.db.WithContext(ctx).Create(sede).Error
}

func (r *sedeRepository) GetByID(ctx context.Context, id uint) (*models.Sede, error) {
	var sede models.Sede
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sede).Error
	if err != nil {
		return nil, err
	}
	return &sede, nil
}

func (r *sedeRepository) Update(ctx context.Context, sede *models.Sede) error {
	return r.db.WithContext(ctx).Save(sede).Error
}

func (r *sedeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Sede{}, id).Error
}

func (r *sedeRepository) List(ctx context.Context) ([]*models.Sede, error) {
	var sedes []*models.Sede
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&sedes).Error
	return sedes, err
}

// CountVotos counts ballots recorded on any mesa of the sede. Used by the
// deletion guard.
func (r *sedeRepository) CountVotos(ctx context.Context, sedeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Voto{}).
		Joins("JOIN mesas ON mesas.id = votos.mesa_id").
		Where("mesas.sede_id = ?", sedeID).
		Count(&count).Error
	return count, err
}

// ============================================================
// TipoProyecto Repository
// ============================================================

// tipoProyectoRepository implements TipoProyectoRepository interface
type tipoProyectoRepository struct {
	db *gorm.DB
}

// NewTipoProyectoRepository creates a new tipo_proyecto repository
func NewTipoProyectoRepository(db *gorm.DB) TipoProyectoRepository {
	return &tipoProyectoRepository{db: db}
}

func (r *tipoProyectoRepository) Create(ctx context.Context, tipo *models.TipoProyecto) error {
	return r.db.WithContext(ctx).Create(tipo).Error
}

func (r *tipoProyectoRepository) GetByID(ctx context.Context, id uint) (*models.TipoProyecto, error) {
	var tipo models.TipoProyecto
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tipo).Error
	if err != nil {
		return nil, err
	}
	return &tipo, nil
}

func (r *tipoProyectoRepository) Update(ctx context.Context, tipo *models.TipoProyecto) error {
	return r.db.WithContext(ctx).Save(tipo).Error
}

func (r *tipoProyectoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TipoProyecto{}, id).Error
}

func (r *tipoProyectoRepository) List(ctx context.Context) ([]*models.TipoProyecto, error) {
	var tipos []*models.TipoProyecto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&tipos).Error
	return tipos, err
}

func (r *tipoProyectoRepository) CountProyectos(ctx context.Context, tipoID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Proyecto{}).
		Where("tipo_proyecto_id = ?", tipoID).
		Count(&count).Error
	return count, err
}

// ============================================================
// Sector Repository
// ============================================================

// sectorRepository implements SectorRepository interface
type sectorRepository struct {
	db *gorm.DB
}

// NewSectorRepository creates a new sector repository
func NewSectorRepository(db *gorm.DB) SectorRepository {
	return &sectorRepository{db: db}
}

func (r *sectorRepository) Create(ctx context.Context, sector *models.Sector) error {
	return r.db.WithContext(ctx).Create(sector).Error
}

func (r *sectorRepository) GetByID(ctx context.Context, id uint) (*models.Sector, error) {
	var sector models.Sector
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sector).Error
	if err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *sectorRepository) Update(ctx context.Context, sector *models.Sector) error {
	return r.db.WithContext(ctx).Save(sector).Error
}

func (r *sectorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Sector{}, id).Error
}

func (r *sectorRepository) List(ctx context.Context) ([]*models.Sector, error) {
	var sectores []*models.Sector
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&sectores).Error
	return sectores, err
}

func (r *sectorRepository) CountProyectos(ctx context.Context, sectorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Proyecto{}).
		Where("sector_id = ?", sectorID).
		Count(&count).Error
	return count, err
}
