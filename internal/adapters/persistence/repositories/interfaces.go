package repositories

import (
	"context"

	"muni-votaciones/internal/adapters/persistence/models"
)

// UserRepository defines usuario repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsuario(ctx context.Context, usuario string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, search string) ([]*models.User, int64, error)
	ExistsByUsuario(ctx context.Context, usuario string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// SedeRepository defines sede repository interface
type SedeRepository interface {
	Create(ctx context.Context, sede *models.Sede) error
	GetByID(ctx context.Context, id uint) (*models.Sede, error)
	Update(ctx context.Context, sede *models.Sede) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Sede, error)
	CountVotos(ctx context.Context, sedeID uint) (int64, error)
}

// MesaRepository defines mesa repository interface
type MesaRepository interface {
	Create(ctx context.Context, mesa *models.Mesa) error
	GetByID(ctx context.Context, id uint) (*models.Mesa, error)
	GetByIDAndPeriodo(ctx context.Context, id uint, periodo int) (*models.Mesa, error)
	Update(ctx context.Context, mesa *models.Mesa) error
	Delete(ctx context.Context, id uint) error
	// ListScoped lists mesas of a periodo with live voto/votante counters.
	// When scoped is true only mesas granted to userID through permisos
	// are returned.
	ListScoped(ctx context.Context, periodo int, userID uint, scoped bool) ([]*models.MesaResponse, error)
	SetEstado(ctx context.Context, id uint, abierta bool) error
	CountVotos(ctx context.Context, mesaID uint) (int64, error)
}

// TipoProyectoRepository defines tipo_proyecto repository interface
type TipoProyectoRepository interface {
	Create(ctx context.Context, tipo *models.TipoProyecto) error
	GetByID(ctx context.Context, id uint) (*models.TipoProyecto, error)
	Update(ctx context.Context, tipo *models.TipoProyecto) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.TipoProyecto, error)
	CountProyectos(ctx context.Context, tipoID uint) (int64, error)
}

// SectorRepository defines sector repository interface
type SectorRepository interface {
	Create(ctx context.Context, sector *models.Sector) error
	GetByID(ctx context.Context, id uint) (*models.Sector, error)
	Update(ctx context.Context, sector *models.Sector) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Sector, error)
	CountProyectos(ctx context.Context, sectorID uint) (int64, error)
}

// ProyectoRepository defines proyecto repository interface
type ProyectoRepository interface {
	Create(ctx context.Context, proyecto *models.Proyecto) error
	GetByID(ctx context.Context, id uint) (*models.Proyecto, error)
	GetByCodigo(ctx context.Context, idProyecto string, periodo int) (*models.Proyecto, error)
	Update(ctx context.Context, proyecto *models.Proyecto) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, periodo int) ([]*models.Proyecto, error)
	ExistsByCodigo(ctx context.Context, idProyecto string, periodo int, excludeID uint) (bool, error)
	CountVotos(ctx context.Context, proyectoID uint) (int64, error)
}

// PermisoRepository defines permiso repository interface
type PermisoRepository interface {
	Create(ctx context.Context, permiso *models.Permiso) error
	GetByID(ctx context.Context, id uint) (*models.Permiso, error)
	Delete(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
	List(ctx context.Context, periodo int) ([]*models.Permiso, error)
	ListByUser(ctx context.Context, periodo int, userID uint) ([]*models.Permiso, error)
	Exists(ctx context.Context, periodo int, sedeID, mesaID, userID uint) (bool, error)
	HasMesaGrant(ctx context.Context, periodo int, mesaID, userID uint) (bool, error)
}

// VotanteRepository defines votante repository interface
type VotanteRepository interface {
	Create(ctx context.Context, votante *models.Votante) error
	ListByMesa(ctx context.Context, mesaID uint, periodo int) ([]*models.Votante, error)
	ExistsByRut(ctx context.Context, rut string, periodo int) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// VotoRepository defines voto read-side repository interface. Writes go
// through VotoService inside a single transaction.
type VotoRepository interface {
	// CountsByMesa returns the persisted ballot counts for a mesa grouped
	// by bucket (project code for Normal votes, Blanco/Nulo otherwise).
	CountsByMesa(ctx context.Context, mesaID uint, periodo int) ([]*BucketCount, error)
}

// BucketCount is the per-bucket tally of a mesa.
type BucketCount struct {
	TipoVoto       string `json:"tipo_voto"`
	IDProyecto     string `json:"id_proyecto,omitempty"`
	ProyectoNombre string `json:"proyecto_nombre,omitempty"`
	Cantidad       int64  `json:"cantidad"`
}
