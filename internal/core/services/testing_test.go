package services

import (
	"testing"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/core/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database with the full schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// testFixture wires the full service stack over one in-memory database.
type testFixture struct {
	db          *gorm.DB
	permission  *PermissionService
	mesaSvc     *MesaService
	votoSvc     *VotoService
	votanteSvc  *VotanteService
	statsSvc    *StatisticsService
	exportSvc   *ExportService
	permisoRepo repositories.PermisoRepository
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	db := setupTestDB(t)

	permisoRepo := repositories.NewPermisoRepository(db)
	permission := NewPermissionService(permisoRepo)
	mesaSvc := NewMesaService(
		repositories.NewMesaRepository(db),
		repositories.NewSedeRepository(db),
		permission,
	)
	votoSvc := NewVotoService(db, repositories.NewVotoRepository(db), mesaSvc, permission)
	votanteSvc := NewVotanteService(repositories.NewVotanteRepository(db), mesaSvc, permission)
	statsSvc := NewStatisticsService(db)

	return &testFixture{
		db:          db,
		permission:  permission,
		mesaSvc:     mesaSvc,
		votoSvc:     votoSvc,
		votanteSvc:  votanteSvc,
		statsSvc:    statsSvc,
		exportSvc:   NewExportService(statsSvc),
		permisoRepo: permisoRepo,
	}
}

// Seed helpers. Each returns the created row.

func (f *testFixture) sede(t *testing.T, nombre string) *models.Sede {
	t.Helper()
	sede := &models.Sede{Nombre: nombre}
	require.NoError(t, f.db.Create(sede).Error)
	return sede
}

func (f *testFixture) mesa(t *testing.T, sedeID uint, nombre string, periodo int, abierta bool) *models.Mesa {
	t.Helper()
	mesa := &models.Mesa{Nombre: nombre, SedeID: sedeID, Periodo: periodo, EstadoMesa: abierta}
	require.NoError(t, f.db.Create(mesa).Error)
	if !abierta {
		// EstadoMesa has gorm:"default:true", so Create drops the zero-value
		// false and the column default wins; persist the requested state.
		require.NoError(t, f.db.Model(mesa).Update("estado_mesa", false).Error)
	}
	return mesa
}

func (f *testFixture) tipo(t *testing.T, nombre string) *models.TipoProyecto {
	t.Helper()
	tipo := &models.TipoProyecto{Nombre: nombre}
	require.NoError(t, f.db.Create(tipo).Error)
	return tipo
}

func (f *testFixture) sector(t *testing.T, nombre string) *models.Sector {
	t.Helper()
	sector := &models.Sector{Nombre: nombre}
	require.NoError(t, f.db.Create(sector).Error)
	return sector
}

func (f *testFixture) proyecto(t *testing.T, codigo, nombre string, periodo int, tipoID uint, sectorID *uint) *models.Proyecto {
	t.Helper()
	proyecto := &models.Proyecto{
		IDProyecto:     codigo,
		Nombre:         nombre,
		Periodo:        periodo,
		TipoProyectoID: tipoID,
		SectorID:       sectorID,
	}
	require.NoError(t, f.db.Create(proyecto).Error)
	return proyecto
}

func (f *testFixture) user(t *testing.T, usuario string, rol domain.Role) *models.User {
	t.Helper()
	user := &models.User{
		Usuario:  usuario,
		Nombre:   usuario,
		Email:    usuario + "@test.cl",
		Password: "x",
		Rol:      string(rol),
		Estado:   string(domain.EstadoActiva),
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *testFixture) permiso(t *testing.T, periodo int, sedeID, mesaID, userID uint) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Permiso{
		Periodo: periodo,
		SedeID:  sedeID,
		MesaID:  mesaID,
		UserID:  userID,
	}).Error)
}

func (f *testFixture) votoCount(t *testing.T, mesaID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Voto{}).Where("mesa_id = ?", mesaID).Count(&count).Error)
	return count
}

func admin(userID uint) Actor {
	return Actor{UserID: userID, Rol: domain.RoleAdministrador}
}

func encargado(userID uint) Actor {
	return Actor{UserID: userID, Rol: domain.RoleEncargado}
}
