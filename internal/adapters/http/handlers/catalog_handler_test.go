package handlers

import (
	"net/http/httptest"
	"testing"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/core/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCatalogApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	permisoRepo := repositories.NewPermisoRepository(db)
	handler := NewCatalogHandler(
		repositories.NewSedeRepository(db),
		repositories.NewTipoProyectoRepository(db),
		repositories.NewSectorRepository(db),
		repositories.NewProyectoRepository(db),
		permisoRepo,
		repositories.NewMesaRepository(db),
		repositories.NewUserRepository(db),
		services.NewPermissionService(permisoRepo),
	)

	app := fiber.New()
	app.Delete("/tipos-proyecto/:id", handler.DeleteTipo)
	app.Delete("/sectores/:id", handler.DeleteSector)
	return app, db
}

func deleteStatus(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("DELETE", path, nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestDeleteTipo(t *testing.T) {
	app, db := setupCatalogApp(t)

	tipo := &models.TipoProyecto{Nombre: "Infraestructura"}
	require.NoError(t, db.Create(tipo).Error)

	t.Run("nonexistent id returns 404", func(t *testing.T) {
		assert.Equal(t, fiber.StatusNotFound, deleteStatus(t, app, "/tipos-proyecto/999"))
	})

	t.Run("referenced by a project returns 409", func(t *testing.T) {
		proyecto := &models.Proyecto{
			IDProyecto:     "INF-01",
			Periodo:        2025,
			Nombre:         "Plaza techada",
			TipoProyectoID: tipo.ID,
		}
		require.NoError(t, db.Create(proyecto).Error)

		assert.Equal(t, fiber.StatusConflict, deleteStatus(t, app, "/tipos-proyecto/1"))
		require.NoError(t, db.Delete(proyecto).Error)
	})

	t.Run("unreferenced id deletes", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, deleteStatus(t, app, "/tipos-proyecto/1"))

		var count int64
		require.NoError(t, db.Model(&models.TipoProyecto{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}

func TestDeleteSector(t *testing.T) {
	app, db := setupCatalogApp(t)

	sector := &models.Sector{Nombre: "Norte"}
	require.NoError(t, db.Create(sector).Error)

	t.Run("nonexistent id returns 404", func(t *testing.T) {
		assert.Equal(t, fiber.StatusNotFound, deleteStatus(t, app, "/sectores/999"))
	})

	t.Run("referenced by a project returns 409", func(t *testing.T) {
		tipo := &models.TipoProyecto{Nombre: "Social"}
		require.NoError(t, db.Create(tipo).Error)
		proyecto := &models.Proyecto{
			IDProyecto:     "SOC-01",
			Periodo:        2025,
			Nombre:         "Sede vecinal",
			TipoProyectoID: tipo.ID,
			SectorID:       &sector.ID,
		}
		require.NoError(t, db.Create(proyecto).Error)

		assert.Equal(t, fiber.StatusConflict, deleteStatus(t, app, "/sectores/1"))
		require.NoError(t, db.Delete(proyecto).Error)
	})

	t.Run("unreferenced id deletes", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, deleteStatus(t, app, "/sectores/1"))

		var count int64
		require.NoError(t, db.Model(&models.Sector{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}
