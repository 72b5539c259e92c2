package routes

import (
	"time"

	"muni-votaciones/internal/adapters/http/handlers"
	"muni-votaciones/internal/adapters/http/middleware"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/config"
	"muni-votaciones/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	sedeRepo := repositories.NewSedeRepository(db)
	mesaRepo := repositories.NewMesaRepository(db)
	tipoRepo := repositories.NewTipoProyectoRepository(db)
	sectorRepo := repositories.NewSectorRepository(db)
	proyectoRepo := repositories.NewProyectoRepository(db)
	permisoRepo := repositories.NewPermisoRepository(db)
	votanteRepo := repositories.NewVotanteRepository(db)
	votoRepo := repositories.NewVotoRepository(db)

	// Initialize services
	mailerService := services.NewMailerService(cfg.SMTP)
	permissionService := services.NewPermissionService(permisoRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, permisoRepo, mailerService)
	mesaService := services.NewMesaService(mesaRepo, sedeRepo, permissionService)
	votoService := services.NewVotoService(db, votoRepo, mesaService, permissionService)
	votanteService := services.NewVotanteService(votanteRepo, mesaService, permissionService)
	statsService := services.NewStatisticsService(db)
	exportService := services.NewExportService(statsService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	mesaHandler := handlers.NewMesaHandler(mesaService)
	votoHandler := handlers.NewVotoHandler(votoService)
	votanteHandler := handlers.NewVotanteHandler(votanteService)
	catalogHandler := handlers.NewCatalogHandler(
		sedeRepo, tipoRepo, sectorRepo, proyectoRepo, permisoRepo, mesaRepo, userRepo,
		permissionService,
	)
	statsHandler := handlers.NewStatisticsHandler(statsService, exportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, authHandler, userHandler, mesaHandler, votoHandler,
		votanteHandler, catalogHandler, statsHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	mesaHandler *handlers.MesaHandler,
	votoHandler *handlers.VotoHandler,
	votanteHandler *handlers.VotanteHandler,
	catalogHandler *handlers.CatalogHandler,
	statsHandler *handlers.StatisticsHandler,
	cfg *config.Config,
) {
	// Auth routes (public, rate limited)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Mesa routes
	mesaRoutes := router.Group("/mesas")
	mesaRoutes.Use(middleware.AuthMiddleware(cfg), middleware.MesaOperators())
	setupMesaRoutes(mesaRoutes, mesaHandler)

	// Vote registration routes
	votoRoutes := router.Group("/votos")
	votoRoutes.Use(middleware.AuthMiddleware(cfg), middleware.MesaOperators())
	votoRoutes.Use(middleware.NoCacheHeaders())
	setupVotoRoutes(votoRoutes, votoHandler)

	// Voter registration routes
	votanteRoutes := router.Group("/votantes")
	votanteRoutes.Use(middleware.AuthMiddleware(cfg), middleware.MesaOperators())
	setupVotanteRoutes(votanteRoutes, votanteHandler)

	// Catalog routes (Admin only except reads)
	setupCatalogRoutes(router, catalogHandler, cfg)

	// Statistics routes (always fresh, never cached)
	statsRoutes := router.Group("/statistics")
	statsRoutes.Use(middleware.AuthMiddleware(cfg), middleware.MesaOperators())
	statsRoutes.Use(middleware.NoCacheHeaders())
	setupStatisticsRoutes(statsRoutes, statsHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/verify", handler.Verify)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.Refresh)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures account management routes (Admin only, except
// the self-service password change)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Put("/me/password", handler.ChangePassword)

	admin := router.Group("")
	admin.Use(middleware.AdminOnly())
	admin.Get("/", handler.List)
	admin.Get("/:id", handler.Get)
	admin.Post("/", handler.Create)
	admin.Put("/:id", handler.Update)
	admin.Delete("/:id", handler.Delete)
	admin.Post("/:id/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)
}

// setupMesaRoutes configures mesa routes
func setupMesaRoutes(router fiber.Router, handler *handlers.MesaHandler) {
	// All mesa-operating roles may list; the service scopes by permiso
	router.Get("/", middleware.NoCacheHeaders(), handler.List)
	router.Get("/user-permissions", middleware.NoCacheHeaders(), handler.UserPermissions)

	// Open/close: Encargado de Local or Administrador (checked in service)
	router.Put("/:id/estado", handler.SetEstado)

	// Structure management: Admin only
	admin := router.Group("")
	admin.Use(middleware.AdminOnly())
	admin.Post("/", handler.Create)
	admin.Put("/:id", handler.Update)
	admin.Delete("/:id", handler.Delete)
}

// setupVotoRoutes configures vote registration routes
func setupVotoRoutes(router fiber.Router, handler *handlers.VotoHandler) {
	router.Post("/", handler.Register)
	router.Get("/", handler.Counts)
}

// setupVotanteRoutes configures voter registration routes
func setupVotanteRoutes(router fiber.Router, handler *handlers.VotanteHandler) {
	router.Post("/", handler.Register)
	router.Get("/", handler.ListByMesa)
}

// setupCatalogRoutes configures the catalog routes. Reads are open to any
// authenticated role (the UI needs the lists); writes are Admin only.
func setupCatalogRoutes(router fiber.Router, handler *handlers.CatalogHandler, cfg *config.Config) {
	catalogCache := middleware.CatalogCache(5 * time.Minute)

	// Sedes
	sedes := router.Group("/sedes", middleware.AuthMiddleware(cfg))
	sedes.Get("/", catalogCache, handler.ListSedes)
	sedes.Post("/", middleware.AdminOnly(), handler.CreateSede)
	sedes.Put("/:id", middleware.AdminOnly(), handler.UpdateSede)
	sedes.Delete("/:id", middleware.AdminOnly(), handler.DeleteSede)

	// Tipos de proyecto
	tipos := router.Group("/tipos-proyecto", middleware.AuthMiddleware(cfg))
	tipos.Get("/", catalogCache, handler.ListTipos)
	tipos.Post("/", middleware.AdminOnly(), handler.CreateTipo)
	tipos.Delete("/:id", middleware.AdminOnly(), handler.DeleteTipo)

	// Sectores
	sectores := router.Group("/sectores", middleware.AuthMiddleware(cfg))
	sectores.Get("/", catalogCache, handler.ListSectores)
	sectores.Post("/", middleware.AdminOnly(), handler.CreateSector)
	sectores.Delete("/:id", middleware.AdminOnly(), handler.DeleteSector)

	// Proyectos
	proyectos := router.Group("/proyectos", middleware.AuthMiddleware(cfg))
	proyectos.Get("/", catalogCache, handler.ListProyectos)
	proyectos.Post("/", middleware.AdminOnly(), handler.CreateProyecto)
	proyectos.Put("/:id", middleware.AdminOnly(), handler.UpdateProyecto)
	proyectos.Delete("/:id", middleware.AdminOnly(), handler.DeleteProyecto)

	// Permisos (reads scoped in the handler, writes Admin only)
	permisos := router.Group("/permisos", middleware.AuthMiddleware(cfg))
	permisos.Get("/", handler.ListPermisos)
	permisos.Post("/", middleware.AdminOnly(), handler.CreatePermiso)
	permisos.Delete("/:id", middleware.AdminOnly(), handler.DeletePermiso)
}

// setupStatisticsRoutes configures statistics routes
func setupStatisticsRoutes(router fiber.Router, handler *handlers.StatisticsHandler) {
	router.Get("/", handler.Summary)
	router.Get("/detailed", handler.Detailed)
	router.Get("/winners", handler.Winners)
	router.Get("/polling-places", handler.PollingPlaces)
	router.Get("/mesa-status", handler.MesaStatus)
	router.Get("/export", handler.Export)
}
