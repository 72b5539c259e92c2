package config

import (
	"log"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/core/domain"
	"muni-votaciones/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedTipoProyectos(); err != nil {
		log.Printf("⚠️ Tipo proyecto seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default Administrador account.
// This is for development/testing only; in production the first admin
// should be created through a secure process and this password rotated.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("rol = ?", string(domain.RoleAdministrador)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Usuario:  "admin",
		Nombre:   "Administrador del Sistema",
		Email:    "admin@muni.cl",
		Password: hashedPassword,
		Rol:      string(domain.RoleAdministrador),
		Estado:   string(domain.EstadoActiva),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Usuario)
	return nil
}

// seedTipoProyectos seeds the default project categories. Names stay
// free text; statistics derive the category kind from them.
func (s *Seeder) seedTipoProyectos() error {
	var count int64
	s.db.Model(&models.TipoProyecto{}).Count(&count)
	if count > 0 {
		return nil
	}

	tipos := []string{"Comunal", "Infantil", "Juvenil", "Sectorial"}
	for _, nombre := range tipos {
		if err := s.db.Create(&models.TipoProyecto{Nombre: nombre}).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d tipo_proyectos", len(tipos))
	return nil
}
