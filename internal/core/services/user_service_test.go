package services

import (
	"context"
	"testing"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/config"
	"muni-votaciones/internal/core/domain"
	"muni-votaciones/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	// Empty SMTP host disables sending; notifications become log lines.
	mailer := NewMailerService(config.SMTPConfig{})
	svc := NewUserService(
		repositories.NewUserRepository(db),
		repositories.NewPermisoRepository(db),
		mailer,
	)
	return svc, db
}

func TestCreateUser_GeneratesTemporaryPassword(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserInput{
		Usuario: "mlopez",
		Nombre:  "María López",
		Email:   "mlopez@muni.cl",
		Rol:     string(domain.RoleDigitador),
	})
	require.NoError(t, err)
	assert.Equal(t, "mlopez", created.Usuario)
	assert.Equal(t, string(domain.EstadoActiva), created.Estado)

	var stored models.User
	require.NoError(t, db.Where("usuario = ?", "mlopez").First(&stored).Error)
	assert.NotEmpty(t, stored.Password)
	assert.NotEqual(t, "mlopez", stored.Password)

	// Duplicates rejected on both unique fields.
	_, err = svc.CreateUser(ctx, &CreateUserInput{
		Usuario: "mlopez", Nombre: "Otra", Email: "otra@muni.cl", Rol: string(domain.RoleDigitador),
	})
	assert.ErrorIs(t, err, ErrUsuarioAlreadyTaken)

	_, err = svc.CreateUser(ctx, &CreateUserInput{
		Usuario: "otra", Nombre: "Otra", Email: "mlopez@muni.cl", Rol: string(domain.RoleDigitador),
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Usuario: "x", Nombre: "X", Email: "x@muni.cl", Rol: "SuperUsuario",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUpdateUserByAdmin_OwnRoleGuard(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserInput{
		Usuario: "admin2", Nombre: "Admin Dos", Email: "admin2@muni.cl", Rol: string(domain.RoleAdministrador),
	})
	require.NoError(t, err)

	newRol := string(domain.RoleDigitador)
	_, err = svc.UpdateUserByAdmin(ctx, created.ID, created.ID, &UpdateUserByAdminInput{Rol: &newRol})
	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)

	// Another admin may change it.
	updated, err := svc.UpdateUserByAdmin(ctx, created.ID, created.ID+100, &UpdateUserByAdminInput{Rol: &newRol})
	require.NoError(t, err)
	assert.Equal(t, newRol, updated.Rol)

	badEstado := "Congelada"
	_, err = svc.UpdateUserByAdmin(ctx, created.ID, created.ID+100, &UpdateUserByAdminInput{Estado: &badEstado})
	assert.ErrorIs(t, err, domain.ErrInvalidEstado)
}

func TestDeleteUser_CascadesPermisos(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserInput{
		Usuario: "encargado1", Nombre: "Encargado", Email: "enc@muni.cl", Rol: string(domain.RoleEncargado),
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Permiso{Periodo: 2025, SedeID: 1, MesaID: 1, UserID: created.ID}).Error)

	assert.ErrorIs(t, svc.DeleteUser(ctx, created.ID, created.ID), ErrCannotDeleteSelf)

	require.NoError(t, svc.DeleteUser(ctx, created.ID, created.ID+100))

	var permisos int64
	require.NoError(t, db.Model(&models.Permiso{}).Where("id_usuario = ?", created.ID).Count(&permisos).Error)
	assert.EqualValues(t, 0, permisos)
}

func TestChangePassword_VerifiesOldPassword(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	hashed, err := password.Hash("secreta123")
	require.NoError(t, err)
	user := &models.User{
		Usuario: "jperez", Nombre: "Juan Pérez", Email: "jperez@muni.cl",
		Password: hashed, Rol: string(domain.RoleDigitador), Estado: string(domain.EstadoActiva),
	}
	require.NoError(t, db.Create(user).Error)

	err = svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{
		OldPassword: "equivocada", NewPassword: "nueva1234",
	})
	assert.ErrorIs(t, err, ErrOldPasswordWrong)

	err = svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{
		OldPassword: "secreta123", NewPassword: "nueva1234",
	})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, password.Verify("nueva1234", stored.Password))
}
