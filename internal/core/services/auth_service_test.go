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

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenHours: 12,
			RefreshTokenDays: 7,
		},
	}
	svc := NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
	return svc, db
}

func seedAccount(t *testing.T, db *gorm.DB, usuario, plain string, estado domain.EstadoUsuario) *models.User {
	t.Helper()
	hashed, err := password.Hash(plain)
	require.NoError(t, err)
	user := &models.User{
		Usuario:  usuario,
		Nombre:   usuario,
		Email:    usuario + "@muni.cl",
		Password: hashed,
		Rol:      string(domain.RoleEncargado),
		Estado:   string(estado),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin_ValidCredentials(t *testing.T) {
	svc, db := newAuthService(t)
	seedAccount(t, db, "encargado1", "clave12345", domain.EstadoActiva)

	result, err := svc.Login(context.Background(), &LoginInput{
		Usuario: "encargado1", Password: "clave12345",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "encargado1", result.User.Usuario)

	claims, err := svc.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleEncargado), claims.Rol)
}

func TestLogin_Failures(t *testing.T) {
	svc, db := newAuthService(t)
	seedAccount(t, db, "activo", "clave12345", domain.EstadoActiva)
	seedAccount(t, db, "suspendido", "clave12345", domain.EstadoSuspendida)

	_, err := svc.Login(context.Background(), &LoginInput{Usuario: "activo", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{Usuario: "nadie", Password: "clave12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{Usuario: "suspendido", Password: "clave12345"})
	assert.ErrorIs(t, err, domain.ErrUserNotActive)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, db := newAuthService(t)
	seedAccount(t, db, "encargado1", "clave12345", domain.EstadoActiva)
	ctx := context.Background()

	login, err := svc.Login(ctx, &LoginInput{Usuario: "encargado1", Password: "clave12345"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation.
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The new one still works.
	_, err = svc.Refresh(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutAll_RevokesEverything(t *testing.T) {
	svc, db := newAuthService(t)
	user := seedAccount(t, db, "encargado1", "clave12345", domain.EstadoActiva)
	ctx := context.Background()

	first, err := svc.Login(ctx, &LoginInput{Usuario: "encargado1", Password: "clave12345"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &LoginInput{Usuario: "encargado1", Password: "clave12345"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, user.ID))

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
