package services

import (
	"context"
	"errors"
	"log"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/config"
	"muni-votaciones/internal/core/domain"
	"muni-votaciones/internal/pkg/jwt"
	"muni-votaciones/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidRefreshToken covers every refresh failure mode so the
// response never leaks which check rejected the token. Credential and
// account-status failures reuse the domain sentinels.
var ErrInvalidRefreshToken = errors.New("invalid or revoked refresh token")

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by login name
	user, err := s.userRepo.GetByUsuario(ctx, input.Usuario)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check account status (Desactivada/Suspendida cannot log in)
	if user.Estado != string(domain.EstadoActiva) {
		return nil, domain.ErrUserNotActive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Generate tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 5. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s [%s]", user.Usuario, user.Rol)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Verify validates an access token and returns the decoded profile.
func (s *AuthService) Verify(tokenString string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(tokenString, s.cfg.JWT.Secret)
}

// Refresh rotates a refresh token and issues a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token signature/expiry
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// 2. Look up the stored (non-revoked) token by hash
	tokenHash := password.HashToken(refreshToken)
	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if stored.IsExpired() || stored.UserID != claims.UserID {
		return nil, ErrInvalidRefreshToken
	}

	// 3. Load the account and re-check its status
	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if user.Estado != string(domain.EstadoActiva) {
		return nil, domain.ErrUserNotActive
	}

	// 4. Rotate: revoke the old token, issue and store a new pair
	if err := s.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	return s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash)
}

// LogoutAll revokes all refresh tokens of a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

// generateTokens builds an access + refresh token pair for the account
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID, user.Usuario, user.Nombre, user.Rol, user.Email,
		s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenHours,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID, uuid.NewString(),
		s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// storeRefreshToken persists the hash of a refresh token
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	return s.refreshTokenRepo.Create(ctx, token)
}
