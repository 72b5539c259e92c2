package services

import (
	"context"
	"errors"
	"log"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/adapters/persistence/repositories"
	"muni-votaciones/internal/core/domain"
	"muni-votaciones/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors. Lookup and input-shape failures reuse the
// domain sentinels.
var (
	ErrUsuarioAlreadyTaken = errors.New("usuario already exists")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrOldPasswordWrong    = errors.New("old password is incorrect")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
)

// UserService handles account management business logic
type UserService struct {
	userRepo    repositories.UserRepository
	permisoRepo repositories.PermisoRepository
	mailer      *MailerService
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	permisoRepo repositories.PermisoRepository,
	mailer *MailerService,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		permisoRepo: permisoRepo,
		mailer:      mailer,
	}
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Page   int
	Limit  int
	Search string
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.UserResponse `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// CreateUserInput represents the admin account-creation input
type CreateUserInput struct {
	Usuario string `json:"usuario" validate:"required,min=3,max=50"`
	Nombre  string `json:"nombre" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Rol     string `json:"rol" validate:"required"`
}

// UpdateUserByAdminInput represents update user input (for admin)
type UpdateUserByAdminInput struct {
	Email  *string `json:"email"`
	Rol    *string `json:"rol"`
	Estado *string `json:"estado"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit

	users, total, err := s.userRepo.List(ctx, offset, input.Limit, input.Search)
	if err != nil {
		return nil, err
	}

	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      userResponses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUserByID gets a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// CreateUser creates an account with a generated temporary password and
// emails the plaintext to the new user. The email is best-effort: a send
// failure never fails the creation.
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
	if _, ok := domain.ParseRole(input.Rol); !ok {
		return nil, domain.ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByUsuario(ctx, input.Usuario)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsuarioAlreadyTaken
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	tempPassword, err := password.GenerateTemporary()
	if err != nil {
		return nil, err
	}
	hashedPassword, err := password.Hash(tempPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Usuario:  input.Usuario,
		Nombre:   input.Nombre,
		Email:    input.Email,
		Password: hashedPassword,
		Rol:      input.Rol,
		Estado:   string(domain.EstadoActiva),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.mailer.NotifyAccountCreated(user.Email, user.Nombre, user.Usuario, tempPassword)

	log.Printf("✅ User created: %s [%s]", user.Usuario, user.Rol)
	return user.ToResponse(), nil
}

// UpdateUserByAdmin updates a user by admin
func (s *UserService) UpdateUserByAdmin(ctx context.Context, id uint, adminID uint, input *UpdateUserByAdminInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// Prevent admin from changing own role
	if id == adminID && input.Rol != nil {
		return nil, ErrCannotChangeOwnRole
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, _ := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.Rol != nil {
		if _, ok := domain.ParseRole(*input.Rol); !ok {
			return nil, domain.ErrInvalidRole
		}
		user.Rol = *input.Rol
	}

	if input.Estado != nil {
		if !domain.EstadoUsuario(*input.Estado).IsValid() {
			return nil, domain.ErrInvalidEstado
		}
		user.Estado = *input.Estado
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// DeleteUser deletes a user and cascades its permiso grants
func (s *UserService) DeleteUser(ctx context.Context, id uint, adminID uint) error {
	// Prevent admin from deleting self
	if id == adminID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := s.permisoRepo.DeleteByUserID(ctx, id); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, id)
}

// ChangePassword changes a user's own password
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	// Verify old password
	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	if !password.ValidatePassword(input.NewPassword) {
		return errors.New("new password must be at least 8 characters")
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.mailer.NotifyPasswordChanged(user.Email, user.Nombre)
	return nil
}

// ResetPassword generates a new temporary password for the user and
// emails the plaintext (admin action, best-effort email).
func (s *UserService) ResetPassword(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	tempPassword, err := password.GenerateTemporary()
	if err != nil {
		return err
	}
	hashedPassword, err := password.Hash(tempPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.mailer.NotifyPasswordReset(user.Email, user.Nombre, tempPassword)

	log.Printf("✅ Password reset for user: %s", user.Usuario)
	return nil
}
