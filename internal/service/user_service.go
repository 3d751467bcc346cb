package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// bcryptCost is fixed; raising it only affects newly stored hashes.
const bcryptCost = 10

// UserService describes account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ChangeUsername(ctx context.Context, userID int64, newUsername string) (string, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.Validationf("username is required")
	}
	if password == "" {
		return nil, domain.Validationf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// unknown user and wrong password must be indistinguishable
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) ChangeUsername(ctx context.Context, userID int64, newUsername string) (string, error) {
	newUsername = strings.TrimSpace(newUsername)
	if len(newUsername) < 3 {
		return "", domain.Validationf("username must be at least 3 characters")
	}

	if existing, err := s.users.GetByUsername(ctx, newUsername); err == nil {
		if existing.ID != userID {
			return "", domain.ErrDuplicateUsername
		}
		// renaming to the current name is a no-op
		return existing.Username, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	if err := s.users.UpdateUsername(ctx, userID, newUsername); err != nil {
		return "", err
	}
	return newUsername, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error {
	if oldPassword == "" || newPassword == "" || confirmPassword == "" {
		return domain.Validationf("all password fields are required")
	}
	if newPassword != confirmPassword {
		return domain.Validationf("new passwords do not match")
	}
	if len(newPassword) < 6 {
		return domain.Validationf("new password must be at least 6 characters")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.Validationf("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// previously issued tokens stay valid; sessions are stateless
	return s.users.UpdatePasswordHash(ctx, userID, string(hash))
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
