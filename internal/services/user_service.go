package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/repository"
	"github.com/mizuki-dev/project-task-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService exposes user listing and the generic user mutation
// passthroughs. Credential validation lives in the signup flow, not here.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns users with pagination and the total count
func (s *UserService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// CountUsers counts all users
func (s *UserService) CountUsers() (int64, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// UpdateUserInput represents a partial update of a user record
type UpdateUserInput struct {
	Email    *string
	Password *string
}

// UpdateUser applies a partial update. A new password is hashed before it
// is stored.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	if _, err := s.findUser(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		fields["password_hash"] = string(hashed)
	}

	if err := s.userRepo.UpdateFields(id, fields); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.findUser(id)
}

// ReplaceUserInput represents a full overwrite of a user's mutable fields
type ReplaceUserInput struct {
	Email    string
	Password string
}

// ReplaceUser overwrites the user's email and password.
func (s *UserService) ReplaceUser(id uint64, input ReplaceUserInput) (*models.User, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user.Email = input.Email
	user.PasswordHash = string(hashed)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Replace(user); err != nil {
		return nil, fmt.Errorf("failed to replace user: %w", err)
	}

	return user, nil
}

// DeleteUser permanently removes a user record.
func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.findUser(id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) findUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
