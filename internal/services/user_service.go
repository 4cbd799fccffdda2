package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/revxlabs/revx/internal/models"
	"github.com/revxlabs/revx/internal/repository"
	"github.com/revxlabs/revx/internal/validation"
)

// UserService handles profile business logic.
type UserService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

// MyProjects returns the projects owned by a user, fully loaded.
func (s *UserService) MyProjects(userID uint64) ([]models.Project, error) {
	return s.projectRepo.ListByOwner(userID)
}

// UpdateProfileInput carries optional profile fields; nil means unchanged.
type UpdateProfileInput struct {
	Username *string
	FullName *string
	Bio      *string
	Avatar   *string
}

// UpdateProfile applies the provided fields to the user's profile.
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if err := validation.Username(username); err != nil {
			return nil, err
		}
		if username != user.Username {
			if _, err := s.userRepo.FindByUsername(username); err == nil {
				return nil, ErrUsernameTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
			user.Username = username
		}
	}

	if input.FullName != nil {
		if err := validation.FullName(*input.FullName); err != nil {
			return nil, err
		}
		user.FullName = *input.FullName
	}

	if input.Bio != nil {
		user.Bio = input.Bio
	}

	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
