package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/revxlabs/revx/internal/models"
	"github.com/revxlabs/revx/internal/repository"
)

// DashboardMetrics aggregates platform totals plus 30-day activity counts.
type DashboardMetrics struct {
	TotalUsers     int64 `json:"total_users"`
	TotalProjects  int64 `json:"total_projects"`
	TotalReviews   int64 `json:"total_reviews"`
	RecentUsers    int64 `json:"recent_users"`
	RecentProjects int64 `json:"recent_projects"`
}

// AdminService handles moderation and dashboard business logic.
type AdminService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

// Metrics returns dashboard totals and 30-day recents.
func (s *AdminService) Metrics() (*DashboardMetrics, error) {
	metrics := &DashboardMetrics{}
	var err error

	if metrics.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if metrics.TotalProjects, err = s.projectRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	if metrics.TotalReviews, err = s.projectRepo.CountReviews(); err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if metrics.RecentUsers, err = s.userRepo.CountSince(thirtyDaysAgo); err != nil {
		return nil, fmt.Errorf("failed to count recent users: %w", err)
	}
	if metrics.RecentProjects, err = s.projectRepo.CountSince(thirtyDaysAgo); err != nil {
		return nil, fmt.Errorf("failed to count recent projects: %w", err)
	}

	return metrics, nil
}

// ListUsers returns users newest first.
func (s *AdminService) ListUsers(limit, offset int) ([]models.User, error) {
	return s.userRepo.ListPage(limit, offset)
}

// ListProjects returns projects with owner and reviews for the admin view.
func (s *AdminService) ListProjects(limit, offset int) ([]models.Project, error) {
	return s.projectRepo.ListPage(limit, offset)
}

// SetAdmin toggles a user's admin flag.
func (s *AdminService) SetAdmin(userID uint64, isAdmin bool) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user and all their associated data.
func (s *AdminService) DeleteUser(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	return s.userRepo.DeleteCascade(userID)
}

// DeleteProject removes any project, bypassing the owner check.
func (s *AdminService) DeleteProject(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	return s.projectRepo.Delete(projectID)
}
