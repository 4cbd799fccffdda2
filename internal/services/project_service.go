package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/revxlabs/revx/internal/models"
	"github.com/revxlabs/revx/internal/repository"
	"github.com/revxlabs/revx/internal/validation"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrNotProjectOwner     = errors.New("only the project owner can perform this action")
	ErrOwnerCannotReview   = errors.New("project owners cannot review their own project")
	ErrAlreadyReviewed     = errors.New("you have already reviewed this project")
	ErrReviewNotFound      = errors.New("review not found")
	ErrNotReviewAuthor     = errors.New("only the review author can remove it")
	ErrOwnerAsContributor  = errors.New("the project owner is already part of the project")
	ErrAlreadyContributor  = errors.New("user is already a contributor")
	ErrContributorNotFound = errors.New("contributor not found")
)

// ProjectService handles project, review, and contributor business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	tagRepo     repository.TagRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, tagRepo repository.TagRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		tagRepo:     tagRepo,
	}
}

// List returns all projects fully loaded.
func (s *ProjectService) List() ([]models.Project, error) {
	return s.projectRepo.List()
}

// Get returns a single fully loaded project.
func (s *ProjectService) Get(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Tags returns the tag catalog.
func (s *ProjectService) Tags() ([]models.Tag, error) {
	return s.tagRepo.List()
}

// CreateProjectInput represents input for creating or updating a project.
type CreateProjectInput struct {
	Title       string
	Description string
	Category    *string
	TagIDs      []uint64
	Images      []string
	OwnerID     uint64
}

// Create validates input, resolves tag ids against the catalog (ids not in
// the catalog are dropped), and persists the project with images in order.
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	if err := validation.ProjectTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validation.ProjectDescription(input.Description); err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.FindByIDs(input.TagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		OwnerID:     input.OwnerID,
		Tags:        tags,
	}
	for i, link := range input.Images {
		project.Images = append(project.Images, models.ProjectImage{
			ImageLink: link,
			Position:  i,
		})
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.Get(project.ID)
}

// UpdateProjectInput represents input for updating a project.
type UpdateProjectInput struct {
	Title       string
	Description string
	Category    *string
	TagIDs      []uint64
	Images      []string
}

// Update replaces title/description/tags/images wholesale. The caller must
// already be verified as the owner.
func (s *ProjectService) Update(projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	if err := validation.ProjectTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validation.ProjectDescription(input.Description); err != nil {
		return nil, err
	}

	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.FindByIDs(input.TagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}

	project.Title = input.Title
	project.Description = input.Description
	project.Category = input.Category

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if err := s.projectRepo.ReplaceTags(project, tags); err != nil {
		return nil, fmt.Errorf("failed to update tags: %w", err)
	}
	if err := s.projectRepo.ReplaceImages(project.ID, input.Images); err != nil {
		return nil, fmt.Errorf("failed to update images: %w", err)
	}

	return s.Get(project.ID)
}

// Delete removes a project and everything attached to it.
func (s *ProjectService) Delete(projectID uint64) error {
	if _, err := s.Get(projectID); err != nil {
		return err
	}
	return s.projectRepo.Delete(projectID)
}

// AddReview attaches a review to a project. The project owner cannot review
// their own project, and a user reviews a given project at most once.
func (s *ProjectService) AddReview(projectID, userID uint64, reviewText, rating string) (*models.Review, error) {
	if err := validation.ReviewText(reviewText); err != nil {
		return nil, err
	}
	ratingValue, err := validation.Rating(rating)
	if err != nil {
		return nil, err
	}

	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}

	if project.OwnerID == userID {
		return nil, ErrOwnerCannotReview
	}

	if _, err := s.projectRepo.FindReviewByUserAndProject(userID, projectID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	review := &models.Review{
		UserID:    userID,
		ProjectID: projectID,
		Review:    reviewText,
		Rating:    ratingValue,
	}

	if err := s.projectRepo.AddReview(review); err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	return review, nil
}

// RemoveReview deletes a review. Only the author may remove it, unless the
// caller is an admin.
func (s *ProjectService) RemoveReview(reviewID, callerID uint64, callerIsAdmin bool) error {
	review, err := s.projectRepo.FindReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to find review: %w", err)
	}

	if review.UserID != callerID && !callerIsAdmin {
		return ErrNotReviewAuthor
	}

	return s.projectRepo.DeleteReview(reviewID)
}

// CallerIsAdmin reports whether the user has the admin flag set.
func (s *ProjectService) CallerIsAdmin(userID uint64) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find user: %w", err)
	}
	return user.IsAdmin, nil
}

// AddContributor associates a user, resolved by username, with a project.
func (s *ProjectService) AddContributor(projectID uint64, username string) (*models.Contributor, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.ID == project.OwnerID {
		return nil, ErrOwnerAsContributor
	}

	if _, err := s.projectRepo.FindContributorByUserAndProject(user.ID, projectID); err == nil {
		return nil, ErrAlreadyContributor
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing contributor: %w", err)
	}

	contributor := &models.Contributor{
		UserID:    user.ID,
		ProjectID: projectID,
		Status:    models.ContributorActive,
	}

	if err := s.projectRepo.AddContributor(contributor); err != nil {
		return nil, fmt.Errorf("failed to add contributor: %w", err)
	}
	contributor.User = *user

	return contributor, nil
}

// RemoveContributor detaches a contributor row from a project.
func (s *ProjectService) RemoveContributor(projectID, contributorID uint64) error {
	contributor, err := s.projectRepo.FindContributorByID(contributorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContributorNotFound
		}
		return fmt.Errorf("failed to find contributor: %w", err)
	}

	if contributor.ProjectID != projectID {
		return ErrContributorNotFound
	}

	return s.projectRepo.DeleteContributor(projectID, contributorID)
}
