package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/revxlabs/revx/internal/database"
	"github.com/revxlabs/revx/internal/models"
)

// projectPreloads are the associations a fully loaded project carries.
var projectPreloads = []string{
	"Owner",
	"Tags",
	"Images",
	"Reviews",
	"Reviews.User",
	"Contributors",
	"Contributors.User",
}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) withPreloads() *gorm.DB {
	query := r.db
	for _, p := range projectPreloads {
		query = query.Preload(p)
	}
	return query
}

// Create creates a new project with its tag links and images
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project fully loaded
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.withPreloads().First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects fully loaded, in creation order. The filter
// engine on the client side relies on this order being stable.
func (r *GormProjectRepository) List() ([]models.Project, error) {
	var projects []models.Project
	if err := r.withPreloads().Order("projects.created_at ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByOwner retrieves the projects owned by a user, fully loaded
func (r *GormProjectRepository) ListByOwner(ownerID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.withPreloads().
		Where("projects.owner_id = ?", ownerID).
		Order("projects.created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListPage retrieves projects with owner and reviews only (admin view)
func (r *GormProjectRepository) ListPage(limit, offset int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Preload("Owner").
		Preload("Reviews").
		Order("projects.created_at DESC").
		Scopes(database.Paginate(limit, offset)).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update persists title/description/category changes
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Model(project).Updates(map[string]interface{}{
		"title":       project.Title,
		"description": project.Description,
		"category":    project.Category,
	}).Error
}

// ReplaceTags replaces the project's tag associations wholesale
func (r *GormProjectRepository) ReplaceTags(project *models.Project, tags []models.Tag) error {
	return r.db.Model(project).Association("Tags").Replace(tags)
}

// ReplaceImages replaces the project's image rows wholesale, keeping order
func (r *GormProjectRepository) ReplaceImages(projectID uint64, links []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}

		for i, link := range links {
			image := models.ProjectImage{
				ProjectID: projectID,
				ImageLink: link,
				Position:  i,
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a project and its dependent rows in one transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Contributor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_tags WHERE project_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// Count counts all projects
func (r *GormProjectRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}

// CountSince counts projects created at or after the given time
func (r *GormProjectRepository) CountSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}

// AddReview creates a review
func (r *GormProjectRepository) AddReview(review *models.Review) error {
	return r.db.Create(review).Error
}

// FindReviewByID finds a review by ID
func (r *GormProjectRepository) FindReviewByID(id uint64) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// FindReviewByUserAndProject finds a user's review on a project
func (r *GormProjectRepository) FindReviewByUserAndProject(userID, projectID uint64) (*models.Review, error) {
	var review models.Review
	err := r.db.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review
func (r *GormProjectRepository) DeleteReview(id uint64) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// CountReviews counts all reviews
func (r *GormProjectRepository) CountReviews() (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Count(&count).Error
	return count, err
}

// AddContributor creates a contributor row
func (r *GormProjectRepository) AddContributor(contributor *models.Contributor) error {
	return r.db.Create(contributor).Error
}

// FindContributorByID finds a contributor row by ID
func (r *GormProjectRepository) FindContributorByID(id uint64) (*models.Contributor, error) {
	var contributor models.Contributor
	if err := r.db.First(&contributor, id).Error; err != nil {
		return nil, err
	}
	return &contributor, nil
}

// FindContributorByUserAndProject finds a user's contributor row on a project
func (r *GormProjectRepository) FindContributorByUserAndProject(userID, projectID uint64) (*models.Contributor, error) {
	var contributor models.Contributor
	err := r.db.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&contributor).Error
	if err != nil {
		return nil, err
	}
	return &contributor, nil
}

// DeleteContributor removes a contributor row from a project
func (r *GormProjectRepository) DeleteContributor(projectID, contributorID uint64) error {
	return r.db.
		Where("project_id = ?", projectID).
		Delete(&models.Contributor{}, contributorID).Error
}
