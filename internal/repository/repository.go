package repository

import (
	"time"

	"github.com/revxlabs/revx/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// ListPage retrieves users newest first with limit/offset
	ListPage(limit, offset int) ([]models.User, error)

	// Count counts all users
	Count() (int64, error)

	// CountSince counts users created at or after the given time
	CountSince(t time.Time) (int64, error)

	// DeleteCascade removes a user and everything they own in one transaction
	DeleteCascade(id uint64) error
}

// ProjectRepository defines the interface for project data access, including
// the reviews and contributors that hang off a project.
type ProjectRepository interface {
	// Create creates a new project with its tag links and images
	Create(project *models.Project) error

	// FindByID finds a project fully loaded (owner, tags, images,
	// reviews with reviewers, contributors with users)
	FindByID(id uint64) (*models.Project, error)

	// List retrieves all projects fully loaded, oldest first
	List() ([]models.Project, error)

	// ListByOwner retrieves the projects owned by a user, fully loaded
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// ListPage retrieves projects with owner and reviews only (admin view)
	ListPage(limit, offset int) ([]models.Project, error)

	// Update persists title/description/category changes
	Update(project *models.Project) error

	// ReplaceTags replaces the project's tag associations wholesale
	ReplaceTags(project *models.Project, tags []models.Tag) error

	// ReplaceImages replaces the project's image rows wholesale, keeping order
	ReplaceImages(projectID uint64, links []string) error

	// Delete removes a project and its dependent rows in one transaction
	Delete(id uint64) error

	// Count counts all projects
	Count() (int64, error)

	// CountSince counts projects created at or after the given time
	CountSince(t time.Time) (int64, error)

	// AddReview creates a review
	AddReview(review *models.Review) error

	// FindReviewByID finds a review by ID
	FindReviewByID(id uint64) (*models.Review, error)

	// FindReviewByUserAndProject finds a user's review on a project
	FindReviewByUserAndProject(userID, projectID uint64) (*models.Review, error)

	// DeleteReview removes a review
	DeleteReview(id uint64) error

	// CountReviews counts all reviews
	CountReviews() (int64, error)

	// AddContributor creates a contributor row
	AddContributor(contributor *models.Contributor) error

	// FindContributorByID finds a contributor row by ID
	FindContributorByID(id uint64) (*models.Contributor, error)

	// FindContributorByUserAndProject finds a user's contributor row on a project
	FindContributorByUserAndProject(userID, projectID uint64) (*models.Contributor, error)

	// DeleteContributor removes a contributor row from a project
	DeleteContributor(projectID, contributorID uint64) error
}

// TagRepository defines the interface for the tag catalog
type TagRepository interface {
	// List retrieves the full tag catalog
	List() ([]models.Tag, error)

	// FindByIDs retrieves the catalog tags matching the given ids; unknown
	// ids are simply absent from the result
	FindByIDs(ids []uint64) ([]models.Tag, error)
}
