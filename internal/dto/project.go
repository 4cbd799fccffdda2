package dto

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/revxlabs/revx/internal/models"
)

// Envelope is the standard success body: {status, message, data}. Auth
// responses additionally carry the token at the top level.
type Envelope struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Count     *int        `json:"count,omitempty"`
	AuthToken string      `json:"auth_token,omitempty"`
}

// Success wraps data in a success envelope
func Success(message string, data interface{}) Envelope {
	return Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

// TagDTO represents a catalog tag in API responses
type TagDTO struct {
	TagID   uint64 `json:"tag_id"`
	TagName string `json:"tag_name"`
}

// ReviewDTO represents a review with denormalized reviewer display fields.
// Rating is string-encoded on the wire.
type ReviewDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	ProjectID uint64    `json:"project_id"`
	Review    string    `json:"review"`
	Rating    string    `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	Avatar    *string   `json:"avatar,omitempty"`
}

// ContributorDTO represents a contributor with denormalized display fields
type ContributorDTO struct {
	ID        uint64                   `json:"id"`
	UserID    uint64                   `json:"user_id"`
	ProjectID uint64                   `json:"project_id"`
	Status    models.ContributorStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
	Username  string                   `json:"username,omitempty"`
	FullName  string                   `json:"full_name,omitempty"`
	Avatar    *string                  `json:"avatar,omitempty"`
}

// ProjectDTO represents a fully loaded project in API responses
type ProjectDTO struct {
	ID           uint64           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Category     *string          `json:"category,omitempty"`
	OwnerID      uint64           `json:"owner_id"`
	CreatedAt    time.Time        `json:"created_at"`
	Owner        *UserDTO         `json:"owner,omitempty"`
	Tags         []TagDTO         `json:"tags"`
	Images       []string         `json:"images"`
	Reviews      []ReviewDTO      `json:"reviews"`
	Contributors []ContributorDTO `json:"contributors"`
	AvgRating    *float64         `json:"avg_rating,omitempty"`
}

// AdminProjectDTO is the admin listing shape: essentials plus owner username.
type AdminProjectDTO struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	OwnerID       uint64    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
	AvgRating     float64   `json:"avg_rating"`
}

// ToTagDTO converts a Tag model to TagDTO
func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		TagID:   tag.ID,
		TagName: tag.Name,
	}
}

// ToReviewDTO converts a Review model to ReviewDTO
func ToReviewDTO(review models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:        review.ID,
		UserID:    review.UserID,
		ProjectID: review.ProjectID,
		Review:    review.Review,
		Rating:    strconv.Itoa(review.Rating),
		CreatedAt: review.CreatedAt,
	}

	// Denormalize reviewer display fields if preloaded
	if review.User.ID != 0 {
		dto.Username = review.User.Username
		dto.FullName = review.User.FullName
		dto.Avatar = review.User.Avatar
	}

	return dto
}

// ToContributorDTO converts a Contributor model to ContributorDTO
func ToContributorDTO(contributor models.Contributor) ContributorDTO {
	dto := ContributorDTO{
		ID:        contributor.ID,
		UserID:    contributor.UserID,
		ProjectID: contributor.ProjectID,
		Status:    contributor.Status,
		CreatedAt: contributor.CreatedAt,
	}

	if contributor.User.ID != 0 {
		dto.Username = contributor.User.Username
		dto.FullName = contributor.User.FullName
		dto.Avatar = contributor.User.Avatar
	}

	return dto
}

// AverageRating returns the arithmetic mean of the reviews' ratings rounded
// to one decimal, or nil when there are no reviews.
func AverageRating(reviews []models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return &avg
}

// ToProjectDTO converts a fully loaded Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:           project.ID,
		Title:        project.Title,
		Description:  project.Description,
		Category:     project.Category,
		OwnerID:      project.OwnerID,
		CreatedAt:    project.CreatedAt,
		Tags:         make([]TagDTO, len(project.Tags)),
		Images:       make([]string, 0, len(project.Images)),
		Reviews:      make([]ReviewDTO, len(project.Reviews)),
		Contributors: make([]ContributorDTO, len(project.Contributors)),
		AvgRating:    AverageRating(project.Reviews),
	}

	if project.Owner.ID != 0 {
		owner := ToUserDTO(project.Owner)
		dto.Owner = &owner
	}

	for i, tag := range project.Tags {
		dto.Tags[i] = ToTagDTO(tag)
	}

	// Images keep their stored ordering
	images := make([]models.ProjectImage, len(project.Images))
	copy(images, project.Images)
	sort.SliceStable(images, func(i, j int) bool { return images[i].Position < images[j].Position })
	for _, img := range images {
		dto.Images = append(dto.Images, img.ImageLink)
	}

	for i, review := range project.Reviews {
		dto.Reviews[i] = ToReviewDTO(review)
	}

	for i, contributor := range project.Contributors {
		dto.Contributors[i] = ToContributorDTO(contributor)
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}
