package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(100);not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	// Category predates the tag catalog and is kept for rows created before it.
	Category  *string        `gorm:"type:varchar(100)" json:"category,omitempty"`
	OwnerID   uint64         `gorm:"not null" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner        User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tags         []Tag          `gorm:"many2many:project_tags;" json:"tags,omitempty"`
	Images       []ProjectImage `gorm:"foreignKey:ProjectID" json:"images,omitempty"`
	Reviews      []Review       `gorm:"foreignKey:ProjectID" json:"reviews,omitempty"`
	Contributors []Contributor  `gorm:"foreignKey:ProjectID" json:"contributors,omitempty"`
}

type ProjectImage struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	ImageLink string    `gorm:"type:varchar(512);not null" json:"image_link"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
