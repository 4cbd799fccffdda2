package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"not null;index;uniqueIndex:idx_reviews_user_project" json:"user_id"`
	ProjectID uint64         `gorm:"not null;index;uniqueIndex:idx_reviews_user_project" json:"project_id"`
	Review    string         `gorm:"type:text;not null" json:"review"`
	Rating    int            `gorm:"not null" json:"rating"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
