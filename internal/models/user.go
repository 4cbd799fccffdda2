package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	FullName     string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Bio          *string        `gorm:"type:text" json:"bio,omitempty"`
	Avatar       *string        `gorm:"type:varchar(512)" json:"avatar,omitempty"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Projects      []Project     `gorm:"foreignKey:OwnerID" json:"-"`
	Reviews       []Review      `gorm:"foreignKey:UserID" json:"-"`
	Contributions []Contributor `gorm:"foreignKey:UserID" json:"-"`
}
