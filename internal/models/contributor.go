package models

import (
	"time"

	"gorm.io/gorm"
)

type ContributorStatus string

const (
	ContributorActive  ContributorStatus = "active"
	ContributorRemoved ContributorStatus = "removed"
)

type Contributor struct {
	ID        uint64            `gorm:"primarykey" json:"id"`
	UserID    uint64            `gorm:"not null;index" json:"user_id"`
	ProjectID uint64            `gorm:"not null;index" json:"project_id"`
	Status    ContributorStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
