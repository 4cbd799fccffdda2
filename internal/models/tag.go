package models

type Tag struct {
	ID   uint64 `gorm:"primarykey" json:"tag_id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"tag_name"`

	// Relations
	Projects []Project `gorm:"many2many:project_tags;" json:"-"`
}
