package database

import (
	"gorm.io/gorm"
)

// Paginate applies limit/offset pagination to a GORM query
func Paginate(limit, offset int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}
