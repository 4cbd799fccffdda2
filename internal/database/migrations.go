package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Project indexes for listing and ownership checks
		{"projects", "idx_projects_owner_id", "owner_id"},
		{"projects", "idx_projects_created_at", "created_at"},

		// Review indexes for per-project aggregation
		{"reviews", "idx_reviews_project_id", "project_id"},
		{"reviews", "idx_reviews_user_id", "user_id"},

		// Contributor lookups
		{"contributors", "idx_contributors_project_id", "project_id"},
		{"contributors", "idx_contributors_user_id", "user_id"},

		// Image ordering per project
		{"project_images", "idx_project_images_project_id", "project_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("created index")
	}

	return nil
}
