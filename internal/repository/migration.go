package repository

import (
	"fmt"

	"chatboard/pkg/database"

	"gorm.io/gorm"
)

// InitSchema handles the database schema migration for the gorm-managed
// tables and verifies the columns the repositories rely on exist.
func InitSchema(db *gorm.DB) error {
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	required := map[string][]string{
		"users":    {"id", "email", "hashed_password", "nickname", "avatar_url"},
		"messages": {"id", "content", "timestamp", "sender_id"},
	}
	migrator := db.Migrator()
	for table, columns := range required {
		if !migrator.HasTable(table) {
			return fmt.Errorf("table %s is missing", table)
		}
		for _, column := range columns {
			if !migrator.HasColumn(table, column) {
				return fmt.Errorf("column %s.%s is missing", table, column)
			}
		}
	}
	return nil
}
