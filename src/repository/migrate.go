package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the SQLite tables backing the repositories
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRow{}, &postRow{}); err != nil {
		return fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return nil
}
