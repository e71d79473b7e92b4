package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"invoicehub/internal/models"
)

// Migrate ensures the invoice and user tables exist.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Invoice{},
		&models.User{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
