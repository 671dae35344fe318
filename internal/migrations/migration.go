package migrations

import (
	"burger_pos/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations creates or updates the closing archive tables. Existing
// closings are never dropped.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(
		&models.DailyClosing{},
		&models.ClosingEntry{},
	); err != nil {
		return err
	}

	log.Info("database migrations completed")
	return nil
}
