package dbhelper

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"wardrobeapi/models"
)

func SetupCleaner(db *gorm.DB) func() {
	return func() {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.LLMUsage{})
	}
}

func Migrate(db *gorm.DB, model interface{}) error {
	if err := db.AutoMigrate(model); err != nil {
		log.Printf("[DB] Error while migrating %T: %v", model, err)
		return fmt.Errorf("migrate %T: %w", model, err)
	}
	return nil
}
