package dbhelper

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wardrobeapi/models"
	"wardrobeapi/services"
)

// SetupDB opens the usage ledger database from DB_* env vars.
func SetupDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(
		fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			services.GetEnv("DB_USERNAME", ""),
			services.GetEnv("DB_PASSWORD", ""),
			services.GetEnv("DB_HOST", ""),
			services.GetEnv("DB_PORT", "5432"),
			services.GetEnv("DB_NAME", ""),
			services.GetEnv("DB_SSLMODE", "disable"),
		),
	), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Minute * 5)

	if err := Migrate(db, &models.LLMUsage{}); err != nil {
		return nil, err
	}
	return db, nil
}

// SetupTestDB connects with local defaults for any DB_* var that is not set.
func SetupTestDB() (*gorm.DB, error) {
	defaults := map[string]string{
		"DB_USERNAME": "wardrobe",
		"DB_PASSWORD": "wardrobe",
		"DB_HOST":     "localhost",
		"DB_NAME":     "wardrobe",
		"DB_PORT":     "5432",
	}
	for key, value := range defaults {
		if _, ok := os.LookupEnv(key); !ok {
			os.Setenv(key, value)
		}
	}
	return SetupDB()
}
