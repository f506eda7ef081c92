package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salamene/horoscope-backend/internal/models"
)

// SetupTestDB opens an in-memory SQLite database migrated with every model.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.SocialAccount{},
		&models.PaymentPlan{},
		&models.Transaction{},
		&models.Prediction{},
		&models.CompatibilityPair{},
		&models.AnalyticsEvent{},
		&models.SessionMetrics{},
		&models.Banner{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
