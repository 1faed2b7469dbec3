package seeder

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sandra-backend/model"
	"sandra-backend/service"
)

// DefaultConfigs are created on startup when no row, live or soft-deleted, holds the key.
var DefaultConfigs = []model.Config{
	{Key: "feature.otp_resend", Value: "true"},
	{Key: "feature.sandra", Value: "false"},
	{Key: service.SupportAddressKey, Value: "support@sandra.app"},
}

// SeedConfigs inserts missing defaults. A soft-deleted default stays deleted only until the
// daily purge removes the row; the next startup after that seeds it again.
func SeedConfigs(db *gorm.DB, logger *zap.Logger) {
	logger.Info("seeding configs")

	for _, cfg := range DefaultConfigs {
		row := cfg
		if err := db.Unscoped().Where(model.Config{Key: row.Key}).FirstOrCreate(&row).Error; err != nil {
			logger.Error("error seeding config", zap.String("key", row.Key), zap.Error(err))
		}
	}

	logger.Info("config seeding completed")
}
