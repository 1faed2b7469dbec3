package util

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sandra-backend/config"
	"sandra-backend/model"
)

// InitDB creates the database if needed, migrates the schema and configures the pool.
func InitDB(cfg config.Database, logger *zap.Logger) (*gorm.DB, error) {
	// Bootstrap through the maintenance database so a fresh server works out of the box.
	maintenanceDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Port, cfg.SSLMode)

	tempDB, err := gorm.Open(postgres.Open(maintenanceDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres instance: %w", err)
	}

	err = ensureDatabase(tempDB, cfg.Name, logger)
	if sqlDB, dbErr := tempDB.DB(); dbErr == nil {
		sqlDB.Close()
	}
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to application database: %w", err)
	}

	logger.Info("running AutoMigrate")
	if err := db.AutoMigrate(&model.Config{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	postgresDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying DB object: %w", err)
	}
	postgresDB.SetMaxOpenConns(50)
	postgresDB.SetMaxIdleConns(50)
	// Recycle connections to avoid stale connection errors
	postgresDB.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("database connected, migrated, and pool configured")
	return db, nil
}

// ensureDatabase creates name on the server behind db unless it already exists.
func ensureDatabase(db *gorm.DB, name string, logger *zap.Logger) error {
	var exists bool
	err := db.Raw("SELECT EXISTS(SELECT datname FROM pg_catalog.pg_database WHERE datname = ?)", name).Scan(&exists).Error
	if err != nil {
		return fmt.Errorf("check database %s: %w", name, err)
	}
	if exists {
		return nil
	}

	logger.Info("database not found, creating", zap.String("database", name))
	if err := db.Exec("CREATE DATABASE " + quoteIdent(name)).Error; err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	return nil
}

// quoteIdent quotes a postgres identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
