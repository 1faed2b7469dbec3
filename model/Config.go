package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Config is a runtime key/value setting. Deleting stamps DeletedAt, so Key is only unique among live rows.
type Config struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string         `gorm:"size:255;not null;uniqueIndex:idx_configs_key_active,where:deleted_at IS NULL" json:"key"`
	Value     string         `gorm:"type:text;not null;default:''" json:"value"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (c *Config) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
