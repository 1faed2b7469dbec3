package service

import (
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sandra-backend/dto"
	"sandra-backend/model"
	"sandra-backend/repository"
	"sandra-backend/util"
)

// FeaturePrefix marks config rows that are exposed as request features.
const FeaturePrefix = "feature."

var (
	ErrConfigNotFound = errors.New("config not found")
	ErrConfigKeyTaken = errors.New("config key already exists")
)

const featuresCacheKey = "features"

type ConfigService struct {
	repo   repository.ConfigRepository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewConfigService caches key lookups and the feature map for ttl. Any write flushes the cache.
func NewConfigService(repo repository.ConfigRepository, ttl time.Duration, logger *zap.Logger) *ConfigService {
	return &ConfigService{
		repo:   repo,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func (s *ConfigService) List() ([]model.Config, error) {
	return s.repo.List()
}

func (s *ConfigService) Get(id uuid.UUID) (*model.Config, error) {
	cfg, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConfigNotFound
	}
	return cfg, err
}

func (s *ConfigService) GetByKey(key string) (*model.Config, error) {
	cacheKey := "key:" + key
	if cached, ok := s.cache.Get(cacheKey); ok {
		cfg := cached.(model.Config)
		return &cfg, nil
	}

	cfg, err := s.repo.GetByKey(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(cacheKey, *cfg)
	return cfg, nil
}

// Set creates the key or updates its value in place.
func (s *ConfigService) Set(key, value string) (*model.Config, error) {
	cfg, err := s.repo.GetByKey(key)
	switch {
	case err == nil:
		cfg.Value = value
		err = s.repo.Update(cfg)
	case errors.Is(err, gorm.ErrRecordNotFound):
		cfg = &model.Config{Key: key, Value: value}
		err = s.repo.Create(cfg)
	default:
		return nil, err
	}

	if err != nil {
		// Another writer created the same key between our read and insert.
		if util.IsDuplicateKeyError(err) {
			return nil, ErrConfigKeyTaken
		}
		return nil, err
	}

	s.cache.Flush()
	s.logger.Info("config set", zap.String("key", key), zap.String("id", cfg.ID.String()))
	return cfg, nil
}

func (s *ConfigService) Delete(id uuid.UUID) error {
	cfg, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(cfg.ID); err != nil {
		return err
	}

	s.cache.Flush()
	s.logger.Info("config deleted", zap.String("key", cfg.Key), zap.String("id", cfg.ID.String()))
	return nil
}

// Features returns every "feature.*" row keyed by the name after the prefix.
func (s *ConfigService) Features() (dto.Features, error) {
	if cached, ok := s.cache.Get(featuresCacheKey); ok {
		return maps.Clone(cached.(dto.Features)), nil
	}

	rows, err := s.repo.ListByPrefix(FeaturePrefix)
	if err != nil {
		return nil, err
	}

	features := make(dto.Features, len(rows))
	for _, row := range rows {
		features[strings.TrimPrefix(row.Key, FeaturePrefix)] = row.Value
	}

	s.cache.SetDefault(featuresCacheKey, features)
	return maps.Clone(features), nil
}
