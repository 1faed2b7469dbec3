package repository

import (
	"strings"
	"time"

	"sandra-backend/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConfigRepository reads only live rows; Delete is a soft delete.
type ConfigRepository interface {
	List() ([]model.Config, error)
	ListByPrefix(prefix string) ([]model.Config, error)
	GetByID(id uuid.UUID) (*model.Config, error)
	GetByKey(key string) (*model.Config, error)
	Create(cfg *model.Config) error
	Update(cfg *model.Config) error
	Delete(id uuid.UUID) error
	PurgeDeleted(before time.Time) (int64, error)
}

type pgConfigRepo struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &pgConfigRepo{db: db}
}

func (r *pgConfigRepo) List() ([]model.Config, error) {
	var rows []model.Config
	if err := r.db.Order("key").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pgConfigRepo) ListByPrefix(prefix string) ([]model.Config, error) {
	var rows []model.Config
	if err := r.db.Where("key LIKE ?", escapeLike(prefix)+"%").Order("key").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pgConfigRepo) GetByID(id uuid.UUID) (*model.Config, error) {
	var c model.Config
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgConfigRepo) GetByKey(key string) (*model.Config, error) {
	var c model.Config
	if err := r.db.Where("key = ?", key).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgConfigRepo) Create(cfg *model.Config) error {
	return r.db.Create(cfg).Error
}

func (r *pgConfigRepo) Update(cfg *model.Config) error {
	return r.db.Save(cfg).Error
}

func (r *pgConfigRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Config{}, "id = ?", id).Error
}

func (r *pgConfigRepo) PurgeDeleted(before time.Time) (int64, error) {
	res := r.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Delete(&model.Config{})
	return res.RowsAffected, res.Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the prefix match literally under Postgres' default LIKE escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
