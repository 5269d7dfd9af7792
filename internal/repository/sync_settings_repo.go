package repository

import (
	"errors"
	"time"

	"go-resell-sync/internal/model"

	"gorm.io/gorm"
)

type SyncSettingsRepository interface {
	// Get returns the singleton settings row, creating it on first use.
	Get() (*model.SyncSettings, error)
	// TouchLastSync records the completion time of a pull sync.
	TouchLastSync(t time.Time) error
}

type syncSettingsRepo struct {
	db *gorm.DB
}

func NewSyncSettingsRepo(db *gorm.DB) SyncSettingsRepository {
	return &syncSettingsRepo{db}
}

func (r *syncSettingsRepo) Get() (*model.SyncSettings, error) {
	var settings model.SyncSettings
	err := r.db.Order("created_at ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.SyncSettings{Active: true}
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	return &settings, err
}

func (r *syncSettingsRepo) TouchLastSync(t time.Time) error {
	settings, err := r.Get()
	if err != nil {
		return err
	}
	return r.db.Model(settings).Update("last_sync_at", t).Error
}
