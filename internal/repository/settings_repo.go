package repository

import (
	"context"

	"github.com/wontivero/POS-2025-sub000/internal/model"

	"gorm.io/gorm"
)

// settingsRowID: app_settings is a single-row table.
const settingsRowID = 1

type SettingsRepository interface {
	Get(ctx context.Context) (*model.AppSettings, error)
	Save(ctx context.Context, s *model.AppSettings) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

func (r *settingsRepo) Get(ctx context.Context) (*model.AppSettings, error) {
	var s model.AppSettings
	err := r.db.WithContext(ctx).First(&s, settingsRowID).Error
	return &s, err
}

func (r *settingsRepo) Save(ctx context.Context, s *model.AppSettings) error {
	s.ID = settingsRowID
	return r.db.WithContext(ctx).Save(s).Error
}
