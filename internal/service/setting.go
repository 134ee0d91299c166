package service

import (
	"context"
	"fmt"

	"projectlog/internal/model"

	"gorm.io/gorm"
)

// SettingService reads and writes the admin-editable key/value table.
// Keys are fixed at seed time; only values change at runtime.
type SettingService struct{ db *gorm.DB }

func NewSettingService(db *gorm.DB) *SettingService { return &SettingService{db: db} }

func (s *SettingService) List(ctx context.Context) ([]model.AppSetting, error) {
	var out []model.AppSetting
	if err := s.db.WithContext(ctx).Order("`key`").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return out, nil
}

func (s *SettingService) Get(ctx context.Context, key string) (*model.AppSetting, error) {
	var setting model.AppSetting
	if err := s.db.WithContext(ctx).Where("`key` = ?", key).First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("setting %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("load setting: %w", err)
	}
	return &setting, nil
}

func (s *SettingService) Update(ctx context.Context, key, value string) error {
	setting, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	setting.Value = value
	if err := s.db.WithContext(ctx).Save(setting).Error; err != nil {
		return fmt.Errorf("update setting: %w", err)
	}
	return nil
}
