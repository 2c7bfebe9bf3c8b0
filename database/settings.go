package database

import (
	"errors"

	"invoice-portal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsStore is the GORM-backed implementation of theme.SettingsStore.
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(key string) (string, bool, error) {
	var row models.Setting
	err := s.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (s *SettingsStore) Set(key, value string) error {
	row := models.Setting{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (s *SettingsStore) Delete(key string) error {
	return s.db.Delete(&models.Setting{}, "key = ?", key).Error
}
