package kvstore

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
)

// GormStore persists entries as rows in the config_entries table.
// Conditions go through gorm's clause builders so column quoting and
// upserts stay valid on every wired driver (sqlite, mysql, postgres).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(key string) (string, error) {
	var entry models.ConfigEntry
	err := s.db.Where(map[string]any{"key": key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (s *GormStore) Set(key, value string) error {
	entry := models.ConfigEntry{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormStore) Delete(key string) error {
	return s.db.Where(map[string]any{"key": key}).Delete(&models.ConfigEntry{}).Error
}

func (s *GormStore) Keys(prefix string) ([]string, error) {
	var keys []string
	err := s.db.Model(&models.ConfigEntry{}).
		Where(clause.Like{Column: clause.Column{Name: "key"}, Value: prefix + "%"}).
		Pluck("key", &keys).Error
	if err != nil {
		return nil, err
	}
	// LIKE treats % and _ as wildcards; re-check for a literal prefix
	// so such keys never over-match.
	matched := keys[:0]
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			matched = append(matched, k)
		}
	}
	return matched, nil
}
