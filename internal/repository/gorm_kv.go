package repository

import (
	"fmt"
	"time"

	"github.com/dustin/watchly-backend/internal/recommendation"
	"github.com/dustin/watchly-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is a generic persisted key-value row, used by the hidden-gems
// result cache
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     []byte    `gorm:"type:bytea"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName keeps the table name explicit rather than gorm-pluralized
func (KVEntry) TableName() string {
	return "kv_entries"
}

// gormKVStore implements generic key-value persistence over GORM
type gormKVStore struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMKVStore creates a new GORM-based key-value store
func NewGORMKVStore(db *gorm.DB, log *logger.Logger) recommendation.KVStore {
	return &gormKVStore{
		db:     db,
		logger: log.WithComponent("gorm-kv-store"),
	}
}

func (s *gormKVStore) Get(key string) ([]byte, error) {
	var entry KVEntry

	err := s.db.First(&entry, "key = ?", key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("key not found")
		}
		s.logger.Error("Database error reading key " + key + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return entry.Value, nil
}

func (s *gormKVStore) Set(key string, value []byte) error {
	entry := KVEntry{Key: key, Value: value}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		s.logger.Error("Failed to write key " + key + ": " + err.Error())
		return fmt.Errorf("failed to write key: %w", err)
	}

	return nil
}
