// Package sqlite keeps the key/value store in a local SQLite file, the
// closest server-side stand-in for a browser's local storage.
package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type entry struct {
	Key   string `gorm:"primaryKey;column:entry_key"`
	Value string `gorm:"column:entry_value;not null"`
}

func (entry) TableName() string { return "kv_entries" }

// Store is a KVStore over a single SQLite table.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and migrates the table.
// Use "file::memory:?cache=shared" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e entry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite get: %w", err)
	}
	return []byte(e.Value), true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry{Key: key, Value: string(value)}).Error
	if err != nil {
		return fmt.Errorf("sqlite set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&entry{}).Error; err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
