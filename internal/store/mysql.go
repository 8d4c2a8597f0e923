package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
)

// Blob is one stored collection row: the storage key plus the JSON array.
// The whole-collection write discipline is kept even on MySQL so all three
// drivers share the same last-write-wins semantics.
type Blob struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     []byte    `gorm:"type:longblob"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable across GORM naming strategies.
func (Blob) TableName() string {
	return "storage_blobs"
}

// MySQLStore keeps the collection as one blob row via GORM.
type MySQLStore struct {
	db  *gorm.DB
	key string
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// NewMySQLStore creates a MySQL-backed store over db, migrating the blob
// table if needed.
func NewMySQLStore(db *gorm.DB, key string) (*MySQLStore, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return &MySQLStore{db: db, key: key}, nil
}

// GetAll reads the collection row. A missing row or query failure degrades
// to an empty collection.
func (s *MySQLStore) GetAll(ctx context.Context) ([]model.User, error) {
	var blob Blob
	if err := s.db.WithContext(ctx).Where("`key` = ?", s.key).First(&blob).Error; err != nil {
		return []model.User{}, nil
	}
	return Decode(blob.Value), nil
}

// ReplaceAll upserts the full collection into the blob row.
func (s *MySQLStore) ReplaceAll(ctx context.Context, users []model.User) error {
	data, err := Encode(users)
	if err != nil {
		return err
	}
	blob := Blob{Key: s.key, Value: data, UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&blob).Error; err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	return nil
}
