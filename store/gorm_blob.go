package store

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is one persisted aggregate, keyed by its fixed key string.
type Blob struct {
	Key     string         `gorm:"primaryKey"`
	Payload datatypes.JSON `gorm:"not null"`
}

// GormBlobStore backs the BlobStore contract with a single blobs table.
// Every save replaces the whole row, matching the whole-blob atomicity of
// the file store.
type GormBlobStore struct {
	db *gorm.DB
}

func NewGormBlobStore(db *gorm.DB) (*GormBlobStore, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("%w: migrate blobs table: %v", ErrPersistence, err)
	}
	return &GormBlobStore{db: db}, nil
}

func (g *GormBlobStore) Load(key string) ([]byte, bool, error) {
	var blob Blob
	err := g.db.First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: read %s: %v", ErrPersistence, key, err)
	}
	return []byte(blob.Payload), true, nil
}

func (g *GormBlobStore) Save(key string, blob []byte) error {
	row := Blob{Key: key, Payload: datatypes.JSON(blob)}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, key, err)
	}
	return nil
}
