package jsonstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is the row a GormBackend stores each collection in.
type Document struct {
	Name      string `gorm:"primaryKey;size:64"`
	Body      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name regardless of gorm naming strategy.
func (Document) TableName() string {
	return "collections"
}

// GormBackend stores a document as one row of the collections table. It lets
// the service run against sqlite or postgres when no writable disk is available.
type GormBackend struct {
	db   *gorm.DB
	name string
}

var _ Backend = (*GormBackend)(nil)

// NewGormBackend returns a backend for the row identified by name.
// MigrateDocuments must have been run against db.
func NewGormBackend(db *gorm.DB, name string) *GormBackend {
	return &GormBackend{db: db, name: name}
}

// MigrateDocuments creates the collections table.
func MigrateDocuments(db *gorm.DB) error {
	return db.AutoMigrate(&Document{})
}

// Read returns the stored body. A missing row is reported through exists.
func (b *GormBackend) Read(ctx context.Context) ([]byte, bool, error) {
	var doc Document
	err := b.db.WithContext(ctx).Where("name = ?", b.name).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc.Body), true, nil
}

// Write upserts the row.
func (b *GormBackend) Write(ctx context.Context, data []byte) error {
	doc := Document{Name: b.name, Body: string(data), UpdatedAt: time.Now().UTC()}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(&doc).Error
}
