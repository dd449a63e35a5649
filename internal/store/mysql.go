package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// document is the single-table layout shared by the SQL backends: one
// row per record, the record itself as a JSON blob.
type document struct {
	Collection string `gorm:"primaryKey;size:64"`
	DocID      string `gorm:"primaryKey;size:128;column:doc_id"`
	Data       []byte `gorm:"type:json"`
}

func (document) TableName() string { return "documents" }

// GormStore persists documents through a gorm connection, normally
// MySQL. This is the hosted-backend variant.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Set(ctx context.Context, collection, id string, doc any) error {
	raw, err := encodeDoc(collection, doc)
	if err != nil {
		return err
	}
	row := document{Collection: collection, DocID: id, Data: raw}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var row document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return row.Data, nil
}

func (s *GormStore) GetAll(ctx context.Context, collection string) ([][]byte, error) {
	var rows []document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", collection, err)
	}
	all := make([][]byte, 0, len(rows))
	for _, row := range rows {
		all = append(all, row.Data)
	}
	return all, nil
}

func (s *GormStore) GetWhere(ctx context.Context, collection string, filter map[string]string) ([][]byte, error) {
	all, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	return filterDocs(all, filter)
}

func (s *GormStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	raw, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	merged, err := mergePatch(raw, patch)
	if err != nil {
		return err
	}
	if err := validateTimestamps(collection, merged); err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Model(&document{}).
		Where("collection = ? AND doc_id = ?", collection, id).
		Update("data", merged).Error
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&document{}).Error
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
