// Package docstore provides a small document store (named collections of JSON objects) on top of gorm.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the document store contract consumed by the services.
type Store interface {
	ListAll(ctx context.Context, collection string) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Insert(ctx context.Context, collection string, fields map[string]interface{}) (string, error)
	UpdateFields(ctx context.Context, collection, id string, partial map[string]interface{}) error
	SetAtKey(ctx context.Context, collection, key string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	QueryEquals(ctx context.Context, collection, field string, value interface{}) ([]Record, error)
	Ping(ctx context.Context) error
}

// GormStore implements Store with one gorm table.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore creates a store over db. Call Migrate once before use.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Migrate creates or updates the documents table.
func (s *GormStore) Migrate() error {
	return s.DB.AutoMigrate(&Document{})
}

// 1 ListAll returns every document of a collection in insertion order.
func (s *GormStore) ListAll(ctx context.Context, collection string) ([]Record, error) {
	var docs []Document
	if err := s.DB.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id").
		Find(&docs).Error; err != nil {
		return nil, unavailable("list "+collection, err)
	}
	return toRecords(docs)
}

// 2 Get returns one document.
func (s *GormStore) Get(ctx context.Context, collection, id string) (Record, error) {
	doc, err := s.find(s.DB.WithContext(ctx), collection, id)
	if err != nil {
		return Record{}, err
	}
	return toRecord(doc)
}

// 3 Insert stores fields under a fresh id and returns that id.
func (s *GormStore) Insert(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	data, err := encode(fields)
	if err != nil {
		return "", err
	}

	doc := Document{
		Collection: collection,
		DocID:      uuid.NewString(),
		Data:       data,
	}
	if err := s.DB.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", unavailable("insert into "+collection, err)
	}
	return doc.DocID, nil
}

// 4 UpdateFields merges partial into an existing document; other fields are untouched.
func (s *GormStore) UpdateFields(ctx context.Context, collection, id string, partial map[string]interface{}) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.find(tx, collection, id)
		if err != nil {
			return err
		}

		fields, err := decode(doc.Data)
		if err != nil {
			return err
		}
		for k, v := range partial {
			fields[k] = v
		}

		data, err := encode(fields)
		if err != nil {
			return err
		}
		if err := tx.Model(&Document{}).
			Where("id = ?", doc.ID).
			Update("data", data).Error; err != nil {
			return unavailable("update "+collection+"/"+id, err)
		}
		return nil
	})
}

// 5 SetAtKey writes fields at a caller-chosen key, replacing any existing document there.
func (s *GormStore) SetAtKey(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	if key == "" {
		return fmt.Errorf("set %s: empty key", collection)
	}

	data, err := encode(fields)
	if err != nil {
		return err
	}

	doc := Document{
		Collection: collection,
		DocID:      key,
		Data:       data,
	}
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return unavailable("set "+collection+"/"+key, err)
	}
	return nil
}

// 6 Delete removes a document. Deleting an absent id is not an error.
func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	if err := s.DB.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&Document{}).Error; err != nil {
		return unavailable("delete "+collection+"/"+id, err)
	}
	return nil
}

// 7 QueryEquals returns documents whose top-level field equals value.
func (s *GormStore) QueryEquals(ctx context.Context, collection, field string, value interface{}) ([]Record, error) {
	var docs []Document
	if err := s.DB.WithContext(ctx).
		Where("collection = ?", collection).
		Where(datatypes.JSONQuery("data").Equals(value, field)).
		Order("id").
		Find(&docs).Error; err != nil {
		return nil, unavailable("query "+collection, err)
	}
	return toRecords(docs)
}

// Ping checks the database connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return unavailable("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *GormStore) find(db *gorm.DB, collection, id string) (Document, error) {
	var doc Document
	err := db.Where("collection = ? AND doc_id = ?", collection, id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Document{}, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return Document{}, unavailable("get "+collection+"/"+id, err)
	}
	return doc, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

func encode(fields map[string]interface{}) (datatypes.JSON, error) {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return datatypes.JSON(b), nil
}

func decode(data datatypes.JSON) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if len(data) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fields, nil
}

func toRecord(doc Document) (Record, error) {
	fields, err := decode(doc.Data)
	if err != nil {
		return Record{}, fmt.Errorf("%s/%s: %w", doc.Collection, doc.DocID, err)
	}
	return Record{ID: doc.DocID, Fields: fields}, nil
}

func toRecords(docs []Document) ([]Record, error) {
	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		r, err := toRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
