package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
)

// BaseModel holds the common columns of relational tables
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entity is implemented by pointers to every type stored in the document store
type Entity[T any] interface {
	*T
	SetID(id string)
}

// FromRecord decodes a stored document into an entity and sets its id.
func FromRecord[T any, PT Entity[T]](r docstore.Record) (T, error) {
	var v T
	b, err := json.Marshal(r.Fields)
	if err != nil {
		return v, fmt.Errorf("encode %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", r.ID, err)
	}
	PT(&v).SetID(r.ID)
	return v, nil
}

// FromRecords decodes a list of documents. Documents that cannot be decoded are returned
// separately so callers can report them without losing the rest of the list.
func FromRecords[T any, PT Entity[T]](records []docstore.Record) ([]T, []error) {
	out := make([]T, 0, len(records))
	var errs []error
	for _, r := range records {
		v, err := FromRecord[T, PT](r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errs
}

// ToFields flattens an entity into document fields. The id and null values are dropped.
func ToFields(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	delete(fields, "id")
	for k, val := range fields {
		if val == nil {
			delete(fields, k)
		}
	}
	return fields, nil
}
