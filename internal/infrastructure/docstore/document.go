package docstore

import (
	"time"

	"gorm.io/datatypes"
)

// Collection names used by the dashboard.
const (
	CollectionProperties   = "properties"
	CollectionRepairs      = "repairs"
	CollectionContractors  = "contractors"
	CollectionCertificates = "certificates"
	CollectionTasks        = "tasks"
)

// Document is one row of the generic documents table: a JSON object keyed by (collection, doc_id).
type Document struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement"`
	Collection string         `gorm:"size:64;not null;uniqueIndex:idx_collection_doc"`
	DocID      string         `gorm:"size:191;not null;uniqueIndex:idx_collection_doc"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name for Document
func (Document) TableName() string {
	return "documents"
}

// Record is a document as seen by callers: its id plus its fields.
type Record struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}
