package domain

import (
	"time"

	"github.com/google/uuid"
)

// Batch groups the files of one ingestion run and the values they produced.
type Batch struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AreaID      int64     `db:"area_id" json:"area_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Origin      *string   `db:"origin" json:"origin,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// BatchFile tracks one uploaded file; counters are caller-driven as rows are
// processed, the core never parses files itself.
type BatchFile struct {
	ID        int64     `db:"id" json:"id"`
	BatchID   uuid.UUID `db:"batch_id" json:"batch_id"`
	Filename  string    `db:"filename" json:"filename"`
	FileType  string    `db:"file_type" json:"file_type"`
	Path      *string   `db:"path" json:"path,omitempty"`
	RowsOK    int       `db:"rows_ok" json:"rows_ok"`
	RowsError int       `db:"rows_error" json:"rows_error"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RowError is a per-row diagnostic record; row failures are data, not errors,
// and never roll back rows that already committed.
type RowError struct {
	ID        int64     `db:"id" json:"id"`
	FileID    int64     `db:"file_id" json:"file_id"`
	RowNumber int       `db:"row_number" json:"row_number"`
	Message   string    `db:"message" json:"message"`
	Payload   *string   `db:"payload" json:"payload,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
