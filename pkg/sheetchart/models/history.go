package models

import "time"

// HistoryEntry is an immutable snapshot of one ingestion event.
type HistoryEntry struct {
	// ID is unique and strictly increasing within a ledger.
	ID uint64 `json:"id"`
	// FileName is the ingested file's display name.
	FileName string `json:"file_name"`
	// IngestedAt is the dataset construction time.
	IngestedAt time.Time `json:"ingested_at"`
	// RowCount is the number of data rows.
	RowCount int `json:"row_count"`
	// ColumnCount is the number of columns.
	ColumnCount int `json:"column_count"`
}
