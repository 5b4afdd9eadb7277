package models

import (
	"encoding/json"
	"time"
)

// Dataset represents one successfully ingested spreadsheet.
//
// A Dataset is immutable once constructed: accessors return copies, and the
// column list is fixed from the first row at construction time.
type Dataset struct {
	fileName   string
	columns    []string
	rows       []Row
	ingestedAt time.Time
}

// NewDataset creates a Dataset. Columns and rows are deep-copied.
func NewDataset(fileName string, columns []string, rows []Row, ingestedAt time.Time) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{
		fileName:   fileName,
		columns:    cols,
		rows:       cloneRows(rows),
		ingestedAt: ingestedAt,
	}
}

// FileName is the display label of the uploaded file (no path).
func (d *Dataset) FileName() string { return d.fileName }

// IngestedAt is the time the dataset was built.
func (d *Dataset) IngestedAt() time.Time { return d.ingestedAt }

// Columns returns the ordered column names.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// HasColumn reports whether name is one of the dataset's columns.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Rows returns a copy of the ordered rows.
func (d *Dataset) Rows() []Row {
	return cloneRows(d.rows)
}

// Row returns a copy of the i-th row. It panics if i is out of range.
func (d *Dataset) Row(i int) Row { return d.rows[i].Clone() }

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int { return len(d.rows) }

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.columns) }

func cloneRows(rows []Row) []Row {
	rs := make([]Row, len(rows))
	for i, r := range rows {
		rs[i] = r.Clone()
	}
	return rs
}

type datasetJSON struct {
	FileName   string    `json:"file_name"`
	IngestedAt time.Time `json:"ingested_at"`
	Columns    []string  `json:"columns"`
	Rows       []Row     `json:"rows"`
}

// MarshalJSON encodes the dataset including its rows.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(datasetJSON{
		FileName:   d.fileName,
		IngestedAt: d.ingestedAt,
		Columns:    d.columns,
		Rows:       d.rows,
	})
}
