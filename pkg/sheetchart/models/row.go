// Package models defines data structures for spreadsheet ingestion and chart projection.
package models

import (
	"bytes"
	"encoding/json"
)

// Row represents a single decoded spreadsheet row as an ordered mapping
// from column name to raw cell value.
//
// Cell values may be a string, any Go integer or float type, a bool,
// a time.Time, or nil. Keys keep the order in which they were set.
type Row struct {
	keys  []string
	cells map[string]interface{}
}

// NewRow creates a Row from alternating key/value pairs.
// It panics if a key is not a string or a value is missing.
func NewRow(kv ...interface{}) Row {
	if len(kv)%2 != 0 {
		panic("models: NewRow requires key/value pairs")
	}
	var r Row
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("models: NewRow key must be a string")
		}
		r.Set(key, kv[i+1])
	}
	return r
}

// Set stores value under key. A new key is appended to the key order;
// an existing key keeps its position.
func (r *Row) Set(key string, value interface{}) {
	if r.cells == nil {
		r.cells = make(map[string]interface{})
	}
	if _, exists := r.cells[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.cells[key] = value
}

// Get returns the cell stored under key and whether it is present.
func (r Row) Get(key string) (interface{}, bool) {
	v, ok := r.cells[key]
	return v, ok
}

// Keys returns a copy of the row's keys in insertion order.
func (r Row) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Clone returns a deep copy of the row's keys and cells.
func (r Row) Clone() Row {
	if r.cells == nil {
		return Row{}
	}
	c := Row{
		keys:  make([]string, len(r.keys)),
		cells: make(map[string]interface{}, len(r.cells)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.cells {
		c.cells[k] = v
	}
	return c
}

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return len(r.keys)
}

// MarshalJSON encodes the row as a JSON object preserving key order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.cells[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
