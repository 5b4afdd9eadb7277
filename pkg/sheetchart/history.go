package sheetchart

import (
	"sync"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

// Ledger is an append-only log of ingestion snapshots.
// Entries are never edited or removed. It is safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	entries []models.HistoryEntry
	lastID  uint64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends a snapshot of ds and returns it. IDs start at 1 and
// strictly increase, independent of the clock.
func (l *Ledger) Record(ds *models.Dataset) models.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastID++
	entry := models.HistoryEntry{
		ID:          l.lastID,
		FileName:    ds.FileName(),
		IngestedAt:  ds.IngestedAt(),
		RowCount:    ds.RowCount(),
		ColumnCount: ds.ColumnCount(),
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns a copy of all entries, oldest first.
func (l *Ledger) Entries() []models.HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
