package sheetchart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"golang.org/x/sync/semaphore"
)

// Decoder turns uploaded spreadsheet bytes into ordered rows.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader) ([]models.Row, error)
}

// Session holds the current dataset and chart configuration together with
// the history ledger.
//
// At most one ingestion runs at a time, and a result whose request was
// issued before the currently applied one is discarded, so a slow upload
// can never overwrite a newer dataset.
type Session struct {
	id       string
	decoder  Decoder
	ledger   *Ledger
	opts     SessionOptions
	log      *slog.Logger
	inflight *semaphore.Weighted

	mu         sync.Mutex
	current    *models.Dataset
	config     models.ChartConfig
	lastSeq    uint64
	appliedSeq uint64
}

// NewSession creates a session reading uploads with decoder.
func NewSession(decoder Decoder, opts SessionOptions) *Session {
	opts = opts.withDefaults()
	id := uuid.NewString()
	return &Session{
		id:       id,
		decoder:  decoder,
		ledger:   NewLedger(),
		opts:     opts,
		log:      opts.Logger.With(slog.String("session_id", id)),
		inflight: semaphore.NewWeighted(1),
		config: models.ChartConfig{
			Kind:  opts.Kind,
			Title: opts.Title,
		},
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Ingest decodes r and makes the result the current dataset.
//
// On success the dataset is recorded in the ledger and the axes reset to
// its first two columns. On any failure the current dataset, configuration
// and ledger are left untouched.
func (s *Session) Ingest(ctx context.Context, fileName string, r io.Reader) (*models.Dataset, error) {
	return s.ingest(ctx, s.nextSeq(), fileName, r)
}

// IngestFile opens path and ingests it under its base name.
func (s *Session) IngestFile(ctx context.Context, path string) (*models.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer file.Close()

	return s.Ingest(ctx, filepath.Base(path), file)
}

func (s *Session) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeq++
	return s.lastSeq
}

func (s *Session) ingest(ctx context.Context, seq uint64, fileName string, r io.Reader) (*models.Dataset, error) {
	log := s.log.With(slog.String("file_name", fileName), slog.Uint64("request_seq", seq))

	if err := s.acquire(ctx); err != nil {
		log.WarnContext(ctx, "ingestion not started", slog.String("error", err.Error()))
		return nil, err
	}
	defer s.inflight.Release(1)

	rows, err := s.decoder.Decode(ctx, r)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.WarnContext(ctx, "ingestion cancelled", slog.String("error", err.Error()))
			return nil, err
		}
		log.ErrorContext(ctx, "decode failed", slog.String("error", err.Error()))
		return nil, NewDecodeError(fileName, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.appliedSeq {
		log.WarnContext(ctx, "discarding stale ingestion", slog.Uint64("applied_seq", s.appliedSeq))
		return nil, ErrStaleIngestion
	}

	ds := buildAt(rows, fileName, s.opts.Now())
	entry := s.ledger.Record(ds)
	s.current = ds
	s.appliedSeq = seq
	s.resetAxesLocked()

	log.InfoContext(ctx, "dataset ingested",
		slog.Uint64("history_id", entry.ID),
		slog.Int("row_count", entry.RowCount),
		slog.Int("column_count", entry.ColumnCount))

	return ds, nil
}

func (s *Session) acquire(ctx context.Context) error {
	if s.opts.Policy == PolicyQueue {
		return s.inflight.Acquire(ctx, 1)
	}
	if !s.inflight.TryAcquire(1) {
		return ErrIngestionInProgress
	}
	return nil
}

// resetAxesLocked points the axes at the first two columns of the current
// dataset, keeping kind and title.
func (s *Session) resetAxesLocked() {
	cols := ColumnsOf(s.current)
	s.config.XColumn, s.config.YColumn = "", ""
	if len(cols) > 0 {
		s.config.XColumn = cols[0]
	}
	if len(cols) > 1 {
		s.config.YColumn = cols[1]
	}
}

// Current returns the current dataset, or nil before the first ingestion.
func (s *Session) Current() *models.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Config returns the current chart configuration.
func (s *Session) Config() models.ChartConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Columns returns the current dataset's columns.
func (s *Session) Columns() []string {
	return ColumnsOf(s.Current())
}

// SetKind changes the chart kind.
func (s *Session) SetKind(kind models.ChartKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidChartKind, kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Kind = kind
	return nil
}

// SetAxes selects the category and value columns. Names that are not
// columns of the current dataset are kept and project to an empty series.
func (s *Session) SetAxes(xColumn, yColumn string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.XColumn = xColumn
	s.config.YColumn = yColumn
}

// SetTitle changes the chart title.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Title = title
}

// Project returns the series for the current dataset and configuration.
func (s *Session) Project() models.ChartSeries {
	s.mu.Lock()
	ds, cfg := s.current, s.config
	s.mu.Unlock()
	return ProjectSeries(ds, cfg, s.opts.Palette)
}

// History returns the ledger entries, oldest first.
func (s *Session) History() []models.HistoryEntry {
	return s.ledger.Entries()
}

// Ledger returns the session's history ledger.
func (s *Session) Ledger() *Ledger {
	return s.ledger
}
