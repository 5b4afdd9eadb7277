package sheetchart

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetchart-go/internal/logging"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/parser"
	"github.com/xuri/excelize/v2"
)

var errMalformed = errors.New("malformed workbook")

// fakeDecoder returns rows keyed by the reader's content.
type fakeDecoder struct {
	sheets  map[string][]models.Row
	started chan struct{}
	release chan struct{}
}

func (d *fakeDecoder) Decode(ctx context.Context, r io.Reader) ([]models.Row, error) {
	if d.started != nil {
		d.started <- struct{}{}
	}
	if d.release != nil {
		select {
		case <-d.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	rows, ok := d.sheets[string(data)]
	if !ok {
		return nil, errMalformed
	}
	return rows, nil
}

func newTestSession(t *testing.T, dec Decoder, policy IngestPolicy) *Session {
	t.Helper()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return NewSession(dec, SessionOptions{
		Policy: policy,
		Logger: logging.Discard(),
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
}

func salesDecoder() *fakeDecoder {
	return &fakeDecoder{sheets: map[string][]models.Row{
		"sales": {
			models.NewRow("month", "Jan", "sales", "100"),
			models.NewRow("month", "Feb", "sales", "bad"),
		},
		"empty": nil,
		"wide": {
			models.NewRow("a", 1, "b", 2, "c", 3),
		},
		"single": {
			models.NewRow("only", 1),
		},
	}}
}

func TestSessionEndToEnd(t *testing.T) {
	s := newTestSession(t, salesDecoder(), PolicyReject)

	ds, err := s.Ingest(context.Background(), "sales.xlsx", strings.NewReader("sales"))
	require.NoError(t, err)
	assert.Same(t, ds, s.Current())
	assert.Equal(t, []string{"month", "sales"}, s.Columns())

	cfg := s.Config()
	assert.Equal(t, models.ChartBar, cfg.Kind)
	assert.Equal(t, "month", cfg.XColumn)
	assert.Equal(t, "sales", cfg.YColumn)

	series := s.Project()
	assert.Equal(t, []models.ChartSeriesPoint{
		{Category: "Jan", Value: 100},
		{Category: "Feb", Value: 0},
	}, series.Points)
	assert.NotEmpty(t, series.Palette)
	assert.NotEmpty(t, s.ID())
}

func TestSessionEmptySheet(t *testing.T) {
	s := newTestSession(t, salesDecoder(), PolicyReject)

	ds, err := s.Ingest(context.Background(), "empty.xlsx", strings.NewReader("empty"))
	require.NoError(t, err)
	assert.Empty(t, ds.Columns())
	assert.Empty(t, s.Project().Points)

	s.SetAxes("anything", "else")
	assert.Empty(t, s.Project().Points)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, 0, history[0].RowCount)
	assert.Equal(t, 0, history[0].ColumnCount)
}

func TestSessionDecodeFailureLeavesStateUntouched(t *testing.T) {
	s := newTestSession(t, salesDecoder(), PolicyReject)
	ctx := context.Background()

	first, err := s.Ingest(ctx, "sales.xlsx", strings.NewReader("sales"))
	require.NoError(t, err)
	require.NoError(t, s.SetKind(models.ChartPie))

	_, err = s.Ingest(ctx, "broken.xlsx", strings.NewReader("garbage"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecodeFailure)
	assert.ErrorIs(t, err, errMalformed)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "broken.xlsx", decodeErr.FileName)

	assert.Same(t, first, s.Current())
	assert.Equal(t, models.ChartPie, s.Config().Kind)
	assert.Len(t, s.History(), 1)
}

func TestSessionHistoryIDsIncrease(t *testing.T) {
	s := newTestSession(t, salesDecoder(), PolicyReject)
	ctx := context.Background()

	inputs := []string{"sales", "garbage", "wide", "garbage", "empty", "single"}
	for _, in := range inputs {
		_, _ = s.Ingest(ctx, in+".xlsx", strings.NewReader(in))
	}

	history := s.History()
	require.Len(t, history, 4)
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i].ID, history[i-1].ID)
		assert.True(t, history[i].IngestedAt.After(history[i-1].IngestedAt))
	}
	assert.Equal(t, "single.xlsx", s.Current().FileName())
}

func TestSessionResetsAxesKeepsKindAndTitle(t *testing.T) {
	s := newTestSession(t, salesDecoder(), PolicyReject)
	ctx := context.Background()

	require.NoError(t, s.SetKind(models.ChartLine))
	s.SetTitle("Quarterly")
	_, err := s.Ingest(ctx, "wide.xlsx", strings.NewReader("wide"))
	require.NoError(t, err)

	cfg := s.Config()
	assert.Equal(t, models.ChartConfig{Kind: models.ChartLine, XColumn: "a", YColumn: "b", Title: "Quarterly"}, cfg)

	s.SetAxes("c", "a")
	_, err = s.Ingest(ctx, "single.xlsx", strings.NewReader("single"))
	require.NoError(t, err)
	cfg = s.Config()
	assert.Equal(t, "only", cfg.XColumn)
	assert.Equal(t, "", cfg.YColumn)
	assert.Empty(t, s.Project().Points)

	_, err = s.Ingest(ctx, "empty.xlsx", strings.NewReader("empty"))
	require.NoError(t, err)
	cfg = s.Config()
	assert.Equal(t, "", cfg.XColumn)
	assert.Equal(t, "", cfg.YColumn)
}

func TestSessionSetKindValidates(t *testing.T) {
	s := newTestSession(t, salesDecoder(), PolicyReject)
	err := s.SetKind("radar")
	assert.ErrorIs(t, err, ErrInvalidChartKind)
	assert.Equal(t, models.ChartBar, s.Config().Kind)
}

func TestSessionUnresolvedAxis(t *testing.T) {
	s := newTestSession(t, salesDecoder(), PolicyReject)
	_, err := s.Ingest(context.Background(), "sales.xlsx", strings.NewReader("sales"))
	require.NoError(t, err)

	s.SetAxes("month", "revenue")
	assert.Empty(t, s.Project().Points)
}

func TestSessionRejectsConcurrentIngestion(t *testing.T) {
	dec := salesDecoder()
	dec.started = make(chan struct{}, 1)
	dec.release = make(chan struct{})
	s := newTestSession(t, dec, PolicyReject)

	done := make(chan error, 1)
	go func() {
		_, err := s.Ingest(context.Background(), "sales.xlsx", strings.NewReader("sales"))
		done <- err
	}()
	<-dec.started

	_, err := s.Ingest(context.Background(), "wide.xlsx", strings.NewReader("wide"))
	assert.ErrorIs(t, err, ErrIngestionInProgress)

	close(dec.release)
	require.NoError(t, <-done)
	assert.Equal(t, "sales.xlsx", s.Current().FileName())
	assert.Len(t, s.History(), 1)
}

func TestSessionQueuesConcurrentIngestion(t *testing.T) {
	dec := salesDecoder()
	dec.started = make(chan struct{}, 2)
	dec.release = make(chan struct{})
	s := newTestSession(t, dec, PolicyQueue)

	first := make(chan error, 1)
	go func() {
		_, err := s.Ingest(context.Background(), "sales.xlsx", strings.NewReader("sales"))
		first <- err
	}()
	<-dec.started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.Ingest(ctx, "wide.xlsx", strings.NewReader("wide"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(dec.release)
	require.NoError(t, <-first)

	_, err = s.Ingest(context.Background(), "wide.xlsx", strings.NewReader("wide"))
	require.NoError(t, err)
	assert.Equal(t, "wide.xlsx", s.Current().FileName())
	assert.Len(t, s.History(), 2)
}

func TestSessionDiscardsStaleResult(t *testing.T) {
	s := newTestSession(t, salesDecoder(), PolicyQueue)
	ctx := context.Background()

	older := s.nextSeq()
	newer := s.nextSeq()

	_, err := s.ingest(ctx, newer, "wide.xlsx", strings.NewReader("wide"))
	require.NoError(t, err)

	_, err = s.ingest(ctx, older, "sales.xlsx", strings.NewReader("sales"))
	assert.ErrorIs(t, err, ErrStaleIngestion)

	assert.Equal(t, "wide.xlsx", s.Current().FileName())
	assert.Len(t, s.History(), 1)
}

func TestSessionIngestFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"month", "sales"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Jan", "100"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Feb", "bad"}))

	dir := t.TempDir()
	path := filepath.Join(dir, "sales.xlsx")
	require.NoError(t, f.SaveAs(path))

	s := newTestSession(t, parser.NewXLSXDecoder(""), PolicyReject)
	ds, err := s.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "sales.xlsx", ds.FileName())

	assert.Equal(t, []models.ChartSeriesPoint{
		{Category: "Jan", Value: 100},
		{Category: "Feb", Value: 0},
	}, s.Project().Points)

	_, err = s.IngestFile(context.Background(), filepath.Join(dir, "missing.xlsx"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = s.Ingest(context.Background(), "junk.xls", bytes.NewReader([]byte("not a zip")))
	assert.ErrorIs(t, err, ErrDecodeFailure)
	assert.Len(t, s.History(), 1)
}

func TestSessionDefaultOptions(t *testing.T) {
	opts := DefaultSessionOptions()
	opts.Logger = logging.Discard()
	s := NewSession(salesDecoder(), opts)

	assert.Equal(t, models.ChartBar, s.Config().Kind)
	assert.NotEmpty(t, s.ID())

	_, err := s.Ingest(context.Background(), "sales.xlsx", strings.NewReader("sales"))
	require.NoError(t, err)

	assert.Equal(t, 1, s.Ledger().Len())
	assert.Equal(t, s.History(), s.Ledger().Entries())
	assert.Len(t, s.Project().Palette, 5)
}
