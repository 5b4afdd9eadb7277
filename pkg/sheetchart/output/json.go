// Package output serializes projection results for the CLI.
package output

import (
	"encoding/json"
	"time"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

// DatasetSummary describes a dataset without its rows.
type DatasetSummary struct {
	FileName   string    `json:"file_name"`
	IngestedAt time.Time `json:"ingested_at"`
	Columns    []string  `json:"columns"`
	RowCount   int       `json:"row_count"`
}

// Summarize returns the summary of ds.
func Summarize(ds *models.Dataset) DatasetSummary {
	return DatasetSummary{
		FileName:   ds.FileName(),
		IngestedAt: ds.IngestedAt(),
		Columns:    ds.Columns(),
		RowCount:   ds.RowCount(),
	}
}

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// SeriesToJSON serializes a chart series.
func SeriesToJSON(series *models.ChartSeries, pretty bool) ([]byte, error) {
	return ToJSON(series, pretty)
}

// HistoryToJSON serializes ledger entries as a JSON array.
func HistoryToJSON(entries []models.HistoryEntry, pretty bool) ([]byte, error) {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return ToJSON(entries, pretty)
}

// HistoryReport is the upload history together with the dashboard counters.
type HistoryReport struct {
	Uploads     int                   `json:"uploads"`
	CurrentRows int                   `json:"current_rows"`
	Entries     []models.HistoryEntry `json:"entries"`
}

// NewHistoryReport builds a report from ledger entries and the current
// dataset, which may be nil.
func NewHistoryReport(entries []models.HistoryEntry, current *models.Dataset) HistoryReport {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	report := HistoryReport{
		Uploads: len(entries),
		Entries: entries,
	}
	if current != nil {
		report.CurrentRows = current.RowCount()
	}
	return report
}

// HistoryReportToJSON serializes a history report.
func HistoryReportToJSON(report HistoryReport, pretty bool) ([]byte, error) {
	return ToJSON(report, pretty)
}

// SummaryToJSON serializes the summary of ds.
func SummaryToJSON(ds *models.Dataset, pretty bool) ([]byte, error) {
	return ToJSON(Summarize(ds), pretty)
}
