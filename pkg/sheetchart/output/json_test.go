package output

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

func TestSeriesToJSON(t *testing.T) {
	series := &models.ChartSeries{
		Kind:    models.ChartBar,
		XColumn: "month",
		YColumn: "sales",
		Points: []models.ChartSeriesPoint{
			{Category: "Jan", Value: 100},
			{Category: "Feb", Value: 0},
		},
	}

	data, err := SeriesToJSON(series, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "bar",
		"x_column": "month",
		"y_column": "sales",
		"points": [{"category": "Jan", "value": 100}, {"category": "Feb", "value": 0}]
	}`, string(data))

	pretty, err := SeriesToJSON(series, true)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(pretty), "\n  "))
}

func TestHistoryToJSONEmpty(t *testing.T) {
	data, err := HistoryToJSON(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSummaryToJSON(t *testing.T) {
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	ds := models.NewDataset("s.xlsx", []string{"a"}, []models.Row{models.NewRow("a", 1)}, at)

	data, err := SummaryToJSON(ds, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"file_name":"s.xlsx","ingested_at":"2024-02-03T04:05:06Z","columns":["a"],"row_count":1}`, string(data))
}

func TestHistoryReport(t *testing.T) {
	at := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	ds := models.NewDataset("b.xlsx", []string{"a"}, []models.Row{models.NewRow("a", 1), models.NewRow("a", 2)}, at)
	entries := []models.HistoryEntry{
		{ID: 1, FileName: "a.xlsx", IngestedAt: at, RowCount: 5, ColumnCount: 3},
		{ID: 2, FileName: "b.xlsx", IngestedAt: at, RowCount: 2, ColumnCount: 1},
	}

	report := NewHistoryReport(entries, ds)
	assert.Equal(t, 2, report.Uploads)
	assert.Equal(t, 2, report.CurrentRows)

	empty := NewHistoryReport(nil, nil)
	data, err := HistoryReportToJSON(empty, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uploads":0,"current_rows":0,"entries":[]}`, string(data))
}
