package render

import (
	"fmt"
	"io"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported chart data.
const SheetName = "Chart"

// chartAnchor is the top-left cell of the exported chart.
const chartAnchor = "D2"

// ChartTypeMap maps chart kinds to excelize chart types.
var ChartTypeMap = map[models.ChartKind]excelize.ChartType{
	models.ChartBar:  excelize.Col,
	models.ChartLine: excelize.Line,
	models.ChartPie:  excelize.Pie,
}

// WriteWorkbook writes series as an xlsx workbook with a native chart.
func WriteWorkbook(series models.ChartSeries, w io.Writer) error {
	f, err := buildWorkbook(series)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

// SaveWorkbook writes series as an xlsx workbook at path.
func SaveWorkbook(series models.ChartSeries, path string) error {
	f, err := buildWorkbook(series)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

// ChartTitle returns the title used for series, defaulting to "<Kind> Chart".
func ChartTitle(series models.ChartSeries) string {
	if series.Title != "" {
		return series.Title
	}
	return series.Kind.Label() + " Chart"
}

func buildWorkbook(series models.ChartSeries) (*excelize.File, error) {
	chartType, ok := ChartTypeMap[series.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidChartKind, series.Kind)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeData(f, series); err != nil {
		f.Close()
		return nil, err
	}

	if len(series.Points) == 0 {
		return f, nil
	}

	last := len(series.Points) + 1
	chart := &excelize.Chart{
		Type: chartType,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", SheetName),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetName, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetName, last),
			},
		},
		Title: []excelize.RichTextRun{{Text: ChartTitle(series)}},
	}
	if err := f.AddChart(SheetName, chartAnchor, chart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to add chart: %w", err)
	}

	return f, nil
}

// writeData writes the header row and one row per point.
func writeData(f *excelize.File, series models.ChartSeries) error {
	xHeader, yHeader := series.XColumn, series.YColumn
	if xHeader == "" {
		xHeader = "category"
	}
	if yHeader == "" {
		yHeader = "value"
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{xHeader, yHeader}); err != nil {
		return err
	}

	for i, p := range series.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{cellValue(p.Category), p.Value}); err != nil {
			return err
		}
	}
	return nil
}

// cellValue keeps primitive categories typed and stringifies the rest.
func cellValue(category interface{}) interface{} {
	switch category.(type) {
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return category
	default:
		return Label(category)
	}
}
