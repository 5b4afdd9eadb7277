package sheetchart

import "github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"

// MaxPoints caps the number of rows projected into a series.
const MaxPoints = 10

// Project derives a bounded series from ds for the axes in cfg.
//
// Rows are taken in order, at most MaxPoints of them, one point per row with
// no grouping of repeated categories. The result is empty, never nil, when
// ds is nil or an axis is unset or not a column of ds. Projection never
// fails: unreadable values coerce to 0.
func Project(ds *models.Dataset, cfg models.ChartConfig) []models.ChartSeriesPoint {
	if ds == nil || !cfg.AxesSet() || !ds.HasColumn(cfg.XColumn) || !ds.HasColumn(cfg.YColumn) {
		return []models.ChartSeriesPoint{}
	}

	n := ds.RowCount()
	if n > MaxPoints {
		n = MaxPoints
	}

	points := make([]models.ChartSeriesPoint, 0, n)
	for i := 0; i < n; i++ {
		row := ds.Row(i)
		category, _ := row.Get(cfg.XColumn)
		raw, _ := row.Get(cfg.YColumn)
		points = append(points, models.ChartSeriesPoint{
			Category: category,
			Value:    CoerceNumber(raw),
		})
	}
	return points
}

// ProjectSeries bundles the projection of ds with cfg and palette for a renderer.
func ProjectSeries(ds *models.Dataset, cfg models.ChartConfig, palette []string) models.ChartSeries {
	var p []string
	if len(palette) > 0 {
		p = make([]string, len(palette))
		copy(p, palette)
	}
	return models.ChartSeries{
		Kind:    cfg.Kind,
		Title:   cfg.Title,
		XColumn: cfg.XColumn,
		YColumn: cfg.YColumn,
		Points:  Project(ds, cfg),
		Palette: p,
	}
}
