package render

import "github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"

// Slice is one pie slice.
type Slice struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Color  string  `json:"color,omitempty"`
}

// PieSlices maps points to slices: category to name, value to weight, and
// position to a cyclic palette color.
func PieSlices(points []models.ChartSeriesPoint, palette []string) []Slice {
	slices := make([]Slice, len(points))
	for i, p := range points {
		slices[i] = Slice{
			Name:   Label(p.Category),
			Weight: p.Value,
			Color:  ColorAt(palette, i),
		}
	}
	return slices
}
