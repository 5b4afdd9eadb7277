// Package render adapts projected series for chart renderers.
package render

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultPalette is the cyclic color palette for per-point coloring.
var DefaultPalette = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"}

// ColorIndex returns the palette index for the i-th point of a series
// drawn with a palette of n colors.
func ColorIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return i % n
}

// ColorAt returns the color for the i-th point, or "" for an empty palette.
func ColorAt(palette []string, i int) string {
	if len(palette) == 0 {
		return ""
	}
	return palette[ColorIndex(i, len(palette))]
}

// Label converts a raw category to its display string.
func Label(category interface{}) string {
	switch v := category.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
