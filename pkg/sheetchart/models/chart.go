package models

import (
	"errors"
	"fmt"
	"strings"
)

// ChartKind represents the chart type selected by the user.
type ChartKind string

const (
	// ChartBar renders categories as vertical bars.
	ChartBar ChartKind = "bar"
	// ChartLine renders values as a line over the categories.
	ChartLine ChartKind = "line"
	// ChartPie renders values as slices of a pie.
	ChartPie ChartKind = "pie"
)

// ErrInvalidChartKind indicates a chart kind outside bar, line and pie.
var ErrInvalidChartKind = errors.New("invalid chart kind")

// ChartKinds lists the supported kinds in display order.
var ChartKinds = []ChartKind{ChartBar, ChartLine, ChartPie}

// ParseChartKind parses a chart kind name, case-insensitively.
func ParseChartKind(s string) (ChartKind, error) {
	kind := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q (must be bar, line, or pie)", ErrInvalidChartKind, s)
	}
	return kind, nil
}

// Valid reports whether k is a supported kind.
func (k ChartKind) Valid() bool {
	switch k {
	case ChartBar, ChartLine, ChartPie:
		return true
	}
	return false
}

// Label returns the display name, e.g. "Bar".
func (k ChartKind) Label() string {
	if k == "" {
		return ""
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ChartConfig is the user's current visualization choice.
type ChartConfig struct {
	// Kind is the chart type.
	Kind ChartKind `json:"kind"`
	// XColumn is the category column. Empty means unset.
	XColumn string `json:"x_column"`
	// YColumn is the value column. Empty means unset.
	YColumn string `json:"y_column"`
	// Title is a free-text chart label.
	Title string `json:"title,omitempty"`
}

// AxesSet reports whether both axis columns are selected.
func (c ChartConfig) AxesSet() bool {
	return c.XColumn != "" && c.YColumn != ""
}

// ChartSeriesPoint is one projected data point.
type ChartSeriesPoint struct {
	// Category is the raw x-column cell, passed through unmodified.
	Category interface{} `json:"category"`
	// Value is the numerically coerced y-column cell.
	Value float64 `json:"value"`
}

// ChartSeries is everything a renderer needs to draw one chart.
type ChartSeries struct {
	// Kind is the chart type.
	Kind ChartKind `json:"kind"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// XColumn is the category column name.
	XColumn string `json:"x_column"`
	// YColumn is the value column name.
	YColumn string `json:"y_column"`
	// Points is the projected, bounded series.
	Points []ChartSeriesPoint `json:"points"`
	// Palette is the cyclic color palette for per-point coloring.
	Palette []string `json:"palette,omitempty"`
}
