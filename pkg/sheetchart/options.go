// Package sheetchart provides spreadsheet ingestion and chart projection.
package sheetchart

import (
	"log/slog"
	"time"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/render"
)

// IngestPolicy decides what happens to an upload while another is in flight.
type IngestPolicy string

const (
	// PolicyReject fails the new upload with ErrIngestionInProgress.
	PolicyReject IngestPolicy = "reject"
	// PolicyQueue waits for the in-flight upload to finish.
	PolicyQueue IngestPolicy = "queue"
)

// SessionOptions configures a Session.
type SessionOptions struct {
	// Policy handles concurrent uploads. Defaults to PolicyReject.
	Policy IngestPolicy
	// Kind is the initial chart kind. Defaults to bar.
	Kind models.ChartKind
	// Title is the initial chart title.
	Title string
	// Palette is the renderer palette. Defaults to render.DefaultPalette.
	Palette []string
	// Logger receives structured logs. Defaults to slog.Default().
	Logger *slog.Logger
	// Now stamps new datasets. Defaults to time.Now.
	Now func() time.Time
}

// DefaultSessionOptions returns default session options.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Policy: PolicyReject,
		Kind:   models.ChartBar,
	}
}

// withDefaults fills unset fields.
func (o SessionOptions) withDefaults() SessionOptions {
	if o.Policy == "" {
		o.Policy = PolicyReject
	}
	if o.Kind == "" {
		o.Kind = models.ChartBar
	}
	if len(o.Palette) == 0 {
		o.Palette = render.DefaultPalette
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
