// Package render draws a peers.ChartSpec.
//
// Two backends are available: "chart" draws with go-chart and "plot" with
// gonum/plot. Any backend can also write the spec itself as JSON, for
// frontends that draw charts on their own.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/peers"
)

// Backends.
const (
	Chart = "chart"
	Plot  = "plot"
)

// Default image size, in pixels.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

// ErrUnsupported is returned for a backend or format that cannot be drawn.
var ErrUnsupported = errors.New("unsupported output")

// Options selects how a chart is drawn.
type Options struct {
	// Backend is Chart or Plot. Defaults to Chart.
	Backend string
	// Format is png, svg, pdf (plot only) or json. Defaults to png.
	Format string
	// Width and Height of the image in pixels.
	Width, Height int
}

func (o Options) withDefaults() Options {
	if o.Backend == "" {
		o.Backend = Chart
	}
	if o.Format == "" {
		o.Format = "png"
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// Formats returns the formats a backend can write.
func Formats(backend string) []string {
	switch backend {
	case Chart, "":
		return []string{"png", "svg", "json"}
	case Plot:
		return []string{"png", "svg", "pdf", "json"}
	}
	return nil
}

// Render writes spec to w.
func Render(w io.Writer, spec peers.ChartSpec, opts Options) error {
	opts = opts.withDefaults()
	if opts.Format == "json" {
		return writeJSON(w, spec)
	}
	switch opts.Backend {
	case Chart:
		return renderChart(w, spec, opts)
	case Plot:
		return renderPlot(w, spec, opts)
	}
	return fmt.Errorf("%w: backend %q", ErrUnsupported, opts.Backend)
}

func writeJSON(w io.Writer, spec peers.ChartSpec) error {
	b, err := spec.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding chart %q: %w", spec.Title, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}
