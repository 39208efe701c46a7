package render

import (
	"fmt"
	"io"
	"math"

	"github.com/etnz/peers"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ticker labels the ticks of a gonum/plot axis. It uses the range hint when
// it sets ticks, and gonum's defaults otherwise.
type ticker struct {
	field peers.Field
	hint  peers.AxisRange
}

func (t ticker) Ticks(min, max float64) []plot.Tick {
	if vs := ticks(t.hint); len(vs) > 0 {
		out := make([]plot.Tick, len(vs))
		for i, v := range vs {
			out[i] = plot.Tick{Value: v, Label: tickLabel(t.field, v)}
		}
		return out
	}
	out := plot.DefaultTicks{}.Ticks(min, max)
	for i, tk := range out {
		if tk.Label != "" {
			out[i].Label = tickLabel(t.field, tk.Value)
		}
	}
	return out
}

// pixels converts an image size in pixels to a vg length at 96 dpi.
func pixels(n int) vg.Length { return vg.Length(n) * vg.Inch / 96 }

func renderPlot(w io.Writer, spec peers.ChartSpec, opts Options) error {
	switch opts.Format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("%w: gonum/plot cannot write %q", ErrUnsupported, opts.Format)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = spec.Label(spec.Axes.Y)
	yr := yRange(spec)
	p.Y.Min, p.Y.Max = yr.Min, yr.Max
	p.Y.Tick.Marker = ticker{field: spec.Axes.Y, hint: yr}
	p.Add(plotter.NewGrid())

	var err error
	switch spec.Kind {
	case peers.Bar:
		err = plotBars(p, spec)
	case peers.Scatter:
		err = plotScatter(p, spec)
	default:
		return fmt.Errorf("%w: chart kind %v", ErrUnsupported, spec.Kind)
	}
	if err != nil {
		return fmt.Errorf("drawing %q: %w", spec.Title, err)
	}

	wt, err := p.WriterTo(pixels(opts.Width), pixels(opts.Height), opts.Format)
	if err != nil {
		return fmt.Errorf("drawing %q: %w", spec.Title, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func plotBars(p *plot.Plot, spec peers.ChartSpec) error {
	var names []string
	for _, pt := range spec.Points {
		if pt.Y.IsAbsent() {
			continue
		}
		bars, err := plotter.NewBarChart(plotter.Values{pt.Y.Float64()}, vg.Points(20))
		if err != nil {
			return err
		}
		bars.XMin = float64(len(names))
		bars.Color = peerColor
		if pt.Subject {
			bars.Color = subjectColor
		}
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		names = append(names, pt.Name)
	}
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	h := spec.Highlight
	if h.Value.IsAbsent() {
		return nil
	}
	v := h.Value.Float64()
	line := plotter.NewFunction(func(float64) float64 { return v })
	line.Color = subjectColor
	line.Width = vg.Points(1.5)
	line.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(line)

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0, Y: v}},
		Labels: []string{pointLabel(spec, peers.Point{Name: h.Label, Subject: true})},
	})
	if err != nil {
		return err
	}
	for i := range label.TextStyle {
		label.TextStyle[i].Color = subjectColor
	}
	p.Add(label)
	return nil
}

func plotScatter(p *plot.Plot, spec peers.ChartSpec) error {
	p.X.Label.Text = spec.Label(spec.Axes.X)
	p.X.Min, p.X.Max = xRange(spec)
	p.X.Tick.Marker = ticker{field: spec.Axes.X}

	for _, g := range groups(spec) {
		xys := make(plotter.XYs, len(g.points))
		for i, pt := range g.points {
			xys[i] = plotter.XY{X: pt.X.Float64(), Y: pt.Y.Float64()}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		radii := radius(g.points, 3, 12)
		c := g.color
		s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: c, Radius: vg.Points(radii[i]), Shape: draw.CircleGlyph{}}
		}
		s.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
		p.Add(s)
		p.Legend.Add(g.name, s)
	}

	h := spec.Highlight
	if h.X.IsAbsent() || h.Y.IsAbsent() {
		return nil
	}
	at := plotter.XYs{{X: h.X.Float64(), Y: h.Y.Float64()}}
	marker, err := plotter.NewScatter(at)
	if err != nil {
		return err
	}
	marker.GlyphStyle = draw.GlyphStyle{Color: subjectColor, Radius: vg.Points(7), Shape: draw.CircleGlyph{}}
	p.Add(marker)
	p.Legend.Add(h.Label, marker)

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    at,
		Labels: []string{pointLabel(spec, peers.Point{Name: h.Label, Subject: true})},
	})
	if err != nil {
		return err
	}
	label.Offset = vg.Point{X: vg.Points(8), Y: vg.Points(8)}
	p.Add(label)
	return nil
}
