package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/etnz/peers"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func chartProvider(format string) (chart.RendererProvider, error) {
	switch format {
	case "png":
		return chart.PNG, nil
	case "svg":
		return chart.SVG, nil
	}
	return nil, fmt.Errorf("%w: go-chart cannot write %q", ErrUnsupported, format)
}

func drawingColor(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// formatter returns a go-chart value formatter for the ticks of field f.
func formatter(f peers.Field) chart.ValueFormatter {
	return func(v interface{}) string {
		if x, ok := v.(float64); ok {
			return tickLabel(f, x)
		}
		return fmt.Sprint(v)
	}
}

func chartTicks(f peers.Field, r peers.AxisRange) []chart.Tick {
	var out []chart.Tick
	for _, v := range ticks(r) {
		out = append(out, chart.Tick{Value: v, Label: tickLabel(f, v)})
	}
	return out
}

func chartYAxis(spec peers.ChartSpec) chart.YAxis {
	r := yRange(spec)
	return chart.YAxis{
		Name:           spec.Label(spec.Axes.Y),
		Range:          &chart.ContinuousRange{Min: r.Min, Max: r.Max},
		Ticks:          chartTicks(spec.Axes.Y, r),
		ValueFormatter: formatter(spec.Axes.Y),
	}
}

func renderChart(w io.Writer, spec peers.ChartSpec, opts Options) error {
	rp, err := chartProvider(opts.Format)
	if err != nil {
		return err
	}
	switch spec.Kind {
	case peers.Bar:
		err = chartBars(spec, opts).Render(rp, w)
	case peers.Scatter:
		err = chartScatter(spec, opts).Render(rp, w)
	default:
		return fmt.Errorf("%w: chart kind %v", ErrUnsupported, spec.Kind)
	}
	if err != nil {
		return fmt.Errorf("drawing %q: %w", spec.Title, err)
	}
	return nil
}

func chartBars(spec peers.ChartSpec, opts Options) chart.BarChart {
	var bars []chart.Value
	for _, p := range spec.Points {
		if p.Y.IsAbsent() {
			continue
		}
		c := peerColor
		if p.Subject {
			c = subjectColor
		}
		bars = append(bars, chart.Value{
			Label: p.Name,
			Value: p.Y.Float64(),
			Style: chart.Style{FillColor: drawingColor(c), StrokeColor: drawingColor(c)},
		})
	}
	bc := chart.BarChart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 12, Bottom: 16}},
		BarWidth:   40,
		YAxis:      chartYAxis(spec),
		Bars:       bars,
	}
	bc.Elements = []chart.Renderable{highlightLine(spec, yRange(spec))}
	return bc
}

// highlightLine draws a dotted horizontal line at the highlight value.
func highlightLine(spec peers.ChartSpec, yr peers.AxisRange) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		h := spec.Highlight
		if h.Value.IsAbsent() {
			return
		}
		v := math.Min(math.Max(h.Value.Float64(), yr.Min), yr.Max)
		y := box.Bottom - int(math.Round((v-yr.Min)/(yr.Max-yr.Min)*float64(box.Height())))

		r.SetStrokeColor(drawingColor(subjectColor))
		r.SetStrokeWidth(2)
		r.SetStrokeDashArray([]float64{5, 5})
		r.MoveTo(box.Left, y)
		r.LineTo(box.Right, y)
		r.Stroke()

		if defaults.Font != nil {
			r.SetFont(defaults.Font)
		}
		r.SetFontColor(drawingColor(subjectColor))
		r.SetFontSize(12)
		r.Text(pointLabel(spec, peers.Point{Name: h.Label, Subject: true}), box.Left+4, y-4)
	}
}

func chartScatter(spec peers.ChartSpec, opts Options) chart.Chart {
	var series []chart.Series
	for _, g := range groups(spec) {
		var xs, ys []float64
		for _, p := range g.points {
			xs = append(xs, p.X.Float64())
			ys = append(ys, p.Y.Float64())
		}
		radii := radius(g.points, 4, 18)
		series = append(series, chart.ContinuousSeries{
			Name:    g.name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    drawingColor(g.color),
				DotWidthProvider: func(_, _ chart.Range, i int, _, _ float64) float64 {
					return radii[i]
				},
			},
		})
	}

	h := spec.Highlight
	if h.X.IsPresent() && h.Y.IsPresent() {
		hx, hy := h.X.Float64(), h.Y.Float64()
		series = append(series,
			chart.ContinuousSeries{
				Name:    h.Label,
				XValues: []float64{hx},
				YValues: []float64{hy},
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    10,
					DotColor:    drawingColor(subjectColor),
				},
			},
			chart.AnnotationSeries{
				Annotations: []chart.Value2{{
					XValue: hx,
					YValue: hy,
					Label:  pointLabel(spec, peers.Point{Name: h.Label, Subject: true}),
				}},
			},
		)
	}

	xMin, xMax := xRange(spec)
	ch := chart.Chart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           spec.Label(spec.Axes.X),
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: formatter(spec.Axes.X),
		},
		YAxis:  chartYAxis(spec),
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}
