package peers

import (
	"fmt"
	"maps"
	"strings"
)

// Kind is the kind of chart to draw.
type Kind int

const (
	Bar Kind = iota
	Scatter
)

func (k Kind) String() string {
	switch k {
	case Bar:
		return "bar"
	case Scatter:
		return "scatter"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses "bar" or "scatter".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bar":
		return Bar, nil
	case "scatter":
		return Scatter, nil
	}
	return Bar, fmt.Errorf("unknown chart kind %q, must be bar or scatter", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) (err error) {
	*k, err = ParseKind(string(b))
	return err
}

// Axes names the fields drawn by a chart. Size and Color are optional.
type Axes struct {
	X, Y  Field
	Size  Field
	Color Field
}

// fields returns the axes fields that are set.
func (a Axes) fields() []Field {
	var fs []Field
	for _, f := range []Field{a.X, a.Y, a.Size, a.Color} {
		if f != "" {
			fs = append(fs, f)
		}
	}
	return fs
}

// Point is one company of a chart.
//
// For a bar chart the category is Name and only Y is set. Values that are
// absent on the company are left Absent; renderers skip what they cannot
// draw.
type Point struct {
	Name    string
	X, Y    Value
	Size    Value
	Color   string
	Subject bool
}

// Highlight marks the subject on the chart: a horizontal line at Value for
// bar charts, a labelled marker at (X, Y) for scatter charts.
type Highlight struct {
	Label string
	Value Value
	Text  string
	X, Y  Value
}

// AxisRange is a hint for the range of an axis. Ticks and Step are optional.
type AxisRange struct {
	Min, Max float64
	Ticks    int
	Step     float64
}

// ChartSpec is a declarative, renderer-agnostic description of a chart.
//
// A ChartSpec shares no memory with the PeerSet it was built from.
type ChartSpec struct {
	Kind      Kind
	Title     string
	Axes      Axes
	Labels    map[Field]string
	Currency  string
	Points    []Point
	Highlight Highlight
	YRange    *AxisRange
}

// Label returns the axis label of f.
func (c ChartSpec) Label(f Field) string {
	if l, ok := c.Labels[f]; ok {
		return l
	}
	return f.Label()
}

// SpecOption customizes BuildChartSpec.
type SpecOption func(*specConfig)

type specConfig struct {
	title    string
	labels   map[Field]string
	currency string
	axis     *AxisOptions
}

// WithTitle sets the chart title.
func WithTitle(title string) SpecOption { return func(c *specConfig) { c.title = title } }

// WithLabels overrides axis labels.
func WithLabels(labels map[Field]string) SpecOption {
	return func(c *specConfig) { c.labels = maps.Clone(labels) }
}

// WithCurrency sets the currency used to format monetary values.
func WithCurrency(code string) SpecOption { return func(c *specConfig) { c.currency = code } }

// WithAxis asks for a y-axis range hint computed with opts.
func WithAxis(opts AxisOptions) SpecOption { return func(c *specConfig) { c.axis = &opts } }

// BuildChartSpec packages an already selected PeerSet into a ChartSpec.
//
// It performs no filtering. The highlight marker is computed from
// subject[highlight]; for scatter charts it is placed at
// (subject[axes.X], subject[axes.Y]). It returns a *MissingFieldError when
// any of those subject values is absent.
func BuildChartSpec(set *PeerSet, subject Record, kind Kind, axes Axes, highlight Field, opts ...SpecOption) (ChartSpec, error) {
	cfg := specConfig{currency: DefaultCurrency}
	for _, o := range opts {
		o(&cfg)
	}

	hv, err := require(subject, highlight)
	if err != nil {
		return ChartSpec{}, err
	}
	h := Highlight{
		Label: subject.Name,
		Value: hv,
		Text:  FormatValue(highlight, hv, cfg.currency),
	}
	if kind == Scatter {
		if h.X, err = require(subject, axes.X); err != nil {
			return ChartSpec{}, err
		}
		if h.Y, err = require(subject, axes.Y); err != nil {
			return ChartSpec{}, err
		}
	}

	spec := ChartSpec{
		Kind:      kind,
		Title:     cfg.title,
		Axes:      axes,
		Labels:    cfg.labels,
		Currency:  cfg.currency,
		Highlight: h,
		Points:    make([]Point, 0, set.Len()),
	}
	for _, r := range set.All() {
		p := Point{Name: r.Name, Y: r.Get(axes.Y), Subject: set.IsSubject(r)}
		if kind == Scatter {
			p.X = r.Get(axes.X)
		}
		if axes.Size != "" {
			p.Size = r.Get(axes.Size)
		}
		if axes.Color != "" {
			p.Color = r.Text(axes.Color)
		}
		spec.Points = append(spec.Points, p)
	}
	if cfg.axis != nil {
		r := cfg.axis.Range(spec.Points, h)
		spec.YRange = &r
	}
	return spec, nil
}
