package render

import (
	"math"

	"github.com/etnz/peers"
)

// yRange returns the y-axis range of spec: its hint, or the default one.
// The range is never empty.
func yRange(spec peers.ChartSpec) peers.AxisRange {
	var r peers.AxisRange
	if spec.YRange != nil {
		r = *spec.YRange
	} else {
		r = peers.DefaultAxisOptions().Range(spec.Points, spec.Highlight)
		for _, p := range spec.Points {
			if p.Y.IsPresent() && p.Y.Float64() < r.Min {
				r.Min = p.Y.Float64()
			}
		}
	}
	r.Min, r.Max = widen(r.Min, r.Max)
	return r
}

// xRange returns the range of the present x values, padded by 5% on each
// side.
func xRange(spec peers.ChartSpec) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range spec.Points {
		if p.X.IsPresent() {
			lo = math.Min(lo, p.X.Float64())
			hi = math.Max(hi, p.X.Float64())
		}
	}
	if math.IsInf(lo, 0) {
		return 0, 1
	}
	pad := (hi - lo) * 0.05
	return widen(lo-pad, hi+pad)
}

// widen makes sure max is above min.
func widen(min, max float64) (float64, float64) {
	if max > min {
		return min, max
	}
	d := math.Abs(min) * 0.1
	if d == 0 {
		d = 1
	}
	return min - d, max + d
}

// ticks returns the tick values of r: every Step from zero when Step is set,
// or Ticks evenly spaced values. It returns nil when neither is set.
func ticks(r peers.AxisRange) []float64 {
	var out []float64
	switch {
	case r.Step > 0:
		start := math.Ceil(r.Min/r.Step) * r.Step
		for v := start; v <= r.Max+r.Step/1e6; v += r.Step {
			out = append(out, v)
			if len(out) > 100 {
				break
			}
		}
	case r.Ticks > 1:
		step := (r.Max - r.Min) / float64(r.Ticks-1)
		for i := range r.Ticks {
			out = append(out, r.Min+float64(i)*step)
		}
	}
	return out
}

// tickLabel formats an axis value of field f.
func tickLabel(f peers.Field, v float64) string {
	if f == peers.Founded {
		return peers.V(math.Round(v)).String()
	}
	if math.Abs(v) < 1e-9 {
		return "0"
	}
	return peers.Compact(v)
}

// pointLabel returns the text shown next to a point.
func pointLabel(spec peers.ChartSpec, p peers.Point) string {
	if p.Subject && spec.Highlight.Text != "" {
		return p.Name + " " + spec.Highlight.Text
	}
	return p.Name
}
