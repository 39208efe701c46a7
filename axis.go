package peers

// AxisOptions computes a y-axis range hint. The range is [-Pad × max, max]
// where max is, in order of precedence: Max when present; the subject's y
// value plus AboveSubject when present; or the largest y value of the points
// and the highlight multiplied by Headroom.
//
// The small negative minimum keeps markers at zero from being cut.
type AxisOptions struct {
	Max          Value
	AboveSubject Value
	Headroom     float64
	Pad          float64
	Ticks        int
	Step         float64
}

// DefaultAxisOptions returns 10% headroom and a 6% pad below zero.
func DefaultAxisOptions() AxisOptions {
	return AxisOptions{Headroom: 1.1, Pad: 0.06}
}

// Range computes the range hint.
func (o AxisOptions) Range(points []Point, h Highlight) AxisRange {
	subject := h.Value.Float64()
	if h.Y.IsPresent() {
		subject = h.Y.Float64()
	}
	var top float64
	switch {
	case o.Max.IsPresent():
		top = o.Max.Float64()
	case o.AboveSubject.IsPresent():
		top = subject + o.AboveSubject.Float64()
	default:
		top = subject
		for _, p := range points {
			if p.Y.IsPresent() && p.Y.Float64() > top {
				top = p.Y.Float64()
			}
		}
		headroom := o.Headroom
		if headroom <= 0 {
			headroom = 1
		}
		top *= headroom
	}
	return AxisRange{Min: -o.Pad * top, Max: top, Ticks: o.Ticks, Step: o.Step}
}
