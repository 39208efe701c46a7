package render

import (
	"image/color"
	"math"

	"github.com/etnz/peers"
)

var (
	subjectColor = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	peerColor    = color.RGBA{R: 70, G: 130, B: 180, A: 255}
)

// palette colors the groups of a scatter chart.
var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

// group is the peers of a scatter chart sharing a color.
type group struct {
	name   string
	color  color.RGBA
	points []peers.Point
}

// groups splits the drawable peers of spec by color, in order of first
// appearance. A subject point at the highlight position is left out: the
// highlight marker draws it. A subject row of the table with other values is
// drawn like a peer.
func groups(spec peers.ChartSpec) []group {
	var out []group
	index := make(map[string]int)
	for _, p := range spec.Points {
		if p.X.IsAbsent() || p.Y.IsAbsent() || (p.Subject && highlighted(p, spec.Highlight)) {
			continue
		}
		i, ok := index[p.Color]
		if !ok {
			i = len(out)
			index[p.Color] = i
			name := p.Color
			if name == "" {
				name = "Peers"
			}
			out = append(out, group{name: name, color: palette[i%len(palette)]})
		}
		out[i].points = append(out[i].points, p)
	}
	return out
}

// radius returns the marker radius of each point in pixels, between min and
// max, proportional to the square root of its Size. Points without a Size get
// min.
func radius(points []peers.Point, min, max float64) []float64 {
	var top float64
	for _, p := range points {
		if p.Size.IsPresent() && p.Size.Float64() > top {
			top = p.Size.Float64()
		}
	}
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = min
		if top > 0 && p.Size.IsPresent() && p.Size.Float64() > 0 {
			out[i] = min + (max-min)*math.Sqrt(p.Size.Float64()/top)
		}
	}
	return out
}

// highlighted reports whether p sits where the highlight marker is drawn.
func highlighted(p peers.Point, h peers.Highlight) bool {
	return p.X.Equal(h.X) && p.Y.Equal(h.Y)
}
