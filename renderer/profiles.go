package renderer

import (
	"bytes"
	"strings"

	"github.com/etnz/peers"
	md "github.com/nao1215/markdown"
)

// ProfilesMarkdown lists chart profiles and their selection bands.
func ProfilesMarkdown(profiles []peers.Profile) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Chart Profiles")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Profile", "Chart", "Axes", "Selection", "Title"},
	}
	for _, p := range profiles {
		bands := []string{peers.Band{Field: p.Field, Lower: p.Lower, Upper: p.Upper, Floor: p.Floor}.String()}
		for _, b := range p.Bands {
			bands = append(bands, b.String())
		}
		axes := string(p.Axes.Y)
		if p.Kind == peers.Scatter {
			axes = string(p.Axes.Y) + " vs " + string(p.Axes.X)
		}
		table.Rows = append(table.Rows, []string{
			md.Bold(p.Name),
			p.Kind.String(),
			axes,
			strings.Join(bands, " and "),
			p.Title,
		})
	}
	doc.CustomTable(table, md.TableOptions{AutoWrapText: false})
	return doc.String()
}
