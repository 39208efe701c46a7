package renderer

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/etnz/peers"
	md "github.com/nao1215/markdown"
)

// columns returns the numeric fields shown for a peer set: the comparison
// field first, then the chart axes.
func columns(set *peers.PeerSet, spec peers.ChartSpec) []peers.Field {
	fields := []peers.Field{set.Field()}
	for _, f := range []peers.Field{spec.Axes.Y, spec.Axes.X, spec.Axes.Size, spec.Axes.Color} {
		if f == "" || f.Categorical() || slices.Contains(fields, f) {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// PeersMarkdown renders the peers of a chart as a markdown table, the
// subject in bold.
func PeersMarkdown(set *peers.PeerSet, spec peers.ChartSpec) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := spec.Title
	if title == "" {
		title = "Peers by " + spec.Label(set.Field())
	}
	doc.H1(title)

	subject, _ := set.Subject()
	summary := fmt.Sprintf("%d peers of %s by %s.", set.Peers(), subject.Name, spec.Label(set.Field()))
	if set.SubjectAppended() {
		summary += " The subject is not in the table and was added from its metrics."
	}
	doc.PlainText(summary)

	fields := columns(set, spec)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"#", "Company", "Industry"},
	}
	for _, f := range fields {
		table.Header = append(table.Header, spec.Label(f))
		table.Alignment = append(table.Alignment, md.AlignRight)
	}
	for i, r := range set.All() {
		row := []string{strconv.Itoa(i + 1), r.Name, r.Industry}
		for _, f := range fields {
			row = append(row, peers.FormatValue(f, r.Get(f), spec.Currency))
		}
		if set.IsSubject(r) {
			for j := range row {
				if row[j] != "" {
					row[j] = md.Bold(row[j])
				}
			}
		}
		table.Rows = append(table.Rows, row)
	}
	doc.CustomTable(table, md.TableOptions{AutoWrapText: false})

	if set.Empty() {
		doc.PlainText(md.Italic("No company matched the selection: the chart only shows the subject."))
	}
	return doc.String()
}
