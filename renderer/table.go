package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/peers"
	md "github.com/nao1215/markdown"
)

// TableMarkdown summarizes a peer table: for each field, how many companies
// have it and the range of its values.
func TableMarkdown(t *peers.Table, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Peer Table")
	doc.PlainText(fmt.Sprintf("%d companies, %d fields.", t.Len(), len(t.Fields())))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Field", "Present", "Min", "Max"},
	}
	var missing []string
	for _, f := range t.Fields() {
		if f.Categorical() {
			continue
		}
		lo, hi := peers.Absent, peers.Absent
		present := 0
		for _, v := range t.Column(f) {
			if v.IsAbsent() {
				continue
			}
			present++
			if lo.IsAbsent() || v.Cmp(lo) < 0 {
				lo = v
			}
			if hi.IsAbsent() || v.Cmp(hi) > 0 {
				hi = v
			}
		}
		table.Rows = append(table.Rows, []string{
			string(f),
			strconv.Itoa(present),
			peers.FormatValue(f, lo, currency),
			peers.FormatValue(f, hi, currency),
		})
		if present < t.Len() {
			missing = append(missing, fmt.Sprintf("%s: %d", f, t.Len()-present))
		}
	}
	doc.Table(table)

	var extra bytes.Buffer
	ConditionalBlock(&extra, func(w io.Writer) bool {
		var sb bytes.Buffer
		sub := md.NewMarkdown(&sb)
		sub.H2("Missing Values")
		sub.PlainText("Companies without a value are never selected as peers on that field.")
		sub.BulletList(missing...)
		io.WriteString(w, sub.String())
		return len(missing) > 0
	})
	return doc.String() + extra.String()
}
