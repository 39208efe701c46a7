package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/peers"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// tableRows parses markdown and returns the text of the first cell of every
// body row of every table.
func tableRows(t *testing.T, src string) []string {
	t.Helper()
	source := []byte(src)
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	root := parser.Parse(text.NewReader(source))

	var rows []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		row, ok := n.(*east.TableRow)
		if !ok {
			return ast.WalkContinue, nil
		}
		rows = append(rows, cellText(row.FirstChild(), source))
		return ast.WalkSkipChildren, nil
	})
	return rows
}

// cellText concatenates the text segments below n.
func cellText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func sampleSet(t *testing.T, rows ...peers.Record) (*peers.PeerSet, peers.ChartSpec) {
	t.Helper()
	subject := peers.NewRecord("Odin AI", "AI").With(peers.Valuation, peers.V(20_000_000)).With(peers.Employees, peers.V(30))
	set, err := peers.SelectPeers(peers.NewTable(rows...), subject, peers.Valuation, peers.SelectOptions{Lower: 0.5, Upper: 10})
	if err != nil {
		t.Fatalf("SelectPeers() unexpected error: %v", err)
	}
	spec, err := peers.BuildChartSpec(set, subject, peers.Bar, peers.Axes{X: peers.Name, Y: peers.Valuation}, peers.Valuation,
		peers.WithTitle("Valuation of Competitors"))
	if err != nil {
		t.Fatalf("BuildChartSpec() unexpected error: %v", err)
	}
	return set, spec
}

func TestPeersMarkdown(t *testing.T) {
	set, spec := sampleSet(t,
		peers.NewRecord("Cortex", "AI").With(peers.Valuation, peers.V(40_000_000)),
		peers.NewRecord("Lumen", "Fintech").With(peers.Valuation, peers.V(15_000_000)),
		peers.NewRecord("Monolith", "Cloud").With(peers.Valuation, peers.V(900_000_000)),
	)
	got := PeersMarkdown(set, spec)

	if !strings.HasPrefix(got, "# Valuation of Competitors") {
		t.Errorf("PeersMarkdown() does not start with the title:\n%s", got)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, tableRows(t, got)); diff != "" {
		t.Errorf("PeersMarkdown() rows mismatch (-want +got):\n%s", diff)
	}
	for _, want := range []string{"**Odin AI**", "**$20,000,000**", "$40,000,000", "2 peers of Odin AI", "added from its metrics"} {
		if !strings.Contains(got, want) {
			t.Errorf("PeersMarkdown() has no %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Monolith") {
		t.Errorf("PeersMarkdown() lists a company outside the band:\n%s", got)
	}
}

func TestPeersMarkdownEmpty(t *testing.T) {
	set, spec := sampleSet(t)
	got := PeersMarkdown(set, spec)
	if !strings.Contains(got, "No company matched") {
		t.Errorf("PeersMarkdown() has no empty selection note:\n%s", got)
	}
	if rows := tableRows(t, got); len(rows) != 1 {
		t.Errorf("PeersMarkdown() has %d table rows, want the subject only", len(rows))
	}
}

func TestColumns(t *testing.T) {
	set, _ := sampleSet(t)
	spec := peers.ChartSpec{Axes: peers.Axes{X: peers.Employees, Y: peers.Valuation, Size: peers.Employees, Color: peers.Industry}}
	want := []peers.Field{peers.Valuation, peers.Employees}
	if diff := cmp.Diff(want, columns(set, spec)); diff != "" {
		t.Errorf("columns() mismatch (-want +got):\n%s", diff)
	}
}

func TestProfilesMarkdown(t *testing.T) {
	got := ProfilesMarkdown(peers.DefaultProfiles())
	rows := tableRows(t, got)
	want := []string{"valuation", "funding-per-employee", "valuation-per-employee", "headcount-valuation", "growth-funding", "founded-funding"}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("ProfilesMarkdown() rows mismatch (-want +got):\n%s", diff)
	}
	for _, want := range []string{"valuation in [0.5×, 10×]", "employee_growth present", "valuation vs current_employees"} {
		if !strings.Contains(got, want) {
			t.Errorf("ProfilesMarkdown() has no %q:\n%s", want, got)
		}
	}
}

func TestTableMarkdown(t *testing.T) {
	complete := peers.NewTable(
		peers.NewRecord("Cortex", "AI").With(peers.Valuation, peers.V(40_000_000)),
		peers.NewRecord("Lumen", "Fintech").With(peers.Valuation, peers.V(15_000_000)),
	)
	got := TableMarkdown(complete, "USD")
	for _, want := range []string{"2 companies", "$15,000,000", "$40,000,000"} {
		if !strings.Contains(got, want) {
			t.Errorf("TableMarkdown() has no %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Missing Values") {
		t.Errorf("TableMarkdown() of a complete table lists missing values:\n%s", got)
	}

	partial := complete.Append(peers.NewRecord("Quiet", "AI").With(peers.Employees, peers.V(4)))
	got = TableMarkdown(partial, "USD")
	for _, want := range []string{"## Missing Values", "valuation: 1", "current_employees: 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("TableMarkdown() has no %q:\n%s", want, got)
		}
	}
}
