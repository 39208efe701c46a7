package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/peers"
	"github.com/etnz/peers/renderer"
)

// Prompt returns the request to comment a chart built from set.
func Prompt(spec peers.ChartSpec, set *peers.PeerSet) string {
	var b strings.Builder
	subject, _ := set.Subject()
	fmt.Fprintf(&b, "Comment the %s chart %q comparing %s with %d peers.\n", spec.Kind, spec.Title, subject.Name, set.Peers())
	if spec.Kind == peers.Scatter {
		fmt.Fprintf(&b, "The x axis is %s and the y axis is %s.\n", spec.Label(spec.Axes.X), spec.Label(spec.Axes.Y))
	} else {
		fmt.Fprintf(&b, "The bars are %s.\n", spec.Label(spec.Axes.Y))
	}
	fmt.Fprintf(&b, "%s is highlighted at %s.\n", spec.Highlight.Label, spec.Highlight.Text)
	if set.Empty() {
		b.WriteString("No peer matched the selection, explain what it means for the subject.\n")
	}
	b.WriteString("\nThe companies of the chart:\n\n")
	b.WriteString(renderer.PeersMarkdown(set, spec))
	return b.String()
}

// Comment asks the analyst for a commentary of a chart. The analyst must be
// started.
func Comment(ctx context.Context, analyst *Expert, spec peers.ChartSpec, set *peers.PeerSet) (string, error) {
	s, err := analyst.Text(ctx, Prompt(spec, set))
	if err != nil {
		return "", fmt.Errorf("commenting %q: %w", spec.Title, err)
	}
	return s, nil
}
