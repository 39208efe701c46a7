package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/etnz/peers"
	"github.com/etnz/peers/renderer"
	"github.com/google/subcommands"
)

// peersCmd holds the flags for the 'peers' subcommand.
type peersCmd struct {
	profiles string
	jsonl    bool
}

func (*peersCmd) Name() string     { return "peers" }
func (*peersCmd) Synopsis() string { return "list the peers selected by profiles" }
func (*peersCmd) Usage() string {
	return `pcmp peers [-profile <names>] [-jsonl]

  Lists, for each profile, the companies the chart would show.
`
}

func (c *peersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.profiles, "profile", "", "Comma separated profiles. Defaults to all of them.")
	f.BoolVar(&c.jsonl, "jsonl", false, "Write the selected companies as JSON lines instead of a table.")
}

func (c *peersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading workspace: %v\n", err)
		return subcommands.ExitFailure
	}
	profiles, err := pickProfiles(ws.profiles, c.profiles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	status := subcommands.ExitSuccess
	var b strings.Builder
	for _, p := range profiles {
		spec, set, err := ws.builder.Build(ws.table, p)
		if errors.Is(err, peers.ErrMissingField) {
			log.Printf("skipping profile %q: %v", p.Name, err)
			status = subcommands.ExitFailure
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error selecting peers of %q: %v\n", p.Name, err)
			return subcommands.ExitFailure
		}
		if c.jsonl {
			if err := peers.EncodeTable(os.Stdout, set.Table()); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing peers: %v\n", err)
				return subcommands.ExitFailure
			}
			continue
		}
		b.WriteString(renderer.PeersMarkdown(set, spec))
		b.WriteString("\n")
	}
	if !c.jsonl {
		printMarkdown(b.String())
	}
	return status
}
