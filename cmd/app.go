// Package cmd implements the pcmp CLI: peer comparison charts of a subject
// company against a table of peers.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/peers"
	"github.com/etnz/peers/config"
	"github.com/etnz/peers/source"
	"github.com/google/subcommands"
)

// Commands are the pcmp subcommands, in help order.
var Commands = []subcommands.Command{
	&chartCmd{},
	&peersCmd{},
	&profilesCmd{},
	&importCmd{},
	&commentCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, sub := range Commands {
		group := "charts"
		switch sub.Name() {
		case "import":
			group = "data"
		case "topic":
			group = "help"
		}
		c.Register(sub, group)
	}
}

// Known reports whether name is a pcmp subcommand.
func Known(name string) bool {
	for _, sub := range Commands {
		if sub.Name() == name {
			return true
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Configuration file (YAML, JSON or TOML). Defaults to pcmp.yaml in the working directory.")
var tableFile = flag.String("table", "", "Peer table (csv, xlsx, json or jsonl). Overrides source.path of the configuration.")

// Verbose enables detailed logging.
var Verbose = flag.Bool("v", false, "verbose logging")

func verbosef(format string, args ...any) {
	if *Verbose {
		log.Printf(format, args...)
	}
}

// loadConfig loads the configuration named by the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *tableFile != "" {
		cfg.Source.Path = *tableFile
	}
	return cfg, nil
}

// workspace is what most subcommands work on.
type workspace struct {
	cfg      *config.Config
	table    *peers.Table
	builder  *peers.Builder
	profiles []peers.Profile
}

// loadWorkspace loads the configuration, the peer table and the profiles.
func loadWorkspace() (*workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	profiles, err := cfg.ChartProfiles()
	if err != nil {
		return nil, err
	}
	builder, err := cfg.Builder()
	if err != nil {
		return nil, err
	}
	table, err := openTable(cfg.Source)
	if err != nil {
		return nil, err
	}
	verbosef("loaded %d companies from %s", table.Len(), cfg.Source.Path)
	return &workspace{cfg: cfg, table: table, builder: builder, profiles: profiles}, nil
}

func openTable(sc config.SourceConfig) (*peers.Table, error) {
	t, err := source.Open(sc.Path, source.Options{Sheet: sc.Sheet, RowsPath: sc.RowsPath})
	if err != nil {
		return nil, err
	}
	if sc.Derive {
		t = t.Derive()
	}
	return t, nil
}

// pickProfiles returns the profiles named in a comma separated list, all of
// them when the list is empty.
func pickProfiles(all []peers.Profile, names string) ([]peers.Profile, error) {
	if strings.TrimSpace(names) == "" {
		return all, nil
	}
	var picked []peers.Profile
	for _, name := range strings.Split(names, ",") {
		p, ok := peers.LookupProfile(all, strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown profile %q", name)
		}
		picked = append(picked, p)
	}
	return picked, nil
}

// renderMarkdown formats markdown for the terminal, or returns it unchanged
// when it cannot.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) {
	fmt.Fprint(os.Stdout, renderMarkdown(md))
}
