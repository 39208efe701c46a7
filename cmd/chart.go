package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/peers"
	"github.com/etnz/peers/config"
	"github.com/etnz/peers/render"
	"github.com/google/subcommands"
)

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	profiles string
	dir      string
	backend  string
	format   string
	width    int
	height   int
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw peer comparison charts" }
func (*chartCmd) Usage() string {
	return `pcmp chart [-profile <names>] [-o <dir>] [-backend chart|plot] [-format png|svg|pdf|json]

  Draws one chart file per profile, named after the profile, in the output
  directory. A profile that cannot be drawn for the subject is reported and
  skipped.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.profiles, "profile", "", "Comma separated profiles to draw. Defaults to all of them.")
	f.StringVar(&c.dir, "o", "", "Output directory. Defaults to output.dir of the configuration.")
	f.StringVar(&c.backend, "backend", "", "Drawing backend: 'chart' (go-chart) or 'plot' (gonum/plot).")
	f.StringVar(&c.format, "format", "", "Output format: png, svg, pdf (plot only) or json.")
	f.IntVar(&c.width, "width", 0, "Image width in pixels.")
	f.IntVar(&c.height, "height", 0, "Image height in pixels.")
}

// options merges the flags over the configured output.
func (c *chartCmd) options(out config.OutputConfig) (string, render.Options) {
	opts := render.Options{Backend: out.Backend, Format: out.Format, Width: out.Width, Height: out.Height}
	dir := out.Dir
	if c.dir != "" {
		dir = c.dir
	}
	if c.backend != "" {
		opts.Backend = c.backend
	}
	if c.format != "" {
		opts.Format = c.format
	}
	if c.width > 0 {
		opts.Width = c.width
	}
	if c.height > 0 {
		opts.Height = c.height
	}
	if dir == "" {
		dir = "."
	}
	return dir, opts
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	dir, opts := c.options(ws.cfg.Output)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory %q: %v\n", dir, err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, p := range profiles {
		spec, set, err := ws.builder.Build(ws.table, p)
		if errors.Is(err, peers.ErrMissingField) {
			log.Printf("skipping chart %q: %v", p.Name, err)
			status = subcommands.ExitFailure
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building chart %q: %v\n", p.Name, err)
			return subcommands.ExitFailure
		}
		if set.Empty() {
			log.Printf("warning: no peer matched profile %q, the chart only shows %s", p.Name, ws.builder.Subject.Name)
		}
		verbosef("profile %q: %d peers by %s", p.Name, set.Peers(), set.Field())

		name := filepath.Join(dir, p.Name+"."+extension(opts.Format))
		if err := writeChart(name, spec, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing chart %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Wrote %s\n", name)
	}
	return status
}

func extension(format string) string {
	if format == "" {
		return "png"
	}
	return format
}

// writeChart renders spec into the file name.
func writeChart(name string, spec peers.ChartSpec, opts render.Options) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.Render(f, spec, opts)
}
