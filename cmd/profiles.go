package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/peers/renderer"
	"github.com/google/subcommands"
)

type profilesCmd struct{}

func (*profilesCmd) Name() string     { return "profiles" }
func (*profilesCmd) Synopsis() string { return "list the chart profiles" }
func (*profilesCmd) Usage() string {
	return `pcmp profiles

  Lists the chart profiles: the built-in ones, as changed by the
  configuration, and the ones it adds.
`
}

func (c *profilesCmd) SetFlags(f *flag.FlagSet) {}

func (c *profilesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	profiles, err := cfg.ChartProfiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in profiles: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ProfilesMarkdown(profiles))
	return subcommands.ExitSuccess
}
