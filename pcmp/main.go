// Command pcmp draws peer comparison charts.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/peers/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !cmd.Known(sub) && !isHelp(sub) {
		if ok, code := cmd.RunExtension(sub, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isHelp(name string) bool {
	return name == "help" || name == "flags" || name == "commands"
}
