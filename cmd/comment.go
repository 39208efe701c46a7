package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/etnz/peers"
	"github.com/etnz/peers/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// commentCmd holds the flags for the 'comment' subcommand.
type commentCmd struct {
	profiles    string
	interactive bool
}

func (*commentCmd) Name() string     { return "comment" }
func (*commentCmd) Synopsis() string { return "comment charts with Gemini" }
func (*commentCmd) Usage() string {
	return `pcmp comment [-profile <names>] [-i [<question>...]]

  Asks Gemini for a short commentary of each chart. With -i, starts an
  interactive session about the peers instead.

  The API key is read from gemini.api_key, PCMP_GEMINI_API_KEY,
  GEMINI_API_KEY or GOOGLE_API_KEY.
`
}

func (c *commentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.profiles, "profile", "", "Comma separated profiles to comment. Defaults to all of them.")
	f.BoolVar(&c.interactive, "i", false, "Start an interactive session. Remaining arguments are the first question.")
}

func (c *commentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  ws.cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	model := ws.cfg.Gemini.Model

	if c.interactive {
		charter := agent.NewCharter(model, &agent.Workspace{Table: ws.table, Builder: ws.builder, Profiles: profiles})
		a := agent.NewSession(os.Stdout, os.Stdin, model, agent.NewAnalyst(model), charter)
		a.Print = func(w io.Writer, s string) { fmt.Fprint(w, renderMarkdown(s)) }
		var prompts []string
		if f.NArg() > 0 {
			prompts = append(prompts, strings.Join(f.Args(), " "))
		}
		if err := a.Run(ctx, client, prompts...); err != nil {
			fmt.Fprintln(os.Stderr, "Session failed:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	analyst := agent.NewAnalyst(model)
	if err := analyst.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting the analyst:", err)
		return subcommands.ExitFailure
	}
	status := subcommands.ExitSuccess
	for _, p := range profiles {
		spec, set, err := ws.builder.Build(ws.table, p)
		if errors.Is(err, peers.ErrMissingField) {
			log.Printf("skipping profile %q: %v", p.Name, err)
			status = subcommands.ExitFailure
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building chart %q: %v\n", p.Name, err)
			return subcommands.ExitFailure
		}
		text, err := agent.Comment(ctx, analyst, spec, set)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(fmt.Sprintf("# %s\n\n%s\n", spec.Title, text))
	}
	return status
}
