package cmd

import (
	"flag"
	"os"
	"strings"

	"github.com/etnz/peers"
	"github.com/etnz/peers/config"
	"github.com/etnz/peers/docs"
	"github.com/etnz/peers/render"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete serves shell completion for the binary name, and exits when the
// shell asked for it. It returns in a normal run.
func Complete(name string) {
	completion().Complete(name)
}

// profilePredictor predicts profile names. The configuration is only read
// when a completion needs them, from the -config flag of the line being
// completed.
type profilePredictor struct{}

func (profilePredictor) Predict(string) []string {
	return profileNames(configFromLine(os.Getenv("COMP_LINE")))
}

// configFromLine returns the value of the -config flag in a command line,
// or "" when there is none.
func configFromLine(line string) string {
	words := strings.Fields(line)
	var path string
	for i, w := range words {
		name, value, hasValue := strings.Cut(strings.TrimLeft(w, "-"), "=")
		if !strings.HasPrefix(w, "-") || name != "config" {
			continue
		}
		switch {
		case hasValue:
			path = value
		case i+1 < len(words):
			path = words[i+1]
		}
	}
	return path
}

// profileNames returns the names of the profiles configured in path, or of
// the built-in ones when the configuration cannot be read.
func profileNames(path string) []string {
	profiles := peers.DefaultProfiles()
	if cfg, err := config.Load(path); err == nil {
		if ps, err := cfg.ChartProfiles(); err == nil {
			profiles = ps
		}
	}
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

// completion describes the pcmp command line from the subcommand flags.
func completion() *complete.Command {
	formats := render.Formats(render.Plot)
	sub := make(map[string]*complete.Command, len(Commands))
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		flags := make(map[string]complete.Predictor)
		fs.VisitAll(func(f *flag.Flag) {
			flags[f.Name] = predictor(f, formats)
		})
		sub[c.Name()] = &complete.Command{Flags: flags}
	}
	sub["import"].Args = predict.Files("*")
	if topics, err := docs.GetAllTopics(); err == nil {
		sub["topic"].Args = predict.Set(topics)
	}

	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*"),
			"table":  predict.Files("*"),
			"v":      nil,
		},
	}
}

// predictor returns the values a flag accepts. Boolean flags take none.
func predictor(f *flag.Flag, formats []string) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return nil
	}
	switch f.Name {
	case "profile":
		return profilePredictor{}
	case "backend":
		return predict.Set{render.Chart, render.Plot}
	case "format":
		return predict.Set(formats)
	case "o":
		return predict.Files("*")
	}
	return predict.Something
}
