package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/peers"
	"github.com/etnz/peers/config"
	"github.com/etnz/peers/render"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

const peersCSV = "company_name,industry,valuation,current_employees\n" +
	"Cortex,AI,15M,40\n" +
	"Lumen,Fintech,5M,12\n"

const subjectYAML = `subject:
  name: Odin AI
  industry: AI
  metrics:
    valuation: 20M
    current_employees: 30
`

// setup writes a configuration and a peer table, and points the global
// flags at them.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "pcmp.yaml")
	table := filepath.Join(dir, "peers.csv")
	if err := os.WriteFile(cfg, []byte(subjectYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(table, []byte(peersCSV), 0644); err != nil {
		t.Fatal(err)
	}
	oldConfig, oldTable := *configFile, *tableFile
	*configFile, *tableFile = cfg, table
	t.Cleanup(func() { *configFile, *tableFile = oldConfig, oldTable })
	return dir
}

// execute runs c with args the way subcommands does.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	return c.Execute(context.Background(), fs)
}

func TestPickProfiles(t *testing.T) {
	all := peers.DefaultProfiles()
	tests := []struct {
		names     string
		want      []string
		expectErr bool
	}{
		{names: "", want: []string{"valuation", "funding-per-employee", "valuation-per-employee", "headcount-valuation", "growth-funding", "founded-funding"}},
		{names: "valuation", want: []string{"valuation"}},
		{names: "founded-funding, valuation", want: []string{"founded-funding", "valuation"}},
		{names: "valuation,unknown", expectErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.names, func(t *testing.T) {
			got, err := pickProfiles(all, tc.names)
			if hasErr := err != nil; hasErr != tc.expectErr {
				t.Fatalf("pickProfiles(%q) error = %v, expectErr %v", tc.names, err, tc.expectErr)
			}
			var names []string
			for _, p := range got {
				names = append(names, p.Name)
			}
			if diff := cmp.Diff(tc.want, names); diff != "" {
				t.Errorf("pickProfiles(%q) mismatch (-want +got):\n%s", tc.names, diff)
			}
		})
	}
}

func TestChartOptions(t *testing.T) {
	out := config.OutputConfig{Dir: "charts", Backend: "chart", Format: "png", Width: 1200, Height: 800}
	tests := []struct {
		name     string
		cmd      chartCmd
		wantDir  string
		wantOpts render.Options
	}{
		{
			name:     "configuration",
			wantDir:  "charts",
			wantOpts: render.Options{Backend: "chart", Format: "png", Width: 1200, Height: 800},
		},
		{
			name:     "flags",
			cmd:      chartCmd{dir: "out", backend: "plot", format: "pdf", width: 640},
			wantDir:  "out",
			wantOpts: render.Options{Backend: "plot", Format: "pdf", Width: 640, Height: 800},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir, opts := tc.cmd.options(out)
			if dir != tc.wantDir {
				t.Errorf("dir = %q, want %q", dir, tc.wantDir)
			}
			if diff := cmp.Diff(tc.wantOpts, opts); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChartCommand(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "charts")

	// founded-funding needs the subject funding and founding year.
	status := execute(t, &chartCmd{}, "-profile", "valuation,founded-funding", "-format", "json", "-o", out)
	if status != subcommands.ExitFailure {
		t.Errorf("status = %v, want failure for the skipped profile", status)
	}

	b, err := os.ReadFile(filepath.Join(out, "valuation.json"))
	if err != nil {
		t.Fatalf("valuation chart not written: %v", err)
	}
	got := string(b)
	for _, want := range []string{"Cortex", "Odin AI"} {
		if !strings.Contains(got, want) {
			t.Errorf("valuation chart does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Lumen") {
		t.Errorf("valuation chart contains Lumen, outside of the band:\n%s", got)
	}
	if _, err := os.Stat(filepath.Join(out, "founded-funding.json")); err == nil {
		t.Errorf("founded-funding chart written without the subject metrics")
	}
}

func TestChartCommandUnknownProfile(t *testing.T) {
	setup(t)
	if status := execute(t, &chartCmd{}, "-profile", "nope"); status != subcommands.ExitUsageError {
		t.Errorf("status = %v, want usage error", status)
	}
}

func TestImportCommand(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "peers.jsonl")

	if status := execute(t, &importCmd{}, "-o", out, "-derive", *tableFile); status != subcommands.ExitSuccess {
		t.Fatalf("status = %v, want success", status)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	table, err := peers.DecodeTable(f)
	if err != nil {
		t.Fatalf("DecodeTable() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("imported %d companies, want 2", table.Len())
	}
	cortex, ok := table.Lookup("Cortex")
	if !ok {
		t.Fatalf("Cortex not imported")
	}
	if got, want := cortex.Get(peers.ValuationPerEmployee).String(), "375000"; got != want {
		t.Errorf("derived valuation per employee = %s, want %s", got, want)
	}
}

func TestImportCommandTooManyFiles(t *testing.T) {
	setup(t)
	if status := execute(t, &importCmd{}, "a.csv", "b.csv"); status != subcommands.ExitUsageError {
		t.Errorf("status = %v, want usage error", status)
	}
}

func TestKnown(t *testing.T) {
	for _, name := range []string{"chart", "peers", "profiles", "import", "comment", "topic"} {
		if !Known(name) {
			t.Errorf("Known(%q) = false", name)
		}
	}
	if Known("hello") {
		t.Errorf("Known(%q) = true", "hello")
	}
}
