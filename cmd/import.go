package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/peers"
	"github.com/etnz/peers/config"
	"github.com/etnz/peers/renderer"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	output   string
	sheet    string
	rowsPath string
	derive   bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "convert a peer table to JSON lines" }
func (*importCmd) Usage() string {
	return `pcmp import [-o <file.jsonl>] [-sheet <name>] [-rows <jsonpath>] [<file>]

  Reads a peer table (csv, xlsx, json or jsonl) and writes it as JSON lines,
  one company per line. Without a file, the configured table is read.
  With -o, a summary of the fields is displayed.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
	f.StringVar(&c.sheet, "sheet", "", "Sheet of an xlsx workbook. Defaults to the first one.")
	f.StringVar(&c.rowsPath, "rows", "", "JSONPath selecting the rows of a json document.")
	f.BoolVar(&c.derive, "derive", false, "Fill the per employee metrics.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one input file")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	sc := cfg.Source
	if f.NArg() == 1 {
		sc = config.SourceConfig{Path: f.Arg(0)}
	}
	if c.sheet != "" {
		sc.Sheet = c.sheet
	}
	if c.rowsPath != "" {
		sc.RowsPath = c.rowsPath
	}
	sc.Derive = sc.Derive || c.derive

	t, err := openTable(sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", sc.Path, err)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		if err := peers.EncodeTable(os.Stdout, t); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing table: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := encodeFile(c.output, t); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TableMarkdown(t, cfg.Currency))
	fmt.Printf("Imported %d companies into %s\n", t.Len(), c.output)
	return subcommands.ExitSuccess
}

func encodeFile(name string, t *peers.Table) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return peers.EncodeTable(f, t)
}
