// Package source reads peer tables from the files company datasets usually
// come in: CSV, Excel workbooks, JSON documents and the native JSONL format.
//
// Column headers are mapped to fields with peers.ParseField and cells are
// read with peers.ParseValue, so "valuation_clean" or "$20M" need no
// preprocessing. Unusable cells become absent values, never errors.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/peers"
)

// Options tunes how a file is read.
type Options struct {
	// Sheet is the workbook sheet to read. Defaults to the first sheet.
	Sheet string
	// RowsPath is the JSONPath selecting the array of companies in a JSON
	// document. Defaults to "$" for a top-level array, or the first array
	// property found otherwise.
	RowsPath string
}

// ErrUnknownFormat is returned by Open for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown table format")

// Open reads the table in path, choosing the decoder from the extension.
func Open(path string, opts Options) (*peers.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Decode(f, Format(path), opts)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return t, nil
}

// Format returns the format name for a file path: "csv", "xlsx", "json" or
// "jsonl". Unknown extensions are returned as is, lower-cased.
func Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "xlsm":
		return "xlsx"
	case "ndjson":
		return "jsonl"
	}
	return ext
}

// Decode reads a table in the given format from r.
func Decode(r io.Reader, format string, opts Options) (*peers.Table, error) {
	switch format {
	case "csv":
		return DecodeCSV(r)
	case "xlsx":
		return DecodeXLSX(r, opts.Sheet)
	case "json":
		return DecodeJSON(r, opts.RowsPath)
	case "jsonl":
		return peers.DecodeTable(r)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// rowBuilder turns header/cells rows into records. It is shared by the CSV
// and workbook decoders.
type rowBuilder struct {
	fields []peers.Field
	// order is the column decoding order, exact field names first.
	order []int
}

func newRowBuilder(header []string) (*rowBuilder, error) {
	b := &rowBuilder{order: peers.DecodeOrder(header)}
	for _, h := range header {
		b.fields = append(b.fields, peers.ParseField(h))
	}
	if !slices.Contains(b.fields, peers.Name) {
		return nil, fmt.Errorf("no %q column in header %q", peers.Name, header)
	}
	return b, nil
}

// build returns the record for cells, and false for rows without a name.
func (b *rowBuilder) build(cells []string) (peers.Record, bool) {
	var r peers.Record
	for _, i := range b.order {
		f := b.fields[i]
		if i >= len(cells) || f == "" {
			continue
		}
		if f.Categorical() {
			r = r.FillText(f, strings.TrimSpace(cells[i]))
		} else {
			r = r.Fill(f, peers.ParseValue(cells[i]))
		}
	}
	return r, r.Name != ""
}
