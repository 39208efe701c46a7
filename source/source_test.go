package source

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/etnz/peers"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

// summary returns "name:valuation" for every row of t.
func summary(t *peers.Table) []string {
	var out []string
	for _, r := range t.All() {
		out = append(out, r.Name+":"+r.Get(peers.Valuation).String())
	}
	return out
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"peers.csv", "csv"},
		{"data/Peers.XLSX", "xlsx"},
		{"book.xlsm", "xlsx"},
		{"api.json", "json"},
		{"table.jsonl", "jsonl"},
		{"table.ndjson", "jsonl"},
		{"notes.txt", "txt"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := Format(tc.path); got != tc.want {
				t.Errorf("Format(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestDecodeCSV(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []string
		expectErr bool
	}{
		{
			name: "aliases and formatted cells",
			input: "Company_Name,Industry,valuation_clean,total_funding_clean\n" +
				"Cortex,AI,$15M,\"1,000,000\"\n" +
				"Lumen,Fintech,nan,0\n" +
				",AI,5M,0\n",
			want: []string{"Cortex:15000000", "Lumen:"},
		},
		{
			name:  "empty input",
			input: "",
		},
		{
			name:      "no name column",
			input:     "industry,valuation\nAI,1\n",
			expectErr: true,
		},
		{
			name:  "short rows",
			input: "name,valuation,employees\nShell,2B\n",
			want:  []string{"Shell:2000000000"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeCSV(strings.NewReader(tc.input))
			if hasErr := err != nil; hasErr != tc.expectErr {
				t.Fatalf("DecodeCSV() error = %v, expectErr %v", err, tc.expectErr)
			}
			if tc.expectErr {
				return
			}
			if diff := cmp.Diff(tc.want, summary(got)); diff != "" {
				t.Errorf("DecodeCSV() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeCSVFields(t *testing.T) {
	input := "name,industry,Current Employees,founded,arr\nCortex,AI,120,2019,3.5M\n"
	table, err := DecodeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCSV() unexpected error: %v", err)
	}
	r, ok := table.Lookup("Cortex")
	if !ok {
		t.Fatalf("Lookup(Cortex) not found")
	}
	if r.Industry != "AI" {
		t.Errorf("Industry = %q, want AI", r.Industry)
	}
	if got := r.Get(peers.Employees); !got.Equal(peers.V(120)) {
		t.Errorf("employees = %s, want 120", got)
	}
	if got := r.Get(peers.Field("arr")); !got.Equal(peers.V(3_500_000)) {
		t.Errorf("arr = %s, want 3500000", got)
	}
}

func workbook(t *testing.T, sheet string, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet(%q): %v", sheet, err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow(%q): %v", cell, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer(): %v", err)
	}
	return buf
}

func TestDecodeXLSX(t *testing.T) {
	buf := workbook(t, "Sheet1",
		[]any{"Company Name", "Industry", "Valuation"},
		[]any{"Cortex", "AI", 15000000},
		[]any{"Monolith", "Cloud", "$250M"},
		[]any{"", "AI", 1},
	)
	got, err := DecodeXLSX(buf, "")
	if err != nil {
		t.Fatalf("DecodeXLSX() unexpected error: %v", err)
	}
	want := []string{"Cortex:15000000", "Monolith:250000000"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Errorf("DecodeXLSX() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeXLSXSheet(t *testing.T) {
	buf := workbook(t, "Peers",
		[]any{"name", "valuation"},
		[]any{"Lumen", 40000000},
	)
	got, err := Decode(buf, "xlsx", Options{Sheet: "Peers"})
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Lumen:40000000"}, summary(got)); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}

	buf = workbook(t, "Sheet1", []any{"name"})
	if _, err := DecodeXLSX(buf, "Missing"); err == nil {
		t.Errorf("DecodeXLSX() on a missing sheet succeeded, want an error")
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		path      string
		want      []string
		expectErr bool
	}{
		{
			name:  "top level array",
			input: `[{"name":"Cortex","valuation":15000000},{"name":"Lumen","valuation":"$40M"}]`,
			want:  []string{"Cortex:15000000", "Lumen:40000000"},
		},
		{
			name:  "first array property",
			input: `{"count":2,"results":[{"company_name":"Quiet","valuation":null},{"valuation":3}]}`,
			want:  []string{"Quiet:"},
		},
		{
			name:  "explicit path",
			input: `{"data":{"companies":[{"Company":"Shell","Valuation_Clean":2000000000,"tags":["x"]}]}}`,
			path:  "$.data.companies[*]",
			want:  []string{"Shell:2000000000"},
		},
		{
			name:  "path to the array",
			input: `{"data":{"companies":[{"name":"Shell","valuation":1}]}}`,
			path:  "$.data.companies",
			want:  []string{"Shell:1"},
		},
		{
			name:  "single object",
			input: `{"company":{"name":"Odin AI","valuation":"20M"}}`,
			path:  "$.company",
			want:  []string{"Odin AI:20000000"},
		},
		{
			name:      "not objects",
			input:     `{"values":[1,2,3]}`,
			expectErr: true,
		},
		{
			name:      "malformed",
			input:     `{"values":`,
			expectErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeJSON(strings.NewReader(tc.input), tc.path)
			if hasErr := err != nil; hasErr != tc.expectErr {
				t.Fatalf("DecodeJSON() error = %v, expectErr %v", err, tc.expectErr)
			}
			if tc.expectErr {
				return
			}
			if diff := cmp.Diff(tc.want, summary(got)); diff != "" {
				t.Errorf("DecodeJSON() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeJSONL(t *testing.T) {
	input := `{"company_name":"Cortex","industry":"AI","valuation":15000000}` + "\n\n" +
		`{"company_name":"Lumen","valuation":"40M"}` + "\n"
	got, err := Decode(strings.NewReader(input), "jsonl", Options{})
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Cortex:15000000", "Lumen:40000000"}, summary(got)); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode(strings.NewReader(""), "parquet", Options{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode() error = %v, want ErrUnknownFormat", err)
	}
}

func TestDecodeAliasedColumns(t *testing.T) {
	// valuation and valuation_clean both hold the valuation: the exact field
	// name wins when present, whatever the column order, and an empty cell
	// never clears the other column.
	want := []string{"Alpha:20000000", "Beta:15000000", "Gamma:30000000"}
	tests := []struct {
		format string
		input  func() io.Reader
	}{
		{"csv", func() io.Reader {
			return strings.NewReader("company_name,valuation_clean,valuation\n" +
				"Alpha,15000000,$20M\n" +
				"Beta,15000000,\n" +
				"Gamma,,30M\n")
		}},
		{"xlsx", func() io.Reader {
			return workbook(t, "Sheet1",
				[]any{"valuation", "name", "valuation_clean"},
				[]any{"$20M", "Alpha", 15000000},
				[]any{"n/a", "Beta", 15000000},
				[]any{30000000, "Gamma", ""},
			)
		}},
		{"json", func() io.Reader {
			return strings.NewReader(`[
				{"company_name": "Alpha", "valuation": "$20M", "valuation_clean": 15000000},
				{"company_name": "Beta", "valuation": null, "valuation_clean": 15000000},
				{"company_name": "Gamma", "valuation": 30000000, "valuation_clean": null}
			]`)
		}},
		{"jsonl", func() io.Reader {
			return strings.NewReader(`{"company_name":"Alpha","valuation_clean":15000000,"valuation":"$20M"}
{"valuation":"undisclosed","company_name":"Beta","valuation_clean":"15M"}
{"valuation_clean":null,"company_name":"Gamma","valuation":30000000}
`)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			// map iteration order must not leak into the result.
			for range 50 {
				got, err := Decode(tc.input(), tc.format, Options{})
				if err != nil {
					t.Fatalf("Decode() unexpected error: %v", err)
				}
				if diff := cmp.Diff(want, summary(got)); diff != "" {
					t.Fatalf("Decode() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
