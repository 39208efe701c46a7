package source

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/peers"
)

// DecodeJSON reads companies from a JSON document, such as an API response.
// rowsPath is a JSONPath expression selecting the companies, e.g.
// "$.data.companies[*]". Each company is a flat object keyed by field.
func DecodeJSON(r io.Reader, rowsPath string) (*peers.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	if rowsPath == "" {
		rowsPath = defaultRowsPath(doc)
	}
	jval, err := jsonpath.Get(rowsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", rowsPath, err)
	}

	var objects []any
	switch v := jval.(type) {
	case []any:
		objects = v
		// Recursive paths such as "$..companies" wrap the array in a list.
		if len(v) == 1 {
			if inner, ok := v[0].([]any); ok {
				objects = inner
			}
		}
	case map[string]any:
		objects = []any{v}
	default:
		return nil, fmt.Errorf("%q selects %T, want objects", rowsPath, jval)
	}

	var rows []peers.Record
	for i, o := range objects {
		obj, ok := o.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q item %d is %T, want an object", rowsPath, i, o)
		}
		rec, ok := recordFromObject(obj)
		if !ok {
			log.Printf("skipping item %d of %q: no company name", i, rowsPath)
			continue
		}
		rows = append(rows, rec)
	}
	return peers.NewTable(rows...), nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// defaultRowsPath returns "$" for a top level array, or the path to the first
// array property of a top level object, in key order.
func defaultRowsPath(doc any) string {
	obj, ok := doc.(map[string]any)
	if !ok {
		return "$"
	}
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		if _, ok := obj[k].([]any); !ok {
			continue
		}
		if identifier.MatchString(k) {
			return "$." + k
		}
		return fmt.Sprintf("$[%q]", k)
	}
	return "$"
}

func recordFromObject(obj map[string]any) (peers.Record, bool) {
	keys := slices.Sorted(maps.Keys(obj))
	var r peers.Record
	for _, i := range peers.DecodeOrder(keys) {
		f := peers.ParseField(keys[i])
		switch v := obj[keys[i]].(type) {
		case string:
			r = r.FillText(f, strings.TrimSpace(v))
		case json.Number:
			r = r.Fill(f, peers.ParseValue(v.String()))
		case float64:
			r = r.Fill(f, peers.V(v))
		}
	}
	return r, r.Name != ""
}
