package peers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The native table format is JSONL: one company per line, as a flat object
// keyed by field name. It is human readable and diff friendly:
//
//	{"company_name":"Acme","industry":"AI","current_employees":30,"valuation":20000000}
//
// Keys are parsed with ParseField, so dataset aliases such as
// "valuation_clean" are accepted. Numeric fields may be numbers, numeric
// strings or null; other strings decode as absent values.

// MarshalJSON encodes the record as a flat object with name and industry
// first, then metrics in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append(string(Name), r.Name)
	w.Optional(string(Industry), r.Industry)
	for _, f := range r.Fields() {
		w.Present(string(f), r.Get(f))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a flat object as produced by MarshalJSON.
func (r *Record) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	keys := slices.Sorted(maps.Keys(raw))
	rec := Record{}
	for _, i := range DecodeOrder(keys) {
		key := keys[i]
		msg := raw[key]
		f := ParseField(key)
		switch f {
		case Name, Industry:
			var s *string
			if err := json.Unmarshal(msg, &s); err != nil {
				return fmt.Errorf("field %q must be a string: %w", key, err)
			}
			if s != nil {
				rec = rec.FillText(f, *s)
			}
		default:
			var v Value
			if err := v.UnmarshalJSON(msg); err != nil {
				// booleans, objects and arrays are unusable metrics, not errors.
				v = Absent
			}
			rec = rec.Fill(f, v)
		}
	}
	*r = rec
	return nil
}

// DecodeTable reads a JSONL stream of records. Empty lines are skipped.
// Every record must have a name.
func DecodeTable(r io.Reader) (*Table, error) {
	t := &Table{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(strings.TrimSpace(string(b))) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", line, string(b), err)
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("format error on line %d: record has no %q", line, Name)
		}
		t.rows = append(t.rows, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return t, nil
}

// EncodeTable writes t as JSONL.
func EncodeTable(w io.Writer, t *Table) error {
	for _, r := range t.All() {
		b, err := r.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encoding %q: %w", r.Name, err)
		}
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the chart spec with a stable field order. Field names
// follow the usual plotting vocabulary so that the output can feed a web
// frontend directly.
func (c ChartSpec) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", c.Kind)
	w.Optional("title", c.Title)
	w.Optional("x", c.Axes.X)
	w.Append("y", c.Axes.Y)
	w.Optional("size", c.Axes.Size)
	w.Optional("color", c.Axes.Color)

	labels := make(map[string]string)
	for _, f := range c.Axes.fields() {
		labels[string(f)] = c.Label(f)
	}
	w.Append("labels", labels)
	w.Optional("currency", c.Currency)

	points := make([]json.RawMessage, 0, len(c.Points))
	for _, p := range c.Points {
		b, err := p.MarshalJSON()
		if err != nil {
			return nil, err
		}
		points = append(points, b)
	}
	w.Append("points", points)

	var h jsonObjectWriter
	h.Append("label", c.Highlight.Label)
	h.Append("value", c.Highlight.Value)
	h.Optional("text", c.Highlight.Text)
	h.Present("x", c.Highlight.X)
	h.Present("y", c.Highlight.Y)
	hb, err := h.MarshalJSON()
	if err != nil {
		return nil, err
	}
	w.Append("highlight", json.RawMessage(hb))

	if c.YRange != nil {
		var r jsonObjectWriter
		r.Append("min", c.YRange.Min)
		r.Append("max", c.YRange.Max)
		r.Optional("ticks", c.YRange.Ticks)
		r.Optional("step", c.YRange.Step)
		rb, err := r.MarshalJSON()
		if err != nil {
			return nil, err
		}
		w.Append("y_range", json.RawMessage(rb))
	}
	return w.MarshalJSON()
}

// MarshalJSON encodes a point, omitting absent values.
func (p Point) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", p.Name)
	w.Present("x", p.X)
	w.Present("y", p.Y)
	w.Present("size", p.Size)
	w.Optional("color", p.Color)
	w.Optional("subject", p.Subject)
	return w.MarshalJSON()
}
