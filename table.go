package peers

import (
	"iter"
	"slices"
)

// Table is an ordered sequence of company records.
//
// A Table is never modified once built: Filter, Derive and Append return new
// tables.
type Table struct {
	rows []Record
}

// NewTable returns a table holding a copy of rows.
func NewTable(rows ...Record) *Table {
	return &Table{rows: slices.Clone(rows)}
}

// Len returns the number of rows. A nil table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns the i-th row.
func (t *Table) Row(i int) Record { return t.rows[i] }

// All iterates over the rows in order.
func (t *Table) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		if t == nil {
			return
		}
		for i, r := range t.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Column returns the values of f, one per row.
func (t *Table) Column(f Field) []Value {
	col := make([]Value, 0, t.Len())
	for _, r := range t.All() {
		col = append(col, r.Get(f))
	}
	return col
}

// Lookup returns the first row named name.
func (t *Table) Lookup(name string) (Record, bool) {
	for _, r := range t.All() {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := &Table{}
	for _, r := range t.All() {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Append returns a new table with rows added at the end.
func (t *Table) Append(rows ...Record) *Table {
	out := &Table{rows: make([]Record, 0, t.Len()+len(rows))}
	for _, r := range t.All() {
		out.rows = append(out.rows, r)
	}
	out.rows = append(out.rows, rows...)
	return out
}

// Derive returns a new table where each row has its derived metrics filled.
func (t *Table) Derive() *Table {
	out := &Table{rows: make([]Record, 0, t.Len())}
	for _, r := range t.All() {
		out.rows = append(out.rows, Derive(r))
	}
	return out
}

// Fields returns every numeric field present in at least one row, sorted.
func (t *Table) Fields() []Field {
	seen := make(map[Field]bool)
	var fields []Field
	for _, r := range t.All() {
		for _, f := range r.Fields() {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	slices.Sort(fields)
	return fields
}
