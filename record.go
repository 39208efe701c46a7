package peers

import (
	"maps"
	"slices"
)

// Record is a company: a unique name, an industry tag and optional metrics.
//
// Records have value semantics. Methods never modify the receiver; With
// returns a modified copy.
type Record struct {
	Name     string
	Industry string
	metrics  map[Field]Value
}

// NewRecord returns a record with no metrics.
func NewRecord(name, industry string) Record {
	return Record{Name: name, Industry: industry}
}

// Get returns the value of a numeric field, Absent if unknown.
func (r Record) Get(f Field) Value { return r.metrics[f] }

// Has reports whether the field is set, categorical fields included.
func (r Record) Has(f Field) bool {
	switch f {
	case Name:
		return r.Name != ""
	case Industry:
		return r.Industry != ""
	}
	return r.metrics[f].IsPresent()
}

// Text returns the field as text: the name or industry for categorical
// fields, the decimal representation otherwise.
func (r Record) Text(f Field) string {
	switch f {
	case Name:
		return r.Name
	case Industry:
		return r.Industry
	}
	return r.metrics[f].String()
}

// WithText returns a copy of r with a categorical field set to s. For a
// numeric field, s is parsed with ParseValue.
func (r Record) WithText(f Field, s string) Record {
	switch f {
	case Name:
		r.Name = s
		return r
	case Industry:
		r.Industry = s
		return r
	}
	return r.With(f, ParseValue(s))
}

// With returns a copy of r with the numeric field f set to v. Setting Absent
// removes f. Categorical fields are set from v's decimal text; use WithText
// for them instead.
func (r Record) With(f Field, v Value) Record {
	if f.Categorical() {
		return r.WithText(f, v.String())
	}
	m := make(map[Field]Value, len(r.metrics)+1)
	maps.Copy(m, r.metrics)
	if v.IsAbsent() {
		delete(m, f)
	} else {
		m[f] = v
	}
	r.metrics = m
	return r
}

// Fill returns r with f set to v, unless r already has a value for f or v is
// absent.
func (r Record) Fill(f Field, v Value) Record {
	if r.Has(f) || v.IsAbsent() {
		return r
	}
	return r.With(f, v)
}

// FillText is Fill for text, parsed as WithText does.
func (r Record) FillText(f Field, s string) Record {
	if r.Has(f) || s == "" {
		return r
	}
	return r.WithText(f, s)
}

// Fields returns the numeric fields present in r, sorted.
func (r Record) Fields() []Field {
	return slices.Sorted(maps.Keys(r.metrics))
}

// Project returns a copy of r holding only the given numeric fields. The
// name is always kept, the industry only when asked for.
func (r Record) Project(fields ...Field) Record {
	p := Record{Name: r.Name}
	for _, f := range fields {
		switch f {
		case Name:
		case Industry:
			p.Industry = r.Industry
		default:
			if v := r.Get(f); v.IsPresent() {
				p = p.With(f, v)
			}
		}
	}
	return p
}

// Equal reports whether both records hold the same name, industry and metrics.
func (r Record) Equal(o Record) bool {
	if r.Name != o.Name || r.Industry != o.Industry || len(r.metrics) != len(o.metrics) {
		return false
	}
	for f, v := range r.metrics {
		if !v.Equal(o.metrics[f]) {
			return false
		}
	}
	return true
}
