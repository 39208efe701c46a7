package peers

import "slices"

// SelectOptions configures SelectPeers.
type SelectOptions struct {
	// Lower and Upper are the multiples of the band on the comparison field.
	Lower, Upper float64
	// Floor is an optional absolute minimum on the comparison field.
	Floor Value
	// Bands are additional bands, all of which a peer must also satisfy.
	Bands []Band
	// Exclude drops rows by name before any band test.
	Exclude Exclusion
	// Ascending sorts by increasing value. The default is descending.
	Ascending bool
	// Keep lists the extra fields copied from the subject when it has to be
	// appended, on top of the comparison field and the band fields.
	Keep []Field
}

// band returns the band on the comparison field.
func (o SelectOptions) band(f Field) Band {
	return Band{Field: f, Lower: o.Lower, Upper: o.Upper, Floor: o.Floor}
}

// SelectPeers returns the peers of subject in t that are comparable on field.
//
// A row is kept when its name is not excluded, and its field value lies in
// [Lower × subject[field], Upper × subject[field]], and it satisfies every
// extra band. The subject is exempt from the band tests: if no kept row
// carries its name, the subject is appended, projected on the fields the
// chart needs. A kept row with the subject's name is kept as-is.
//
// The result is stable-sorted on field, descending unless opts.Ascending.
//
// It returns a *MissingFieldError if the subject has no value for field or
// for the field of an extra band. Zero matching peers is not an error.
func SelectPeers(t *Table, subject Record, field Field, opts SelectOptions) (*PeerSet, error) {
	bands := append([]Band{opts.band(field)}, opts.Bands...)
	anchors := make([]Value, len(bands))
	for i, b := range bands {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		v, err := require(subject, b.Field)
		if err != nil {
			return nil, err
		}
		anchors[i] = v
	}

	set := &PeerSet{field: field, subject: subject.Name}
	seen := make(map[string]bool)
	for _, r := range t.All() {
		if opts.Exclude.excludes(r.Name) || seen[r.Name] {
			continue
		}
		if !inside(bands, anchors, r) {
			continue
		}
		// names are unique keys: only the first matching row counts.
		seen[r.Name] = true
		if r.Name == subject.Name {
			set.found = true
		}
		set.records = append(set.records, r)
	}

	if !set.found {
		keep := make([]Field, 0, len(bands)+len(opts.Keep))
		for _, b := range bands {
			keep = append(keep, b.Field)
		}
		keep = append(keep, opts.Keep...)
		set.records = append(set.records, subject.Project(keep...))
	}

	slices.SortStableFunc(set.records, func(a, b Record) int {
		c := a.Get(field).Cmp(b.Get(field))
		if opts.Ascending {
			return c
		}
		return -c
	})
	return set, nil
}

// inside reports whether r satisfies every band.
func inside(bands []Band, anchors []Value, r Record) bool {
	for i, b := range bands {
		if !b.Contains(anchors[i], r.Get(b.Field)) {
			return false
		}
	}
	return true
}
