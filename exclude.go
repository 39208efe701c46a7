package peers

// Exclusion reports whether a company must be left out of every comparison,
// typically a known-bad row of the source data. A nil Exclusion excludes
// nothing.
type Exclusion func(name string) bool

// ExcludeNames returns an Exclusion for a fixed set of company names.
func ExcludeNames(names ...string) Exclusion {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(name string) bool {
		_, ok := set[name]
		return ok
	}
}

func (e Exclusion) excludes(name string) bool { return e != nil && e(name) }
