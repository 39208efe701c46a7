package peers

import "fmt"

// Builder compares one subject against peer tables, one Profile at a time.
//
// A Builder holds no mutable state and can be shared between goroutines.
type Builder struct {
	Subject  Record
	Exclude  Exclusion
	Currency string
}

// NewBuilder returns a builder for subject.
func NewBuilder(subject Record, exclude Exclusion) *Builder {
	return &Builder{Subject: subject, Exclude: exclude, Currency: DefaultCurrency}
}

// Select runs the peer selection of p against t.
func (b *Builder) Select(t *Table, p Profile) (*PeerSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return SelectPeers(t, b.Subject, p.Field, p.SelectOptions(b.Exclude))
}

// Build selects the peers of p in t and packages them into a ChartSpec.
func (b *Builder) Build(t *Table, p Profile) (ChartSpec, *PeerSet, error) {
	set, err := b.Select(t, p)
	if err != nil {
		return ChartSpec{}, nil, fmt.Errorf("selecting peers for %q: %w", p.Name, err)
	}
	opts := []SpecOption{WithTitle(p.Title), WithCurrency(b.currency())}
	if len(p.Labels) > 0 {
		opts = append(opts, WithLabels(p.Labels))
	}
	if p.Axis != nil {
		opts = append(opts, WithAxis(*p.Axis))
	}
	spec, err := BuildChartSpec(set, b.Subject, p.Kind, p.Axes, p.Highlight, opts...)
	if err != nil {
		return ChartSpec{}, nil, fmt.Errorf("building chart %q: %w", p.Name, err)
	}
	return spec, set, nil
}

func (b *Builder) currency() string {
	if b.Currency == "" {
		return DefaultCurrency
	}
	return b.Currency
}
