package peers

import (
	"fmt"
	"maps"
	"slices"
)

// Profile describes one comparison chart as data: which field peers are
// compared on, how close they must be, and how the result is drawn.
type Profile struct {
	Name  string
	Title string
	Kind  Kind

	// Field is the comparison and sort field. Lower, Upper and Floor form
	// the band on it.
	Field        Field
	Lower, Upper float64
	Floor        Value
	// Bands are extra bands combined with the first one with a logical AND.
	Bands     []Band
	Ascending bool

	Axes      Axes
	Highlight Field
	Labels    map[Field]string
	Axis      *AxisOptions
}

// SelectOptions returns the selection options of the profile.
func (p Profile) SelectOptions(exclude Exclusion) SelectOptions {
	return SelectOptions{
		Lower:     p.Lower,
		Upper:     p.Upper,
		Floor:     p.Floor,
		Bands:     slices.Clone(p.Bands),
		Exclude:   exclude,
		Ascending: p.Ascending,
		Keep:      p.Axes.fields(),
	}
}

// Validate checks that the profile can be built.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if p.Field == "" {
		return fmt.Errorf("profile %q has no comparison field", p.Name)
	}
	if p.Axes.Y == "" {
		return fmt.Errorf("profile %q has no y axis", p.Name)
	}
	if p.Kind == Scatter && p.Axes.X == "" {
		return fmt.Errorf("scatter profile %q has no x axis", p.Name)
	}
	if p.Highlight == "" {
		return fmt.Errorf("profile %q has no highlight field", p.Name)
	}
	if err := (Band{Field: p.Field, Lower: p.Lower, Upper: p.Upper}).Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	for _, b := range p.Bands {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	return nil
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	p.Bands = slices.Clone(p.Bands)
	p.Labels = maps.Clone(p.Labels)
	if p.Axis != nil {
		a := *p.Axis
		p.Axis = &a
	}
	return p
}

// axis returns a pointer to a copy of o.
func axis(o AxisOptions) *AxisOptions { return &o }

// DefaultProfiles returns the standard set of comparison charts:
//
//   - valuation, funding-per-employee and valuation-per-employee: bar charts
//     of the peers within [0.5×, 10×] of the subject.
//   - headcount-valuation: scatter of the peers within [0.5×, 120×] of the
//     subject's valuation and [0×, 5×] of its headcount, with at least one
//     employee.
//   - growth-funding and founded-funding: scatter of every company with
//     both values known.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name:      "valuation",
			Title:     "Valuation of Competitors",
			Kind:      Bar,
			Field:     Valuation,
			Lower:     0.5,
			Upper:     10,
			Axes:      Axes{X: Name, Y: Valuation},
			Highlight: Valuation,
		},
		{
			Name:      "funding-per-employee",
			Title:     "Funding per Employee: Competitors Near the Subject",
			Kind:      Bar,
			Field:     FundingPerEmployee,
			Lower:     0.5,
			Upper:     10,
			Floor:     V(0),
			Axes:      Axes{X: Name, Y: FundingPerEmployee},
			Highlight: FundingPerEmployee,
		},
		{
			Name:      "valuation-per-employee",
			Title:     "Valuation per Employee: Competitors Near the Subject",
			Kind:      Bar,
			Field:     ValuationPerEmployee,
			Lower:     0.5,
			Upper:     10,
			Floor:     V(0),
			Axes:      Axes{X: Name, Y: ValuationPerEmployee},
			Highlight: ValuationPerEmployee,
		},
		{
			Name:      "headcount-valuation",
			Title:     "Current Employees vs Valuation: Subject and Closest Peers",
			Kind:      Scatter,
			Field:     Valuation,
			Lower:     0.5,
			Upper:     120,
			Bands:     []Band{NewBand(Employees, 0, 5).WithFloor(V(1))},
			Axes:      Axes{X: Employees, Y: Valuation, Color: Industry},
			Highlight: Valuation,
			Axis:      axis(AxisOptions{AboveSubject: V(3_000_000_000), Pad: 0.06, Step: 500_000_000}),
		},
		{
			Name:      "growth-funding",
			Title:     "Funding vs Growth Rate (Bubble = Headcount)",
			Kind:      Scatter,
			Field:     TotalFunding,
			Lower:     0,
			Upper:     inf,
			Bands:     []Band{Unbounded(EmployeeGrowth)},
			Axes:      Axes{X: EmployeeGrowth, Y: TotalFunding, Size: Employees, Color: Industry},
			Highlight: TotalFunding,
			Axis:      axis(AxisOptions{Headroom: 1.1, Pad: 0.06, Ticks: 8}),
		},
		{
			Name:      "founded-funding",
			Title:     "Funding vs Year Founded",
			Kind:      Scatter,
			Field:     TotalFunding,
			Lower:     0,
			Upper:     inf,
			Bands:     []Band{Unbounded(Founded)},
			Axes:      Axes{X: Founded, Y: TotalFunding, Color: Name},
			Highlight: TotalFunding,
			Axis:      axis(AxisOptions{Max: V(500_000_000), Pad: 0.06, Ticks: 10}),
		},
	}
}

// LookupProfile returns the profile named name.
func LookupProfile(profiles []Profile, name string) (Profile, bool) {
	i := slices.IndexFunc(profiles, func(p Profile) bool { return p.Name == name })
	if i < 0 {
		return Profile{}, false
	}
	return profiles[i], true
}
