package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/peers"
)

// ProfileConfig overrides a default chart profile, or declares a new one
// when Name matches none. Zero fields keep the default.
//
// Bounds are text so that "inf" can be used for an open upper bound.
type ProfileConfig struct {
	Name      string            `mapstructure:"name"`
	Title     string            `mapstructure:"title"`
	Kind      string            `mapstructure:"kind"`
	Field     string            `mapstructure:"field"`
	Lower     string            `mapstructure:"lower"`
	Upper     string            `mapstructure:"upper"`
	Floor     string            `mapstructure:"floor"`
	Bands     []BandConfig      `mapstructure:"bands"`
	Ascending bool              `mapstructure:"ascending"`
	X         string            `mapstructure:"x"`
	Y         string            `mapstructure:"y"`
	Size      string            `mapstructure:"size"`
	Color     string            `mapstructure:"color"`
	Highlight string            `mapstructure:"highlight"`
	Labels    map[string]string `mapstructure:"labels"`
	Axis      *AxisConfig       `mapstructure:"axis"`
	Disabled  bool              `mapstructure:"disabled"`
}

// BandConfig is an extra selection band.
type BandConfig struct {
	Field string `mapstructure:"field"`
	Lower string `mapstructure:"lower"`
	Upper string `mapstructure:"upper"`
	Floor string `mapstructure:"floor"`
}

// AxisConfig is the y-axis range hint of a profile.
type AxisConfig struct {
	Max          string  `mapstructure:"max"`
	AboveSubject string  `mapstructure:"above_subject"`
	Headroom     float64 `mapstructure:"headroom"`
	Pad          float64 `mapstructure:"pad"`
	Ticks        int     `mapstructure:"ticks"`
	Step         string  `mapstructure:"step"`
}

// ChartProfiles returns the default profiles with the configured ones
// applied, in order: defaults first, then new profiles. Disabled profiles are
// left out.
func (c *Config) ChartProfiles() ([]peers.Profile, error) {
	profiles := peers.DefaultProfiles()
	disabled := make(map[string]bool)
	for _, pc := range c.Profiles {
		if pc.Disabled {
			disabled[pc.Name] = true
			continue
		}
		i := -1
		for j, p := range profiles {
			if p.Name == pc.Name {
				i = j
				break
			}
		}
		var base peers.Profile
		if i >= 0 {
			base = profiles[i]
		} else {
			base = peers.Profile{Name: pc.Name, Lower: 0.5, Upper: 10}
		}
		p, err := pc.apply(base)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", pc.Name, err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if i >= 0 {
			profiles[i] = p
		} else {
			profiles = append(profiles, p)
		}
	}

	out := profiles[:0]
	for _, p := range profiles {
		if !disabled[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (pc ProfileConfig) apply(p peers.Profile) (peers.Profile, error) {
	p = p.Clone()
	var err error
	if pc.Title != "" {
		p.Title = pc.Title
	}
	if pc.Kind != "" {
		if p.Kind, err = peers.ParseKind(pc.Kind); err != nil {
			return p, err
		}
	}
	if pc.Field != "" {
		p.Field = peers.ParseField(pc.Field)
	}
	if pc.Lower != "" {
		if p.Lower, err = bound(pc.Lower); err != nil {
			return p, err
		}
	}
	if pc.Upper != "" {
		if p.Upper, err = bound(pc.Upper); err != nil {
			return p, err
		}
	}
	if pc.Floor != "" {
		if p.Floor, err = metric(pc.Floor); err != nil {
			return p, err
		}
	}
	if pc.Bands != nil {
		p.Bands = nil
		for _, bc := range pc.Bands {
			b, err := bc.band()
			if err != nil {
				return p, err
			}
			p.Bands = append(p.Bands, b)
		}
	}
	if pc.Ascending {
		p.Ascending = true
	}

	if pc.X != "" {
		p.Axes.X = peers.ParseField(pc.X)
	}
	if pc.Y != "" {
		p.Axes.Y = peers.ParseField(pc.Y)
	}
	if pc.Size != "" {
		p.Axes.Size = peers.ParseField(pc.Size)
	}
	if pc.Color != "" {
		p.Axes.Color = peers.ParseField(pc.Color)
	}
	// A new profile charts its comparison field by default.
	if p.Axes.Y == "" {
		p.Axes.Y = p.Field
	}
	if p.Axes.X == "" && p.Kind == peers.Bar {
		p.Axes.X = peers.Name
	}
	if pc.Highlight != "" {
		p.Highlight = peers.ParseField(pc.Highlight)
	}
	if p.Highlight == "" {
		p.Highlight = p.Axes.Y
	}

	if len(pc.Labels) > 0 {
		if p.Labels == nil {
			p.Labels = make(map[peers.Field]string)
		}
		for k, l := range pc.Labels {
			p.Labels[peers.ParseField(k)] = l
		}
	}
	if pc.Axis != nil {
		if p.Axis, err = pc.Axis.options(); err != nil {
			return p, err
		}
	}
	return p, nil
}

func (bc BandConfig) band() (peers.Band, error) {
	if bc.Field == "" {
		return peers.Band{}, fmt.Errorf("band has no field")
	}
	b := peers.Unbounded(peers.ParseField(bc.Field))
	var err error
	if bc.Lower != "" {
		if b.Lower, err = bound(bc.Lower); err != nil {
			return b, err
		}
	}
	if bc.Upper != "" {
		if b.Upper, err = bound(bc.Upper); err != nil {
			return b, err
		}
	}
	if bc.Floor != "" {
		if b.Floor, err = metric(bc.Floor); err != nil {
			return b, err
		}
	}
	return b, nil
}

func (ac AxisConfig) options() (*peers.AxisOptions, error) {
	o := peers.DefaultAxisOptions()
	var err error
	if ac.Max != "" {
		if o.Max, err = metric(ac.Max); err != nil {
			return nil, err
		}
	}
	if ac.AboveSubject != "" {
		if o.AboveSubject, err = metric(ac.AboveSubject); err != nil {
			return nil, err
		}
	}
	if ac.Headroom > 0 {
		o.Headroom = ac.Headroom
	}
	if ac.Pad > 0 {
		o.Pad = ac.Pad
	}
	o.Ticks = ac.Ticks
	if ac.Step != "" {
		step, err := metric(ac.Step)
		if err != nil {
			return nil, err
		}
		o.Step = step.Float64()
	}
	return &o, nil
}

// bound parses a band multiplier. "inf" is an open bound.
func bound(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(strings.TrimPrefix(s, "+"), "inf") {
		return math.Inf(1), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bound %q", s)
	}
	return f, nil
}
