package aspects

import (
	"fmt"
	"math"
	"strings"
)

// OrbsMethod decides whether two points form an aspect.
type OrbsMethod interface {
	Name() string
	IsAspect(src, dst string, asp Aspect, arc float64) bool
}

// DefaultMoiety applies to bodies missing from the moieties table.
const DefaultMoiety = 4.0

var dariotMoieties = map[string]float64{
	"Moon":    12,
	"Sun":     15,
	"Mercury": 7,
	"Venus":   7,
	"Mars":    8,
	"Jupiter": 9,
	"Saturn":  9,
	"Uranus":  6,
	"Neptune": 6,
	"Pluto":   5,
}

// Dariot uses the moieties of Claude Dariot: the orb of two bodies is the
// mean of their moieties, whatever the aspect.
type Dariot struct {
	moieties map[string]float64
}

// NewDariot returns the classic method. overrides replaces the moieties of
// the named bodies.
func NewDariot(overrides map[string]float64) *Dariot {
	m := make(map[string]float64, len(dariotMoieties)+len(overrides))
	for k, v := range dariotMoieties {
		m[k] = v
	}
	for k, v := range overrides {
		m[k] = v
	}
	return &Dariot{moieties: m}
}

// Name implements OrbsMethod.
func (d *Dariot) Name() string { return "Classic (Claude Dariot)" }

// Moiety returns the moiety of a body, degrees.
func (d *Dariot) Moiety(name string) float64 {
	if v, ok := d.moieties[name]; ok {
		return v
	}
	return DefaultMoiety
}

// Orb returns the mean orb of two bodies.
func (d *Dariot) Orb(src, dst string) float64 {
	return (d.Moiety(src) + d.Moiety(dst)) / 2
}

// IsAspect implements OrbsMethod.
func (d *Dariot) IsAspect(src, dst string, asp Aspect, arc float64) bool {
	return math.Abs(arc-asp.Value) <= d.Orb(src, dst)
}

var deVoreRanges = map[string][2]float64{
	"Conjunction":    {-10, 6},
	"Vigintile":      {17.5, 18.5},
	"Quindecile":     {23.5, 24.5},
	"Semisextile":    {28, 31},
	"Decile":         {35.5, 36.5},
	"Sextile":        {56, 63},
	"Semisquare":     {42, 49},
	"Quintile":       {71.5, 72.5},
	"Square":         {84, 96},
	"Tridecile":      {107.5, 108.5},
	"Trine":          {113, 125},
	"Sesquiquadrate": {132, 137},
	"Biquintile":     {143.5, 144.5},
	"Quincunx":       {148, 151},
	"Opposition":     {174, 186},
}

// DeVore uses per-aspect ranges from Nicholas deVore's "Encyclopaedia of
// Astrology". The bodies involved do not matter.
type DeVore struct{}

// Name implements OrbsMethod.
func (DeVore) Name() string { return "By Aspect (Nicholas deVore)" }

// IsAspect implements OrbsMethod.
func (DeVore) IsAspect(_, _ string, asp Aspect, arc float64) bool {
	r, ok := deVoreRanges[asp.Name]
	return ok && r[0] <= arc && arc <= r[1]
}

// ClassicWithAspectRatio applies Dariot orbs to major aspects and scales them
// down for minor and Kepler aspects.
type ClassicWithAspectRatio struct {
	MinorCoeff  float64
	KeplerCoeff float64
	classic     *Dariot
}

// NewClassicWithAspectRatio returns the method with the usual coefficients,
// 0.6 for minor and 0.4 for Kepler aspects.
func NewClassicWithAspectRatio(classic *Dariot) *ClassicWithAspectRatio {
	if classic == nil {
		classic = NewDariot(nil)
	}
	return &ClassicWithAspectRatio{MinorCoeff: 0.6, KeplerCoeff: 0.4, classic: classic}
}

// Name implements OrbsMethod.
func (c *ClassicWithAspectRatio) Name() string { return "Classic with regard to Aspect type" }

// IsAspect implements OrbsMethod.
func (c *ClassicWithAspectRatio) IsAspect(src, dst string, asp Aspect, arc float64) bool {
	orb := c.classic.Orb(src, dst)
	switch asp.Type {
	case Minor:
		orb *= c.MinorCoeff
	case Kepler:
		orb *= c.KeplerCoeff
	}
	return math.Abs(arc-asp.Value) <= orb
}

// ParseMethod returns the orbs method with the given key: "dariot",
// "devore" or "ratio". overrides are the moieties used by the classic
// methods.
func ParseMethod(key string, overrides map[string]float64) (OrbsMethod, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "dariot", "classic":
		return NewDariot(overrides), nil
	case "devore":
		return DeVore{}, nil
	case "ratio", "aspect-ratio":
		return NewClassicWithAspectRatio(NewDariot(overrides)), nil
	}
	return nil, fmt.Errorf("unknown orbs method %q", key)
}
