// Package aspects finds astrological aspects between ecliptic longitudes.
// Longitudes are in degrees.
package aspects

import (
	"math"
	"sort"
)

// TypeFlag classifies aspects. Flags combine as a bit set.
type TypeFlag uint8

const (
	Major TypeFlag = 1 << iota
	Minor
	Kepler

	All = Major | Minor | Kepler
)

func (f TypeFlag) String() string {
	switch f {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Kepler:
		return "kepler"
	case All:
		return "all"
	}
	return "mixed"
}

// MarshalText implements encoding.TextMarshaler.
func (f TypeFlag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Influence is the traditional character of an aspect.
type Influence int

const (
	Neutral Influence = iota
	Positive
	Negative
)

func (i Influence) String() string {
	switch i {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "neutral"
}

// MarshalText implements encoding.TextMarshaler.
func (i Influence) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// Aspect is an angular relationship between two points.
type Aspect struct {
	Name      string    `json:"name"`
	Brief     string    `json:"brief"`
	Value     float64   `json:"value"`
	Influence Influence `json:"influence"`
	Type      TypeFlag  `json:"type"`
}

var (
	Conjunction    = Aspect{"Conjunction", "cnj", 0, Neutral, Major}
	Vigintile      = Aspect{"Vigintile", "vgt", 18, Neutral, Kepler}
	Quindecile     = Aspect{"Quindecile", "qdc", 24, Neutral, Kepler}
	Semisextile    = Aspect{"Semisextile", "ssx", 30, Positive, Minor}
	Decile         = Aspect{"Decile", "dcl", 36, Neutral, Kepler}
	Sextile        = Aspect{"Sextile", "sxt", 60, Positive, Major}
	Semisquare     = Aspect{"Semisquare", "ssq", 45, Negative, Minor}
	Quintile       = Aspect{"Quintile", "qui", 72, Neutral, Kepler}
	Square         = Aspect{"Square", "sqr", 90, Negative, Major}
	Tridecile      = Aspect{"Tridecile", "tdc", 108, Positive, Minor}
	Trine          = Aspect{"Trine", "tri", 120, Positive, Major}
	Sesquiquadrate = Aspect{"Sesquiquadrate", "sqq", 135, Negative, Minor}
	Biquintile     = Aspect{"Biquintile", "bqu", 144, Neutral, Kepler}
	Quincunx       = Aspect{"Quincunx", "qcx", 150, Negative, Minor}
	Opposition     = Aspect{"Opposition", "opp", 180, Negative, Major}
)

// Aspects lists every known aspect.
var Aspects = []Aspect{
	Conjunction, Vigintile, Quindecile, Semisextile, Decile, Sextile,
	Semisquare, Quintile, Square, Tridecile, Trine,
	Sesquiquadrate, Biquintile, Quincunx, Opposition,
}

// Point is a named ecliptic longitude.
type Point struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
}

// Match is an aspect found between a source point and a target.
type Match struct {
	Target string  `json:"target"`
	Aspect Aspect  `json:"aspect"`
	Arc    float64 `json:"arc"`   // angular distance, 0..180
	Delta  float64 `json:"delta"` // distance from the exact aspect
}

// FindAspects returns, for each target in aspect with source, the closest
// aspect among those selected by flags. Targets without aspects are skipped.
func FindAspects(source Point, targets []Point, method OrbsMethod, flags TypeFlag) []Match {
	var matches []Match
	for _, target := range targets {
		arc := math.Abs(source.X - target.X)
		if arc > 180 {
			arc = 360 - arc
		}
		if m, ok := closest(source.Name, target.Name, arc, method, flags); ok {
			m.Target = target.Name
			matches = append(matches, m)
		}
	}
	return matches
}

func closest(src, dst string, arc float64, method OrbsMethod, flags TypeFlag) (Match, bool) {
	var best Match
	found := false
	for _, asp := range Aspects {
		if flags&asp.Type == 0 || !method.IsAspect(src, dst, asp, arc) {
			continue
		}
		delta := math.Abs(asp.Value - arc)
		if !found || best.Delta > delta {
			best = Match{Aspect: asp, Arc: arc, Delta: delta}
			found = true
		}
	}
	return best, found
}

// DefaultStelliumGap is the default maximal distance between neighbours of a
// stellium, degrees.
const DefaultStelliumGap = 10.0

// Stelliums partitions positions into groups of neighbours lying no further
// than gap degrees from each other. A point without close neighbours forms a
// group of its own. Groups are ordered by longitude.
func Stelliums(positions []Point, gap float64) [][]Point {
	sorted := make([]Point, len(positions))
	copy(sorted, positions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var groups [][]Point
	var group []Point
	for i, curr := range sorted {
		group = append(group, curr)
		if i == len(sorted)-1 || sorted[i+1].X-curr.X > gap {
			groups = append(groups, group)
			group = nil
		}
	}
	return groups
}
