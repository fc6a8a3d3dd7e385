package ephem

import (
	"fmt"
	"strings"
)

// Body identifies a celestial object handled by the ephemeris.
type Body int

// Bodies in chart order.
const (
	Moon Body = iota
	Sun
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Node
)

var bodyNames = [...]string{
	Moon:    "Moon",
	Sun:     "Sun",
	Mercury: "Mercury",
	Venus:   "Venus",
	Mars:    "Mars",
	Jupiter: "Jupiter",
	Saturn:  "Saturn",
	Uranus:  "Uranus",
	Neptune: "Neptune",
	Pluto:   "Pluto",
	Node:    "Node",
}

// String returns the body name.
func (b Body) String() string {
	if b < Moon || b > Node {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// IsPlanet reports whether b is one of Mercury..Pluto.
func (b Body) IsPlanet() bool {
	return b >= Mercury && b <= Pluto
}

// IsInner reports whether b orbits inside the Earth's orbit.
func (b Body) IsInner() bool {
	return b == Mercury || b == Venus
}

// AllBodies returns every body in chart order.
func AllBodies() []Body {
	res := make([]Body, 0, len(bodyNames))
	for b := Moon; b <= Node; b++ {
		res = append(res, b)
	}
	return res
}

// Planets returns Mercury..Pluto.
func Planets() []Body {
	return []Body{Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}
}

// ParseBody resolves a body by name, case-insensitively.
func ParseBody(name string) (Body, error) {
	for b, n := range bodyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Body(b), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrLookup, name)
}

// ParseBodies resolves a comma separated list of names. An empty list
// means every body.
func ParseBodies(list string) ([]Body, error) {
	if strings.TrimSpace(list) == "" {
		return AllBodies(), nil
	}
	parts := strings.Split(list, ",")
	res := make([]Body, 0, len(parts))
	for _, p := range parts {
		b, err := ParseBody(p)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, nil
}
