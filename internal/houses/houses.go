// Package houses calculates astrological house cusps and sensitive points.
//
// Quadrant systems (Placidus, Koch, Regiomontanus, Campanus, Topocentric) are
// undefined near the poles and return a *DomainError there. Morinus and the
// equal systems work at any latitude.
//
// All angles are in radians. Cusps are indexed 0..11 for houses 1..12.
package houses

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.ngs.io/ephem-api/internal/mathutil"
)

// System identifies a house system.
type System int

const (
	Placidus System = iota
	Koch
	Regiomontanus
	Campanus
	Topocentric
	Morinus
	SignCusp // whole sign houses starting at 0° Aries
	EqualAsc // equal houses starting at the Ascendant
	EqualMC  // equal houses with the Midheaven on the 10th cusp
)

var systemNames = map[System]string{
	Placidus:      "Placidus",
	Koch:          "Koch",
	Regiomontanus: "Regiomontanus",
	Campanus:      "Campanus",
	Topocentric:   "Topocentric",
	Morinus:       "Morinus",
	SignCusp:      "SignCusp",
	EqualAsc:      "EqualAsc",
	EqualMC:       "EqualMC",
}

// Systems returns all supported house systems.
func Systems() []System {
	return []System{Placidus, Koch, Regiomontanus, Campanus, Topocentric, Morinus, SignCusp, EqualAsc, EqualMC}
}

func (s System) String() string {
	if name, ok := systemNames[s]; ok {
		return name
	}
	return fmt.Sprintf("System(%d)", int(s))
}

// IsQuadrant reports whether the system divides the quadrants between the
// angles and therefore fails at high latitudes.
func (s System) IsQuadrant() bool {
	return s <= Topocentric
}

// ParseSystem returns the system with the given name, ignoring case.
// "WholeSign" and "Equal" are accepted as aliases of SignCusp and EqualAsc.
func ParseSystem(name string) (System, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "wholesign":
		return SignCusp, nil
	case "equal":
		return EqualAsc, nil
	}
	for s, n := range systemNames {
		if strings.ToLower(n) == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown house system %q", name)
}

// DomainError reports that a quadrant system is undefined at the latitude.
type DomainError struct {
	System   System
	Latitude float64 // radians
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("houses: %s system is undefined at latitude %.2f°", e.System, mathutil.Rad2Deg(e.Latitude))
}

// ErrNoConvergence is returned when the Placidus iteration does not settle.
var ErrNoConvergence = errors.New("houses: cusp iteration did not converge")

const (
	placidusDelta   = 1e-4
	placidusMaxIter = 100

	halfSecond = 0.5 / 3600 * math.Pi / 180

	r30  = math.Pi / 6
	r60  = math.Pi / 3
	r90  = math.Pi / 2
	r120 = 2 * math.Pi / 3
	r150 = 5 * math.Pi / 6
)

// Cusps returns the twelve house cusps for the given right ascension of the
// meridian, obliquity and geographical latitude.
func Cusps(sys System, ramc, eps, theta float64) ([12]float64, error) {
	switch sys {
	case Morinus:
		return morinus(ramc, eps), nil
	case SignCusp:
		return Equal(0, 0), nil
	case EqualAsc:
		return Equal(Ascendant(ramc, eps, theta), 0), nil
	case EqualMC:
		return Equal(Midheaven(ramc, eps), 9), nil
	}
	if !sys.IsQuadrant() || sys < 0 {
		return [12]float64{}, fmt.Errorf("unknown house system %v", sys)
	}
	q, err := newQuadrant(sys, ramc, eps, theta)
	if err != nil {
		return [12]float64{}, err
	}
	return q.cusps()
}

// Equal returns equal houses starting with cusp startn (zero based) at
// longitude startx.
func Equal(startx float64, startn int) [12]float64 {
	var cusps [12]float64
	for i := 0; i < 12; i++ {
		n := (startn + i) % 12
		cusps[n] = mathutil.ReduceRad(startx + r30*float64(i))
	}
	return cusps
}

func morinus(ramc, eps float64) [12]float64 {
	var cusps [12]float64
	ce := math.Cos(eps)
	for i := range cusps {
		r := ramc + r60 + r30*float64(i+1)
		cusps[i] = mathutil.ReduceRad(math.Atan2(math.Sin(r)*ce, math.Cos(r)))
	}
	return cusps
}

// InHouse returns the zero based number of the house containing longitude x,
// or -1 if the cusps do not cover it. A point within half an arcsecond before
// a cusp counts as being on the cusp.
func InHouse(x float64, cusps [12]float64) int {
	r := mathutil.ReduceRad(x + halfSecond)
	for i := 0; i < 12; i++ {
		a := cusps[i]
		b := cusps[(i+1)%12]
		if (a <= r && r < b) || (a > b && (r >= a || r < b)) {
			return i
		}
	}
	return -1
}
