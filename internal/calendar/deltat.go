package calendar

import "github.com/soniakeys/meeus/v3/deltat"

// Years covered by the observed ΔT table.
const (
	deltaTFirstYear = 1620
	deltaTLastYear  = 2010
)

// DeltaT returns TT - UT in seconds for the given DJD.
//
// Inside 1620..2010 the observed values are interpolated on the fractional
// year. Outside the table the parabolic extrapolations are evaluated for the
// civil year.
func DeltaT(djd float64) float64 {
	year, _, _ := CalDay(djd)
	y := float64(year)

	switch {
	case year < 948:
		return float64(deltat.PolyBefore948(y))
	case year < deltaTFirstYear:
		return float64(deltat.Poly948to1600(y))
	case year < deltaTLastYear:
		return float64(deltat.Interp10A(djd + DJDToJD))
	default:
		// Includes the +0.37(year-2100) term up to 2100.
		return float64(deltat.PolyAfter2000(y))
	}
}
