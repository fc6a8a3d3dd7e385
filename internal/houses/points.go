package houses

import (
	"math"

	"go.ngs.io/ephem-api/internal/mathutil"
)

// Midheaven returns the highest point of intersection between the meridian
// and the ecliptic. ramc is the right ascension of the meridian and eps the
// obliquity of the ecliptic. All angles are in radians.
func Midheaven(ramc, eps float64) float64 {
	x := math.Atan2(math.Tan(ramc), math.Cos(eps))
	if x < 0 {
		x += math.Pi
	}
	if math.Sin(ramc) < 0 {
		x += math.Pi
	}
	return mathutil.ReduceRad(x)
}

// Ascendant returns the point of the ecliptic rising on the eastern horizon.
// theta is the geographical latitude, positive northwards.
func Ascendant(ramc, eps, theta float64) float64 {
	return mathutil.ReduceRad(math.Atan2(
		math.Cos(ramc),
		-math.Sin(ramc)*math.Cos(eps)-math.Tan(theta)*math.Sin(eps),
	))
}

// Vertex returns the westernmost intersection of the ecliptic with the prime
// vertical.
func Vertex(ramc, eps, theta float64) float64 {
	return Ascendant(ramc+math.Pi, eps, mathutil.PIHalf-theta)
}

// EastPoint returns the equatorial ascendant: the point of the ecliptic rising
// in the east for an observer on the equator.
func EastPoint(ramc, eps float64) float64 {
	return mathutil.ReduceRad(math.Atan2(math.Cos(ramc), -math.Sin(ramc)*math.Cos(eps)))
}
