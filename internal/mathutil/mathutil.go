// Package mathutil holds the numeric helpers shared by the ephemeris,
// houses and aspects packages.
package mathutil

import (
	"fmt"
	"math"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

const (
	// PI2 is a full circle in radians.
	PI2 = math.Pi * 2
	// PIHalf is a right angle in radians.
	PIHalf = math.Pi / 2
)

// Frac returns the fractional part of x. The result keeps the sign of x.
func Frac(x float64) float64 {
	return math.Mod(x, 1)
}

// Frac360 returns Frac(x) scaled to a full circle of degrees.
func Frac360(x float64) float64 {
	return Frac(x) * 360
}

// ToRange reduces x to 0 <= x < r.
func ToRange(x, r float64) float64 {
	a := math.Mod(x, r)
	if a < 0 {
		a += r
		// Tiny negative values round up to r.
		if a >= r {
			a = 0
		}
	}
	return a
}

// ReduceDeg reduces x to 0 <= x < 360.
func ReduceDeg(x float64) float64 {
	return ToRange(x, 360)
}

// ReduceRad reduces x to 0 <= x < 2*Pi.
func ReduceRad(x float64) float64 {
	return ToRange(x, PI2)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(x float64) float64 {
	return x * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(x float64) float64 {
	return x * 180 / math.Pi
}

// Polynome evaluates terms[0] + terms[1]*t + terms[2]*t^2 + ...
func Polynome(t float64, terms ...float64) float64 {
	res := 0.0
	for i := len(terms) - 1; i >= 0; i-- {
		res = res*t + terms[i]
	}
	return res
}

// DiffAngle returns b - a in radians, in the range -Pi..Pi.
// Both arguments are expected in 0..2*Pi.
func DiffAngle(a, b float64) float64 {
	x := b - a
	if b < a {
		x = b + PI2 - a
	}
	if x > math.Pi {
		return x - PI2
	}
	return x
}

// DiffAngleDeg is DiffAngle for arc-degrees. The result is in -180..180.
func DiffAngleDeg(a, b float64) float64 {
	x := b - a
	if b < a {
		x = b + 360 - a
	}
	if x > 180 {
		return x - 360
	}
	return x
}

// DMS splits decimal degrees (or hours) into integer degrees, integer
// minutes and seconds. Only the first non-zero component carries the sign.
func DMS(x float64) (d, m int, s float64) {
	fd := math.Trunc(x)
	f := x - fd
	if fd != 0 {
		f = math.Abs(f)
	}
	fm := math.Trunc(f * 60)
	s = f*60 - fm
	if fm != 0 {
		s = math.Abs(s)
	}
	return int(fd), int(fm), s * 60
}

// ZDMS converts decimal degrees of longitude to a zero based zodiac sign
// number and degrees, minutes, seconds inside the sign.
func ZDMS(x float64) (z, d, m int, s float64) {
	dd, m, s := DMS(x)
	return dd / 30, dd % 30, m, s
}

// DDD converts degrees (or hours), minutes and seconds to a decimal value.
// If any component is negative the result is negative.
func DDD(vals ...float64) float64 {
	sgn := 1.0
	res := 0.0
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] < 0 {
			sgn = -1
		}
		res = res/60 + math.Abs(vals[i])
	}
	return res * sgn
}

// FormatAngle formats decimal degrees as a sexagesimal angle, e.g. 12°34′56″.
func FormatAngle(deg float64) string {
	return fmt.Sprintf("%v", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

// FormatHours formats decimal hours as a sexagesimal time, e.g. 3ʰ31ᵐ31ˢ.
func FormatHours(h float64) string {
	return fmt.Sprintf("%v", sexa.FmtTime(unit.Time(h*3600)))
}

// FormatZodiac formats an ecliptic longitude as sign and position in sign.
func FormatZodiac(deg float64) string {
	z, d, m, s := ZDMS(ReduceDeg(deg))
	return fmt.Sprintf("%02d°%02d′%02d″ %s", d, m, int(s), Signs[z])
}

// Signs lists the abbreviated zodiac signs from Aries.
var Signs = [12]string{"Ari", "Tau", "Gem", "Can", "Leo", "Vir", "Lib", "Sco", "Sag", "Cap", "Aqu", "Pis"}
