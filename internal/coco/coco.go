// Package coco transforms between celestial coordinate systems. All angles
// are in radians.
package coco

import (
	"math"

	"go.ngs.io/ephem-api/internal/mathutil"
)

const (
	equToEcl = 1.0
	eclToEqu = -1.0
)

// equecl converts between right ascension/declination and longitude/latitude.
// k selects the direction.
func equecl(x, y, eps, k float64) (float64, float64) {
	se, ce := math.Sincos(eps)
	sx := math.Sin(x)
	a := math.Atan2(sx*ce+k*math.Tan(y)*se, math.Cos(x))
	b := math.Asin(math.Sin(y)*ce - k*math.Cos(y)*se*sx)
	return mathutil.ReduceRad(a), b
}

// equhor converts between hour angle/declination and azimuth/altitude. The
// formulae are symmetrical, so the same code serves both directions.
func equhor(x, y, phi float64) (float64, float64) {
	sy, cy := math.Sincos(y)
	sphi, cphi := math.Sincos(phi)

	sq := sy*sphi + cy*cphi*math.Cos(x)
	q := math.Asin(sq)
	cp := (sy - sphi*sq) / (cphi * math.Cos(q))
	p := math.Acos(math.Max(-1, math.Min(1, cp)))
	if math.Sin(x) > 0 {
		p = mathutil.PI2 - p
	}
	return p, q
}

// EquToEcl converts right ascension and declination to ecliptic longitude and
// latitude for the obliquity eps.
func EquToEcl(ra, dec, eps float64) (lon, lat float64) {
	return equecl(ra, dec, eps, equToEcl)
}

// EclToEqu converts ecliptic longitude and latitude to right ascension and
// declination.
func EclToEqu(lon, lat, eps float64) (ra, dec float64) {
	return equecl(lon, lat, eps, eclToEqu)
}

// EquToHor converts the local hour angle h (LST minus right ascension) and
// declination to azimuth and altitude for latitude phi. Azimuth is measured
// westwards from the south.
func EquToHor(h, dec, phi float64) (az, alt float64) {
	return equhor(h, dec, phi)
}

// HorToEqu is the inverse of EquToHor.
func HorToEqu(az, alt, phi float64) (h, dec float64) {
	return equhor(az, alt, phi)
}
