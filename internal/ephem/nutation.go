package ephem

import (
	"math"

	"go.ngs.io/ephem-api/internal/mathutil"
)

// Nutation returns the nutation in longitude (dpsi) and in obliquity (deps),
// both in degrees, for t Julian centuries since 1900 Jan 0.5.
// Accuracy is about 1 arcsecond.
func Nutation(t float64) (dpsi, deps float64) {
	t2 := t * t
	ls := mathutil.Deg2Rad(2.796967e2 + 3.030e-4*t2 + mathutil.Frac360(1.000021358e2*t))
	ms := mathutil.Deg2Rad(3.584758e2 - 1.500e-4*t2 + mathutil.Frac360(9.999736056e1*t))
	ld := mathutil.Deg2Rad(2.704342e2 - 1.133e-3*t2 + mathutil.Frac360(1.336855231e3*t))
	md := mathutil.Deg2Rad(2.961046e2 + 9.192e-3*t2 + mathutil.Frac360(1.325552359e3*t))
	nm := mathutil.Deg2Rad(2.591833e2 + 2.078e-3*t2 - mathutil.Frac360(5.372616667*t))
	tls, tld, tnm := 2*ls, 2*ld, 2*nm

	dpsi = (-17.2327 - 1.737e-2*t)*math.Sin(nm) +
		(-1.2729 - 1.3e-4*t)*math.Sin(tls) +
		2.088e-1*math.Sin(tnm) -
		2.037e-1*math.Sin(tld) +
		(1.261e-1 - 3.1e-4*t)*math.Sin(ms) +
		6.75e-2*math.Sin(md) -
		(4.97e-2 - 1.2e-4*t)*math.Sin(tls + ms) -
		3.42e-2*math.Sin(tld - nm) -
		2.61e-2*math.Sin(tld + md) +
		2.14e-2*math.Sin(tls - ms) -
		1.49e-2*math.Sin(tls - tld + md) +
		1.24e-2*math.Sin(tls - nm) +
		1.14e-2*math.Sin(tld - md)

	deps = (9.21 + 9.1e-4*t)*math.Cos(nm) +
		(5.522e-1 - 2.9e-4*t)*math.Cos(tls) -
		9.04e-2*math.Cos(tnm) +
		8.84e-2*math.Cos(tld) +
		2.16e-2*math.Cos(tls + ms) +
		1.83e-2*math.Cos(tld - nm) +
		1.13e-2*math.Cos(tld + md) -
		9.3e-3*math.Cos(tls - ms) -
		6.6e-3*math.Cos(tls - nm)

	return dpsi / 3600, deps / 3600
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees for
// djd, Julian days since 1900 Jan 0.5.
func MeanObliquity(djd float64) float64 {
	return TrueObliquity(djd, 0)
}

// TrueObliquity returns the obliquity of the ecliptic in degrees corrected
// by deps, the nutation in obliquity in degrees.
func TrueObliquity(djd, deps float64) float64 {
	t := djd / 36525
	c := ((-0.00181*t+0.0059)*t + 46.845) * t
	return 23.45229444 - c/3600 + deps
}
