package ephem

import (
	"math"

	"go.ngs.io/ephem-api/internal/mathutil"
)

// SunMeanLongitude returns the Sun's mean longitude in degrees.
func SunMeanLongitude(t float64) float64 {
	return mathutil.ReduceDeg(2.7969668e2 + 3.025e-4*t*t + mathutil.Frac360(1.000021359e2*t))
}

// SunMeanAnomaly returns the Sun's mean anomaly in degrees.
func SunMeanAnomaly(t float64) float64 {
	return mathutil.ReduceDeg(3.5847583e2 - (1.5e-4+3.3e-6*t)*t*t + mathutil.Frac360(9.999736042e1*t))
}

// TrueGeocentricSun returns lsn, the true geocentric longitude of the Sun
// for the mean equinox of date in radians, and rsn, the Sun-Earth distance
// in AU. t is in Julian centuries since 1900 Jan 0.5.
func TrueGeocentricSun(t float64) (lsn, rsn float64, err error) {
	return trueGeocentricSun(t, SunMeanAnomaly(t))
}

// trueGeocentricSun takes a precomputed mean anomaly ms in degrees.
func trueGeocentricSun(t, ms float64) (lsn, rsn float64, err error) {
	ls := SunMeanLongitude(t)
	ma := mathutil.Deg2Rad(ms)
	s := mathutil.Polynome(t, 1.675104e-2, -4.18e-5, -1.26e-7)
	ea, err := SolveKepler(s, ma-mathutil.PI2*math.Floor(ma/mathutil.PI2))
	if err != nil {
		return 0, 0, err
	}
	nu := TrueAnomaly(s, ea)

	arg := func(a, b float64) float64 {
		return mathutil.Deg2Rad(a + mathutil.Frac360(b*t))
	}
	a := arg(153.23, 6.255209472e1)            // Venus
	b := arg(216.57, 1.251041894e2)            // Venus, second order
	c := arg(312.69, 9.156766028e1)            // Jupiter
	d := arg(350.74-1.44e-3*t*t, 1.236853095e3) // Moon
	h := arg(353.4, 1.831353208e2)             // Jupiter, second order
	e := mathutil.Deg2Rad(231.19 + 20.2*t)     // long period inequality

	dl := 1.34e-3*math.Cos(a) + 1.54e-3*math.Cos(b) + 2e-3*math.Cos(c) +
		1.79e-3*math.Sin(d) + 1.78e-3*math.Sin(e)
	dr := 5.43e-6*math.Sin(a) + 1.575e-5*math.Sin(b) + 1.627e-5*math.Sin(c) +
		3.076e-5*math.Cos(d) + 9.27e-6*math.Sin(h)

	lsn = mathutil.ReduceRad(nu + mathutil.Deg2Rad(ls-ms+dl))
	rsn = 1.0000002*(1-s*math.Cos(ea)) + dr
	return lsn, rsn, nil
}
