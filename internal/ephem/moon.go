package ephem

import (
	"math"

	"go.ngs.io/ephem-api/internal/mathutil"
)

const (
	earthRadiusKm = 6378.14
	auKm          = 149597870.7
)

// MoonPosition is the true geocentric position of the Moon.
type MoonPosition struct {
	Lon      float64 // ecliptic longitude, radians
	Lat      float64 // ecliptic latitude, radians
	Dist     float64 // distance from the Earth, AU
	Parallax float64 // horizontal parallax, degrees
	Motion   float64 // daily motion in longitude, degrees
}

// MoonTruePosition returns the Moon's geocentric position for the mean
// equinox of date, djd being Julian days since 1900 Jan 0.5.
func MoonTruePosition(djd float64) MoonPosition {
	lm, bm, hp, dm := moonSeries(djd)
	return MoonPosition{
		Lon:      lm,
		Lat:      bm,
		Dist:     earthRadiusKm / math.Sin(mathutil.Deg2Rad(hp)) / auKm,
		Parallax: hp,
		Motion:   dm,
	}
}

// moonSeries returns longitude and latitude in radians, horizontal
// parallax in degrees and daily motion in degrees per day.
func moonSeries(djd float64) (lm, bm, hp, dm float64) {
	t := djd / 36525
	t2 := t * t
	rev := func(period float64) float64 {
		return 360 * mathutil.Frac(djd/period)
	}

	ld := 270.434164 + rev(27.32158213) - (.001133 - .0000019*t)*t2 // mean longitude
	ms := 358.475833 + rev(365.2596407) - (.00015 + .0000033*t)*t2  // Sun mean anomaly
	md := 296.104608 + rev(27.55455094) + (.009192 + .0000144*t)*t2 // Moon mean anomaly
	de := 350.737486 + rev(29.53058868) - (.001436 - .0000019*t)*t2 // mean elongation
	f := 11.250889 + rev(27.21222039) - (.003211 + .0000003*t)*t2   // distance from node
	n := 259.183275 - rev(6798.363307) + (.002078 + .0000022*t)*t2  // node

	a := mathutil.Deg2Rad(51.2 + 20.2*t)
	sa := sin(a)
	sn := sin(mathutil.Deg2Rad(n))
	b := 346.56 + (132.87 - .0091731*t)*t
	sb := .003964 * sin(mathutil.Deg2Rad(b))
	c := mathutil.Deg2Rad(n + 275.05 - 2.3*t)
	sc := sin(c)

	ld = mathutil.Deg2Rad(ld + .000233*sa + sb + .001964*sn)
	ms = mathutil.Deg2Rad(ms - .001778*sa)
	md = mathutil.Deg2Rad(md + .000817*sa + sb + .002541*sn)
	f = mathutil.Deg2Rad(f + sb - .024691*sn - .004328*sc)
	de = mathutil.Deg2Rad(de + .002011*sa + sb + .001964*sn)
	n = mathutil.Deg2Rad(n)
	e := 1 - (.002495 + 7.52e-06*t)*t
	e2 := e * e

	l := 6.28875*sin(md) + 1.274018*sin(2*de - md) + .658309*sin(2 * de) +
		.213616*sin(2 * md) - e*.185596*sin(ms) - .114336*sin(2 * f) +
		.058793*sin(2 * (de - md)) + .057212*e*sin(2*de - ms - md) +
		.05332*sin(2*de + md) + .045874*e*sin(2*de - ms) +
		.041024*e*sin(md - ms) - .034718*sin(de) - e*.030465*sin(ms + md) +
		.015326*sin(2 * (de - f)) - .012528*sin(2*f + md) -
		.01098*sin(2*f - md) + .010674*sin(4*de - md) +
		.010034*sin(3 * md) + .008548*sin(4*de - 2*md) -
		e*.00791*sin(ms - md + 2*de) - e*.006783*sin(2*de + ms) +
		.005162*sin(md - de) + e*.005*sin(ms + de) +
		.003862*sin(4 * de) + e*.004049*sin(md - ms + 2*de) +
		.003996*sin(2 * (md + de)) + .003665*sin(2*de - 3*md) +
		e*.002695*sin(2*md - ms) + .002602*sin(md - 2*(f + de)) +
		e*.002396*sin(2*(de - md) - ms) - .002349*sin(md + de) +
		e2*.002249*sin(2 * (de - ms)) - e*.002125*sin(2*md + ms) -
		e2*.002079*sin(2 * ms) + e2*.002059*sin(2*(de - ms) - md) -
		.001773*sin(md + 2*(de - f)) - .001595*sin(2 * (f + de)) +
		e*.00122*sin(4*de - ms - md) - .00111*sin(2 * (md + f)) +
		.000892*sin(md - 3*de) - e*.000811*sin(ms + md + 2*de) +
		e*.000761*sin(4*de - ms - 2*md) +
		e2*.000704*sin(md - 2*(ms + de)) +
		e*.000693*sin(ms - 2*(md - de)) +
		e*.000598*sin(2*(de - f) - ms) +
		.00055*sin(md + 4*de) + .000538*sin(4 * md) +
		e*.000521*sin(4*de - ms) + .000486*sin(2*md - de) +
		e2*.000717*sin(md - 2*ms)
	lm = mathutil.ReduceRad(ld + mathutil.Deg2Rad(l))

	g := 5.128189*sin(f) + .280606*sin(md + f) + .277693*sin(md - f) +
		.173238*sin(2*de - f) + .055413*sin(2*de + f - md) +
		.046272*sin(2*de - f - md) + .032573*sin(2*de + f) +
		.017198*sin(2*md + f) + .009267*sin(2*de + md - f) +
		.008823*sin(2*md - f) + e*.008247*sin(2*de - ms - f) +
		.004323*sin(2*(de - md) - f) + .0042*sin(2*de + f + md) +
		e*.003372*sin(f - ms - 2*de) + e*.002472*sin(2*de + f - ms - md) +
		e*.002222*sin(2*de + f - ms) + e*.002072*sin(2*de - f - ms - md) +
		e*.001877*sin(f - ms + md) + .001828*sin(4*de - f - md) -
		e*.001803*sin(f + ms) - .00175*sin(3 * f) +
		e*.00157*sin(md - ms - f) - .001487*sin(f + de) -
		e*.001481*sin(f + ms + md) + e*.001417*sin(f - ms - md) +
		e*.00135*sin(f - ms) + .00133*sin(f - de) +
		.001106*sin(f + 3*md) + .00102*sin(4*de - f) +
		.000833*sin(f + 4*de - md) + .000781*sin(md - 3*f) +
		.00067*sin(f + 4*de - 2*md) + .000606*sin(2*de - 3*f) +
		.000597*sin(2*(de + md) - f) +
		e*.000492*sin(2*de + md - ms - f) + .00045*sin(2*(md - de) - f) +
		.000439*sin(3*md - f) + .000423*sin(f + 2*(de + md)) +
		.000422*sin(2*de - f - 3*md) - e*.000367*sin(ms + f + 2*de - md) -
		e*.000353*sin(ms + f + 2*de) + .000331*sin(f + 4*de) +
		e*.000317*sin(2*de + f - ms + md) +
		e2*.000306*sin(2*(de - ms) - f) - .000283*sin(md + 3*f)
	w1 := .0004664 * cos(n)
	w2 := .0000754 * cos(c)
	bm = mathutil.Deg2Rad(g) * (1 - w1 - w2)

	hp = .950724 + .051818*cos(md) + .009531*cos(2*de - md) +
		.007843*cos(2 * de) + .002824*cos(2 * md) +
		.000857*cos(2*de + md) + e*.000533*cos(2*de - ms) +
		e*.000401*cos(2*de - md - ms) + e*.00032*cos(md - ms) -
		.000271*cos(de) - e*.000264*cos(ms + md) -
		.000198*cos(2*f - md) + .000173*cos(3 * md) +
		.000167*cos(4*de - md) - e*.000111*cos(ms) +
		.000103*cos(4*de - 2*md) - .000084*cos(2*md - 2*de) -
		e*.000083*cos(2*de + ms) + .000079*cos(2*de + 2*md) +
		.000072*cos(4 * de) + e*.000064*cos(2*de - ms + md) -
		e*.000063*cos(2*de + ms - md) + e*.000041*cos(ms + de) +
		e*.000035*cos(2*md - ms) - .000033*cos(3*md - 2*de) -
		.00003*cos(md + de) - .000029*cos(2 * (f - de)) -
		e*.000029*cos(2*md + ms) + e2*.000026*cos(2 * (de - ms)) -
		.000023*cos(2*(f - de) + md) + e*.000019*cos(4*de - ms - md)

	// Rate of the longitude series, main terms only.
	dm = 13.176396 + 1.434006*cos(md) + .280135*cos(2*de) +
		.251632*cos(2*de - md) + .09742*cos(2*md) - .052799*cos(2*f) +
		.034848*cos(2*de + md) + .018732*cos(2*de - ms) +
		.010316*cos(2*de - ms - md) + .008649*cos(ms - md) -
		.008642*cos(2*f + md) - .007471*cos(ms + md) - .007387*cos(de) +
		.006864*cos(3*md) + .00665*cos(4*de - md) +
		.003523*cos(2*de + 2*md) + .003377*cos(4*de - 2*md) +
		.003287*cos(4*de) - .003193*cos(ms) - .003003*cos(2*de + ms) +
		.002577*cos(md - ms + 2*de) - .002567*cos(2*f - md) -
		.001794*cos(2*de - 2*md) - .001716*cos(md - 2*f - 2*de) -
		.001698*cos(2*de + ms - md) - .001415*cos(2*de + 2*f) +
		.001183*cos(2*md - ms) + .00115*cos(de + ms) -
		.001035*cos(de + md) - .001019*cos(2*f + 2*md) -
		.001006*cos(ms + 2*md)
	return lm, bm, hp, dm
}

// nodeCenturies returns Julian centuries since J2000.0 for djd.
func nodeCenturies(djd float64) float64 {
	return (djd + 2415020 - 2451545) / 36525
}

// MeanNode returns the longitude of the Moon's mean ascending node in
// radians.
func MeanNode(djd float64) float64 {
	t := nodeCenturies(djd)
	om := mathutil.Polynome(t, 125.0445479, -1934.1362891, 0.0020754, 1.0/467441, -1.0/60616000)
	return mathutil.Deg2Rad(mathutil.ReduceDeg(om))
}

// TrueNode returns the longitude of the Moon's true ascending node in
// radians. The mean node is corrected by the main periodic terms.
func TrueNode(djd float64) float64 {
	t := nodeCenturies(djd)
	d := mathutil.Deg2Rad(mathutil.Polynome(t, 297.8501921, 445267.1114034, -0.0018819, 1.0/545868, -1.0/113065000))
	m := mathutil.Deg2Rad(mathutil.Polynome(t, 357.5291092, 35999.0502909, -0.0001536, 1.0/24490000))
	mm := mathutil.Deg2Rad(mathutil.Polynome(t, 134.9633964, 477198.8675055, 0.0087414, 1.0/69699, -1.0/14712000))
	f := mathutil.Deg2Rad(mathutil.Polynome(t, 93.2720950, 483202.0175233, -0.0036539, -1.0/3526000, 1.0/863310000))
	corr := -1.4979*sin(2*(d-f)) - 0.15*sin(m) - 0.1226*sin(2*d) +
		0.1176*sin(2*f) - 0.0801*sin(2*(f-mm))
	return mathutil.ReduceRad(MeanNode(djd) + mathutil.Deg2Rad(corr))
}
