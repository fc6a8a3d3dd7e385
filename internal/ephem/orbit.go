package ephem

import (
	"fmt"

	"go.ngs.io/ephem-api/internal/mathutil"
)

// Orbit holds the polynomial coefficients of a planet's orbital elements.
// Angles are in degrees, t in Julian centuries since 1900 Jan 0.5.
type Orbit struct {
	ML [4]float64 // mean longitude
	PH []float64  // longitude of perihelion
	EC []float64  // eccentricity
	IN []float64  // inclination
	ND []float64  // longitude of ascending node
	SA float64    // semi-major axis, AU
	DI float64    // angular diameter at 1 AU, arcseconds
	MG float64    // standard visual magnitude
	DM float64    // mean daily motion, degrees
}

// OrbitalElements is an orbit evaluated for a moment.
type OrbitalElements struct {
	S   float64 // eccentricity
	SA  float64 // semi-major axis, AU
	PH  float64 // longitude of perihelion, radians
	Inc float64 // inclination, radians
	ND  float64 // longitude of ascending node, radians
}

func newOrbit(o Orbit) *Orbit {
	o.DM = o.ML[1]*9.856263e-3 + (o.ML[2]+o.ML[3])/36525
	return &o
}

var orbits = map[Body]*Orbit{
	Mercury: newOrbit(Orbit{
		ML: [4]float64{178.179078, 415.2057519, 3.011e-4},
		PH: []float64{75.899697, 1.5554889, 2.947e-4},
		EC: []float64{2.0561421e-1, 2.046e-5, -3e-8},
		IN: []float64{7.002881, 1.8608e-3, -1.83e-5},
		ND: []float64{47.145944, 1.1852083, 1.739e-4},
		SA: 3.870986e-1,
		DI: 6.74,
		MG: -0.42,
	}),
	Venus: newOrbit(Orbit{
		ML: [4]float64{342.767053, 162.5533664, 3.097e-4},
		PH: []float64{130.163833, 1.4080361, -9.764e-4},
		EC: []float64{6.82069e-3, -4.774e-5, 9.1e-8},
		IN: []float64{3.393631, 1.0058e-3, -1e-6},
		ND: []float64{75.779647, 8.9985e-1, 4.1e-4},
		SA: 7.233316e-1,
		DI: 16.92,
		MG: -4.4,
	}),
	Mars: newOrbit(Orbit{
		ML: [4]float64{293.737334, 53.17137642, 3.107e-4},
		PH: []float64{3.34218203e2, 1.8407584, 1.299e-4, -1.19e-6},
		EC: []float64{9.33129e-2, 9.2064e-5, -7.7e-8},
		IN: []float64{1.850333, -6.75e-4, 1.26e-5},
		ND: []float64{48.786442, 7.709917e-1, -1.4e-6, -5.33e-6},
		SA: 1.5236883,
		DI: 9.36,
		MG: -1.52,
	}),
	Jupiter: newOrbit(Orbit{
		ML: [4]float64{238.049257, 8.434172183, 3.347e-4, -1.65e-6},
		PH: []float64{1.2720972e1, 1.6099617, 1.05627e-3, -3.43e-6},
		EC: []float64{4.833475e-2, 1.6418e-4, -4.676e-7, -1.7e-9},
		IN: []float64{1.308736, -5.6961e-3, 3.9e-6},
		ND: []float64{99.443414, 1.01053, 3.5222e-4, -8.51e-6},
		SA: 5.202561,
		DI: 196.74,
		MG: -9.4,
	}),
	Saturn: newOrbit(Orbit{
		ML: [4]float64{266.564377, 3.398638567, 3.245e-4, -5.8e-6},
		PH: []float64{9.1098214e1, 1.9584158, 8.2636e-4, 4.61e-6},
		EC: []float64{5.589232e-2, -3.455e-4, -7.28e-7, 7.4e-10},
		IN: []float64{2.492519, -3.9189e-3, -1.549e-5, 4e-8},
		ND: []float64{112.790414, 8.731951e-1, -1.5218e-4, -5.31e-6},
		SA: 9.554747,
		DI: 165.6,
		MG: -8.88,
	}),
	Uranus: newOrbit(Orbit{
		ML: [4]float64{244.19747, 1.194065406, 3.16e-4, -6e-7},
		PH: []float64{1.71548692e2, 1.4844328, 2.372e-4, -6.1e-7},
		EC: []float64{4.63444e-2, -2.658e-5, 7.7e-8},
		IN: []float64{7.72464e-1, 6.253e-4, 3.95e-5},
		ND: []float64{73.477111, 4.986678e-1, 1.3117e-3},
		SA: 19.21814,
		DI: 65.8,
		MG: -7.19,
	}),
	Neptune: newOrbit(Orbit{
		ML: [4]float64{84.457994, 6.107942056e-1, 3.205e-4, -6e-7},
		PH: []float64{4.6727364e1, 1.4245744, 3.9082e-4, -6.05e-7},
		EC: []float64{8.99704e-3, 6.33e-6, -2e-9},
		IN: []float64{1.779242, -9.5436e-3, -9.1e-6},
		ND: []float64{130.681389, 1.098935, 2.4987e-4, -4.718e-6},
		SA: 30.10957,
		DI: 62.2,
		MG: -6.87,
	}),
	// Osculating elements for 1984 Jan 21.
	Pluto: newOrbit(Orbit{
		ML: [4]float64{95.3113544, 3.980332167e-1},
		PH: []float64{224.017},
		EC: []float64{2.5515e-1},
		IN: []float64{17.1329},
		ND: []float64{110.191},
		SA: 39.8151,
		DI: 8.2,
		MG: -1.0,
	}),
}

// OrbitFor returns the orbit of planet b.
func OrbitFor(b Body) (*Orbit, error) {
	o, ok := orbits[b]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, b)
	}
	return o, nil
}

// MeanLongitude returns the mean longitude in degrees. Whole revolutions are
// removed from the linear term before the other terms are added.
func (o *Orbit) MeanLongitude(t float64) float64 {
	b := mathutil.Frac360(o.ML[1] * t)
	return mathutil.ReduceDeg(o.ML[0] + b + (o.ML[3]*t+o.ML[2])*t*t)
}

// Perihelion returns the longitude of perihelion in degrees.
func (o *Orbit) Perihelion(t float64) float64 {
	return mathutil.ReduceDeg(mathutil.Polynome(t, o.PH...))
}

// Eccentricity returns the orbit eccentricity.
func (o *Orbit) Eccentricity(t float64) float64 {
	return mathutil.ReduceDeg(mathutil.Polynome(t, o.EC...))
}

// Inclination returns the inclination in degrees.
func (o *Orbit) Inclination(t float64) float64 {
	return mathutil.ReduceDeg(mathutil.Polynome(t, o.IN...))
}

// AscendingNode returns the longitude of the ascending node in degrees.
func (o *Orbit) AscendingNode(t float64) float64 {
	return mathutil.ReduceDeg(mathutil.Polynome(t, o.ND...))
}

// Instantiate evaluates the orbit for moment t.
func (o *Orbit) Instantiate(t float64) OrbitalElements {
	return OrbitalElements{
		S:   o.Eccentricity(t),
		SA:  o.SA,
		PH:  mathutil.Deg2Rad(o.Perihelion(t)),
		Inc: mathutil.Deg2Rad(o.Inclination(t)),
		ND:  mathutil.Deg2Rad(o.AscendingNode(t)),
	}
}

// MeanAnomaly returns the mean anomaly in radians, moved back by dt days
// of light time.
func (o *Orbit) MeanAnomaly(t, dt float64) float64 {
	return mathutil.Deg2Rad(o.MeanLongitude(t) - o.Perihelion(t) - dt*o.DM)
}

// meanAnomalies holds the mean anomalies of all planets, indexed by Body.
type meanAnomalies [Pluto + 1]float64

func meanAnomaliesAt(t, dt float64) meanAnomalies {
	var res meanAnomalies
	for b, o := range orbits {
		res[b] = o.MeanAnomaly(t, dt)
	}
	return res
}
