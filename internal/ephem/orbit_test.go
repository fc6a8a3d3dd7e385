package ephem

import (
	"errors"
	"math"
	"testing"
)

func TestOrbitElements(t *testing.T) {
	tc := 30700.5 / 36525 // 1984 Jan 21
	cases := []struct {
		body Body
		ml   float64
		dm   float64
		ph   float64
		ec   float64
		in   float64
		nd   float64
		sa   float64
		di   float64
		mg   float64
	}{
		{Mercury, 176.191, 4.09238, 77.2073, .205631, 7.00443, 48.1423, .387099, 6.74, -0.42},
		{Mars, 182.982, .524071, 335.766, 9.33903e-02, 1.84977, 49.4345, 1.52369, 9.36, -1.52},
		{Jupiter, 270.164, 8.31294e-02, 14.0749, 4.84724e-02, 1.30395, 100.293, 5.20256, 196.74, -9.4},
	}
	for _, c := range cases {
		o, err := OrbitFor(c.body)
		if err != nil {
			t.Fatalf("OrbitFor(%v): %v", c.body, err)
		}
		checks := []struct {
			name      string
			got, want float64
		}{
			{"ML", o.MeanLongitude(tc), c.ml},
			{"DM", o.DM, c.dm},
			{"PH", o.Perihelion(tc), c.ph},
			{"EC", o.Eccentricity(tc), c.ec},
			{"IN", o.Inclination(tc), c.in},
			{"ND", o.AscendingNode(tc), c.nd},
			{"SA", o.SA, c.sa},
			{"DI", o.DI, c.di},
			{"MG", o.MG, c.mg},
		}
		for _, ch := range checks {
			if math.Abs(ch.got-ch.want) > 1e-2 {
				t.Errorf("%v.%s = %v, want %v", c.body, ch.name, ch.got, ch.want)
			}
		}
	}
}

func TestOrbitFor_Unknown(t *testing.T) {
	for _, b := range []Body{Sun, Moon, Node, Body(42)} {
		if _, err := OrbitFor(b); !errors.Is(err, ErrConfiguration) {
			t.Errorf("OrbitFor(%v): expected ErrConfiguration, got %v", b, err)
		}
	}
}

func TestPerturbations(t *testing.T) {
	tc := 30700.5 / 36525
	ma := meanAnomaliesAt(tc, 0)
	ms := SunMeanAnomaly(tc) * math.Pi / 180

	cases := []struct {
		body Body
		want Perturbation
	}{
		{Mercury, Perturbation{DL: -0.00137, DR: -0.00001}},
		{Venus, Perturbation{DL: -0.00296, DR: -0.00002}},
		{Mars, Perturbation{DL: 0.00559, DR: -0.00002, DML: 0.00023, DM: 0.00023}},
		{Jupiter, Perturbation{DML: 0.00069, DS: -0.00044, DM: -0.02062, DA: 0.00020}},
		{Saturn, Perturbation{DML: -0.00004, DS: -0.00469, DM: -0.02854, DA: 0.01638, DHL: -0.00005}},
		{Uranus, Perturbation{DL: -0.03708, DR: -0.02201, DML: -0.01396, DS: 0.00097, DM: 0.02726, DA: -0.00138, DHL: 0.00002}},
		{Neptune, Perturbation{DL: -0.00004, DR: -0.03142, DML: 0.00953, DS: -0.00041, DM: 0.07023, DA: 0.00314}},
		{Pluto, Perturbation{}},
	}
	for _, c := range cases {
		o, err := OrbitFor(c.body)
		if err != nil {
			t.Fatalf("OrbitFor(%v): %v", c.body, err)
		}
		got := perturbations(c.body, perturbArgs{t: tc, ms: ms, s: o.Eccentricity(tc), ma: ma})
		fields := []struct {
			name      string
			got, want float64
		}{
			{"dl", got.DL, c.want.DL},
			{"dr", got.DR, c.want.DR},
			{"dml", got.DML, c.want.DML},
			{"ds", got.DS, c.want.DS},
			{"dm", got.DM, c.want.DM},
			{"da", got.DA, c.want.DA},
			{"dhl", got.DHL, c.want.DHL},
		}
		for _, f := range fields {
			if math.Abs(f.got-f.want) > 1e-4 {
				t.Errorf("%v %s = %v, want %v", c.body, f.name, f.got, f.want)
			}
		}
	}
}
