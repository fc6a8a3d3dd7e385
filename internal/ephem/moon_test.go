package ephem

import (
	"math"
	"testing"

	"go.ngs.io/ephem-api/internal/mathutil"
)

func TestMoonTruePosition(t *testing.T) {
	// djd, longitude, latitude (degrees), horizontal parallax (degrees)
	cases := [][4]float64{
		{-1.000050e+04, 253.85478, -0.35884, 0.98681},
		{-7.000500e+03, 183.03298, -5.10613, 0.96482},
		{-4.000500e+03, 114.49714, 0.29899, 0.91786},
		{-1.000500e+03, 46.33258, 5.03904, 0.89971},
		{+1.999500e+03, 340.74811, -0.76686, 0.91660},
		{+4.999500e+03, 273.11888, -5.22297, 0.93431},
		{+7.999500e+03, 198.76809, 0.13467, 0.97476},
		{+1.099950e+04, 123.17331, 5.01217, 1.02067},
		{+1.399950e+04, 50.40519, 0.59539, 1.00077},
		{+1.699950e+04, 336.88148, -5.04905, 0.94329},
		{+1.999950e+04, 266.43192, -1.18331, 0.91398},
		{+2.299950e+04, 200.91657, 5.13843, 0.90354},
		{+2.599950e+04, 134.05765, 0.87204, 0.90670},
		{+2.899950e+04, 64.16216, -4.94147, 0.94934},
		{+3.199950e+04, 354.53313, -0.77311, 0.99650},
		{+3.499950e+04, 280.10165, 5.06817, 0.99501},
		{+3.799950e+04, 201.62149, 2.25573, 0.97435},
		{+4.099950e+04, 128.41649, -4.51661, 0.95591},
		{+4.399950e+04, 61.54198, -2.45092, 0.92162},
		{+4.699950e+04, 353.93133, 4.49791, 0.89930},
	}
	for _, c := range cases {
		got := MoonTruePosition(c[0])
		if lon := mathutil.Rad2Deg(got.Lon); math.Abs(lon-c[1]) > 1e-4 {
			t.Errorf("DJD %v: longitude %v, want %v", c[0], lon, c[1])
		}
		if lat := mathutil.Rad2Deg(got.Lat); math.Abs(lat-c[2]) > 1e-4 {
			t.Errorf("DJD %v: latitude %v, want %v", c[0], lat, c[2])
		}
		if math.Abs(got.Parallax-c[3]) > 1e-4 {
			t.Errorf("DJD %v: parallax %v, want %v", c[0], got.Parallax, c[3])
		}
		// 356000..407000 km
		if km := got.Dist * auKm; km < 350000 || km > 410000 {
			t.Errorf("DJD %v: distance %v km out of range", c[0], km)
		}
	}
}

func TestMoonApparent(t *testing.T) {
	cases := []struct {
		djd, lng float64
	}{
		{23772.99027777778, 310.19998902960941},
		{30735.5, 260.7128333333333},  // 1984-2-25.0
		{16773.8121, 246.94925},       // 1945-12-4.3121
	}
	for _, c := range cases {
		got, err := NewInstant(c.djd, WithApparent(true)).Longitude(Moon)
		if err != nil {
			t.Fatalf("Longitude(Moon): %v", err)
		}
		if math.Abs(got-c.lng) > 1e-4 {
			t.Errorf("DJD %v: apparent longitude %v, want %v", c.djd, got, c.lng)
		}
	}
}

func TestLunarNode(t *testing.T) {
	djd := 23772.990277
	mean, err := NewInstant(djd, WithTrueNode(false)).Longitude(Node)
	if err != nil {
		t.Fatalf("mean node: %v", err)
	}
	tn, err := NewInstant(djd).Longitude(Node)
	if err != nil {
		t.Fatalf("true node: %v", err)
	}
	if math.Abs(mean-80.3117) > 1e-4 {
		t.Errorf("mean node %v, want 80.3117", mean)
	}
	if math.Abs(tn-81.7536) > 1e-4 {
		t.Errorf("true node %v, want 81.7536", tn)
	}
	// The periodic terms never move the node more than their summed amplitudes.
	if d := math.Abs(mathutil.DiffAngleDeg(mean, tn)); d > 1.9682 {
		t.Errorf("true node %v differs from mean node %v by %v", tn, mean, d)
	}
}
