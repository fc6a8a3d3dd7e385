package coco

import (
	"math"
	"testing"

	"go.ngs.io/ephem-api/internal/mathutil"
)

var (
	deg = mathutil.Rad2Deg
	rad = mathutil.Deg2Rad
	ddd = mathutil.DDD
)

var eclipticCases = []struct {
	ob, ra, de, lo, la float64
}{
	{23.44574451788568, ddd(14, 26, 57) * 15, ddd(32, 21, 5), ddd(200, 19, 6.66), ddd(43, 47, 13.83)},
	{23.43871898795463, ddd(0, 0, 5.5) * 15, ddd(-87, 12, 12), ddd(277, 0, 6.26), ddd(-66, 24, 19.75)},
}

var horizonCases = []struct {
	gl, ha, de, az, al float64
}{
	{ddd(51, 15, 0), ddd(8, 37, 20), ddd(14, 23, 55), ddd(310, 15, 33.6), ddd(-10, 58, 20.8)},
	{ddd(-20, 31, 13), ddd(23, 19, 0), ddd(-43, 0, 0), ddd(161, 23, 19), ddd(65, 56, 6.1)},
}

func TestEquToEcl(t *testing.T) {
	for _, tt := range eclipticCases {
		lon, lat := EquToEcl(rad(tt.ra), rad(tt.de), rad(tt.ob))
		if math.Abs(deg(lon)-tt.lo) > 1e-4 {
			t.Errorf("longitude = %v, want %v", deg(lon), tt.lo)
		}
		if math.Abs(deg(lat)-tt.la) > 1e-4 {
			t.Errorf("latitude = %v, want %v", deg(lat), tt.la)
		}
	}
}

func TestEclToEqu(t *testing.T) {
	for _, tt := range eclipticCases {
		ra, dec := EclToEqu(rad(tt.lo), rad(tt.la), rad(tt.ob))
		if math.Abs(deg(ra)-tt.ra) > 1e-4 {
			t.Errorf("right ascension = %v, want %v", deg(ra), tt.ra)
		}
		if math.Abs(deg(dec)-tt.de) > 1e-4 {
			t.Errorf("declination = %v, want %v", deg(dec), tt.de)
		}
	}
}

func TestEquToHor(t *testing.T) {
	for _, tt := range horizonCases {
		az, alt := EquToHor(rad(tt.ha*15), rad(tt.de), rad(tt.gl))
		if math.Abs(deg(az)-tt.az) > 1e-4 {
			t.Errorf("azimuth = %v, want %v", deg(az), tt.az)
		}
		if math.Abs(deg(alt)-tt.al) > 1e-4 {
			t.Errorf("altitude = %v, want %v", deg(alt), tt.al)
		}
	}
}

func TestHorToEqu(t *testing.T) {
	for _, tt := range horizonCases {
		h, dec := HorToEqu(rad(tt.az), rad(tt.al), rad(tt.gl))
		if math.Abs(deg(h)/15-tt.ha) > 1e-4 {
			t.Errorf("hour angle = %v, want %v", deg(h)/15, tt.ha)
		}
		if math.Abs(deg(dec)-tt.de) > 1e-4 {
			t.Errorf("declination = %v, want %v", deg(dec), tt.de)
		}
	}
}

func TestEcliptic_RoundTrip(t *testing.T) {
	eps := rad(23.4392911)
	for lon := 0.0; lon < 360; lon += 37 {
		for lat := -80.0; lat <= 80; lat += 40 {
			ra, dec := EclToEqu(rad(lon), rad(lat), eps)
			l, b := EquToEcl(ra, dec, eps)
			if math.Abs(mathutil.DiffAngleDeg(deg(l), lon)) > 1e-9 || math.Abs(deg(b)-lat) > 1e-9 {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", lon, lat, deg(l), deg(b))
			}
		}
	}
}
