package mathutil

import (
	"math"
	"strings"
	"testing"
)

func TestFrac(t *testing.T) {
	if got := Frac(5.5); got != 0.5 {
		t.Errorf("Frac(5.5) = %v, want 0.5", got)
	}
	if got := Frac(-5.5); got != -0.5 {
		t.Errorf("Frac(-5.5) = %v, want -0.5", got)
	}
}

func TestFrac360(t *testing.T) {
	k := 23772.99 / 36525
	cases := []struct {
		want, arg float64
	}{
		{31.7842235930254, 1.000021358e2 * k},
		{30.6653235575305, 9.999736056e1 * k},
		{42.3428797768338, 1.336855231e3 * k},
		{273.934866366267, 1.325552359e3 * k},
		{178.873057561472, 5.37261666700 * k},
	}
	for _, c := range cases {
		if got := Frac360(c.arg); math.Abs(got-c.want) > 1e-6 {
			t.Errorf("Frac360(%v) = %v, want %v", c.arg, got, c.want)
		}
	}
}

func TestDMS(t *testing.T) {
	cases := []struct {
		x    float64
		d, m int
		s    float64
	}{
		{-(37 + 35/60.0), -37, 35, 0},
		{55 + 45/60.0, 55, 45, 0},
		{-(10 / 60.0), 0, -10, 0},
		{-(10 / 3600.0), 0, 0, -10},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		d, m, s := DMS(c.x)
		if d != c.d || m != c.m || math.Abs(s-c.s) > 1e-6 {
			t.Errorf("DMS(%v) = %d %d %v, want %d %d %v", c.x, d, m, s, c.d, c.m, c.s)
		}
		if got := DDD(float64(c.d), float64(c.m), c.s); math.Abs(got-c.x) > 1e-6 {
			t.Errorf("DDD(%d, %d, %v) = %v, want %v", c.d, c.m, c.s, got, c.x)
		}
	}
}

func TestDDD_OptionalArgs(t *testing.T) {
	for _, args := range [][]float64{{37, 0, 0}, {37, 0}, {37}} {
		if got := DDD(args...); math.Abs(got-37) > 1e-6 {
			t.Errorf("DDD(%v) = %v, want 37", args, got)
		}
	}
	if got := DDD(-55, -45, 0); math.Abs(got+55.75) > 1e-6 {
		t.Errorf("duplicate negative sign: got %v, want -55.75", got)
	}
}

func TestZDMS(t *testing.T) {
	z, d, m, s := ZDMS(312.5)
	if z != 10 || d != 12 || m != 30 || math.Abs(s) > 1e-6 {
		t.Errorf("ZDMS(312.5) = %d %d %d %v", z, d, m, s)
	}
}

func TestPolynome(t *testing.T) {
	if got := Polynome(10, 1, 2, 3); math.Abs(got-321) > 1e-6 {
		t.Errorf("Polynome(10, 1, 2, 3) = %v, want 321", got)
	}
	got := Polynome(-0.127296372347707, 0.409092804222329, -0.0226937890431606,
		-7.51461205719781e-06, 0.0096926375195824, -0.00024909726935408,
		-0.00121043431762618, -0.000189319742473274, 3.4518734094999e-05,
		0.000135117572925228, 2.80707121362421e-05, 1.18779351871836e-05)
	if math.Abs(got-0.411961500152426) > 1e-6 {
		t.Errorf("Polynome with 11 terms = %v", got)
	}
	for _, x := range []float64{-3, 0.5, 42} {
		if got := Polynome(0, x, 7, 9); got != x {
			t.Errorf("Polynome(0, %v, ...) = %v", x, got)
		}
	}
}

func TestRanges(t *testing.T) {
	deg := []struct{ want, arg float64 }{
		{20, -700}, {0, 0}, {345, 345}, {340, 700}, {0, 360}, {70.45, 324070.45},
	}
	for _, c := range deg {
		got := ReduceDeg(c.arg)
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("ReduceDeg(%v) = %v, want %v", c.arg, got, c.want)
		}
		if again := ReduceDeg(got); again != got {
			t.Errorf("ReduceDeg not idempotent for %v: %v != %v", c.arg, again, got)
		}
	}
	rad := []struct{ want, arg float64 }{
		{0.323629385640829, 12.89},
		{5.95955592153876, -12.89},
		{0, 0},
		{3.71681469282041, 10.0},
		{math.Pi, math.Pi},
		{0, PI2},
	}
	for _, c := range rad {
		got := ReduceRad(c.arg)
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("ReduceRad(%v) = %v, want %v", c.arg, got, c.want)
		}
		if got < 0 || got >= PI2 {
			t.Errorf("ReduceRad(%v) = %v out of range", c.arg, got)
		}
	}
}

func TestRanges_TinyNegative(t *testing.T) {
	for _, x := range []float64{-1e-14, -1e-300, -math.SmallestNonzeroFloat64, -1e-17, -360 - 1e-14} {
		for _, r := range []float64{360, PI2, 24, 1} {
			got := ToRange(x, r)
			if got < 0 || got >= r {
				t.Errorf("ToRange(%v, %v) = %v out of range", x, r, got)
			}
			if again := ToRange(got, r); again != got {
				t.Errorf("ToRange not idempotent for %v, %v: %v != %v", x, r, again, got)
			}
		}
		if got := ReduceRad(x); got < 0 || got >= PI2 || ReduceRad(got) != got {
			t.Errorf("ReduceRad(%v) = %v", x, got)
		}
		if got := ReduceDeg(x); got < 0 || got >= 360 || ReduceDeg(got) != got {
			t.Errorf("ReduceDeg(%v) = %v", x, got)
		}
	}
}

func TestDiffAngleDeg(t *testing.T) {
	cases := []struct{ a, b, want float64 }{
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{90, 45, -45},
	}
	for _, c := range cases {
		if got := DiffAngleDeg(c.a, c.b); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("DiffAngleDeg(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := DiffAngle(Deg2Rad(c.a), Deg2Rad(c.b)); math.Abs(Rad2Deg(got)-c.want) > 1e-9 {
			t.Errorf("DiffAngle(%v, %v) = %v, want %v", c.a, c.b, Rad2Deg(got), c.want)
		}
	}
}

func TestFormatZodiac(t *testing.T) {
	got := FormatZodiac(312.5)
	if !strings.HasPrefix(got, "12°30′00″") || !strings.HasSuffix(got, "Aqu") {
		t.Errorf("FormatZodiac(312.5) = %q", got)
	}
}

func TestFormatAngle(t *testing.T) {
	if got := FormatAngle(12.5); !strings.Contains(got, "12") || !strings.Contains(got, "30") {
		t.Errorf("FormatAngle(12.5) = %q", got)
	}
}
