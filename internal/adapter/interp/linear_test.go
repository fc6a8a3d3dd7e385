package interp

import (
	"math"
	"testing"
)

// TestLinear tests the two-point formula at a few fractions
func TestLinear(t *testing.T) {
	tests := []struct {
		v0, v1, t float64
		expected  float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.25, 2.5},
		{-4, 4, 0.5, 0},
	}

	for _, tt := range tests {
		got := Linear(tt.v0, tt.v1, tt.t)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Linear(%v, %v, %v): expected %v, got %v", tt.v0, tt.v1, tt.t, tt.expected, got)
		}
	}
}

// TestLinearAngle_WrapAround tests interpolation across the 0/360 seam
func TestLinearAngle_WrapAround(t *testing.T) {
	tests := []struct {
		name      string
		v0, v1, t float64
		expected  float64
	}{
		{"forward across zero", 350, 10, 0.5, 0},
		{"forward across zero quarter", 350, 10, 0.25, 355},
		{"backward across zero", 10, 350, 0.5, 0},
		{"backward retrograde", 5, 355, 0.75, 357.5},
		{"no wrap", 100, 120, 0.5, 110},
	}

	for _, tt := range tests {
		got := LinearAngle(tt.v0, tt.v1, tt.t)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("%s: expected %.10f, got %.10f", tt.name, tt.expected, got)
		}
	}
}

func TestSeries1D_Validate(t *testing.T) {
	tests := []struct {
		name    string
		series  Series1D
		wantErr bool
	}{
		{"valid", Series1D{X: []float64{0, 1, 2}, Values: []float64{1, 2, 3}}, false},
		{"too short", Series1D{X: []float64{0}, Values: []float64{1}}, true},
		{"length mismatch", Series1D{X: []float64{0, 1}, Values: []float64{1}}, true},
		{"not increasing", Series1D{X: []float64{0, 1, 1}, Values: []float64{1, 2, 3}}, true},
	}

	for _, tt := range tests {
		err := tt.series.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestSeries1D_InterpolateAt(t *testing.T) {
	s := &Series1D{
		X:      []float64{0, 1, 3, 4},
		Values: []float64{0, 10, 30, 20},
	}

	tests := []struct {
		x        float64
		expected float64
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{2, 20},
		{3.5, 25},
		{4, 20},
	}

	for _, tt := range tests {
		got, err := s.InterpolateAt(tt.x)
		if err != nil {
			t.Fatalf("InterpolateAt(%v): unexpected error: %v", tt.x, err)
		}
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("InterpolateAt(%v): expected %v, got %v", tt.x, tt.expected, got)
		}
	}
}

func TestSeries1D_OutOfRange(t *testing.T) {
	s := &Series1D{X: []float64{10, 11}, Values: []float64{1, 2}}

	for _, x := range []float64{9.999, 11.001} {
		if _, err := s.InterpolateAt(x); err == nil {
			t.Errorf("InterpolateAt(%v): expected error outside range", x)
		}
	}
	if s.Contains(12) {
		t.Error("Contains(12) should be false")
	}
}

func TestSeries1D_InterpolateAngleAt(t *testing.T) {
	// Moon-like motion crossing Aries 0.
	s := &Series1D{
		X:      []float64{0, 1, 2},
		Values: []float64{340, 353, 6},
	}

	got, err := s.InterpolateAngleAt(1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-359.5) > 1e-9 {
		t.Errorf("expected 359.5, got %v", got)
	}
}
