// Package interp provides linear interpolation over tabulated time series.
package interp

import (
	"fmt"
	"math"
	"sort"
)

// Series1D is a tabulated function sampled at strictly increasing X.
type Series1D struct {
	X      []float64 // Abscissae (e.g., DJD).
	Values []float64 // Values[i] corresponds to X[i].
}

// Validate checks if the series is usable for interpolation.
func (s *Series1D) Validate() error {
	if len(s.X) < 2 {
		return fmt.Errorf("series must have at least 2 samples")
	}
	if len(s.Values) != len(s.X) {
		return fmt.Errorf("number of values (%d) must match X coordinates (%d)", len(s.Values), len(s.X))
	}
	for i := 1; i < len(s.X); i++ {
		if s.X[i] <= s.X[i-1] {
			return fmt.Errorf("X coordinates must be strictly increasing")
		}
	}
	return nil
}

// Contains reports whether x lies inside the tabulated range.
func (s *Series1D) Contains(x float64) bool {
	if len(s.X) == 0 {
		return false
	}
	return x >= s.X[0] && x <= s.X[len(s.X)-1]
}

// bracket returns the index i such that X[i] <= x <= X[i+1] and the
// normalized position t of x within that interval.
func (s *Series1D) bracket(x float64) (int, float64, error) {
	if !s.Contains(x) {
		return 0, 0, fmt.Errorf("x %.6f is outside series range [%.6f, %.6f]", x, s.X[0], s.X[len(s.X)-1])
	}
	// First index with X[i] > x, minus one.
	i := sort.SearchFloat64s(s.X, x)
	if i == len(s.X) || s.X[i] > x {
		i--
	}
	if i >= len(s.X)-1 {
		i = len(s.X) - 2
	}
	if i < 0 {
		i = 0
	}
	t := (x - s.X[i]) / (s.X[i+1] - s.X[i])
	t = math.Max(0, math.Min(1, t))
	return i, t, nil
}

// InterpolateAt performs linear interpolation at x.
func (s *Series1D) InterpolateAt(x float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, fmt.Errorf("invalid series: %w", err)
	}
	i, t, err := s.bracket(x)
	if err != nil {
		return 0, err
	}
	return Linear(s.Values[i], s.Values[i+1], t), nil
}

// InterpolateAngleAt interpolates values given in degrees, taking the
// shorter way around the circle. The result is in [0, 360).
func (s *Series1D) InterpolateAngleAt(x float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, fmt.Errorf("invalid series: %w", err)
	}
	i, t, err := s.bracket(x)
	if err != nil {
		return 0, err
	}
	return LinearAngle(s.Values[i], s.Values[i+1], t), nil
}

// Linear returns v0 + t*(v1-v0).
func Linear(v0, v1, t float64) float64 {
	return v0 + t*(v1-v0)
}

// LinearAngle interpolates between two angles in degrees after unwrapping
// v1 to within 180° of v0.
func LinearAngle(v0, v1, t float64) float64 {
	d := math.Mod(v1-v0, 360)
	switch {
	case d > 180:
		d -= 360
	case d < -180:
		d += 360
	}
	r := math.Mod(v0+t*d, 360)
	if r < 0 {
		r += 360
	}
	return r
}
