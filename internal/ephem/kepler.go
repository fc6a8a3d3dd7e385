package ephem

import (
	"fmt"
	"math"
)

const (
	keplerDelta   = 1e-7
	keplerMaxIter = 50
)

// SolveKepler solves Kepler's equation E - s*sin(E) = m for the eccentric
// anomaly E, given eccentricity 0 <= s < 1 and mean anomaly m in radians.
func SolveKepler(s, m float64) (float64, error) {
	if math.IsNaN(s) || math.IsNaN(m) || s < 0 || s >= 1 {
		return 0, fmt.Errorf("%w: kepler: eccentricity %v, mean anomaly %v", ErrNumerical, s, m)
	}
	ea := m
	for i := 0; i < keplerMaxIter; i++ {
		dla := ea - s*math.Sin(ea) - m
		if math.Abs(dla) < keplerDelta {
			return ea, nil
		}
		ea -= dla / (1 - s*math.Cos(ea))
	}
	return 0, fmt.Errorf("%w: kepler: no convergence after %d iterations (s=%v, m=%v)",
		ErrNumerical, keplerMaxIter, s, m)
}

// TrueAnomaly returns the true anomaly for eccentricity s and eccentric anomaly ea.
func TrueAnomaly(s, ea float64) float64 {
	return 2 * math.Atan(math.Sqrt((1+s)/(1-s))*math.Tan(ea/2))
}
