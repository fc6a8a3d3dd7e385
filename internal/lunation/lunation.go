// Package lunation finds the times of the principal lunar phases.
package lunation

import (
	"fmt"
	"math"
	"strings"

	"go.ngs.io/ephem-api/internal/calendar"
	"go.ngs.io/ephem-api/internal/mathutil"
)

// Quarter is a principal phase of the Moon.
type Quarter int

const (
	NewMoon Quarter = iota
	FirstQuarter
	FullMoon
	LastQuarter
)

// Quarters lists the phases in lunation order.
var Quarters = []Quarter{NewMoon, FirstQuarter, FullMoon, LastQuarter}

func (q Quarter) String() string {
	switch q {
	case NewMoon:
		return "New Moon"
	case FirstQuarter:
		return "First Quarter"
	case FullMoon:
		return "Full Moon"
	case LastQuarter:
		return "Last Quarter"
	}
	return fmt.Sprintf("Quarter(%d)", int(q))
}

// MarshalText implements encoding.TextMarshaler.
func (q Quarter) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// ParseQuarter accepts names like "new", "first", "full", "last" or the full
// phase name.
func ParseQuarter(name string) (Quarter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, q := range Quarters {
		full := strings.ToLower(q.String())
		if key == full || key == strings.Fields(full)[0] {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown lunar phase %q", name)
}

func (q Quarter) coeff() float64 {
	return float64(q) * 0.25
}

// FindClosest returns the DJD of the given phase nearest to a civil date.
// The result is in dynamical time and is accurate to a few minutes.
func FindClosest(q Quarter, year, month int, day float64) float64 {
	n := 365.0
	if calendar.IsLeapYear(year) {
		n = 366
	}
	y := float64(year) + calendar.DayOfYear(year, month, math.Floor(day))/n
	k := math.Floor((y-1900)*12.3685+0.5) + q.coeff()

	t := k / 1236.85
	t2 := t * t
	t3 := t2 * t

	c := mathutil.Deg2Rad(166.56 + (132.87-9.173e-3*t)*t)
	// mean phase
	j := 0.75933 + 29.53058868*k + 0.0001178*t2 - 1.55e-07*t3 + 3.3e-4*math.Sin(c)

	anomaly := func(a0, a1, a2, a3 float64) float64 {
		return mathutil.Deg2Rad(mathutil.ReduceDeg(a0 + a1*k + a2*t2 + a3*t3))
	}
	ms := anomaly(359.2242, 29.105356080, -0.0000333, -0.00000347)
	mm := anomaly(306.0253, 385.81691806, 0.0107306, 0.00001236)
	f := anomaly(21.2964, 390.67050646, -0.0016528, -0.00000239)

	return j + q.correction(t, ms, mm, f)
}

func (q Quarter) correction(t, ms, mm, f float64) float64 {
	switch q {
	case NewMoon, FullMoon:
		return syzygyCorrection(t, ms, mm, f)
	}
	w := 0.0028 - 0.0004*math.Cos(ms) + 0.0003*math.Cos(ms)
	if q == LastQuarter {
		w = -w
	}
	return quadratureCorrection(t, ms, mm, f) + w
}

func syzygyCorrection(t, ms, mm, f float64) float64 {
	tms, tmm, tf := 2*ms, 2*mm, 2*f
	return (1.734e-1-3.93e-4*t)*math.Sin(ms) +
		2.1e-3*math.Sin(tms) -
		4.068e-1*math.Sin(mm) +
		1.61e-2*math.Sin(tmm) -
		4e-4*math.Sin(mm+tmm) +
		1.04e-2*math.Sin(tf) -
		5.1e-3*math.Sin(ms+mm) -
		7.4e-3*math.Sin(ms-mm) +
		4e-4*math.Sin(tf+ms) -
		4e-4*math.Sin(tf-ms) -
		6e-4*math.Sin(tf+mm) +
		1e-3*math.Sin(tf-mm) +
		5e-4*math.Sin(ms+tmm)
}

func quadratureCorrection(t, ms, mm, f float64) float64 {
	tms, tmm, tf := 2*ms, 2*mm, 2*f
	return (0.1721-0.0004*t)*math.Sin(ms) +
		0.0021*math.Sin(tms) -
		0.6280*math.Sin(mm) +
		0.0089*math.Sin(tmm) -
		0.0004*math.Sin(tmm+mm) +
		0.0079*math.Sin(tf) -
		0.0119*math.Sin(ms+mm) -
		0.0047*math.Sin(ms-mm) +
		0.0003*math.Sin(tf+ms) -
		0.0004*math.Sin(tf-ms) -
		0.0006*math.Sin(tf+mm) +
		0.0021*math.Sin(tf-mm) +
		0.0003*math.Sin(ms+tmm) +
		0.0004*math.Sin(ms-tmm) -
		0.0003*math.Sin(tms+mm)
}
