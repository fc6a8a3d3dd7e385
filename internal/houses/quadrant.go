package houses

import (
	"math"

	"go.ngs.io/ephem-api/internal/mathutil"
)

type quadrant struct {
	sys   System
	ramc  float64
	eps   float64
	theta float64
	asc   float64
	mc    float64
}

func newQuadrant(sys System, ramc, eps, theta float64) (*quadrant, error) {
	if math.Abs(theta) > r90-math.Abs(eps) {
		return nil, &DomainError{System: sys, Latitude: theta}
	}
	return &quadrant{
		sys:   sys,
		ramc:  ramc,
		eps:   eps,
		theta: theta,
		asc:   Ascendant(ramc, eps, theta),
		mc:    Midheaven(ramc, eps),
	}, nil
}

func (q *quadrant) cusps() ([12]float64, error) {
	var base [4]float64
	switch q.sys {
	case Placidus:
		var err error
		if base, err = q.placidus(); err != nil {
			return [12]float64{}, err
		}
	case Koch:
		base = q.koch()
	case Regiomontanus:
		for i, h := range [4]float64{r30, r60, r120, r150} {
			base[i] = q.regiomontanus(h)
		}
	case Campanus:
		for i, h := range [4]float64{r30, r60, r120, r150} {
			base[i] = q.campanus(h)
		}
	case Topocentric:
		base = q.topocentric()
	}
	return q.assemble(base), nil
}

// assemble fills all twelve cusps from the angles and the intermediate cusps
// 11, 12, 2 and 3; the opposite houses lie 180° apart.
func (q *quadrant) assemble(base [4]float64) [12]float64 {
	opp := func(x float64) float64 { return mathutil.ReduceRad(x + math.Pi) }
	return [12]float64{
		q.asc,
		base[2],
		base[3],
		opp(q.mc),
		opp(base[0]),
		opp(base[1]),
		opp(q.asc),
		opp(base[2]),
		opp(base[3]),
		q.mc,
		base[0],
		base[1],
	}
}

var placidusArgs = [4]struct {
	cusp int
	f    float64
	x0   float64
}{
	{10, 3, r30},
	{11, 1.5, r60},
	{1, 1.5, r120},
	{2, 3, r150},
}

func (q *quadrant) placidus() ([4]float64, error) {
	var base [4]float64
	tt := math.Tan(q.theta) * math.Tan(q.eps)
	ce := math.Cos(q.eps)

	for i, a := range placidusArgs {
		k, r := 1.0, q.ramc+math.Pi
		if a.cusp == 10 || a.cusp == 11 {
			k, r = -1, q.ramc
		}

		last := a.x0 + q.ramc
		converged := false
		for n := 0; n < placidusMaxIter; n++ {
			x := r - k*math.Acos(k*math.Sin(last)*tt)/a.f
			done := math.Abs(mathutil.DiffAngle(x, last)) <= placidusDelta
			last = x
			if done {
				converged = true
				break
			}
		}
		if !converged || math.IsNaN(last) {
			return base, ErrNoConvergence
		}
		base[i] = mathutil.ReduceRad(math.Atan2(math.Sin(last), ce*math.Cos(last)))
	}
	return base, nil
}

func (q *quadrant) koch() [4]float64 {
	k := math.Asin(math.Tan(q.theta) * math.Tan(math.Asin(math.Sin(q.mc)*math.Sin(q.eps))))
	k1 := k / 3
	k2 := 2 * k1
	offsets := [4]float64{-r60 - k2, -r30 - k1, r30 + k1, r60 + k2}

	var base [4]float64
	for i, x := range offsets {
		base[i] = Ascendant(q.ramc+x, q.eps, q.theta)
	}
	return base
}

func (q *quadrant) regiomontanus(h float64) float64 {
	rh := q.ramc + h
	r := math.Atan2(math.Sin(h)*math.Tan(q.theta), math.Cos(rh))
	return mathutil.ReduceRad(math.Atan2(math.Cos(r)*math.Tan(rh), math.Cos(r+q.eps)))
}

func (q *quadrant) campanus(h float64) float64 {
	sh := math.Sin(h)
	d := q.ramc + r90 - math.Atan2(math.Cos(h), sh*math.Cos(q.theta))
	c := math.Atan2(math.Tan(math.Asin(math.Sin(q.theta)*sh)), math.Cos(d))
	return mathutil.ReduceRad(math.Atan2(math.Tan(d)*math.Cos(c), math.Cos(c+q.eps)))
}

func (q *quadrant) topocentric() [4]float64 {
	args := [4]struct{ offset, n float64 }{
		{-r60, 1},
		{-r30, 2},
		{r30, 2},
		{r60, 1},
	}
	tn := math.Tan(q.theta)

	var base [4]float64
	for i, a := range args {
		base[i] = Ascendant(q.ramc+a.offset, q.eps, math.Atan2(a.n*tn, 3))
	}
	return base
}
