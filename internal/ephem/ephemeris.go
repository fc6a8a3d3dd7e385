package ephem

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.ngs.io/ephem-api/internal/mathutil"
	"go.ngs.io/ephem-api/internal/metrics"
)

const (
	// lightTimeDays is the light travel time over 1 AU, in days.
	lightTimeDays = 5.775518e-3
	// aberration is the constant of annual aberration, radians.
	aberration = 9.9387e-5
)

// HelioCoords are heliocentric ecliptic coordinates: longitude and latitude
// in radians, radius vector in AU.
type HelioCoords struct {
	L float64 `json:"l"`
	B float64 `json:"b"`
	R float64 `json:"r"`
}

// GeoCoords are geocentric ecliptic coordinates: longitude and latitude in
// radians, distance from the Earth in AU.
type GeoCoords struct {
	L float64 `json:"l"`
	B float64 `json:"b"`
	D float64 `json:"d"`
}

// Position is the computed position of a body at an Instant.
// Helio is nil for the Sun, the Moon and the lunar node.
type Position struct {
	Body     Body         `json:"-"`
	Helio    *HelioCoords `json:"helio,omitempty"`
	Geo      GeoCoords    `json:"geo"`
	Parallax float64      `json:"parallax,omitempty"` // Moon only, degrees

	motion float64 // Moon only, degrees per day
}

// Instant is the ephemeris for one moment. Positions are computed on first
// request and cached per body; an Instant is safe for concurrent use.
type Instant struct {
	djd      float64
	t        float64
	ms       float64 // Sun mean anomaly, degrees
	apparent bool
	trueNode bool
	dpsi     float64 // nutation in longitude, radians
	deps     float64 // nutation in obliquity, radians

	sunOnce sync.Once
	sunL    float64
	sunR    float64
	sunErr  error

	mu        sync.Mutex
	positions map[Body]*cacheEntry

	neighbourOnce sync.Once
	prev, next    *Instant
}

type cacheEntry struct {
	once sync.Once
	pos  *Position
	err  error
}

// Option configures an Instant.
type Option func(*Instant)

// WithApparent selects apparent positions, corrected for nutation and
// aberration. The default is true geometric positions.
func WithApparent(apparent bool) Option {
	return func(e *Instant) { e.apparent = apparent }
}

// WithTrueNode selects the true (default) or mean lunar node.
func WithTrueNode(trueNode bool) Option {
	return func(e *Instant) { e.trueNode = trueNode }
}

// NewInstant creates the ephemeris for djd, Julian days since 1900 Jan 0.5.
func NewInstant(djd float64, opts ...Option) *Instant {
	e := &Instant{
		djd:       djd,
		t:         djd / 36525,
		trueNode:  true,
		positions: make(map[Body]*cacheEntry),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ms = SunMeanAnomaly(e.t)
	dpsi, deps := Nutation(e.t)
	e.dpsi = mathutil.Deg2Rad(dpsi)
	e.deps = mathutil.Deg2Rad(deps)
	return e
}

// buildInstant is the factory for neighbouring instants.
func buildInstant(djd float64, apparent, trueNode bool) *Instant {
	return NewInstant(djd, WithApparent(apparent), WithTrueNode(trueNode))
}

// DJD returns Julian days since 1900 Jan 0.5.
func (e *Instant) DJD() float64 { return e.djd }

// T returns Julian centuries since 1900 Jan 0.5.
func (e *Instant) T() float64 { return e.t }

// Apparent reports whether positions are apparent.
func (e *Instant) Apparent() bool { return e.apparent }

// TrueNode reports whether the true lunar node is used.
func (e *Instant) TrueNode() bool { return e.trueNode }

// Dpsi returns the nutation in longitude, radians.
func (e *Instant) Dpsi() float64 { return e.dpsi }

// Deps returns the nutation in obliquity, radians.
func (e *Instant) Deps() float64 { return e.deps }

// Obliquity returns the true obliquity of the ecliptic, radians.
func (e *Instant) Obliquity() float64 {
	return mathutil.Deg2Rad(TrueObliquity(e.djd, mathutil.Rad2Deg(e.deps)))
}

// Prev returns the instant 12 hours earlier.
func (e *Instant) Prev() *Instant {
	e.buildNeighbours()
	return e.prev
}

// Next returns the instant 12 hours later.
func (e *Instant) Next() *Instant {
	e.buildNeighbours()
	return e.next
}

func (e *Instant) buildNeighbours() {
	e.neighbourOnce.Do(func() {
		e.prev = buildInstant(e.djd-0.5, e.apparent, e.trueNode)
		e.next = buildInstant(e.djd+0.5, e.apparent, e.trueNode)
	})
}

// trueSun returns the true geocentric longitude of the Sun (radians) and
// the Sun-Earth distance (AU).
func (e *Instant) trueSun() (float64, float64, error) {
	e.sunOnce.Do(func() {
		e.sunL, e.sunR, e.sunErr = trueGeocentricSun(e.t, e.ms)
	})
	return e.sunL, e.sunR, e.sunErr
}

func (e *Instant) entry(b Body) *cacheEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	en, ok := e.positions[b]
	if ok {
		metrics.IncCacheHits()
		return en
	}
	metrics.IncCacheMisses()
	en = &cacheEntry{}
	e.positions[b] = en
	return en
}

// Position returns the position of body b. Repeated calls for the same body
// return the same value.
func (e *Instant) Position(b Body) (*Position, error) {
	if b < Moon || b > Node {
		return nil, fmt.Errorf("%w: %v", ErrLookup, b)
	}
	en := e.entry(b)
	en.once.Do(func() {
		start := time.Now()
		en.pos, en.err = e.calculate(b)
		metrics.ObserveComputation(b.String(), time.Since(start), en.err)
	})
	return en.pos, en.err
}

// PositionByName is Position for a body given by name.
func (e *Instant) PositionByName(name string) (*Position, error) {
	b, err := ParseBody(name)
	if err != nil {
		return nil, err
	}
	return e.Position(b)
}

// Longitude returns the geocentric longitude of b in degrees.
func (e *Instant) Longitude(b Body) (float64, error) {
	p, err := e.Position(b)
	if err != nil {
		return 0, err
	}
	return mathutil.Rad2Deg(p.Geo.L), nil
}

// DailyMotion returns the motion of b in geocentric longitude, degrees per
// day. Negative values mean retrograde motion.
func (e *Instant) DailyMotion(b Body) (float64, error) {
	if b == Moon {
		p, err := e.Position(Moon)
		if err != nil {
			return 0, err
		}
		return p.motion, nil
	}
	p0, err := e.Prev().Position(b)
	if err != nil {
		return 0, err
	}
	p1, err := e.Next().Position(b)
	if err != nil {
		return 0, err
	}
	return mathutil.Rad2Deg(mathutil.DiffAngle(p0.Geo.L, p1.Geo.L)), nil
}

func (e *Instant) calculate(b Body) (*Position, error) {
	switch b {
	case Sun:
		return e.calculateSun()
	case Moon:
		return e.calculateMoon(), nil
	case Node:
		return e.calculateNode(), nil
	default:
		return e.calculatePlanet(b)
	}
}

func (e *Instant) calculateSun() (*Position, error) {
	lsn, rsn, err := e.trueSun()
	if err != nil {
		return nil, fmt.Errorf("sun: %w", err)
	}
	if e.apparent {
		// nutation and aberration
		lsn += e.dpsi - mathutil.Deg2Rad(5.69e-3)
		// light time, seconds
		lt := 1.365 * rsn
		lsn -= mathutil.Deg2Rad(lt * 15 / 3600)
	}
	return &Position{
		Body: Sun,
		Geo:  GeoCoords{L: mathutil.ReduceRad(lsn), D: rsn},
	}, nil
}

func (e *Instant) calculateMoon() *Position {
	m := MoonTruePosition(e.djd)
	lam := m.Lon
	if e.apparent {
		lam = mathutil.ReduceRad(lam + e.dpsi)
	}
	return &Position{
		Body:     Moon,
		Geo:      GeoCoords{L: lam, B: m.Lat, D: m.Dist},
		Parallax: m.Parallax,
		motion:   m.Motion,
	}
}

func (e *Instant) calculateNode() *Position {
	l := MeanNode(e.djd)
	if e.trueNode {
		l = TrueNode(e.djd)
	}
	return &Position{Body: Node, Geo: GeoCoords{L: l}}
}

// helioPass is one evaluation of a planet's heliocentric position.
type helioPass struct {
	ll   float64 // projected longitude minus Earth's longitude
	rpd  float64 // projected radius vector
	lpd  float64 // heliocentric longitude
	spsi float64 // sine of heliocentric latitude
	cpsi float64 // cosine of heliocentric latitude
	rho  float64 // distance from the Earth
	lp   float64 // orbital longitude
	psi  float64 // heliocentric latitude
	rp   float64 // radius vector
}

// helio computes the heliocentric position of b with mean anomalies moved
// back by dt days of light time. lg and re are Earth's heliocentric
// longitude and radius vector.
func (e *Instant) helio(b Body, el OrbitalElements, lg, re, dt float64) (helioPass, error) {
	manom := meanAnomaliesAt(e.t, dt)
	pert := perturbations(b, perturbArgs{
		t:  e.t,
		ms: mathutil.Deg2Rad(e.ms),
		s:  el.S,
		ma: manom,
	})
	s := el.S + pert.DS
	ma := manom[b] + pert.DM
	ea, err := SolveKepler(s, ma-mathutil.PI2*math.Floor(ma/mathutil.PI2))
	if err != nil {
		return helioPass{}, err
	}
	nu := TrueAnomaly(s, ea)
	rp := (el.SA+pert.DA)*(1-s*s)/(1+s*math.Cos(nu)) + pert.DR
	lp := nu + el.PH + (pert.DML - pert.DM)
	lo := lp - el.ND
	sinLo := math.Sin(lo)
	spsi := sinLo * math.Sin(el.Inc)
	y := sinLo * math.Cos(el.Inc)
	psi := math.Asin(spsi) + pert.DHL
	lpd := math.Atan2(y, math.Cos(lo)) + el.ND + mathutil.Deg2Rad(pert.DL)
	cpsi := math.Cos(psi)
	rpd := rp * cpsi
	ll := lpd - lg
	rho := math.Sqrt(re*re + rp*rp - 2*re*rp*cpsi*math.Cos(ll))

	return helioPass{
		ll:   ll,
		rpd:  rpd,
		lpd:  lpd,
		spsi: math.Sin(psi),
		cpsi: cpsi,
		rho:  rho,
		lp:   lp,
		psi:  psi,
		rp:   rp,
	}, nil
}

func (e *Instant) calculatePlanet(b Body) (*Position, error) {
	orbit, err := OrbitFor(b)
	if err != nil {
		return nil, err
	}
	lsn, re, err := e.trueSun()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", b, err)
	}
	lg := lsn + math.Pi // Earth

	el := orbit.Instantiate(e.t)
	h0, err := e.helio(b, el, lg, re, 0)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", b, err)
	}
	// Second pass, corrected for light time.
	h1, err := e.helio(b, el, lg, re, h0.rho*lightTimeDays)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", b, err)
	}

	sll, cll := math.Sincos(h1.ll)
	var lam float64
	if b.IsInner() {
		lam = math.Atan2(-h1.rpd*sll, re-h1.rpd*cll) + lg + math.Pi
	} else {
		lam = math.Atan2(re*sll, h1.rpd-re*cll) + h1.lpd
	}
	bet := math.Atan(h1.rpd * h1.spsi * math.Sin(lam-h1.lpd) / (h1.cpsi * re * sll))

	if e.apparent {
		lam += e.dpsi
		a := lg + math.Pi - lam
		lam -= aberration * math.Cos(a) / math.Cos(bet)
		bet -= aberration * math.Sin(a) * math.Sin(bet)
	}

	return &Position{
		Body:  b,
		Helio: &HelioCoords{L: h0.lpd, B: h0.psi, R: h0.rp},
		Geo:   GeoCoords{L: mathutil.ReduceRad(lam), B: bet, D: h0.rho},
	}, nil
}
