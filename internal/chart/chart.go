// Package chart assembles a horoscope: planetary positions, sensitive
// points, house cusps and aspects for a moment and a place.
//
// Derived values are computed on first use and memoized. Changing the date
// discards everything derived from it; changing the place or the house
// system discards only what depends on them.
package chart

import (
	"fmt"
	"sync"
	"time"

	"go.ngs.io/ephem-api/internal/aspects"
	"go.ngs.io/ephem-api/internal/calendar"
	"go.ngs.io/ephem-api/internal/ephem"
	"go.ngs.io/ephem-api/internal/houses"
	"go.ngs.io/ephem-api/internal/mathutil"
)

// DefaultName is the name of a chart created without one.
const DefaultName = "New Chart"

// Geo is a geographical position in degrees. Latitude is positive
// northwards, longitude positive westwards.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DefaultGeo is Moscow.
var DefaultGeo = Geo{Lat: 55.75, Lon: -(37 + 35.0/60)}

// Points are the sensitive points of a chart, degrees.
type Points struct {
	Ascendant float64 `json:"ascendant"`
	Midheaven float64 `json:"midheaven"`
	Vertex    float64 `json:"vertex"`
	EastPoint float64 `json:"east_point"`
}

// Planet is a body of the chart. Angles are in degrees.
type Planet struct {
	Body    ephem.Body      `json:"-"`
	Name    string          `json:"name"`
	Lon     float64         `json:"lon"`
	Lat     float64         `json:"lat"`
	Dist    float64         `json:"dist"`
	Motion  float64         `json:"motion"`
	House   int             `json:"house"` // zero based
	Aspects []aspects.Match `json:"aspects"`
}

// Option configures a Chart.
type Option func(*Chart)

// WithName sets the chart name.
func WithName(name string) Option {
	return func(c *Chart) { c.name = name }
}

// WithDate sets the moment of the chart.
func WithDate(t time.Time) Option {
	return func(c *Chart) { c.date = t.UTC() }
}

// WithGeo sets the place of the chart.
func WithGeo(g Geo) Option {
	return func(c *Chart) { c.geo = g }
}

// WithHouses sets the house system.
func WithHouses(s houses.System) Option {
	return func(c *Chart) { c.system = s }
}

// WithOrbsMethod sets the method deciding on aspects.
func WithOrbsMethod(m aspects.OrbsMethod) Option {
	return func(c *Chart) { c.orbs = m }
}

// Chart is a horoscope. It is safe for concurrent use.
type Chart struct {
	mu     sync.Mutex
	name   string
	date   time.Time
	geo    Geo
	system houses.System
	orbs   aspects.OrbsMethod

	// time related
	djd       *float64
	deltaT    *float64
	ephemeris *ephem.Instant
	bodies    []Planet // coordinates and motion only

	// place related
	lst    *float64
	points *Points
	cusps  *[12]float64 // radians

	houseOf []int
	aspects [][]aspects.Match
}

// New creates a chart for now at the default place, with Placidus houses
// and Dariot orbs, unless options say otherwise.
func New(opts ...Option) *Chart {
	c := &Chart{
		name:   DefaultName,
		date:   time.Now().UTC(),
		geo:    DefaultGeo,
		system: houses.Placidus,
		orbs:   aspects.NewDariot(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the chart name.
func (c *Chart) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// SetName renames the chart.
func (c *Chart) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// Date returns the moment of the chart, UTC.
func (c *Chart) Date() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.date
}

// SetDate moves the chart to another moment.
func (c *Chart) SetDate(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.Equal(c.date) {
		return
	}
	c.date = t.UTC()
	c.clearTimeRelated()
}

// Geo returns the place of the chart.
func (c *Chart) Geo() Geo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geo
}

// SetGeo moves the chart to another place.
func (c *Chart) SetGeo(g Geo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g == c.geo {
		return
	}
	c.geo = g
	c.clearGeoRelated()
}

// Houses returns the house system.
func (c *Chart) Houses() houses.System {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.system
}

// SetHouses changes the house system.
func (c *Chart) SetHouses(s houses.System) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == c.system {
		return
	}
	c.system = s
	c.cusps = nil
	c.houseOf = nil
}

// OrbsMethod returns the method deciding on aspects.
func (c *Chart) OrbsMethod() aspects.OrbsMethod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orbs
}

// SetOrbsMethod changes the method deciding on aspects.
func (c *Chart) SetOrbsMethod(m aspects.OrbsMethod) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orbs = m
	c.aspects = nil
}

func (c *Chart) clearGeoRelated() {
	c.lst = nil
	c.points = nil
	c.cusps = nil
	c.houseOf = nil
}

func (c *Chart) clearTimeRelated() {
	c.djd = nil
	c.deltaT = nil
	c.ephemeris = nil
	c.bodies = nil
	c.aspects = nil
	c.clearGeoRelated()
}

// DJD returns the chart moment as Julian days since 1900 Jan 0.5, UT.
func (c *Chart) DJD() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getDJD()
}

func (c *Chart) getDJD() float64 {
	if c.djd == nil {
		d := c.date
		h := mathutil.DDD(float64(d.Hour()), float64(d.Minute()), float64(d.Second())+float64(d.Nanosecond())/1e9)
		v := calendar.JulDay(d.Year(), int(d.Month()), float64(d.Day())+h/24)
		c.djd = &v
	}
	return *c.djd
}

// DeltaT returns TT - UT, seconds.
func (c *Chart) DeltaT() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getDeltaT()
}

func (c *Chart) getDeltaT() float64 {
	if c.deltaT == nil {
		v := calendar.DeltaT(c.getDJD())
		c.deltaT = &v
	}
	return *c.deltaT
}

// LST returns the local sidereal time, hours.
func (c *Chart) LST() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLST()
}

func (c *Chart) getLST() float64 {
	if c.lst == nil {
		v := calendar.LocalSidereal(c.getDJD(), c.geo.Lon)
		c.lst = &v
	}
	return *c.lst
}

// Ephemeris returns the apparent ephemeris for the chart moment in
// dynamical time.
func (c *Chart) Ephemeris() *ephem.Instant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getEphemeris()
}

func (c *Chart) getEphemeris() *ephem.Instant {
	if c.ephemeris == nil {
		djd := c.getDJD() + c.getDeltaT()/calendar.SecondsPerDay
		c.ephemeris = ephem.NewInstant(djd, ephem.WithApparent(true))
	}
	return c.ephemeris
}

func (c *Chart) ramc() float64 {
	return mathutil.Deg2Rad(c.getLST() * 15)
}

// Points returns the sensitive points.
func (c *Chart) Points() Points {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getPoints()
}

func (c *Chart) getPoints() Points {
	if c.points == nil {
		ramc := c.ramc()
		eps := c.getEphemeris().Obliquity()
		theta := mathutil.Deg2Rad(c.geo.Lat)
		c.points = &Points{
			Ascendant: mathutil.Rad2Deg(houses.Ascendant(ramc, eps, theta)),
			Midheaven: mathutil.Rad2Deg(houses.Midheaven(ramc, eps)),
			Vertex:    mathutil.Rad2Deg(houses.Vertex(ramc, eps, theta)),
			EastPoint: mathutil.Rad2Deg(houses.EastPoint(ramc, eps)),
		}
	}
	return *c.points
}

// Cusps returns the house cusps in degrees. Quadrant systems fail with a
// *houses.DomainError in polar regions.
func (c *Chart) Cusps() ([12]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rad, err := c.getCusps()
	if err != nil {
		return [12]float64{}, err
	}
	var res [12]float64
	for i, x := range rad {
		res[i] = mathutil.Rad2Deg(x)
	}
	return res, nil
}

func (c *Chart) getCusps() ([12]float64, error) {
	if c.cusps == nil {
		eps := c.getEphemeris().Obliquity()
		cusps, err := houses.Cusps(c.system, c.ramc(), eps, mathutil.Deg2Rad(c.geo.Lat))
		if err != nil {
			return cusps, err
		}
		c.cusps = &cusps
	}
	return *c.cusps, nil
}

func (c *Chart) getBodies() ([]Planet, error) {
	if c.bodies != nil {
		return c.bodies, nil
	}
	eph := c.getEphemeris()
	bodies := make([]Planet, 0, len(ephem.AllBodies()))
	for _, b := range ephem.AllBodies() {
		pos, err := eph.Position(b)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", b, err)
		}
		motion, err := eph.DailyMotion(b)
		if err != nil {
			return nil, fmt.Errorf("%v motion: %w", b, err)
		}
		bodies = append(bodies, Planet{
			Body:   b,
			Name:   b.String(),
			Lon:    mathutil.Rad2Deg(pos.Geo.L),
			Lat:    mathutil.Rad2Deg(pos.Geo.B),
			Dist:   pos.Geo.D,
			Motion: motion,
		})
	}
	c.bodies = bodies
	return bodies, nil
}

// Planets returns every body of the chart with its house and aspects.
func (c *Chart) Planets() ([]Planet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getPlanets()
}

func (c *Chart) getPlanets() ([]Planet, error) {
	bodies, err := c.getBodies()
	if err != nil {
		return nil, err
	}

	if c.houseOf == nil {
		cusps, err := c.getCusps()
		if err != nil {
			return nil, err
		}
		c.houseOf = make([]int, len(bodies))
		for i, p := range bodies {
			c.houseOf[i] = houses.InHouse(mathutil.Deg2Rad(p.Lon), cusps)
		}
	}

	if c.aspects == nil {
		pts := positions(bodies)
		c.aspects = make([][]aspects.Match, len(bodies))
		for i := range bodies {
			targets := make([]aspects.Point, 0, len(pts)-1)
			targets = append(targets, pts[:i]...)
			targets = append(targets, pts[i+1:]...)
			c.aspects[i] = aspects.FindAspects(pts[i], targets, c.orbs, aspects.All)
		}
	}

	res := make([]Planet, len(bodies))
	for i, p := range bodies {
		p.House = c.houseOf[i]
		p.Aspects = c.aspects[i]
		res[i] = p
	}
	return res, nil
}

func positions(bodies []Planet) []aspects.Point {
	pts := make([]aspects.Point, len(bodies))
	for i, p := range bodies {
		pts[i] = aspects.Point{Name: p.Name, X: p.Lon}
	}
	return pts
}

// Stelliums groups the bodies of the chart lying within gap degrees of each
// other.
func (c *Chart) Stelliums(gap float64) ([][]aspects.Point, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bodies, err := c.getBodies()
	if err != nil {
		return nil, err
	}
	return aspects.Stelliums(positions(bodies), gap), nil
}
