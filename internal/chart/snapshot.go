package chart

import (
	"time"

	"go.ngs.io/ephem-api/internal/aspects"
	"go.ngs.io/ephem-api/internal/mathutil"
)

// Nutation holds the nutation in longitude and obliquity, degrees.
type Nutation struct {
	Dpsi float64 `json:"dpsi"`
	Deps float64 `json:"deps"`
}

// Snapshot is a serialisable state of a chart with every derived value
// computed.
type Snapshot struct {
	Name       string            `json:"name"`
	Date       time.Time         `json:"date"`
	DJD        float64           `json:"djd"`
	DeltaT     float64           `json:"delta_t"`
	LST        float64           `json:"lst"`
	Geo        Geo               `json:"geo"`
	Houses     string            `json:"houses"`
	OrbsMethod string            `json:"orbs_method"`
	Obliquity  float64           `json:"obliquity"`
	Nutation   Nutation          `json:"nutation"`
	Planets    []Planet          `json:"planets"`
	Points     Points            `json:"points"`
	Cusps      [12]float64       `json:"cusps"`
	Stelliums  [][]aspects.Point `json:"stelliums"`
}

// Snapshot computes the whole chart.
func (c *Chart) Snapshot() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	planets, err := c.getPlanets()
	if err != nil {
		return nil, err
	}
	rad, err := c.getCusps()
	if err != nil {
		return nil, err
	}
	var cusps [12]float64
	for i, x := range rad {
		cusps[i] = mathutil.Rad2Deg(x)
	}
	eph := c.getEphemeris()

	return &Snapshot{
		Name:       c.name,
		Date:       c.date,
		DJD:        c.getDJD(),
		DeltaT:     c.getDeltaT(),
		LST:        c.getLST(),
		Geo:        c.geo,
		Houses:     c.system.String(),
		OrbsMethod: c.orbs.Name(),
		Obliquity:  mathutil.Rad2Deg(eph.Obliquity()),
		Nutation: Nutation{
			Dpsi: mathutil.Rad2Deg(eph.Dpsi()),
			Deps: mathutil.Rad2Deg(eph.Deps()),
		},
		Planets:   planets,
		Points:    c.getPoints(),
		Cusps:     cusps,
		Stelliums: aspects.Stelliums(positions(planets), aspects.DefaultStelliumGap),
	}, nil
}
