package usecase

import (
	"fmt"
	"time"

	"go.ngs.io/ephem-api/internal/adapter/store"
	"go.ngs.io/ephem-api/internal/calendar"
	"go.ngs.io/ephem-api/internal/ephem"
	"go.ngs.io/ephem-api/internal/mathutil"
)

// Position sources.
const (
	SourceComputed = "computed"
	SourceTable    = "table"
)

// PositionsRequest encapsulates an ephemeris request for one moment.
type PositionsRequest struct {
	// Time is the moment in UTC. Positions are computed for the
	// corresponding dynamical time (UTC + ΔT).
	Time time.Time

	// Apparent selects positions corrected for nutation and aberration.
	Apparent bool

	// TrueNode selects the true lunar node instead of the mean one.
	TrueNode bool

	// Bodies to compute. Empty means all bodies.
	Bodies []string
}

// PositionsResponse contains the positions of the requested bodies.
type PositionsResponse struct {
	Time      string         `json:"time"`
	DJD       float64        `json:"djd"`
	DeltaT    float64        `json:"delta_t"`
	Apparent  bool           `json:"apparent"`
	TrueNode  bool           `json:"true_node"`
	Obliquity float64        `json:"obliquity"`
	Nutation  NutationInfo   `json:"nutation"`
	Positions []BodyPosition `json:"positions"`
}

// NutationInfo holds nutation in longitude and obliquity, degrees.
type NutationInfo struct {
	Dpsi float64 `json:"dpsi"`
	Deps float64 `json:"deps"`
}

// BodyPosition is the geocentric position of a body in degrees and AU.
type BodyPosition struct {
	Body       string         `json:"body"`
	Source     string         `json:"source"`
	Lon        float64        `json:"lon"`
	Lat        float64        `json:"lat"`
	Dist       float64        `json:"dist"`
	LonDMS     string         `json:"lon_dms"`
	Zodiac     string         `json:"zodiac"`
	Motion     float64        `json:"motion"`
	Retrograde bool           `json:"retrograde"`
	Helio      *HelioPosition `json:"helio,omitempty"`
}

// HelioPosition is a heliocentric position in degrees and AU.
type HelioPosition struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
	R   float64 `json:"r"`
}

// BodyInfo describes a supported body.
type BodyInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// Validate checks if the request is valid.
func (r *PositionsRequest) Validate() error {
	if r.Time.IsZero() {
		return fmt.Errorf("time must be provided")
	}
	if _, err := parseBodies(r.Bodies); err != nil {
		return err
	}
	return nil
}

func parseBodies(names []string) ([]ephem.Body, error) {
	if len(names) == 0 {
		return ephem.AllBodies(), nil
	}
	bodies := make([]ephem.Body, 0, len(names))
	seen := make(map[ephem.Body]bool, len(names))
	for _, n := range names {
		b, err := ephem.ParseBody(n)
		if err != nil {
			return nil, err
		}
		if seen[b] {
			continue
		}
		seen[b] = true
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// dynamicalDJD converts a UTC moment to DJD in dynamical time.
func dynamicalDJD(t time.Time) (djd, deltaT float64) {
	utc := calendar.FromTime(t)
	deltaT = calendar.DeltaT(utc)
	return utc + deltaT/calendar.SecondsPerDay, deltaT
}

// Positions computes the positions of the requested bodies.
func (uc *EphemerisUseCase) Positions(req PositionsRequest) (*PositionsResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	bodies, _ := parseBodies(req.Bodies)

	djd, deltaT := dynamicalDJD(req.Time)
	inst := ephem.NewInstant(djd, ephem.WithApparent(req.Apparent), ephem.WithTrueNode(req.TrueNode))

	positions := make([]BodyPosition, 0, len(bodies))
	for _, b := range bodies {
		pos, err := uc.position(inst, b)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", b, err)
		}
		positions = append(positions, pos)
	}

	return &PositionsResponse{
		Time:      req.Time.UTC().Format(time.RFC3339),
		DJD:       djd,
		DeltaT:    deltaT,
		Apparent:  req.Apparent,
		TrueNode:  req.TrueNode,
		Obliquity: mathutil.Rad2Deg(inst.Obliquity()),
		Nutation: NutationInfo{
			Dpsi: mathutil.Rad2Deg(inst.Dpsi()),
			Deps: mathutil.Rad2Deg(inst.Deps()),
		},
		Positions: positions,
	}, nil
}

// position returns the position of b, preferring the ephemeris table when
// one is configured and the instant is tabulated. Tables hold apparent
// positions with the true node, so other flavours are always computed.
func (uc *EphemerisUseCase) position(inst *ephem.Instant, b ephem.Body) (BodyPosition, error) {
	if uc.table != nil && inst.Apparent() && inst.TrueNode() {
		if pos, ok := uc.tablePosition(inst.DJD(), b); ok {
			return pos, nil
		}
	}
	return computedPosition(inst, b)
}

func (uc *EphemerisUseCase) tablePosition(djd float64, b ephem.Body) (BodyPosition, bool) {
	name := b.String()
	cur, err := uc.table.Lookup(name, djd)
	if err != nil {
		return BodyPosition{}, false
	}
	prev, err := uc.table.Lookup(name, djd-0.5)
	if err != nil {
		return BodyPosition{}, false
	}
	next, err := uc.table.Lookup(name, djd+0.5)
	if err != nil {
		return BodyPosition{}, false
	}
	motion := mathutil.DiffAngleDeg(prev.Lon, next.Lon)
	return newBodyPosition(name, SourceTable, cur, motion), true
}

func computedPosition(inst *ephem.Instant, b ephem.Body) (BodyPosition, error) {
	p, err := inst.Position(b)
	if err != nil {
		return BodyPosition{}, err
	}
	motion, err := inst.DailyMotion(b)
	if err != nil {
		return BodyPosition{}, err
	}
	geo := store.TablePosition{
		Lon:  mathutil.Rad2Deg(p.Geo.L),
		Lat:  mathutil.Rad2Deg(p.Geo.B),
		Dist: p.Geo.D,
	}
	res := newBodyPosition(b.String(), SourceComputed, geo, motion)
	if p.Helio != nil {
		res.Helio = &HelioPosition{
			Lon: mathutil.Rad2Deg(p.Helio.L),
			Lat: mathutil.Rad2Deg(p.Helio.B),
			R:   p.Helio.R,
		}
	}
	return res, nil
}

func newBodyPosition(name, source string, geo store.TablePosition, motion float64) BodyPosition {
	lon := mathutil.ReduceDeg(geo.Lon)
	return BodyPosition{
		Body:       name,
		Source:     source,
		Lon:        lon,
		Lat:        geo.Lat,
		Dist:       geo.Dist,
		LonDMS:     mathutil.FormatAngle(lon),
		Zodiac:     mathutil.FormatZodiac(lon),
		Motion:     motion,
		Retrograde: motion < 0,
	}
}

// Bodies returns the supported bodies in chart order.
func (uc *EphemerisUseCase) Bodies() []BodyInfo {
	descriptions := map[ephem.Body]string{
		ephem.Moon:    "Earth's satellite; Brown's lunar theory, abridged",
		ephem.Sun:     "Geocentric Sun from the Earth's orbit",
		ephem.Mercury: "Inner planet",
		ephem.Venus:   "Inner planet",
		ephem.Mars:    "Outer planet",
		ephem.Jupiter: "Outer planet, perturbed by Saturn",
		ephem.Saturn:  "Outer planet, perturbed by Jupiter",
		ephem.Uranus:  "Outer planet",
		ephem.Neptune: "Outer planet",
		ephem.Pluto:   "Dwarf planet, unperturbed elements",
		ephem.Node:    "Ascending node of the lunar orbit",
	}

	bodies := ephem.AllBodies()
	res := make([]BodyInfo, len(bodies))
	for i, b := range bodies {
		kind := "planet"
		switch {
		case b == ephem.Sun || b == ephem.Moon:
			kind = "luminary"
		case b == ephem.Node:
			kind = "node"
		}
		res[i] = BodyInfo{Name: b.String(), Kind: kind, Description: descriptions[b]}
	}
	return res
}
