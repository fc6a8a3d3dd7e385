package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"go.ngs.io/ephem-api/internal/ephem"
	"go.ngs.io/ephem-api/internal/mathutil"
	"go.ngs.io/ephem-api/internal/metrics"
)

// MaxBatchPoints bounds the number of instants of a batch request.
const MaxBatchPoints = 10000

// BatchRequest asks for a series of positions over a time range.
type BatchRequest struct {
	// Time range (inclusive), UTC.
	Start time.Time
	End   time.Time

	// Step between instants (e.g., 1 day).
	Step time.Duration

	// Bodies to compute. Empty means all bodies.
	Bodies []string

	Apparent bool
}

// BatchResponse contains one sample per instant.
type BatchResponse struct {
	Bodies   []string      `json:"bodies"`
	Apparent bool          `json:"apparent"`
	Points   []SeriesPoint `json:"points"`
}

// SeriesPoint holds the positions of all requested bodies at one instant.
type SeriesPoint struct {
	Time   string                 `json:"time"`
	DJD    float64                `json:"djd"`
	Values map[string]SeriesValue `json:"values"`
}

// SeriesValue is a geocentric position in degrees and AU.
type SeriesValue struct {
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Dist   float64 `json:"dist"`
	Source string  `json:"source"`
}

// Validate checks if the request is valid.
func (r *BatchRequest) Validate() error {
	// Validate time range
	if r.End.Before(r.Start) {
		return fmt.Errorf("start time must not be after end time")
	}

	// Validate step
	if r.Step < time.Minute {
		return fmt.Errorf("step must be at least 1 minute")
	}

	// Check that number of points is reasonable
	if n := r.numPoints(); n > MaxBatchPoints {
		return fmt.Errorf("too many points (%d) - reduce time range or increase step", n)
	}

	if _, err := parseBodies(r.Bodies); err != nil {
		return err
	}
	return nil
}

func (r *BatchRequest) numPoints() int {
	return int(r.End.Sub(r.Start)/r.Step) + 1
}

// Series computes positions over a time range. Instants are computed in
// parallel, bounded by the configured number of workers.
func (uc *EphemerisUseCase) Series(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	bodies, _ := parseBodies(req.Bodies)

	n := req.numPoints()
	points := make([]SeriesPoint, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i := 0; i < n; i++ {
		i := i
		t := req.Start.Add(time.Duration(i) * req.Step).UTC()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := uc.seriesPoint(t, bodies, req.Apparent)
			if err != nil {
				return fmt.Errorf("failed to compute %s: %w", t.Format(time.RFC3339), err)
			}
			points[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics.AddBatchPoints(n)

	names := make([]string, len(bodies))
	for i, b := range bodies {
		names[i] = b.String()
	}

	return &BatchResponse{
		Bodies:   names,
		Apparent: req.Apparent,
		Points:   points,
	}, nil
}

func (uc *EphemerisUseCase) seriesPoint(t time.Time, bodies []ephem.Body, apparent bool) (SeriesPoint, error) {
	djd, _ := dynamicalDJD(t)
	inst := ephem.NewInstant(djd, ephem.WithApparent(apparent))

	values := make(map[string]SeriesValue, len(bodies))
	for _, b := range bodies {
		v, err := uc.seriesValue(inst, b)
		if err != nil {
			return SeriesPoint{}, err
		}
		values[b.String()] = v
	}

	return SeriesPoint{
		Time:   t.Format(time.RFC3339),
		DJD:    djd,
		Values: values,
	}, nil
}

// seriesValue skips daily motion, so no neighbouring instants are built.
func (uc *EphemerisUseCase) seriesValue(inst *ephem.Instant, b ephem.Body) (SeriesValue, error) {
	if uc.table != nil && inst.Apparent() && inst.TrueNode() {
		if pos, err := uc.table.Lookup(b.String(), inst.DJD()); err == nil {
			return SeriesValue{
				Lon:    mathutil.ReduceDeg(pos.Lon),
				Lat:    pos.Lat,
				Dist:   pos.Dist,
				Source: SourceTable,
			}, nil
		}
	}

	p, err := inst.Position(b)
	if err != nil {
		return SeriesValue{}, err
	}
	return SeriesValue{
		Lon:    mathutil.ReduceDeg(mathutil.Rad2Deg(p.Geo.L)),
		Lat:    mathutil.Rad2Deg(p.Geo.B),
		Dist:   p.Geo.D,
		Source: SourceComputed,
	}, nil
}
