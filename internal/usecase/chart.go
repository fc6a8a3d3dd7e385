package usecase

import (
	"fmt"
	"strings"
	"time"

	"go.ngs.io/ephem-api/internal/adapter/store"
	"go.ngs.io/ephem-api/internal/aspects"
	"go.ngs.io/ephem-api/internal/chart"
	"go.ngs.io/ephem-api/internal/houses"
)

// ChartRequest encapsulates a horoscope request.
type ChartRequest struct {
	Name string
	Time time.Time

	// Location parameters (mutually exclusive with Place). Longitude is
	// positive westwards.
	Lat *float64
	Lon *float64

	// Place name resolved through the places store.
	Place string

	// Optional parameters
	Houses string // e.g., "Placidus", "Koch", "WholeSign"; default Placidus
	Orbs   string // "dariot", "devore" or "ratio"; default dariot
}

// ChartResponse is a fully computed chart.
type ChartResponse struct {
	*chart.Snapshot
	Place string `json:"place,omitempty"`
}

// Validate checks if the request is valid.
func (r *ChartRequest) Validate() error {
	if r.Time.IsZero() {
		return fmt.Errorf("time must be provided")
	}

	hasLatLon := r.Lat != nil && r.Lon != nil
	hasPlace := strings.TrimSpace(r.Place) != ""

	if (r.Lat == nil) != (r.Lon == nil) {
		return fmt.Errorf("lat and lon must be provided together")
	}
	if hasLatLon && hasPlace {
		return fmt.Errorf("lat/lon and place are mutually exclusive")
	}

	// Validate lat/lon ranges
	if hasLatLon {
		if *r.Lat < -90 || *r.Lat > 90 {
			return fmt.Errorf("latitude must be between -90 and 90")
		}
		if *r.Lon < -180 || *r.Lon > 180 {
			return fmt.Errorf("longitude must be between -180 and 180")
		}
	}

	if _, err := r.system(); err != nil {
		return err
	}
	if _, err := aspects.ParseMethod(r.Orbs, nil); err != nil {
		return err
	}
	return nil
}

func (r *ChartRequest) system() (houses.System, error) {
	if r.Houses == "" {
		return houses.Placidus, nil
	}
	return houses.ParseSystem(r.Houses)
}

// Chart computes a horoscope. Without coordinates or a place the chart is
// cast for the default location.
func (uc *EphemerisUseCase) Chart(req ChartRequest) (*ChartResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	geo := chart.DefaultGeo
	var placeName string
	switch {
	case req.Lat != nil:
		geo = chart.Geo{Lat: *req.Lat, Lon: *req.Lon}
	case strings.TrimSpace(req.Place) != "":
		if uc.places == nil {
			return nil, invalid(fmt.Errorf("place lookup is not configured"))
		}
		p, err := uc.places.LoadPlace(req.Place)
		if err != nil {
			return nil, invalid(err)
		}
		geo = chart.Geo{Lat: p.Lat, Lon: p.Lon}
		placeName = p.Name
	}

	system, _ := req.system()
	method, _ := aspects.ParseMethod(req.Orbs, getOrbOverrides())

	opts := []chart.Option{
		chart.WithDate(req.Time),
		chart.WithGeo(geo),
		chart.WithHouses(system),
		chart.WithOrbsMethod(method),
	}
	if req.Name != "" {
		opts = append(opts, chart.WithName(req.Name))
	}

	snap, err := chart.New(opts...).Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to compute chart: %w", err)
	}

	return &ChartResponse{Snapshot: snap, Place: placeName}, nil
}

// Places returns the known places, or none when no places store is
// configured.
func (uc *EphemerisUseCase) Places() ([]store.Place, error) {
	if uc.places == nil {
		return []store.Place{}, nil
	}
	places, err := uc.places.ListPlaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}
