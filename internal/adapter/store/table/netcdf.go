// Package table provides access to precomputed NetCDF ephemeris tables.
//
// A table file has a single dimension "time", a coordinate variable "djd"
// and, for every tabulated body, the variables "<body>_lon", "<body>_lat"
// (degrees) and "<body>_dist" (AU), with body names in lower case.
package table

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/ephem-api/internal/adapter/interp"
	"go.ngs.io/ephem-api/internal/adapter/store"
	"go.ngs.io/ephem-api/internal/metrics"
)

const (
	timeDimName = "time"
	djdVarName  = "djd"
)

// ErrUnknownBody is returned when the table has no columns for a body.
var ErrUnknownBody = errors.New("body not tabulated")

// Store provides interpolated positions from a NetCDF ephemeris table.
type Store struct {
	path string

	mu     sync.RWMutex // Protect djd and cache.
	djd    []float64
	cache  map[string]*Columns
	loaded bool
}

// Columns holds the tabulated series of one body.
type Columns struct {
	Lon  *interp.Series1D
	Lat  *interp.Series1D
	Dist *interp.Series1D
}

// NewStore creates a table store backed by the file at path. The file is
// opened lazily on first lookup.
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		cache: make(map[string]*Columns),
	}
}

// Range returns the first and last tabulated DJD.
func (s *Store) Range() (float64, float64, error) {
	djd, err := s.times()
	if err != nil {
		return 0, 0, err
	}
	return djd[0], djd[len(djd)-1], nil
}

// Lookup interpolates the position of body at djd. Longitudes are
// interpolated along the shorter arc.
func (s *Store) Lookup(body string, djd float64) (store.TablePosition, error) {
	cols, err := s.loadBody(body)
	if err != nil {
		metrics.IncTableLookup(false)
		return store.TablePosition{}, err
	}
	if !cols.Lon.Contains(djd) {
		metrics.IncTableLookup(false)
		return store.TablePosition{}, fmt.Errorf("%w: %.6f", store.ErrOutOfRange, djd)
	}

	lon, err := cols.Lon.InterpolateAngleAt(djd)
	if err != nil {
		return store.TablePosition{}, fmt.Errorf("failed to interpolate %s longitude: %w", body, err)
	}
	lat, err := cols.Lat.InterpolateAt(djd)
	if err != nil {
		return store.TablePosition{}, fmt.Errorf("failed to interpolate %s latitude: %w", body, err)
	}
	dist, err := cols.Dist.InterpolateAt(djd)
	if err != nil {
		return store.TablePosition{}, fmt.Errorf("failed to interpolate %s distance: %w", body, err)
	}

	metrics.IncTableLookup(true)
	return store.TablePosition{Lon: lon, Lat: lat, Dist: dist}, nil
}

// Bodies returns the names of the tabulated bodies.
func (s *Store) Bodies() ([]string, error) {
	nc, err := netcdf.OpenFile(s.path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	n, err := nc.NVars()
	if err != nil {
		return nil, fmt.Errorf("failed to count variables: %w", err)
	}
	bodies := make([]string, 0, n/3)
	for i := 0; i < n; i++ {
		name, err := nc.VarN(i).Name()
		if err != nil {
			return nil, err
		}
		if base, ok := strings.CutSuffix(name, "_lon"); ok {
			bodies = append(bodies, base)
		}
	}
	return bodies, nil
}

func (s *Store) times() ([]float64, error) {
	s.mu.RLock()
	if s.loaded {
		djd := s.djd
		s.mu.RUnlock()
		return djd, nil
	}
	s.mu.RUnlock()

	nc, err := netcdf.OpenFile(s.path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	djd, err := readVar(nc, djdVarName)
	if err != nil {
		return nil, err
	}
	if len(djd) < 2 {
		return nil, fmt.Errorf("table must have at least 2 rows, got %d", len(djd))
	}

	s.mu.Lock()
	s.djd = djd
	s.loaded = true
	s.mu.Unlock()

	return djd, nil
}

// loadBody loads the columns of one body.
func (s *Store) loadBody(body string) (*Columns, error) {
	key := strings.ToLower(body)

	// Check cache first.
	s.mu.RLock()
	if cols, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return cols, nil
	}
	s.mu.RUnlock()

	djd, err := s.times()
	if err != nil {
		return nil, err
	}

	nc, err := netcdf.OpenFile(s.path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	if _, err := nc.Var(key + "_lon"); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBody, body)
	}

	series := make([]*interp.Series1D, 3)
	for i, suffix := range []string{"_lon", "_lat", "_dist"} {
		values, err := readVar(nc, key+suffix)
		if err != nil {
			return nil, err
		}
		ser := &interp.Series1D{X: djd, Values: values}
		if err := ser.Validate(); err != nil {
			return nil, fmt.Errorf("invalid column %s%s: %w", key, suffix, err)
		}
		series[i] = ser
	}

	cols := &Columns{Lon: series[0], Lat: series[1], Dist: series[2]}

	// Cache the columns.
	s.mu.Lock()
	s.cache[key] = cols
	s.mu.Unlock()

	return cols, nil
}

// readVar reads a 1D variable along the time dimension.
func readVar(nc netcdf.Dataset, name string) ([]float64, error) {
	v, err := nc.Var(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s not found: %w", name, err)
	}

	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1D variable %s, got %dD", name, len(dims))
	}
	length, err := dims[0].Len()
	if err != nil {
		return nil, err
	}

	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	}
	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, length)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, length)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported var type for %s: %v", name, t)
	}
}
