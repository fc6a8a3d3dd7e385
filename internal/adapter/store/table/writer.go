package table

import (
	"fmt"
	"strings"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/ephem-api/internal/adapter/store"
)

// Column is the tabulated series for one body, row-aligned with the DJD
// axis passed to Write.
type Column struct {
	Body string
	Rows []store.TablePosition
}

// Write creates (or replaces) a NetCDF ephemeris table at path.
func Write(path string, djd []float64, columns []Column) error {
	if len(djd) < 2 {
		return fmt.Errorf("table must have at least 2 rows, got %d", len(djd))
	}
	for _, c := range columns {
		if len(c.Rows) != len(djd) {
			return fmt.Errorf("column %s has %d rows, expected %d", c.Body, len(c.Rows), len(djd))
		}
	}

	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER|netcdf.NETCDF4)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = ds.Close() }()

	timeDim, err := ds.AddDim(timeDimName, uint64(len(djd)))
	if err != nil {
		return err
	}
	dims := []netcdf.Dim{timeDim}

	djdVar, err := ds.AddVar(djdVarName, netcdf.DOUBLE, dims)
	if err != nil {
		return err
	}
	if err := djdVar.Attr("units").WriteBytes([]byte("days since 1899-12-31T12:00:00Z")); err != nil {
		return err
	}

	type colVars struct {
		lon, lat, dist netcdf.Var
	}
	vars := make([]colVars, len(columns))
	for i, c := range columns {
		base := strings.ToLower(c.Body)
		var cv colVars
		for _, vs := range []struct {
			suffix, units string
			dst           *netcdf.Var
		}{
			{"_lon", "degrees", &cv.lon},
			{"_lat", "degrees", &cv.lat},
			{"_dist", "au", &cv.dist},
		} {
			v, err := ds.AddVar(base+vs.suffix, netcdf.DOUBLE, dims)
			if err != nil {
				return fmt.Errorf("failed to add %s%s: %w", base, vs.suffix, err)
			}
			if err := v.Attr("units").WriteBytes([]byte(vs.units)); err != nil {
				return err
			}
			*vs.dst = v
		}
		vars[i] = cv
	}

	if err := ds.EndDef(); err != nil {
		return fmt.Errorf("failed to end define mode: %w", err)
	}

	if err := djdVar.WriteFloat64s(djd); err != nil {
		return fmt.Errorf("failed to write djd: %w", err)
	}
	for i, c := range columns {
		lon := make([]float64, len(djd))
		lat := make([]float64, len(djd))
		dist := make([]float64, len(djd))
		for j, r := range c.Rows {
			lon[j], lat[j], dist[j] = r.Lon, r.Lat, r.Dist
		}
		if err := vars[i].lon.WriteFloat64s(lon); err != nil {
			return fmt.Errorf("failed to write %s longitude: %w", c.Body, err)
		}
		if err := vars[i].lat.WriteFloat64s(lat); err != nil {
			return fmt.Errorf("failed to write %s latitude: %w", c.Body, err)
		}
		if err := vars[i].dist.WriteFloat64s(dist); err != nil {
			return fmt.Errorf("failed to write %s distance: %w", c.Body, err)
		}
	}

	return nil
}
