// Command ephem-generator precomputes apparent geocentric positions over a
// range of dates and writes them as a NetCDF ephemeris table for the API's
// EPHEM_TABLE_PATH.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"go.ngs.io/ephem-api/internal/adapter/store"
	"go.ngs.io/ephem-api/internal/adapter/store/table"
	"go.ngs.io/ephem-api/internal/calendar"
	"go.ngs.io/ephem-api/internal/ephem"
	"go.ngs.io/ephem-api/internal/mathutil"
)

// TableRange defines the tabulated DJD axis.
type TableRange struct {
	Start float64 // DJD
	Step  float64 // days
	Rows  int
}

func main() {
	// Command line flags
	outPath := flag.String("out", "./data/ephem.nc", "Output NetCDF file")
	startStr := flag.String("start", "2000-01-01", "First tabulated date (YYYY-MM-DD, dynamical time)")
	endStr := flag.String("end", "2030-12-31", "Last tabulated date (YYYY-MM-DD, dynamical time)")
	stepDays := flag.Float64("step", 0.5, "Table step in days")
	bodiesStr := flag.String("bodies", "", "Comma-separated bodies (default: all)")
	workers := flag.Int("workers", 4, "Parallel workers")

	flag.Parse()

	rng, err := tableRange(*startStr, *endStr, *stepDays)
	if err != nil {
		log.Fatalf("Invalid range: %v", err)
	}

	bodies, err := ephem.ParseBodies(*bodiesStr)
	if err != nil {
		log.Fatalf("Invalid bodies: %v", err)
	}

	log.Printf("Generating ephemeris table: %s to %s, step %.3f days (%d rows)", *startStr, *endStr, rng.Step, rng.Rows)
	log.Printf("Bodies: %v", bodies)

	// Create output directory
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	started := time.Now()
	djd, columns, err := generate(rng, bodies, *workers)
	if err != nil {
		log.Fatalf("Failed to compute positions: %v", err)
	}

	if err := table.Write(*outPath, djd, columns); err != nil {
		log.Fatalf("Failed to write table: %v", err)
	}

	// Print summary
	log.Printf("\n=== Generation Complete ===")
	log.Printf("File created: %s", *outPath)
	log.Printf("Rows: %d, bodies: %d, elapsed: %v", rng.Rows, len(bodies), time.Since(started).Round(time.Millisecond))
	sizeMB := float64(rng.Rows*(1+3*len(bodies))*8) / 1024 / 1024
	log.Printf("Data size: ~%.1f MB", sizeMB)
}

// tableRange converts the command line range into a DJD axis.
func tableRange(startStr, endStr string, step float64) (TableRange, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return TableRange{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return TableRange{}, fmt.Errorf("invalid end date: %w", err)
	}
	if step <= 0 {
		return TableRange{}, fmt.Errorf("step must be positive")
	}
	d0 := calendar.FromTime(start)
	d1 := calendar.FromTime(end)
	if d1 <= d0 {
		return TableRange{}, fmt.Errorf("end must be after start")
	}
	rows := int((d1-d0)/step) + 1
	if rows < 2 {
		return TableRange{}, fmt.Errorf("range must cover at least 2 rows")
	}
	return TableRange{Start: d0, Step: step, Rows: rows}, nil
}

// generate computes apparent positions with the true node for every row.
func generate(rng TableRange, bodies []ephem.Body, workers int) ([]float64, []table.Column, error) {
	djd := make([]float64, rng.Rows)
	columns := make([]table.Column, len(bodies))
	for i, b := range bodies {
		columns[i] = table.Column{Body: b.String(), Rows: make([]store.TablePosition, rng.Rows)}
	}

	var g errgroup.Group
	g.SetLimit(max(1, workers))
	for row := 0; row < rng.Rows; row++ {
		row := row
		djd[row] = rng.Start + float64(row)*rng.Step
		g.Go(func() error {
			inst := ephem.NewInstant(djd[row], ephem.WithApparent(true), ephem.WithTrueNode(true))
			for i, b := range bodies {
				p, err := inst.Position(b)
				if err != nil {
					return fmt.Errorf("%s at DJD %.3f: %w", b, djd[row], err)
				}
				columns[i].Rows[row] = store.TablePosition{
					Lon:  mathutil.Rad2Deg(p.Geo.L),
					Lat:  mathutil.Rad2Deg(p.Geo.B),
					Dist: p.Geo.D,
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return djd, columns, nil
}
