// Command ephem-compare fetches a position series from a running API and
// compares it against a NetCDF ephemeris table, reporting per body the mean
// longitude offset (API minus table) and the RMSE around that mean.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"

	"go.ngs.io/ephem-api/internal/adapter/store"
	"go.ngs.io/ephem-api/internal/adapter/store/table"
	"go.ngs.io/ephem-api/internal/mathutil"
)

type apiValue struct {
	Lon    float64 `json:"lon"`
	Source string  `json:"source"`
}

type apiPoint struct {
	Time   string              `json:"time"`
	DJD    float64             `json:"djd"`
	Values map[string]apiValue `json:"values"`
}

type apiResponse struct {
	Bodies []string   `json:"bodies"`
	Points []apiPoint `json:"points"`
}

// bodyStats accumulates longitude differences in degrees.
type bodyStats struct {
	Diffs   []float64
	Skipped int // outside the table
	Tabled  int // served from a table by the API
}

func fetch(url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("HTTP %d (failed to read body: %v)", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

// seriesURL builds the /v1/series request.
func seriesURL(base, start, end, step, bodies string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid api_url: %v", err)
	}
	u = u.JoinPath("/v1/series")
	q := u.Query()
	q.Set("start", start)
	q.Set("end", end)
	q.Set("step", step)
	q.Set("apparent", "true")
	if bodies != "" {
		q.Set("bodies", bodies)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fetchAPIData fetches and parses the series.
func fetchAPIData(apiURL string) (*apiResponse, error) {
	body, err := fetch(apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch API: %v", err)
	}
	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return nil, fmt.Errorf("invalid API JSON: %v", err)
	}
	return &api, nil
}

// compareData pairs every API value with the table.
func compareData(api *apiResponse, tbl store.TableReader) (map[string]*bodyStats, error) {
	stats := make(map[string]*bodyStats, len(api.Bodies))
	for _, b := range api.Bodies {
		stats[b] = &bodyStats{}
	}

	for _, p := range api.Points {
		for body, v := range p.Values {
			st, ok := stats[body]
			if !ok {
				st = &bodyStats{}
				stats[body] = st
			}
			if v.Source == "table" {
				st.Tabled++
			}
			ref, err := tbl.Lookup(body, p.DJD)
			if errors.Is(err, store.ErrOutOfRange) || errors.Is(err, table.ErrUnknownBody) {
				st.Skipped++
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("table lookup %s at %s: %v", body, p.Time, err)
			}
			st.Diffs = append(st.Diffs, mathutil.DiffAngleDeg(ref.Lon, v.Lon))
		}
	}
	return stats, nil
}

// calculateStats calculates mean and RMSE around mean.
func calculateStats(diffs []float64) (mean, rmse float64) {
	if len(diffs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, d := range diffs {
		sum += d
	}
	mean = sum / float64(len(diffs))

	var sse float64
	for _, d := range diffs {
		dd := d - mean
		sse += dd * dd
	}
	rmse = math.Sqrt(sse / float64(len(diffs)))
	return mean, rmse
}

func main() {
	var (
		apiBase   string
		tablePath string
		start     string
		end       string
		step      string
		bodies    string
	)
	flag.StringVar(&apiBase, "api_url", "http://localhost:8080", "Base URL of the running API")
	flag.StringVar(&tablePath, "table", "", "Path to the NetCDF ephemeris table")
	flag.StringVar(&start, "start", "2020-01-01T00:00:00Z", "Series start (RFC3339)")
	flag.StringVar(&end, "end", "2020-12-31T00:00:00Z", "Series end (RFC3339)")
	flag.StringVar(&step, "step", "24h", "Series step")
	flag.StringVar(&bodies, "bodies", "", "Comma-separated bodies (default: all)")
	flag.Parse()

	if tablePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ephem-compare -table <file.nc> [-api_url http://localhost:8080 -start ... -end ... -step 24h -bodies Sun,Moon]")
		os.Exit(2)
	}

	u, err := seriesURL(apiBase, start, end, step, bodies)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	// Fetch API.
	api, err := fetchAPIData(u)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Compare.
	stats, err := compareData(api, table.NewStore(tablePath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Points: %d\n\n", len(api.Points))
	fmt.Printf("%-8s %7s %14s %14s %8s\n", "Body", "Paired", "Mean [arcsec]", "RMSE [arcsec]", "Skipped")
	for _, name := range names {
		st := stats[name]
		mean, rmse := calculateStats(st.Diffs)
		fmt.Printf("%-8s %7d %14.3f %14.3f %8d\n", name, len(st.Diffs), mean*3600, rmse*3600, st.Skipped)
		if st.Tabled > 0 {
			fmt.Printf("  note: %d %s values were served from the API's own table\n", st.Tabled, name)
		}
	}
}
