package main

import (
	"math"
	"net/url"
	"testing"

	"go.ngs.io/ephem-api/internal/adapter/store"
)

type stubTable map[string]float64

func (s stubTable) Lookup(body string, djd float64) (store.TablePosition, error) {
	if djd > 100 {
		return store.TablePosition{}, store.ErrOutOfRange
	}
	return store.TablePosition{Lon: s[body]}, nil
}

func (s stubTable) Range() (float64, float64, error) { return 0, 100, nil }

func TestCalculateStats(t *testing.T) {
	tests := []struct {
		diffs      []float64
		mean, rmse float64
	}{
		{nil, 0, 0},
		{[]float64{1, 1, 1}, 1, 0},
		{[]float64{1, 3}, 2, 1},
		{[]float64{-2, 2}, 0, 2},
	}
	for _, tt := range tests {
		mean, rmse := calculateStats(tt.diffs)
		if math.Abs(mean-tt.mean) > 1e-12 || math.Abs(rmse-tt.rmse) > 1e-12 {
			t.Errorf("calculateStats(%v) = (%v, %v), want (%v, %v)", tt.diffs, mean, rmse, tt.mean, tt.rmse)
		}
	}
}

func TestCompareData(t *testing.T) {
	api := &apiResponse{
		Bodies: []string{"Sun", "Moon"},
		Points: []apiPoint{
			{DJD: 10, Values: map[string]apiValue{"Sun": {Lon: 0.5}, "Moon": {Lon: 100, Source: "table"}}},
			{DJD: 20, Values: map[string]apiValue{"Sun": {Lon: 359.5}, "Moon": {Lon: 101}}},
			{DJD: 200, Values: map[string]apiValue{"Sun": {Lon: 1}}},
		},
	}
	tbl := stubTable{"Sun": 0, "Moon": 100}

	stats, err := compareData(api, tbl)
	if err != nil {
		t.Fatalf("compareData: %v", err)
	}

	sun := stats["Sun"]
	if len(sun.Diffs) != 2 || sun.Skipped != 1 {
		t.Fatalf("Sun: unexpected stats %+v", sun)
	}
	// Differences are taken across the 0/360 seam.
	if math.Abs(sun.Diffs[0]-0.5) > 1e-12 || math.Abs(sun.Diffs[1]+0.5) > 1e-12 {
		t.Errorf("Sun: unexpected diffs %v", sun.Diffs)
	}
	if moon := stats["Moon"]; moon.Tabled != 1 || len(moon.Diffs) != 2 {
		t.Errorf("Moon: unexpected stats %+v", moon)
	}
}

func TestSeriesURL(t *testing.T) {
	got, err := seriesURL("http://localhost:8080", "2020-01-01T00:00:00Z", "2020-01-02T00:00:00Z", "1h", "Sun,Moon")
	if err != nil {
		t.Fatalf("seriesURL: %v", err)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Path != "/v1/series" {
		t.Errorf("expected /v1/series, got %s", u.Path)
	}
	q := u.Query()
	if q.Get("start") != "2020-01-01T00:00:00Z" || q.Get("step") != "1h" || q.Get("bodies") != "Sun,Moon" {
		t.Errorf("unexpected query %v", q)
	}
}
