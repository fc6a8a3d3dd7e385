package table

import (
	"errors"
	"math"
	"path/filepath"
	"sort"
	"testing"

	"go.ngs.io/ephem-api/internal/adapter/store"
)

// writeFixture writes a three-row table where the Moon crosses 0° Aries.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ephem.nc")
	djd := []float64{23772.5, 23773.5, 23774.5}
	columns := []Column{
		{
			Body: "Moon",
			Rows: []store.TablePosition{
				{Lon: 340, Lat: -1, Dist: 0.0026},
				{Lon: 353, Lat: 0, Dist: 0.0025},
				{Lon: 6, Lat: 1, Dist: 0.0024},
			},
		},
		{
			Body: "Sun",
			Rows: []store.TablePosition{
				{Lon: 311.5, Lat: 0, Dist: 0.9853},
				{Lon: 312.5, Lat: 0, Dist: 0.9854},
				{Lon: 313.5, Lat: 0, Dist: 0.9855},
			},
		},
	}
	if err := Write(path, djd, columns); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return path
}

func TestStore_Lookup(t *testing.T) {
	s := NewStore(writeFixture(t))

	tests := []struct {
		body          string
		djd           float64
		lon, lat, dis float64
	}{
		{"Moon", 23772.5, 340, -1, 0.0026},
		{"moon", 23773.0, 346.5, -0.5, 0.00255},
		{"Moon", 23774.0, 359.5, 0.5, 0.00245},
		{"Moon", 23774.5, 6, 1, 0.0024},
		{"Sun", 23773.25, 312.25, 0, 0.98535},
	}

	for _, tt := range tests {
		got, err := s.Lookup(tt.body, tt.djd)
		if err != nil {
			t.Fatalf("Lookup(%s, %v): unexpected error: %v", tt.body, tt.djd, err)
		}
		if math.Abs(got.Lon-tt.lon) > 1e-9 {
			t.Errorf("Lookup(%s, %v) lon: expected %v, got %v", tt.body, tt.djd, tt.lon, got.Lon)
		}
		if math.Abs(got.Lat-tt.lat) > 1e-9 {
			t.Errorf("Lookup(%s, %v) lat: expected %v, got %v", tt.body, tt.djd, tt.lat, got.Lat)
		}
		if math.Abs(got.Dist-tt.dis) > 1e-9 {
			t.Errorf("Lookup(%s, %v) dist: expected %v, got %v", tt.body, tt.djd, tt.dis, got.Dist)
		}
	}
}

func TestStore_Errors(t *testing.T) {
	s := NewStore(writeFixture(t))

	if _, err := s.Lookup("Moon", 23775.0); !errors.Is(err, store.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := s.Lookup("Pluto", 23773.0); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}

	missing := NewStore(filepath.Join(t.TempDir(), "none.nc"))
	if _, err := missing.Lookup("Moon", 23773.0); err == nil {
		t.Error("expected error for missing file")
	}
	if _, _, err := missing.Range(); err == nil {
		t.Error("expected Range error for missing file")
	}
}

func TestStore_RangeAndBodies(t *testing.T) {
	s := NewStore(writeFixture(t))

	start, end, err := s.Range()
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if start != 23772.5 || end != 23774.5 {
		t.Errorf("Range = (%v, %v), want (23772.5, 23774.5)", start, end)
	}

	bodies, err := s.Bodies()
	if err != nil {
		t.Fatalf("Bodies: %v", err)
	}
	sort.Strings(bodies)
	if len(bodies) != 2 || bodies[0] != "moon" || bodies[1] != "sun" {
		t.Errorf("Bodies = %v, want [moon sun]", bodies)
	}
}

func TestStore_CachesColumns(t *testing.T) {
	s := NewStore(writeFixture(t))

	if _, err := s.Lookup("Sun", 23773.0); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	s.mu.RLock()
	first := s.cache["sun"]
	s.mu.RUnlock()
	if first == nil {
		t.Fatal("columns were not cached")
	}
	if _, err := s.Lookup("SUN", 23773.1); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	s.mu.RLock()
	second := s.cache["sun"]
	s.mu.RUnlock()
	if first != second {
		t.Error("expected cached columns to be reused")
	}
}

func TestWrite_Invalid(t *testing.T) {
	dir := t.TempDir()

	if err := Write(filepath.Join(dir, "a.nc"), []float64{1}, nil); err == nil {
		t.Error("expected error for single-row table")
	}

	cols := []Column{{Body: "Sun", Rows: []store.TablePosition{{Lon: 1}}}}
	if err := Write(filepath.Join(dir, "b.nc"), []float64{1, 2}, cols); err == nil {
		t.Error("expected error for misaligned column")
	}
}
