// Package csv provides CSV-based place loading.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.ngs.io/ephem-api/internal/adapter/store"
)

// PlacesFile is the file name looked up under the data directory.
const PlacesFile = "places.csv"

// PlaceStore provides access to named places stored in a CSV file.
type PlaceStore struct {
	path string

	once   sync.Once
	places []store.Place
	index  map[string]store.Place
	err    error
}

// NewPlaceStore creates a new CSV-based place store reading
// dataDir/places.csv.
func NewPlaceStore(dataDir string) *PlaceStore {
	return &PlaceStore{
		path: fmt.Sprintf("%s/%s", dataDir, PlacesFile),
	}
}

// LoadPlace returns the place with the given name.
func (s *PlaceStore) LoadPlace(name string) (store.Place, error) {
	if err := s.load(); err != nil {
		return store.Place{}, err
	}
	p, ok := s.index[normalizeName(name)]
	if !ok {
		return store.Place{}, fmt.Errorf("unknown place: %s", name)
	}
	return p, nil
}

// ListPlaces returns all places in file order.
func (s *PlaceStore) ListPlaces() ([]store.Place, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]store.Place, len(s.places))
	copy(out, s.places)
	return out, nil
}

func (s *PlaceStore) load() error {
	s.once.Do(func() {
		s.places, s.err = readPlaces(s.path)
		if s.err != nil {
			return
		}
		s.index = make(map[string]store.Place, len(s.places))
		for _, p := range s.places {
			s.index[normalizeName(p.Name)] = p
		}
	})
	return s.err
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func readPlaces(path string) ([]store.Place, error) {
	//nolint:gosec // G304: File path constructed from dataDir (config).
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open places file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return parsePlaces(file)
}

func parsePlaces(r io.Reader) ([]store.Place, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	// Read header.
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Validate header.
	expectedHeaders := []string{"name", "lat", "lon"}
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid CSV header: expected %v, got %v", expectedHeaders, header)
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid CSV header: expected column %d to be %s, got %s", i, expectedHeaders[i], h)
		}
	}

	places := make([]store.Place, 0)
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("invalid CSV record: empty place name")
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude for place %s: %w", name, err)
		}
		if lat < -90 || lat > 90 {
			return nil, fmt.Errorf("latitude out of range for place %s: %v", name, lat)
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude for place %s: %w", name, err)
		}
		if lon < -180 || lon > 180 {
			return nil, fmt.Errorf("longitude out of range for place %s: %v", name, lon)
		}

		places = append(places, store.Place{Name: name, Lat: lat, Lon: lon})
	}

	if len(places) == 0 {
		return nil, fmt.Errorf("no places found in CSV")
	}

	return places, nil
}
