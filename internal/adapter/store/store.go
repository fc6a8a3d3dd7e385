// Package store defines the data sources the service reads from.
package store

import "errors"

// ErrOutOfRange is returned by a TableReader when the requested instant is
// not covered by the table.
var ErrOutOfRange = errors.New("instant outside table range")

// Place is a named geographic location. Longitude is positive westwards.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// TablePosition is a tabulated geocentric position: longitude and latitude
// in degrees, distance in AU.
type TablePosition struct {
	Lon  float64
	Lat  float64
	Dist float64
}

// PlaceLoader is the interface for resolving named places.
type PlaceLoader interface {
	// LoadPlace looks up a place by name (case-insensitive).
	LoadPlace(name string) (Place, error)

	// ListPlaces returns every known place.
	ListPlaces() ([]Place, error)
}

// TableReader is the interface for precomputed ephemeris tables.
type TableReader interface {
	// Lookup interpolates the position of body at djd.
	Lookup(body string, djd float64) (TablePosition, error)

	// Range returns the first and last tabulated DJD.
	Range() (start, end float64, err error)
}
