// Package usecase orchestrates ephemeris, chart and lunation requests.
package usecase

import (
	"errors"
	"fmt"

	"go.ngs.io/ephem-api/internal/adapter/store"
	"go.ngs.io/ephem-api/internal/ephem"
	"go.ngs.io/ephem-api/internal/houses"
)

// DefaultWorkers is the parallelism of batch requests when none is set.
const DefaultWorkers = 4

// ErrInvalidRequest marks errors caused by a malformed request.
var ErrInvalidRequest = errors.New("invalid request")

// EphemerisUseCase serves positions, charts and lunations.
type EphemerisUseCase struct {
	table   store.TableReader // optional
	places  store.PlaceLoader // optional
	workers int
}

// NewEphemerisUseCase creates a new use case. table and places may be nil;
// without a table every position is computed, without places charts need
// explicit coordinates.
func NewEphemerisUseCase(table store.TableReader, places store.PlaceLoader, workers int) *EphemerisUseCase {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &EphemerisUseCase{
		table:   table,
		places:  places,
		workers: workers,
	}
}

// IsBadInput reports whether err was caused by the request rather than by a
// failure of the computation.
func IsBadInput(err error) bool {
	var domainErr *houses.DomainError
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ephem.ErrLookup) ||
		errors.As(err, &domainErr)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}
