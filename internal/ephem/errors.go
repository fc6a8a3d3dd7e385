package ephem

import "errors"

var (
	// ErrConfiguration is returned when a body has no orbital data.
	ErrConfiguration = errors.New("ephem: missing orbital data")
	// ErrNumerical is returned when an iterative method fails to converge.
	ErrNumerical = errors.New("ephem: numerical failure")
	// ErrLookup is returned for unknown body names.
	ErrLookup = errors.New("ephem: unknown body")
)
