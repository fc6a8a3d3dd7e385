package usecase

import (
	"fmt"
	"sort"
	"time"

	"go.ngs.io/ephem-api/internal/calendar"
	"go.ngs.io/ephem-api/internal/lunation"
)

// LunationRequest asks for the lunar quarters closest to a date.
type LunationRequest struct {
	Year  int
	Month int
	Day   float64
}

// LunationResponse lists the four quarters in chronological order.
type LunationResponse struct {
	Date     string         `json:"date"`
	Quarters []QuarterEvent `json:"quarters"`
}

// QuarterEvent is one lunar phase.
type QuarterEvent struct {
	Quarter lunation.Quarter `json:"quarter"`
	DJD     float64          `json:"djd"`
	Time    string           `json:"time"`
}

// Validate checks if the request is valid.
func (r *LunationRequest) Validate() error {
	if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	if r.Day < 1 || r.Day >= 32 {
		return fmt.Errorf("day must be between 1 and 31")
	}
	if r.Year < -4000 || r.Year > 8000 || r.Year == 0 {
		return fmt.Errorf("year must be a non-zero civil year between -4000 and 8000")
	}
	return nil
}

// Lunation finds the quarters of the lunation closest to the given date.
func (uc *EphemerisUseCase) Lunation(req LunationRequest) (*LunationResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	quarters := lunation.Quarters
	events := make([]QuarterEvent, len(quarters))
	for i, q := range quarters {
		djd := lunation.FindClosest(q, req.Year, req.Month, req.Day)
		events[i] = QuarterEvent{
			Quarter: q,
			DJD:     djd,
			Time:    calendar.ToTime(djd).Format(time.RFC3339),
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].DJD < events[j].DJD })

	return &LunationResponse{
		Date:     fmt.Sprintf("%04d-%02d-%02d", req.Year, req.Month, int(req.Day)),
		Quarters: events,
	}, nil
}
