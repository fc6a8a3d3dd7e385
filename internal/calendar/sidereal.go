package calendar

import "go.ngs.io/ephem-api/internal/mathutil"

// ambiguousUTC is the width of the interval, in hours, during which the same
// sidereal time occurs twice in one civil day.
const ambiguousUTC = 6.552e-2

// greenwichT0 returns the Greenwich sidereal time at 0h UT of the civil day
// containing djd.
func greenwichT0(djd float64) float64 {
	t := (DJDMidnight(djd) - DaysPerCentury) / DaysPerCentury
	return mathutil.ToRange(mathutil.Polynome(t, 6.697374558, 2400.051336, 0.000025862), 24)
}

// LocalSidereal returns the local sidereal time in hours for the given DJD.
// Longitude is in degrees, positive westwards.
func LocalSidereal(djd, lng float64) float64 {
	ut := (djd - DJDMidnight(djd)) * 24
	gst := ut*SolarToSidereal + greenwichT0(djd)
	return mathutil.ToRange(gst-lng/15, 24)
}

// SiderealToUTC converts a local sidereal time on the civil day of djd back to
// UTC hours. ok is false when the result falls into the ambiguous interval at
// the start of the day, where the sidereal time also occurs near its end.
func SiderealToUTC(djd, lst, lng float64) (utc float64, ok bool) {
	gst := mathutil.ToRange(lst+lng/15, 24)
	utc = mathutil.ToRange(gst-greenwichT0(djd), 24) / SolarToSidereal
	return utc, utc >= ambiguousUTC
}
