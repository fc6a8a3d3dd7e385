// Package calendar converts between civil dates and DJD, the number of days
// elapsed since 1900 January 0.5 (1899 December 31, 12h UT).
//
// Dates before 1582 October 15 are taken in the Julian calendar, later ones in
// the Gregorian calendar. There is no year zero: civil year -1 immediately
// precedes year 1.
package calendar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// DJDToJD is the Julian Day of the DJD epoch.
	DJDToJD = 2415020.0
	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0
	// SecondsPerDay is the number of seconds in a day.
	SecondsPerDay = 86400.0
	// SolarToSidereal converts solar time intervals to sidereal ones.
	SolarToSidereal = 1.002737909350795

	// unixEpochDJD is 1970-01-01T00:00:00Z.
	unixEpochDJD = 25567.5
)

// JulDay returns the DJD of a civil date. The day may carry a fraction.
func JulDay(year, month int, day float64) float64 {
	y := astronomicalYear(year)
	if isGregorian(year, month, day) {
		return julian.CalendarGregorianToJD(y, month, day) - DJDToJD
	}
	return julian.CalendarJulianToJD(y, month, day) - DJDToJD
}

// astronomicalYear maps civil years onto a numbering with a year zero.
func astronomicalYear(year int) int {
	if year < 0 {
		return year + 1
	}
	return year
}

func isGregorian(year, month int, day float64) bool {
	switch {
	case year != 1582:
		return year > 1582
	case month != 10:
		return month > 10
	default:
		return day >= 15
	}
}

// CalDay is the inverse of JulDay.
func CalDay(djd float64) (year, month int, day float64) {
	year, month, day = julian.JDToCalendar(djd + DJDToJD)
	// JDToCalendar turns Gregorian ten days early; 1582-10-05..14 are
	// Julian September 25 .. October 4.
	if year == 1582 && month == 10 && day < 15 {
		day -= 10
		if day < 1 {
			month = 9
			day += 30
		}
	}
	if year < 1 {
		year--
	}
	return year, month, day
}

// DJDMidnight returns the DJD of the preceding midnight.
func DJDMidnight(djd float64) float64 {
	return math.Floor(djd-0.5) + 0.5
}

// WeekDay returns the day of week, 0 being Sunday.
func WeekDay(djd float64) int {
	w := math.Mod(DJDMidnight(djd)+0.5, 7)
	if w < 0 {
		w += 7
	}
	return int(w)
}

// IsLeapYear reports whether the civil year is a leap year.
func IsLeapYear(year int) bool {
	y := astronomicalYear(year)
	if year > 1582 {
		return julian.LeapYearGregorian(y)
	}
	return julian.LeapYearJulian(y)
}

// DayOfYear returns the ordinal day, 1 for January 1. The fraction of the day
// is kept.
func DayOfYear(year, month int, day float64) float64 {
	whole := math.Floor(day)
	return float64(julian.DayOfYear(year, month, int(whole), IsLeapYear(year))) + day - whole
}

// FromTime returns the DJD of a time instant.
func FromTime(t time.Time) float64 {
	return julian.TimeToJD(t) - DJDToJD
}

// ToTime returns the UTC time of a DJD, rounded to the millisecond.
func ToTime(djd float64) time.Time {
	ms := math.Round((djd - unixEpochDJD) * SecondsPerDay * 1000)
	return time.UnixMilli(int64(ms)).UTC()
}
