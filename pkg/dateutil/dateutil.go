package dateutil

import (
	"time"
)

// BirthYear returns the calendar year a person of the given age was born,
// assuming the birthday has already passed at asOf.
func BirthYear(currentAge int, asOf time.Time) int {
	return asOf.Year() - currentAge
}

// GetRMDAge returns the age when RMDs start for a given birth year
func GetRMDAge(birthYear int) int {
	// SECURE 2.0 Act RMD ages
	switch {
	case birthYear <= 1950:
		return 72
	case birthYear >= 1951 && birthYear <= 1959:
		return 73
	default: // 1960 and later
		return 75
	}
}
