// Package astro provides the lunar position calculations behind the sidereal
// sign and mansion lookups.
package astro

// GregorianReformJD is the Julian Day Number of 1582-10-15, the first day of
// the Gregorian calendar.
const GregorianReformJD = 2299161

// reformJulianCount is what the uncorrected (Julian calendar) count yields for
// 1582-10-15. Dates at or past it get the Gregorian century correction.
const reformJulianCount = GregorianReformJD + 10

// ToJulianDay converts a calendar date to a Julian Day Number.
//
// Dates from 1582-10-15 onward are read as Gregorian, earlier dates as Julian,
// so 1582-10-04 and 1582-10-15 are consecutive days. The day is not checked
// against the month: 31 February yields a defined but meaningless number.
func ToJulianDay(day, month, year int) float64 {
	// March is month 0 of the computing year so the leap day falls last.
	im := 12*(year+4800) + month - 3
	j := floorDiv(2*floorMod(im, 12)+7+365*im, 12) + day + floorDiv(im, 48) - 32083
	if j >= reformJulianCount {
		j += floorDiv(im, 4800) - floorDiv(im, 1200) + 38
	}
	return float64(j)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
