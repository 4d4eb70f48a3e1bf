package astro

import "math"

const (
	// ZodiacSigns is the number of 30 degree signs.
	ZodiacSigns = 12

	// LunarMansions is the number of 13°20′ mansions (nakshatras).
	LunarMansions = 27

	signWidthDegrees       = 30
	mansionWidthArcMinutes = 800
)

// ZodiacIndex maps a sidereal longitude to its sign, 0 (Aries) to 11.
//
// The longitude is truncated to whole degrees before dividing. For the
// [0, 360) domain this matches floor(lon/30); the two-step form is kept so
// sign boundaries fall exactly where existing charts put them.
func ZodiacIndex(longitude float64) int {
	return int(math.Floor(math.Floor(math.Abs(longitude)) / signWidthDegrees))
}

// MansionIndex maps a sidereal longitude to its lunar mansion, 0 (Ashwini)
// to 26. Mansions are 800 arc-minutes wide.
func MansionIndex(longitude float64) int {
	return int(math.Floor(longitude * 60 / mansionWidthArcMinutes))
}

// SiderealIndices is the Moon's sign and mansion at a moment.
type SiderealIndices struct {
	ZodiacIndex  int     `json:"zodiac_index"`
	MansionIndex int     `json:"mansion_index"`
	Longitude    float64 `json:"longitude"`
}

// ComputeSiderealIndices returns the Moon's sign and mansion at m.
func ComputeSiderealIndices(m CivilMoment) SiderealIndices {
	lon := MoonLongitude(m)
	return SiderealIndices{
		ZodiacIndex:  ZodiacIndex(lon),
		MansionIndex: MansionIndex(lon),
		Longitude:    lon,
	}
}
