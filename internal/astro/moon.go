package astro

import "math"

const (
	// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
	J2000 = 2451545.0

	daysPerCentury = 36525.0
	deg2rad        = math.Pi / 180
	fullCircle     = 360.0
)

// JulianCenturies returns the time elapsed from J2000.0 to m, in Julian
// centuries of 36525 days.
func JulianCenturies(m CivilMoment) float64 {
	jd := ToJulianDay(m.Day, m.Month, m.Year)
	return (jd - J2000 + m.universalHour()/24 - 0.5) / daysPerCentury
}

// MoonLongitude returns the Moon's sidereal ecliptic longitude at m, in
// degrees within [0, 360).
func MoonLongitude(m CivilMoment) float64 {
	return siderealLongitude(JulianCenturies(m))
}

// TropicalLongitude returns the Moon's apparent longitude measured from the
// moving equinox, in degrees within [0, 360).
func TropicalLongitude(m CivilMoment) float64 {
	return tropicalLongitude(JulianCenturies(m))
}

// Ayanamsa returns the precession offset, in degrees, that converts a
// tropical longitude at t Julian centuries into a sidereal one. It is
// negative for every date of practical interest.
func Ayanamsa(t float64) float64 {
	node := 125.044555 - 1934.1361849*t + 0.0020762*t*t
	sun := 280.466449 + 36000.7698231*t + 0.0003106*t*t

	arcsec := 17.23*math.Sin(deg2rad*node) + 1.27*math.Sin(deg2rad*sun) - (5025.64+1.11*t)*t
	return (arcsec - 80861.27) / 3600
}

func siderealLongitude(t float64) float64 {
	return normalizeDegrees(tropicalLongitude(t) + Ayanamsa(t))
}

// fundamentals holds the series arguments in radians and the eccentricity
// factor of Earth's orbit.
type fundamentals struct {
	elongation   float64 // D
	sunAnomaly   float64 // M
	moonAnomaly  float64 // Mm
	latitudeArg  float64 // F
	eccentricity float64 // E
}

func fundamentalsAt(t float64) fundamentals {
	return fundamentals{
		elongation:   (297.8502042 + 445267.1115168*t) * deg2rad,
		sunAnomaly:   (357.5291092 + 35999.0502909*t) * deg2rad,
		moonAnomaly:  (134.9634114 + 477198.8676313*t) * deg2rad,
		latitudeArg:  (93.2720993 + 483202.0175273*t) * deg2rad,
		eccentricity: 1 - 0.002516*t - 0.0000074*t*t,
	}
}

func tropicalLongitude(t float64) float64 {
	meanLongitude := 218.3164591 + 481267.88134236*t
	return normalizeDegrees(meanLongitude + perturbation(fundamentalsAt(t)))
}

// perturbation sums the periodic series in degrees.
func perturbation(a fundamentals) float64 {
	var sum float64
	for _, term := range longitudeTerms {
		arg := float64(term.d)*a.elongation +
			float64(term.m)*a.sunAnomaly +
			float64(term.mm)*a.moonAnomaly +
			float64(term.f)*a.latitudeArg

		amplitude := term.amplitude
		switch term.m {
		case 1, -1:
			amplitude *= a.eccentricity
		case 2, -2:
			amplitude *= a.eccentricity * a.eccentricity
		}
		sum += amplitude * math.Sin(arg)
	}
	return sum
}

// normalizeDegrees wraps deg into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, fullCircle)
	if deg < 0 {
		deg += fullCircle
	}
	// A tiny negative remainder rounds up to exactly 360 when shifted.
	if deg >= fullCircle {
		deg -= fullCircle
	}
	return deg
}
