package astro

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CivilMoment is a local calendar date and clock time together with the
// UTC offset, in hours east of Greenwich, that was in force there.
//
// UTC+05:30 is 5.5 and UTC-08:00 is -8. Fields are not validated; callers
// reject impossible dates before building a moment.
type CivilMoment struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Day       int     `json:"day"`
	Hour      int     `json:"hour"`
	Minute    int     `json:"minute"`
	UTCOffset float64 `json:"utc_offset"`
}

// FromTime builds a CivilMoment from t's wall clock and zone offset.
func FromTime(t time.Time) CivilMoment {
	_, offset := t.Zone()
	return CivilMoment{
		Year:      t.Year(),
		Month:     int(t.Month()),
		Day:       t.Day(),
		Hour:      t.Hour(),
		Minute:    t.Minute(),
		UTCOffset: float64(offset) / 3600,
	}
}

// Time returns the instant m names, in a fixed zone at m's offset. Minutes
// of the offset are rounded to whole seconds.
func (m CivilMoment) Time() time.Time {
	zone := time.FixedZone(FormatOffset(m.UTCOffset), int(math.Round(m.UTCOffset*3600)))
	return time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, 0, 0, zone)
}

// Add returns the moment d later on the same offset's wall clock, truncated
// to the minute.
func (m CivilMoment) Add(d time.Duration) CivilMoment {
	return FromTime(m.Time().Add(d))
}

// clockHour returns the local time of day in fractional hours.
func (m CivilMoment) clockHour() float64 {
	return float64(m.Hour) + float64(m.Minute)/60
}

// universalHour returns the time of day at Greenwich, which may fall
// outside [0, 24) when the offset moves it to a neighbouring day.
func (m CivilMoment) universalHour() float64 {
	return m.clockHour() - m.UTCOffset
}

// String formats the moment as 2006-01-02T15:04±hh:mm.
func (m CivilMoment) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d%s",
		m.Year, m.Month, m.Day, m.Hour, m.Minute, FormatOffset(m.UTCOffset))
}

var civilLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCivilMoment parses a local date-time such as "2000-01-01T12:00" and
// attaches offset. Impossible calendar dates are rejected here.
func ParseCivilMoment(value string, offset float64) (CivilMoment, error) {
	value = strings.TrimSpace(value)
	for _, layout := range civilLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		m := FromTime(t)
		m.UTCOffset = offset
		return m, nil
	}
	return CivilMoment{}, fmt.Errorf("invalid date-time %q: use YYYY-MM-DDTHH:MM", value)
}

// ErrInvalidOffset is returned by ParseOffset for malformed offsets.
var ErrInvalidOffset = errors.New("invalid UTC offset")

// ParseOffset parses a UTC offset written as "Z", "UTC", "+05:30", "-0800",
// "+5.5" or "-8" and returns it in hours east of UTC.
func ParseOffset(value string) (float64, error) {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "UTC"), "GMT")
	if s == "" || s == "Z" || s == "z" {
		return 0, nil
	}

	sign := 1.0
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, value)
	}

	var hours float64
	switch {
	case strings.Contains(s, ":"):
		hh, mm, _ := strings.Cut(s, ":")
		h, errH := strconv.Atoi(hh)
		mi, errM := strconv.Atoi(mm)
		if errH != nil || errM != nil || mi < 0 || mi >= 60 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, value)
		}
		hours = float64(h) + float64(mi)/60
	case len(s) == 4 && !strings.Contains(s, "."):
		n, err := strconv.Atoi(s)
		if err != nil || n%100 >= 60 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, value)
		}
		hours = float64(n/100) + float64(n%100)/60
	default:
		h, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, value)
		}
		hours = h
	}

	// Real zones span UTC-12 to UTC+14.
	if hours < 0 || hours > 14 || (sign < 0 && hours > 12) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidOffset, value)
	}
	return sign * hours, nil
}

// FormatOffset renders hours east of UTC as ±hh:mm.
func FormatOffset(hours float64) string {
	sign := '+'
	if hours < 0 {
		sign = '-'
		hours = -hours
	}
	total := int(math.Round(hours * 60))
	return fmt.Sprintf("%c%02d:%02d", sign, total/60, total%60)
}
