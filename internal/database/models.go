package database

import (
	"fmt"
	"time"
)

// DateLayout is the storage format of AlmanacDay.Date.
const DateLayout = "2006-01-02"

// AlmanacDay is the Moon's position at local midnight of one civil date,
// plus when (if at all) it moves into the next mansion that day.
type AlmanacDay struct {
	ID               int64   `json:"-"`
	Date             string  `json:"date"`               // YYYY-MM-DD
	UTCOffsetMinutes int     `json:"utc_offset_minutes"` // east of UTC
	ZodiacIndex      int     `json:"zodiac_index"`
	MansionIndex     int     `json:"mansion_index"`
	Longitude        float64 `json:"longitude"`

	// MansionEndsMinute counts minutes after local midnight; nil when the
	// mansion holds for the whole day.
	MansionEndsMinute *int `json:"mansion_ends_minute"`
	NextMansionIndex  *int `json:"next_mansion_index"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Validate checks the row against the table constraints before it is sent to
// SQLite, so callers get a readable error instead of a CHECK failure.
func (d *AlmanacDay) Validate() error {
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return fmt.Errorf("almanac day: invalid date %q", d.Date)
	}
	if d.ZodiacIndex < 0 || d.ZodiacIndex > 11 {
		return fmt.Errorf("almanac day %s: zodiac index %d out of range", d.Date, d.ZodiacIndex)
	}
	if d.MansionIndex < 0 || d.MansionIndex > 26 {
		return fmt.Errorf("almanac day %s: mansion index %d out of range", d.Date, d.MansionIndex)
	}
	if d.Longitude < 0 || d.Longitude >= 360 {
		return fmt.Errorf("almanac day %s: longitude %v out of range", d.Date, d.Longitude)
	}
	if (d.MansionEndsMinute == nil) != (d.NextMansionIndex == nil) {
		return fmt.Errorf("almanac day %s: mansion end and next mansion must be set together", d.Date)
	}
	return nil
}

// AlmanacStats summarises the cached rows for one offset.
type AlmanacStats struct {
	UTCOffsetMinutes int    `json:"utc_offset_minutes"`
	TotalDays        int    `json:"total_days"`
	EarliestDate     string `json:"earliest_date"`
	LatestDate       string `json:"latest_date"`
}
