// Package almanac produces the daily lunar almanac: for each civil date, the
// Moon's sign and mansion at local midnight and the minute it moves on to the
// next mansion.
package almanac

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/nakshatra-api/internal/astro"
	"github.com/zapponejosh/nakshatra-api/internal/database"
)

var (
	ErrInvalidRange  = errors.New("almanac: end date before start date")
	ErrRangeTooLarge = errors.New("almanac: range too large")
)

// Builder computes almanac rows. It holds no state beyond its settings and
// may be shared.
type Builder struct {
	logger      *slog.Logger
	concurrency int
}

// NewBuilder returns a Builder computing up to concurrency days at once;
// zero or less means one per CPU.
func NewBuilder(logger *slog.Logger, concurrency int) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Builder{logger: logger, concurrency: concurrency}
}

// Day computes the row for one civil date in the zone offsetMinutes east of
// UTC. Only the date part of date is used.
func (b *Builder) Day(date time.Time, offsetMinutes int) database.AlmanacDay {
	y, m, d := date.Date()
	midnight := astro.CivilMoment{
		Year:      y,
		Month:     int(m),
		Day:       d,
		UTCOffset: float64(offsetMinutes) / 60,
	}

	idx := astro.ComputeSiderealIndices(midnight)
	row := database.AlmanacDay{
		Date:             date.Format(database.DateLayout),
		UTCOffsetMinutes: offsetMinutes,
		ZodiacIndex:      idx.ZodiacIndex,
		MansionIndex:     idx.MansionIndex,
		Longitude:        idx.Longitude,
	}

	if tr, ok := astro.NextMansionChange(midnight, 24*time.Hour); ok {
		minute := int(tr.After / time.Minute)
		row.MansionEndsMinute = &minute
		row.NextMansionIndex = &tr.To
	}
	return row
}

// Build computes every date from start to end inclusive, in date order.
func (b *Builder) Build(ctx context.Context, start, end time.Time, offsetMinutes int) ([]database.AlmanacDay, error) {
	dates, err := Dates(start, end, 0)
	if err != nil {
		return nil, err
	}
	return b.Days(ctx, dates, offsetMinutes)
}

// Days computes the rows for dates, keeping their order.
func (b *Builder) Days(ctx context.Context, dates []time.Time, offsetMinutes int) ([]database.AlmanacDay, error) {
	started := time.Now()
	rows := make([]database.AlmanacDay, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, date := range dates {
		if gctx.Err() != nil {
			break
		}
		i, date := i, date
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = b.Day(date, offsetMinutes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build almanac: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build almanac: %w", err)
	}

	b.logger.Debug("almanac computed",
		slog.Int("days", len(dates)),
		slog.Int("utc_offset_minutes", offsetMinutes),
		slog.Duration("duration", time.Since(started)),
	)
	return rows, nil
}

// Dates lists the civil dates from start to end inclusive. A positive limit
// caps the number of days.
func Dates(start, end time.Time, limit int) ([]time.Time, error) {
	start = civilDate(start)
	end = civilDate(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	n := int(end.Sub(start)/(24*time.Hour)) + 1
	if limit > 0 && n > limit {
		return nil, fmt.Errorf("%w: %d days, limit %d", ErrRangeTooLarge, n, limit)
	}

	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates, nil
}

// civilDate drops the clock and zone, keeping the calendar date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
