package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// querier is what DB and Tx share for the almanac queries.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses SQLite datetime('now') TEXT, returning the zero time
// if the value is missing or malformed.
func parseTimestamp(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return t
		}
	}
	return time.Time{}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

const almanacColumns = `
	id, date, utc_offset_minutes,
	zodiac_index, mansion_index, longitude,
	mansion_ends_minute, next_mansion_index,
	created_at, updated_at
`

func scanAlmanacDay(scan func(dest ...any) error) (AlmanacDay, error) {
	var d AlmanacDay
	var endsMinute, nextMansion sql.NullInt64
	var createdAt, updatedAt sql.NullString

	err := scan(
		&d.ID,
		&d.Date,
		&d.UTCOffsetMinutes,
		&d.ZodiacIndex,
		&d.MansionIndex,
		&d.Longitude,
		&endsMinute,
		&nextMansion,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return AlmanacDay{}, err
	}

	d.MansionEndsMinute = intPtr(endsMinute)
	d.NextMansionIndex = intPtr(nextMansion)
	d.CreatedAt = parseTimestamp(createdAt)
	d.UpdatedAt = parseTimestamp(updatedAt)
	return d, nil
}

// =============================================================================
// Almanac Queries
// =============================================================================

// GetAlmanacDay returns the row for date at offset, or ErrNotFound.
func (db *DB) GetAlmanacDay(ctx context.Context, date string, offsetMinutes int) (*AlmanacDay, error) {
	query := `SELECT ` + almanacColumns + `
		FROM almanac_days
		WHERE date = ? AND utc_offset_minutes = ?
	`

	d, err := scanAlmanacDay(db.QueryRowContext(ctx, query, date, offsetMinutes).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query almanac day: %w", err)
	}
	return &d, nil
}

// GetAlmanacRange returns the cached rows for offset with start <= date <=
// end, ordered by date. Missing dates are simply absent.
func (db *DB) GetAlmanacRange(ctx context.Context, start, end string, offsetMinutes int) ([]AlmanacDay, error) {
	query := `SELECT ` + almanacColumns + `
		FROM almanac_days
		WHERE utc_offset_minutes = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := db.QueryContext(ctx, query, offsetMinutes, start, end)
	if err != nil {
		return nil, fmt.Errorf("query almanac range: %w", err)
	}
	defer rows.Close()

	days := []AlmanacDay{}
	for rows.Next() {
		d, err := scanAlmanacDay(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan almanac row: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate almanac rows: %w", err)
	}

	return days, nil
}

// CountAlmanacDays counts the cached rows for offset in [start, end].
func (db *DB) CountAlmanacDays(ctx context.Context, start, end string, offsetMinutes int) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM almanac_days
		WHERE utc_offset_minutes = ? AND date >= ? AND date <= ?
	`, offsetMinutes, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count almanac days: %w", err)
	}
	return n, nil
}

// UpsertAlmanacDays writes days in a single transaction. Existing rows for
// the same date and offset are replaced.
func (db *DB) UpsertAlmanacDays(ctx context.Context, days []AlmanacDay) error {
	if len(days) == 0 {
		return nil
	}

	err := db.WithTx(ctx, func(tx *Tx) error {
		for i := range days {
			if err := tx.UpsertAlmanacDay(ctx, &days[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	db.logger.Debug("almanac days stored", slog.Int("count", len(days)))
	return nil
}

// UpsertAlmanacDay inserts or replaces one row on the connection.
func (db *DB) UpsertAlmanacDay(ctx context.Context, d *AlmanacDay) error {
	return upsertAlmanacDay(ctx, db, d)
}

// UpsertAlmanacDay inserts or replaces one row within the transaction.
func (tx *Tx) UpsertAlmanacDay(ctx context.Context, d *AlmanacDay) error {
	return upsertAlmanacDay(ctx, tx, d)
}

func upsertAlmanacDay(ctx context.Context, q querier, d *AlmanacDay) error {
	if err := d.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO almanac_days (
			date, utc_offset_minutes,
			zodiac_index, mansion_index, longitude,
			mansion_ends_minute, next_mansion_index, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(date, utc_offset_minutes) DO UPDATE SET
			zodiac_index = excluded.zodiac_index,
			mansion_index = excluded.mansion_index,
			longitude = excluded.longitude,
			mansion_ends_minute = excluded.mansion_ends_minute,
			next_mansion_index = excluded.next_mansion_index,
			updated_at = datetime('now')
	`

	_, err := q.ExecContext(ctx, query,
		d.Date,
		d.UTCOffsetMinutes,
		d.ZodiacIndex,
		d.MansionIndex,
		d.Longitude,
		nullInt(d.MansionEndsMinute),
		nullInt(d.NextMansionIndex),
	)
	if err != nil {
		return fmt.Errorf("upsert almanac day %s: %w", d.Date, err)
	}
	return nil
}

// DeleteAlmanacRange removes cached rows for offset in [start, end] and
// returns how many were deleted.
func (db *DB) DeleteAlmanacRange(ctx context.Context, start, end string, offsetMinutes int) (int64, error) {
	result, err := db.ExecContext(ctx, `
		DELETE FROM almanac_days
		WHERE utc_offset_minutes = ? AND date >= ? AND date <= ?
	`, offsetMinutes, start, end)
	if err != nil {
		return 0, fmt.Errorf("delete almanac range: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return n, nil
}

// GetAlmanacStats summarises the cache per offset, ordered by offset.
func (db *DB) GetAlmanacStats(ctx context.Context) ([]AlmanacStats, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT utc_offset_minutes, COUNT(*), MIN(date), MAX(date)
		FROM almanac_days
		GROUP BY utc_offset_minutes
		ORDER BY utc_offset_minutes
	`)
	if err != nil {
		return nil, fmt.Errorf("query almanac stats: %w", err)
	}
	defer rows.Close()

	stats := []AlmanacStats{}
	for rows.Next() {
		var s AlmanacStats
		if err := rows.Scan(&s.UTCOffsetMinutes, &s.TotalDays, &s.EarliestDate, &s.LatestDate); err != nil {
			return nil, fmt.Errorf("scan almanac stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate almanac stats: %w", err)
	}
	return stats, nil
}
