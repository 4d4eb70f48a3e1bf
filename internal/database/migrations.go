package database

// migrationsSQL holds the schema migrations keyed by version. Versions are
// applied in ascending order and never edited once released.
var migrationsSQL = map[int]string{
	1: migrationV1AlmanacDays,
	2: migrationV2AlmanacIndexes,
}

// migrationV1AlmanacDays creates the almanac cache.
//
// One row per civil date and UTC offset, computed at local midnight. The
// offset is part of the key because the same calendar date starts at a
// different instant in each zone.
const migrationV1AlmanacDays = `
CREATE TABLE IF NOT EXISTS almanac_days (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Civil date, YYYY-MM-DD, in the zone given by utc_offset_minutes
    date TEXT NOT NULL,

    -- Minutes east of UTC, e.g. 330 for +05:30
    utc_offset_minutes INTEGER NOT NULL,

    -- Moon at local midnight
    zodiac_index INTEGER NOT NULL CHECK (zodiac_index BETWEEN 0 AND 11),
    mansion_index INTEGER NOT NULL CHECK (mansion_index BETWEEN 0 AND 26),
    longitude REAL NOT NULL CHECK (longitude >= 0 AND longitude < 360),

    -- First minute after midnight in the next mansion; NULL if the Moon
    -- stays in one mansion the whole day
    mansion_ends_minute INTEGER CHECK (mansion_ends_minute BETWEEN 1 AND 1440),
    next_mansion_index INTEGER CHECK (next_mansion_index BETWEEN 0 AND 26),

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (date, utc_offset_minutes)
);
`

// migrationV2AlmanacIndexes adds the lookup index for range scans.
const migrationV2AlmanacIndexes = `
CREATE INDEX IF NOT EXISTS idx_almanac_days_offset_date
    ON almanac_days(utc_offset_minutes, date);

CREATE INDEX IF NOT EXISTS idx_almanac_days_mansion
    ON almanac_days(mansion_index);
`
