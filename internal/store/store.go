// Package store keeps the reading calendar in SQLite.
//
// Build modes:
//   - Default (CGO_ENABLED=0): Uses pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): Uses mattn/go-sqlite3
//
// Each calendar day is one row of the readings table. The data column holds
// the day's reading list as JSON, exactly as the calendar front end reads it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/biblein1year/core/calendar"
	apperrors "github.com/FocuswithJustin/biblein1year/core/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS readings (
	month INTEGER NOT NULL,
	day   INTEGER NOT NULL,
	data  TEXT    NOT NULL,
	PRIMARY KEY (month, day)
);
CREATE TABLE IF NOT EXISTS abbreviations (
	book_short TEXT PRIMARY KEY,
	book       TEXT NOT NULL
);`

// Info contains information about the SQLite driver configuration.
type Info struct {
	DriverName string `json:"driver_name"`
	DriverType string `json:"driver_type"`
	IsCGO      bool   `json:"is_cgo"`
	Package    string `json:"package"`
}

// GetInfo returns information about the compiled-in SQLite driver.
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      driverType == "cgo",
		Package:    driverPackage,
	}
}

// Store is a calendar database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the tables if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// SQLite allows a single writer; one connection keeps in-memory
	// databases shared between statements too.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema in %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenReadOnly opens an existing database without write access. No schema
// is created.
func OpenReadOnly(path string) (*Store, error) {
	db, err := sql.Open(driverName, "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Scan returns every calendar day in storage order. Rows whose data column
// cannot be decoded are left out of records and reported in bad; they do not
// fail the scan. err is set only when the table itself cannot be read.
func (s *Store) Scan(ctx context.Context) (records []calendar.DayRecord, bad []*apperrors.DecodeError, err error) {
	rows, err := s.db.QueryContext(ctx, `SELECT month, day, data FROM readings ORDER BY rowid`)
	if err != nil {
		return nil, nil, fmt.Errorf("scanning readings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec  calendar.DayRecord
			data string
		)
		if err := rows.Scan(&rec.Month, &rec.Day, &data); err != nil {
			return nil, nil, fmt.Errorf("scanning readings: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &rec.Readings); err != nil {
			bad = append(bad, &apperrors.DecodeError{Month: rec.Month, Day: rec.Day, Err: err})
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("scanning readings: %w", err)
	}
	return records, bad, nil
}

// Get returns one calendar day.
func (s *Store) Get(ctx context.Context, month, day int) (calendar.DayRecord, error) {
	rec := calendar.DayRecord{Month: month, Day: day}

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM readings WHERE month = ? AND day = ?`, month, day,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return calendar.DayRecord{}, apperrors.NewNotFound("day", rec.Key())
	}
	if err != nil {
		return calendar.DayRecord{}, fmt.Errorf("reading %s: %w", rec.Key(), err)
	}

	if err := json.Unmarshal([]byte(data), &rec.Readings); err != nil {
		return calendar.DayRecord{}, &apperrors.DecodeError{Month: month, Day: day, Err: err}
	}
	return rec, nil
}

// UpdateReadings replaces the reading list of an existing day. A day that
// does not exist is reported as a NotFoundError; no row is created.
func (s *Store) UpdateReadings(ctx context.Context, month, day int, readings []calendar.Reading) error {
	key := calendar.DayRecord{Month: month, Day: day}.Key()

	data, err := json.Marshal(readings)
	if err != nil {
		return fmt.Errorf("encoding readings for %s: %w", key, err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE readings SET data = ? WHERE month = ? AND day = ?`, string(data), month, day,
	)
	if err != nil {
		return fmt.Errorf("updating %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating %s: %w", key, err)
	}
	if n == 0 {
		return apperrors.NewNotFound("day", key)
	}
	return nil
}

// Put inserts or replaces a whole day. The correction tools never create
// days; Put is for seeding a calendar.
func (s *Store) Put(ctx context.Context, rec calendar.DayRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(rec.Readings)
	if err != nil {
		return fmt.Errorf("encoding readings for %s: %w", rec.Key(), err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO readings (month, day, data) VALUES (?, ?, ?)
		 ON CONFLICT (month, day) DO UPDATE SET data = excluded.data`,
		rec.Month, rec.Day, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", rec.Key(), err)
	}
	return nil
}

// Abbreviation returns the full book name registered for a lowercase short
// name.
func (s *Store) Abbreviation(ctx context.Context, short string) (string, error) {
	var book string
	err := s.db.QueryRowContext(ctx,
		`SELECT book FROM abbreviations WHERE book_short = ?`, strings.ToLower(short),
	).Scan(&book)
	if err == sql.ErrNoRows {
		return "", apperrors.NewNotFound("abbreviation", short)
	}
	if err != nil {
		return "", fmt.Errorf("looking up abbreviation %q: %w", short, err)
	}
	return book, nil
}

// PutAbbreviation registers short as an abbreviation of book.
func (s *Store) PutAbbreviation(ctx context.Context, short, book string) error {
	if strings.TrimSpace(short) == "" {
		return apperrors.NewValidation("book_short", short, "must not be empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO abbreviations (book_short, book) VALUES (?, ?)
		 ON CONFLICT (book_short) DO UPDATE SET book = excluded.book`,
		strings.ToLower(short), book,
	)
	if err != nil {
		return fmt.Errorf("writing abbreviation %q: %w", short, err)
	}
	return nil
}
