package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/matsen/roster/internal/record"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database holding a queryable copy of a record collection.
type DB struct {
	db *sql.DB
}

// selectRecordFields contains the standard field list for SELECT queries.
const selectRecordFields = `id, name, date, address, note`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- position preserves collection order; id is not unique
		CREATE TABLE IF NOT EXISTS records (
			position INTEGER PRIMARY KEY,
			id INTEGER NOT NULL,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			address TEXT NOT NULL,
			note TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_records_id ON records(id);
		CREATE INDEX IF NOT EXISTS idx_records_name ON records(name);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild replaces the database contents with recs, keeping their order.
func (d *DB) Rebuild(recs []record.Record) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clearing records table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (position, ` + selectRecordFields + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing records insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range recs {
		if _, err := stmt.Exec(i, r.ID, r.Name, r.DateString(), r.Address, r.Note); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(recs), nil
}

// Count returns the number of stored records.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Find returns records with any field exactly equal to word, in collection order.
// It agrees with record.Record.Matches.
func (d *DB) Find(word string) ([]record.Record, error) {
	rows, err := d.db.Query(`
		SELECT `+selectRecordFields+`
		FROM records
		WHERE CAST(id AS TEXT) = ?
			OR name = ?
			OR date = ?
			OR address = ?
			OR note = ?
		ORDER BY position`, word, word, word, word, word)
	if err != nil {
		return nil, fmt.Errorf("finding %q: %w", word, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]record.Record, error) {
	var recs []record.Record
	for rows.Next() {
		var (
			r    record.Record
			id   int64
			date string
		)
		if err := rows.Scan(&id, &r.Name, &date, &r.Address, &r.Note); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		parsed, err := time.Parse(record.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parsing stored date %q: %w", date, err)
		}
		r.ID = uint32(id)
		r.Date = parsed
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return recs, nil
}
