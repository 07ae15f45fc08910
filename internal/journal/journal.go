// Package journal persists accepted parameter updates in SQLite so a later
// session can replay them onto its startup state.
//
// The journal stores deltas, not snapshots. Replaying folds them onto
// whatever base the new session starts from, so if the configured start
// state changed between sessions, fields the journal never touched keep the
// new configured values. Export a preset to pin an exact state.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"voxel-terrain/internal/config"
)

// Entry is one journaled update.
type Entry struct {
	Seq        int64
	Update     config.Update
	RecordedAt time.Time
}

// Journal is an append-only log of updates.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("empty journal path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS updates (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		field TEXT NOT NULL,
		value TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);`)
	return err
}

// Append stores updates in one transaction, in order.
func (j *Journal) Append(ctx context.Context, updates []config.Update) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO updates(field, value, recorded_at) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	at := j.now().UTC().Format(time.RFC3339Nano)
	for _, u := range updates {
		if !u.Field().Valid() {
			continue
		}
		if _, err := stmt.ExecContext(ctx, u.Field().String(), u.Encode(), at); err != nil {
			return fmt.Errorf("insert %s: %w", u, err)
		}
	}
	return tx.Commit()
}

// Entries returns every stored update in insertion order. Rows whose field
// or value no longer parse are skipped.
func (j *Journal) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT seq, field, value, recorded_at FROM updates ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e            Entry
			field, value string
			at           string
		)
		if err := rows.Scan(&e.Seq, &field, &value, &at); err != nil {
			return nil, err
		}
		u, err := config.ParseNamed(field, value)
		if err != nil {
			continue
		}
		e.Update = u
		e.RecordedAt, _ = time.Parse(time.RFC3339Nano, at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Restore folds every stored update onto base, in sequence order, and
// reports how many changed the state. Fields with no journaled update keep
// their value from base.
func (j *Journal) Restore(ctx context.Context, base config.State) (config.State, int, error) {
	entries, err := j.Entries(ctx)
	if err != nil {
		return base, 0, err
	}
	applied := 0
	for _, e := range entries {
		next := config.Apply(base, &e.Update)
		if next != base {
			applied++
			base = next
		}
	}
	return base, applied, nil
}

// Truncate removes every entry.
func (j *Journal) Truncate(ctx context.Context) error {
	_, err := j.db.ExecContext(ctx, `DELETE FROM updates`)
	return err
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
