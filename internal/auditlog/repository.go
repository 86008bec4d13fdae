// Package auditlog keeps a local history of dashboard fetch cycles: which
// tab was loaded, how many of its queries failed and whether placeholder
// data was shown. Dashboard data itself is never stored.
package auditlog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/donorlens/internal/database"
)

// Repository defines the persistence interface for fetch-cycle entries.
type Repository interface {
	Recorder
	List(limit int) ([]CycleEntry, error)
	ListByTab(tab string, limit int) ([]CycleEntry, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the audit repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS fetch_cycles (
            id             INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp      TEXT    NOT NULL,
            tab            TEXT    NOT NULL,
            organization   TEXT    NOT NULL DEFAULT '',
            sequence       INTEGER NOT NULL DEFAULT 0,
            status         TEXT    NOT NULL DEFAULT '',
            queries        INTEGER NOT NULL DEFAULT 0,
            failed_queries TEXT    NOT NULL DEFAULT '',
            synthetic      INTEGER NOT NULL DEFAULT 0,
            message        TEXT    NOT NULL DEFAULT '',
            duration_ms    INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_fetch_cycles_timestamp ON fetch_cycles(timestamp);
        CREATE INDEX IF NOT EXISTS idx_fetch_cycles_tab ON fetch_cycles(tab);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("auditlog: migration failed: %w", err)
	}
	return nil
}

// Record inserts a new fetch-cycle entry.
func (r *SQLiteRepository) Record(entry *CycleEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO fetch_cycles (timestamp, tab, organization, sequence, status, queries, failed_queries, synthetic, message, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Format(time.RFC3339Nano), entry.Tab, entry.Organization, int64(entry.Sequence),
		entry.Status, entry.Queries, strings.Join(entry.FailedQueries, ","), entry.Synthetic,
		entry.Message, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("auditlog: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("auditlog: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent n entries.
func (r *SQLiteRepository) List(limit int) ([]CycleEntry, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, tab, organization, sequence, status, queries, failed_queries,
               synthetic, message, duration_ms
        FROM fetch_cycles ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("auditlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByTab returns the most recent n entries for one tab.
func (r *SQLiteRepository) ListByTab(tab string, limit int) ([]CycleEntry, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, tab, organization, sequence, status, queries, failed_queries,
               synthetic, message, duration_ms
        FROM fetch_cycles WHERE tab = ? ORDER BY timestamp DESC LIMIT ?`, tab, limit)
	if err != nil {
		return nil, fmt.Errorf("auditlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes entries older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM fetch_cycles WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("auditlog: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]CycleEntry, error) {
	var entries []CycleEntry
	for rows.Next() {
		var entry CycleEntry
		var timestampStr, failed string
		var sequence int64
		err := rows.Scan(
			&entry.ID, &timestampStr, &entry.Tab, &entry.Organization, &sequence,
			&entry.Status, &entry.Queries, &failed, &entry.Synthetic,
			&entry.Message, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("auditlog: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		entry.Sequence = uint64(sequence)
		if failed != "" {
			entry.FailedQueries = strings.Split(failed, ",")
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
