// Package archive persists harvested editions to a local SQLite database so
// long-running harvests can be resumed and re-exported without refetching.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/coolbeans/gazeta/pkg/gazette"
)

// dateLayout is the storage format for edition dates.
const dateLayout = "2006-01-02"

// Store is a SQLite-backed archive of harvested editions. Records are stored
// as JSON payloads keyed by edition date and kind, so schema evolution of
// the record types does not require migrations.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens an archive database at the given path, creating the
// parent directory if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS editions (
			date         TEXT PRIMARY KEY,
			missing      INTEGER NOT NULL DEFAULT 0,
			harvested_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS records (
			edition_date TEXT NOT NULL REFERENCES editions(date) ON DELETE CASCADE,
			kind         TEXT NOT NULL,
			position     INTEGER NOT NULL,
			payload      TEXT NOT NULL,
			PRIMARY KEY (edition_date, kind, position)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveEdition stores one harvested edition, replacing any previous harvest
// of the same date.
func (s *Store) SaveEdition(ctx context.Context, edition gazette.Edition) error {
	if edition.Context == nil {
		return fmt.Errorf("edition has no date context")
	}
	date := edition.Context.IssueDate.Format(dateLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM editions WHERE date = ?", date); err != nil {
		return fmt.Errorf("clearing previous harvest of %s: %w", date, err)
	}

	missing := 0
	if edition.Missing {
		missing = 1
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO editions (date, missing) VALUES (?, ?)", date, missing); err != nil {
		return fmt.Errorf("inserting edition %s: %w", date, err)
	}

	insert := func(kind gazette.RecordKind, position int, record any) error {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling %s record: %w", kind, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO records (edition_date, kind, position, payload) VALUES (?, ?, ?, ?)",
			date, string(kind), position, string(payload))
		if err != nil {
			return fmt.Errorf("inserting %s record: %w", kind, err)
		}
		return nil
	}

	set := edition.Records
	for i, r := range set.Decrees {
		if err := insert(gazette.KindDecree, i, r); err != nil {
			return err
		}
	}
	for i, r := range set.Appointments {
		if err := insert(gazette.KindAppointment, i, r); err != nil {
			return err
		}
	}
	for i, r := range set.Dismissals {
		if err := insert(gazette.KindDismissal, i, r); err != nil {
			return err
		}
	}
	for i, r := range set.Annulments {
		if err := insert(gazette.KindAnnulment, i, r); err != nil {
			return err
		}
	}
	for i, r := range set.Corrections {
		if err := insert(gazette.KindCorrection, i, r); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadEdition reads one harvested edition by date. Returns false when the
// date has not been harvested.
func (s *Store) LoadEdition(ctx context.Context, date time.Time) (gazette.Edition, bool, error) {
	day := date.Format(dateLayout)

	var missing int
	err := s.db.QueryRowContext(ctx,
		"SELECT missing FROM editions WHERE date = ?", day).Scan(&missing)
	if err == sql.ErrNoRows {
		return gazette.Edition{}, false, nil
	}
	if err != nil {
		return gazette.Edition{}, false, fmt.Errorf("querying edition %s: %w", day, err)
	}

	edition := gazette.Edition{
		Context: &gazette.EditionContext{IssueDate: date},
		Missing: missing != 0,
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, payload FROM records WHERE edition_date = ? ORDER BY kind, position", day)
	if err != nil {
		return gazette.Edition{}, false, fmt.Errorf("querying records of %s: %w", day, err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return gazette.Edition{}, false, fmt.Errorf("scanning record: %w", err)
		}
		if err := appendRecord(&edition.Records, gazette.RecordKind(kind), []byte(payload)); err != nil {
			return gazette.Edition{}, false, err
		}
	}
	if err := rows.Err(); err != nil {
		return gazette.Edition{}, false, fmt.Errorf("reading records of %s: %w", day, err)
	}

	return edition, true, nil
}

// Dates returns all harvested edition dates in ascending order.
func (s *Store) Dates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT date FROM editions ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("querying dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		date, err := time.Parse(dateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("parsing stored date %q: %w", day, err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

func appendRecord(set *gazette.RecordSet, kind gazette.RecordKind, payload []byte) error {
	switch kind {
	case gazette.KindDecree:
		var r gazette.Decree
		if err := json.Unmarshal(payload, &r); err != nil {
			return fmt.Errorf("unmarshaling decree: %w", err)
		}
		set.Decrees = append(set.Decrees, r)
	case gazette.KindAppointment:
		var r gazette.AppointmentOrder
		if err := json.Unmarshal(payload, &r); err != nil {
			return fmt.Errorf("unmarshaling appointment: %w", err)
		}
		set.Appointments = append(set.Appointments, r)
	case gazette.KindDismissal:
		var r gazette.DismissalOrder
		if err := json.Unmarshal(payload, &r); err != nil {
			return fmt.Errorf("unmarshaling dismissal: %w", err)
		}
		set.Dismissals = append(set.Dismissals, r)
	case gazette.KindAnnulment:
		var r gazette.AnnulmentNotice
		if err := json.Unmarshal(payload, &r); err != nil {
			return fmt.Errorf("unmarshaling annulment: %w", err)
		}
		set.Annulments = append(set.Annulments, r)
	case gazette.KindCorrection:
		var r gazette.CorrectionNotice
		if err := json.Unmarshal(payload, &r); err != nil {
			return fmt.Errorf("unmarshaling correction: %w", err)
		}
		set.Corrections = append(set.Corrections, r)
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
	return nil
}
