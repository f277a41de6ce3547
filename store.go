package folio

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Relay outcomes recorded in the relay log.
const (
	OutcomeSent     = "sent"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeLimited  = "limited"
)

// Store wraps a SQLite database holding the search log and the relay log.
// Contact message contents are never written to it.
type Store struct {
	db *sql.DB
}

// QueryStat is a search query with the number of times it was run.
type QueryStat struct {
	Query   string
	Count   int
	Results int // result count of the latest run
}

// RelayEvent is a single contact relay attempt.
type RelayEvent struct {
	ID      string
	Outcome string
	At      time.Time
}

// DashboardStats is the admin dashboard's view of the logs.
type DashboardStats struct {
	TotalSearches int
	TopQueries    []QueryStat
	ZeroResults   []QueryStat
	Outcomes      map[string]int
	RecentRelays  []RelayEvent
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the dashboard read while requests append; writers wait on
	// busy instead of failing.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS search_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    query TEXT NOT NULL,
    results INTEGER NOT NULL,
    created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_search_log_query ON search_log(query);
CREATE TABLE IF NOT EXISTS relay_log (
    id TEXT PRIMARY KEY,
    outcome TEXT NOT NULL,
    created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_relay_log_created ON relay_log(created_at);
`)
	return err
}

// LogSearch records a completed search for a normalised query.
func (s *Store) LogSearch(ctx context.Context, query string, results int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_log (query, results, created_at) VALUES (?, ?, ?)`,
		query, results, time.Now().UTC())
	return err
}

// LogRelay records a relay attempt outcome and returns its id.
func (s *Store) LogRelay(ctx context.Context, outcome string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO relay_log (id, outcome, created_at) VALUES (?, ?, ?)`,
		id, outcome, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

// TopQueries returns the most frequent queries. With zeroOnly set, only
// queries whose latest run found nothing are returned.
func (s *Store) TopQueries(ctx context.Context, limit int, zeroOnly bool) ([]QueryStat, error) {
	q := `
SELECT l.query, COUNT(*) AS n,
       (SELECT results FROM search_log r WHERE r.query = l.query ORDER BY r.id DESC LIMIT 1) AS latest
FROM search_log l
GROUP BY l.query`
	if zeroOnly {
		q += ` HAVING latest = 0`
	}
	q += ` ORDER BY n DESC, l.query ASC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []QueryStat
	for rows.Next() {
		var st QueryStat
		if err := rows.Scan(&st.Query, &st.Count, &st.Results); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// RelayOutcomes counts relay attempts by outcome.
func (s *Store) RelayOutcomes(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM relay_log GROUP BY outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		out[outcome] = n
	}
	return out, rows.Err()
}

// RecentRelays returns the latest relay attempts, newest first.
func (s *Store) RecentRelays(ctx context.Context, limit int) ([]RelayEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, outcome, created_at FROM relay_log ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []RelayEvent
	for rows.Next() {
		var ev RelayEvent
		if err := rows.Scan(&ev.ID, &ev.Outcome, &ev.At); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Stats gathers everything the admin dashboard shows.
func (s *Store) Stats(ctx context.Context) (DashboardStats, error) {
	var st DashboardStats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_log`).Scan(&st.TotalSearches); err != nil {
		return st, fmt.Errorf("count searches: %w", err)
	}
	var err error
	if st.TopQueries, err = s.TopQueries(ctx, 10, false); err != nil {
		return st, fmt.Errorf("top queries: %w", err)
	}
	if st.ZeroResults, err = s.TopQueries(ctx, 10, true); err != nil {
		return st, fmt.Errorf("zero-result queries: %w", err)
	}
	if st.Outcomes, err = s.RelayOutcomes(ctx); err != nil {
		return st, fmt.Errorf("relay outcomes: %w", err)
	}
	if st.RecentRelays, err = s.RecentRelays(ctx, 10); err != nil {
		return st, fmt.Errorf("recent relays: %w", err)
	}
	return st, nil
}

// PruneBefore deletes log rows older than cutoff.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM search_log WHERE created_at < ?`, cutoff.UTC()); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM relay_log WHERE created_at < ?`, cutoff.UTC())
	return err
}
