// Package history keeps a persistent log of maximum-subarray computations.
//
// It uses SQLite (modernc.org/sqlite, pure Go) in WAL mode. Every call to
// the max_subarray_sum tool, successful or not, becomes one Record so a
// client can look back at earlier inputs and their winning runs.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeLayout has fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("history: record not found")

// ─── Types ───────────────────────────────────────────────────────────────────

// Record is one stored computation.
type Record struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Input     []string `json:"input"`
	Length    int      `json:"length"`
	Truncated bool     `json:"truncated"`
	Sum       *string  `json:"sum,omitempty"`
	Start     int      `json:"start"`
	End       int      `json:"end"`
	Error     *string  `json:"error,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// Failed reports whether the computation was rejected.
func (r Record) Failed() bool { return r.Error != nil }

// AddParams holds the input for storing a computation. Exactly one of Sum
// or Err should be set.
type AddParams struct {
	Kind  string
	Input []string
	Sum   string
	Start int
	End   int
	Err   error
}

// Stats holds aggregate history statistics.
type Stats struct {
	Total    int            `json:"total"`
	Failures int            `json:"failures"`
	ByKind   map[string]int `json:"by_kind"`
	BestSum  *string        `json:"best_sum,omitempty"`
	BestID   *string        `json:"best_id,omitempty"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds history store configuration.
type Config struct {
	DataDir        string
	MaxInputLength int
	RecentLimit    int
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the persistent computation log backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
	now func() time.Time
}

// New creates a new Store with the given configuration.
// It creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "history.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS computations (
			id         TEXT    PRIMARY KEY,
			kind       TEXT    NOT NULL,
			input      TEXT    NOT NULL,
			length     INTEGER NOT NULL,
			truncated  INTEGER NOT NULL DEFAULT 0,
			sum_text   TEXT,
			sum_value  REAL,
			start_idx  INTEGER NOT NULL DEFAULT 0,
			end_idx    INTEGER NOT NULL DEFAULT 0,
			error      TEXT,
			created_at TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_comp_created ON computations(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_comp_kind    ON computations(kind);
		CREATE INDEX IF NOT EXISTS idx_comp_sum     ON computations(sum_value DESC);
	`)
	return err
}

// ─── Computations ────────────────────────────────────────────────────────────

// Add stores a computation and returns the stored record. Inputs longer
// than MaxInputLength are cut to that many elements; Length keeps the
// original size.
func (s *Store) Add(p AddParams) (*Record, error) {
	if p.Kind == "" {
		return nil, fmt.Errorf("history: kind is required")
	}

	input := p.Input
	truncated := false
	if limit := s.cfg.MaxInputLength; limit > 0 && len(input) > limit {
		input = input[:limit]
		truncated = true
	}
	if input == nil {
		input = []string{}
	}
	encoded, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("history: encode input: %w", err)
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Kind:      p.Kind,
		Input:     input,
		Length:    len(p.Input),
		Truncated: truncated,
		CreatedAt: s.now().UTC().Format(timeLayout),
	}

	var sumValue *float64
	if p.Err != nil {
		msg := p.Err.Error()
		rec.Error = &msg
	} else {
		sum := p.Sum
		rec.Sum = &sum
		rec.Start, rec.End = p.Start, p.End
		if f, err := strconv.ParseFloat(sum, 64); err == nil {
			sumValue = &f
		}
	}

	_, err = s.db.Exec(
		`INSERT INTO computations
			(id, kind, input, length, truncated, sum_text, sum_value, start_idx, end_idx, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Kind, string(encoded), rec.Length, rec.Truncated,
		rec.Sum, sumValue, rec.Start, rec.End, rec.Error, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("history: insert: %w", err)
	}
	return rec, nil
}

const selectColumns = `id, kind, input, length, truncated, sum_text, start_idx, end_idx, error, created_at`

// Get returns the record with the given ID, or ErrNotFound.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM computations WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: get %s: %w", id, err)
	}
	return rec, nil
}

// Recent returns the newest records first. A non-positive limit uses the
// configured RecentLimit.
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = s.cfg.RecentLimit
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+selectColumns+` FROM computations ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("history: recent: %w", err)
		}
		results = append(results, *rec)
	}
	return results, rows.Err()
}

// Delete removes one record. Deleting an unknown ID returns ErrNotFound.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM computations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("history: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("history: delete %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every record and reports how many were removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM computations`)
	if err != nil {
		return 0, fmt.Errorf("history: clear: %w", err)
	}
	return res.RowsAffected()
}

// ─── Stats ───────────────────────────────────────────────────────────────────

// Stats returns aggregate history statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByKind: map[string]int{}}

	if err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN error IS NOT NULL THEN 1 ELSE 0 END), 0) FROM computations`,
	).Scan(&stats.Total, &stats.Failures); err != nil {
		return nil, fmt.Errorf("history: stats: %w", err)
	}

	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM computations GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("history: stats by kind: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("history: stats by kind: %w", err)
		}
		stats.ByKind[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: stats by kind: %w", err)
	}

	best, err := s.bestSum()
	if err != nil {
		return nil, err
	}
	if best != nil {
		stats.BestID, stats.BestSum = &best.id, &best.sum
	}

	return stats, nil
}

type candidate struct {
	id, sum string
	exact   *big.Float
}

// bestSum narrows the search with the REAL sum_value index, then compares
// sum_text exactly. Rounding to float64 is monotone, so the exact maximum
// is always among the rows sharing the largest sum_value; int64 sums above
// 2^53 can tie there while differing in sum_text.
func (s *Store) bestSum() (*candidate, error) {
	rows, err := s.db.Query(
		`SELECT id, sum_text FROM computations
		 WHERE error IS NULL AND sum_value = (
			SELECT MAX(sum_value) FROM computations WHERE error IS NULL
		 )
		 ORDER BY created_at ASC, rowid ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("history: best sum: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var best *candidate
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.id, &c.sum); err != nil {
			return nil, fmt.Errorf("history: best sum: %w", err)
		}
		var ok bool
		if c.exact, ok = exactSum(c.sum); !ok {
			continue
		}
		if best == nil || c.exact.Cmp(best.exact) > 0 {
			best = &c
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: best sum: %w", err)
	}
	return best, nil
}

// exactSum parses a stored sum without rounding int64 text through float64.
func exactSum(text string) (*big.Float, bool) {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return new(big.Float).SetInt64(n), true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) {
		return nil, false
	}
	return big.NewFloat(f), true
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec   Record
		input string
	)
	if err := sc.Scan(
		&rec.ID, &rec.Kind, &input, &rec.Length, &rec.Truncated,
		&rec.Sum, &rec.Start, &rec.End, &rec.Error, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(input), &rec.Input); err != nil {
		return nil, fmt.Errorf("decode input of %s: %w", rec.ID, err)
	}
	return &rec, nil
}
