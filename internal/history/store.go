// Package history persists past analysis and humanization runs.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxRecords caps the table size; the oldest rows are pruned on save.
const maxRecords = 1000

// excerptLen bounds how much of the input is kept alongside a record.
const excerptLen = 200

// Record kinds.
const (
	KindDetect   = "detect"
	KindHumanize = "humanize"
)

var ErrNotFound = errors.New("record not found")

// Record is one stored run. Detail carries the full JSON report.
type Record struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"createdAt"`
	Excerpt   string          `json:"excerpt"`
	Score     float64         `json:"score"`
	RiskLevel string          `json:"riskLevel"`
	Detail    json.RawMessage `json:"detail,omitempty"`
}

// Stats summarizes the stored records.
type Stats struct {
	Total        int     `json:"total"`
	DetectRuns   int     `json:"detectRuns"`
	HumanizeRuns int     `json:"humanizeRuns"`
	AverageScore float64 `json:"averageScore"`
}

type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save inserts a record, assigning an ID and timestamp when absent, and
// prunes the oldest rows past the table cap.
func (s *Store) Save(rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if len(rec.Excerpt) > excerptLen {
		rec.Excerpt = rec.Excerpt[:excerptLen]
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Record{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO records(id, kind, created_at, excerpt, score, risk_level, detail) VALUES(?,?,?,?,?,?,?)`,
		rec.ID, rec.Kind, rec.CreatedAt.Format(time.RFC3339Nano),
		rec.Excerpt, rec.Score, rec.RiskLevel, string(rec.Detail),
	); err != nil {
		return Record{}, fmt.Errorf("insert record: %w", err)
	}

	if _, err := tx.Exec(
		`DELETE FROM records WHERE id NOT IN (SELECT id FROM records ORDER BY created_at DESC LIMIT ?)`,
		maxRecords,
	); err != nil {
		return Record{}, fmt.Errorf("prune records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit tx: %w", err)
	}
	return rec, nil
}

func (s *Store) Get(id string) (Record, error) {
	row := s.db.QueryRow(
		`SELECT id, kind, created_at, excerpt, score, risk_level, detail FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// List returns the most recent records, newest first. A zero or negative
// limit returns everything up to the table cap.
func (s *Store) List(limit int) ([]Record, error) {
	if limit <= 0 || limit > maxRecords {
		limit = maxRecords
	}
	rows, err := s.db.Query(
		`SELECT id, kind, created_at, excerpt, score, risk_level, detail FROM records ORDER BY created_at DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneOlderThan removes records created before cutoff and reports how
// many were dropped.
func (s *Store) PruneOlderThan(cutoff time.Time) (int, error) {
	res, err := s.db.Exec(`DELETE FROM records WHERE created_at < ?`, cutoff.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func (s *Store) Stats() (Stats, error) {
	row := s.db.QueryRow(`SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0),
		COALESCE(AVG(score), 0)
	FROM records`, KindDetect, KindHumanize)

	var st Stats
	if err := row.Scan(&st.Total, &st.DetectRuns, &st.HumanizeRuns, &st.AverageScore); err != nil {
		return Stats{}, fmt.Errorf("scan stats: %w", err)
	}
	return st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var created, detail string
	if err := row.Scan(&rec.ID, &rec.Kind, &created, &rec.Excerpt, &rec.Score, &rec.RiskLevel, &detail); err != nil {
		return Record{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts
	if strings.TrimSpace(detail) != "" {
		rec.Detail = json.RawMessage(detail)
	}
	return rec, nil
}
