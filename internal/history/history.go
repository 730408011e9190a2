// Package history persists finished quotes to SQLite so recent work can be
// listed and reopened.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/quotelab/mortgage-quoter/internal/quote"
)

var ErrNotFound = errors.New("history: quote not found")

const schema = `
CREATE TABLE IF NOT EXISTS quotes (
	quote_id    TEXT PRIMARY KEY,
	bank        TEXT NOT NULL DEFAULT '',
	total_base  REAL NOT NULL DEFAULT 0,
	total_best  REAL NOT NULL DEFAULT 0,
	band        TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	payload     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes (created_at DESC);
`

// Entry is one stored quote as the listing endpoints need it: the headline
// numbers without the full payload.
type Entry struct {
	ID        string    `db:"quote_id" json:"id"`
	Bank      string    `db:"bank" json:"bank"`
	TotalBase float64   `db:"total_base" json:"total_base"`
	TotalBest float64   `db:"total_best" json:"total_best"`
	Band      string    `db:"band" json:"band"`
	CreatedAt time.Time `db:"-" json:"created_at"`

	RawCreatedAt string `db:"created_at" json:"-"`
}

type Store struct {
	db *sqlx.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the full quote; saving the same id again overwrites it.
func (s *Store) Save(q *quote.Quote) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("history: marshal quote: %w", err)
	}

	best := q.First.TotalDiscounted
	if q.Second != nil && q.Second.Total < best {
		best = q.Second.Total
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO quotes (quote_id, bank, total_base, total_best, band, created_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.First.Bank, q.First.TotalBase, best,
		string(q.Extraction.ConfidenceBand),
		q.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("history: save quote: %w", err)
	}
	return nil
}

// Recent lists the newest quotes, headline fields only.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []Entry
	err := s.db.Select(&entries, `
		SELECT quote_id, bank, total_base, total_best, band, created_at
		FROM quotes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list quotes: %w", err)
	}
	for i := range entries {
		if t, err := time.Parse(time.RFC3339Nano, entries[i].RawCreatedAt); err == nil {
			entries[i].CreatedAt = t
		}
	}
	return entries, nil
}

// Get reloads a stored quote in full.
func (s *Store) Get(id string) (*quote.Quote, error) {
	var payload string
	err := s.db.Get(&payload, `SELECT payload FROM quotes WHERE quote_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: load quote: %w", err)
	}
	var q quote.Quote
	if err := json.Unmarshal([]byte(payload), &q); err != nil {
		return nil, fmt.Errorf("history: unmarshal quote: %w", err)
	}
	return &q, nil
}
