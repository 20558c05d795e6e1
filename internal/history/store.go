// Package history keeps a local log of AI pattern suggestions so a good answer can be
// re-applied later without another provider call.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rohankatakam/gitart/internal/pattern"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no record matches
var ErrNotFound = stderrors.New("suggestion not found")

// Record is one stored suggestion
type Record struct {
	ID        string    `db:"id"`
	Prompt    string    `db:"prompt"`
	Provider  string    `db:"provider"`
	Name      string    `db:"name"`
	Year      int       `db:"year"`
	Points    string    `db:"points"` // JSON-encoded []pattern.Point
	Applied   int       `db:"applied"`
	CreatedAt time.Time `db:"created_at"`
}

// Suggestion decodes the stored points
func (r *Record) Suggestion() (*pattern.Suggestion, error) {
	var points []pattern.Point
	if err := json.Unmarshal([]byte(r.Points), &points); err != nil {
		return nil, fmt.Errorf("decode points for %s: %w", r.ID, err)
	}
	return &pattern.Suggestion{Name: r.Name, Points: points}, nil
}

// NewRecord builds a record for s
func NewRecord(prompt string, provider pattern.Provider, year int, s *pattern.Suggestion) (*Record, error) {
	data, err := json.Marshal(s.Points)
	if err != nil {
		return nil, fmt.Errorf("encode points: %w", err)
	}
	return &Record{
		Prompt:   prompt,
		Provider: string(provider),
		Name:     s.Name,
		Year:     year,
		Points:   string(data),
	}, nil
}

// Store is a sqlite-backed suggestion log
type Store struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// Open creates the database at path if needed
func Open(path string, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.Exec("PRAGMA journal_mode = WAL")

	store := &Store{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS suggestions (
		id TEXT PRIMARY KEY,
		prompt TEXT NOT NULL,
		provider TEXT NOT NULL,
		name TEXT NOT NULL,
		year INTEGER NOT NULL,
		points TEXT NOT NULL,
		applied INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_suggestions_created ON suggestions(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts rec, assigning an ID and timestamp when missing
func (s *Store) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT OR REPLACE INTO suggestions
		(id, prompt, provider, name, year, points, applied, created_at)
		VALUES (:id, :prompt, :provider, :name, :year, :points, :applied, :created_at)
	`
	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("save suggestion: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":     rec.ID,
		"name":   rec.Name,
		"points": rec.Applied,
	}).Debug("suggestion recorded")
	return nil
}

// Get returns the record whose ID equals id or, failing that, the single record whose
// ID starts with it
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.db.GetContext(ctx, &rec, `SELECT * FROM suggestions WHERE id = ?`, id)
	if err == nil {
		return &rec, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	var recs []Record
	query := `SELECT * FROM suggestions WHERE id LIKE ? ORDER BY created_at DESC LIMIT 2`
	if err := s.db.SelectContext(ctx, &recs, query, id+"%"); err != nil {
		return nil, err
	}
	switch len(recs) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &recs[0], nil
	default:
		return nil, fmt.Errorf("id prefix %q is ambiguous", id)
	}
}

// List returns the newest records first; limit <= 0 means all
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	var recs []Record
	query := `SELECT * FROM suggestions ORDER BY created_at DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &recs, query, limit); err != nil {
		return nil, err
	}
	return recs, nil
}

// Delete removes one record
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM suggestions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkApplied records how many cells the suggestion painted
func (s *Store) MarkApplied(ctx context.Context, id string, cells int) error {
	res, err := s.db.ExecContext(ctx, `UPDATE suggestions SET applied = ? WHERE id = ?`, cells, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
