// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists accepted ideas in a local SQLite database.
// Records are created by Insert, never updated, and removed only by
// Delete or Clear.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/idea-swipe/pkg/types"
)

const dbFile = "ideas.db"

// ErrNotFound is returned when no saved idea has the requested ID.
var ErrNotFound = errors.New("saved idea not found")

// Store manages the saved-idea SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates dataDir/ideas.db and ensures the schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = types.DefaultDataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS saved_ideas (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_ideas_created_at ON saved_ideas(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Insert records an accepted idea under a fresh ID and returns the stored record.
func (s *Store) Insert(ctx context.Context, title, description string) (types.SavedIdea, error) {
	saved := types.SavedIdea{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_ideas (id, title, description, created_at) VALUES (?, ?, ?, ?)`,
		saved.ID.String(), saved.Title, saved.Description, saved.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.SavedIdea{}, fmt.Errorf("inserting saved idea: %w", err)
	}
	return saved, nil
}

// Delete removes the saved idea with the given ID.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_ideas WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting saved idea %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting saved idea %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Clear removes every saved idea and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_ideas`)
	if err != nil {
		return 0, fmt.Errorf("clearing saved ideas: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing saved ideas: %w", err)
	}
	return int(n), nil
}

// Get returns the saved idea with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (types.SavedIdea, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, created_at FROM saved_ideas WHERE id = ?`, id.String())
	saved, err := scanIdea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.SavedIdea{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return saved, err
}

// List returns all saved ideas in the order they were saved.
func (s *Store) List(ctx context.Context) ([]types.SavedIdea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, created_at FROM saved_ideas ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing saved ideas: %w", err)
	}
	defer rows.Close()

	var out []types.SavedIdea
	for rows.Next() {
		saved, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing saved ideas: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIdea(sc scanner) (types.SavedIdea, error) {
	var (
		saved     types.SavedIdea
		id        string
		createdAt string
	)
	if err := sc.Scan(&id, &saved.Title, &saved.Description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.SavedIdea{}, err
		}
		return types.SavedIdea{}, fmt.Errorf("scanning saved idea: %w", err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return types.SavedIdea{}, fmt.Errorf("parsing saved idea id %q: %w", id, err)
	}
	saved.ID = parsedID

	saved.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return types.SavedIdea{}, fmt.Errorf("parsing created_at for %s: %w", id, err)
	}
	return saved, nil
}
