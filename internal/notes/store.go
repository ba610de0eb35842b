// Package notes persists free-form note documents in a SQLite database under
// the user data directory. The store keeps whole serialized grids as note
// content; an Autosaver debounces writes so typing never blocks on disk.
package notes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no note has the requested id.
var ErrNotFound = errors.New("notes: not found")

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS notes (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    content    TEXT NOT NULL,
    tags       TEXT NOT NULL DEFAULT '[]',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes(updated_at);
`

// Note is one stored document. Content is the newline-joined serialized grid.
type Note struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a SQLite-backed note store.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the note database location under the XDG data dir.
func DefaultPath() (string, error) {
	return xdg.DataFile("chonk-note/notes.db")
}

// Open opens (creating if needed) the note database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var v int
	err := db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case v != schemaVersion:
		return fmt.Errorf("database schema version %d, want %d", v, schemaVersion)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts the note, or updates it when the id already exists. A note
// without an id is assigned a fresh UUID. UpdatedAt is set to now; CreatedAt
// is set on first save.
func (s *Store) Save(n *Note) error {
	now := time.Now().UTC()
	if n.ID == "" {
		n.ID = uuid.NewString()
		n.CreatedAt = now
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now

	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO notes (id, title, content, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			tags = excluded.tags,
			updated_at = excluded.updated_at`,
		n.ID, n.Title, n.Content, string(tags),
		n.CreatedAt.Format(time.RFC3339Nano), n.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save note %s: %w", n.ID, err)
	}
	return nil
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (Note, error) {
	row := s.db.QueryRow(`
		SELECT id, title, content, tags, created_at, updated_at
		FROM notes WHERE id = ?`, id)
	n, err := scanNote(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Note{}, fmt.Errorf("failed to load note %s: %w", id, err)
	}
	return n, nil
}

// Delete removes the note with the given id.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return nil
}

// List returns all notes, most recently updated first.
func (s *Store) List() ([]Note, error) {
	return s.query(`
		SELECT id, title, content, tags, created_at, updated_at
		FROM notes ORDER BY updated_at DESC`)
}

// Search returns notes whose title, content or tags contain the query,
// most recently updated first.
func (s *Store) Search(q string) ([]Note, error) {
	like := "%" + escapeLike(q) + "%"
	return s.query(`
		SELECT id, title, content, tags, created_at, updated_at
		FROM notes
		WHERE title LIKE ? ESCAPE '\'
		   OR content LIKE ? ESCAPE '\'
		   OR tags LIKE ? ESCAPE '\'
		ORDER BY updated_at DESC`, like, like, like)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *Store) query(stmt string, args ...any) ([]Note, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNote(scan func(...any) error) (Note, error) {
	var n Note
	var tags, created, updated string
	if err := scan(&n.ID, &n.Title, &n.Content, &tags, &created, &updated); err != nil {
		return Note{}, err
	}
	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return Note{}, fmt.Errorf("bad tags for note %s: %w", n.ID, err)
	}
	var err error
	if n.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Note{}, fmt.Errorf("bad created_at for note %s: %w", n.ID, err)
	}
	if n.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return Note{}, fmt.Errorf("bad updated_at for note %s: %w", n.ID, err)
	}
	return n, nil
}
