package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"dirindex/internal/ports"
)

// Catalog implements ports.Catalog on a SQLite database file.
type Catalog struct {
	db     *sql.DB
	dbPath string
}

var _ ports.Catalog = (*Catalog)(nil)

// Open opens or creates the catalog file at path. Schema setup happens in
// Init, not here, so read-only commands can open existing catalogs cheaply.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}

	// Pragmas and ATTACH are per-connection state; a single connection
	// keeps them visible to every statement. The store is single-worker.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	return &Catalog{db: db, dbPath: path}, nil
}

// OpenReadOnly opens an existing catalog without write access.
func OpenReadOnly(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s read-only: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open catalog %s read-only: %w", path, err)
	}
	return &Catalog{db: db, dbPath: path}, nil
}

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Init prepares the catalog for an indexing run: creates the schema if
// absent, inserts the metadata row on first use, and otherwise verifies the
// stored root matches the supplied one. Idempotent. A root mismatch returns
// ErrRootMismatch and must abort the run before any mutation.
func (c *Catalog) Init(root string, now int64, disableSync bool) error {
	if disableSync {
		log.Info().Msg("disabling catalog sync")
		if _, err := c.db.Exec(`PRAGMA main.synchronous = OFF`); err != nil {
			return fmt.Errorf("failed to disable sync: %w", err)
		}
	}

	if _, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			path         TEXT PRIMARY KEY,
			last_updated INTEGER
		)
	`); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	exists, err := c.hasMetadata()
	if err != nil {
		return err
	}
	if !exists {
		if err := c.insertMetadata(root, now); err != nil {
			return err
		}
	} else {
		meta, err := c.Metadata(ports.Primary)
		if err != nil {
			return err
		}
		if meta.Path != root {
			return fmt.Errorf("%w: catalog %s was built for %q, not %q",
				ports.ErrRootMismatch, c.dbPath, meta.Path, root)
		}
	}

	if _, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			path      TEXT PRIMARY KEY,
			abspath   TEXT NOT NULL,
			basename  TEXT NOT NULL,
			dirname   TEXT NOT NULL,
			signature TEXT NOT NULL,
			size      INTEGER NOT NULL,
			timestamp INTEGER NOT NULL,
			updated   INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create entries table: %w", err)
	}

	if _, err := c.db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_entries_signature ON entries (signature)`,
	); err != nil {
		return fmt.Errorf("failed to create signature index: %w", err)
	}

	return nil
}

// AttachSecond binds a second catalog file under the "second" namespace for
// the rest of the session. The attached catalog is only ever queried, never
// mutated.
func (c *Catalog) AttachSecond(path string) error {
	if _, err := c.db.Exec(`ATTACH DATABASE ? AS second`, path); err != nil {
		return fmt.Errorf("failed to attach catalog %s: %w", path, err)
	}
	return nil
}

func (c *Catalog) hasMetadata() (bool, error) {
	var count int
	err := c.db.QueryRow(`SELECT COUNT(1) FROM metadata`).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count metadata rows: %w", err)
	}
	switch count {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %d metadata rows", ports.ErrInvariant, count)
	}
}

func (c *Catalog) insertMetadata(root string, now int64) error {
	res, err := c.db.Exec(
		`INSERT INTO metadata (path, last_updated) VALUES (?, ?)`, root, now)
	if err != nil {
		return fmt.Errorf("failed to insert metadata: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return fmt.Errorf("%w: metadata insert changed %d rows", ports.ErrInvariant, n)
	}
	return nil
}
