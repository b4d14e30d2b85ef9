package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"dirindex/internal/domain"
	"dirindex/internal/ports"
)

// UpsertEntry inserts the entry or, when its path already exists, replaces
// every non-key field.
func (c *Catalog) UpsertEntry(entry *domain.Entry) error {
	_, err := c.db.Exec(`
		INSERT INTO entries
			(path, abspath, basename, dirname, signature, size, timestamp, updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			abspath = excluded.abspath,
			basename = excluded.basename,
			dirname = excluded.dirname,
			signature = excluded.signature,
			size = excluded.size,
			timestamp = excluded.timestamp,
			updated = excluded.updated
	`, entry.Path, entry.AbsPath, entry.Basename, entry.Dirname,
		entry.Signature, entry.Size, entry.Timestamp, entry.Updated)
	if err != nil {
		return fmt.Errorf("failed to upsert entry %s: %w", entry.Path, err)
	}
	return nil
}

// GetEntry retrieves an entry by its logical path. A missing row is
// ErrNotFound; any other failure is surfaced as-is so callers can tell
// "absent" from "broken".
func (c *Catalog) GetEntry(path string) (*domain.Entry, error) {
	var e domain.Entry
	err := c.db.QueryRow(`
		SELECT path, abspath, basename, dirname, signature, size, timestamp, updated
		FROM entries
		WHERE path = ?
	`, path).Scan(&e.Path, &e.AbsPath, &e.Basename, &e.Dirname,
		&e.Signature, &e.Size, &e.Timestamp, &e.Updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", path, err)
	}
	return &e, nil
}

// RemoveEntry deletes exactly one entry. Callers only remove paths they have
// already confirmed present, so any other row count is an invariant
// violation.
func (c *Catalog) RemoveEntry(path string) error {
	res, err := c.db.Exec(`DELETE FROM entries WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to remove entry %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove entry %s: %w", path, err)
	}
	if n != 1 {
		return fmt.Errorf("%w: removing %s changed %d rows", ports.ErrInvariant, path, n)
	}
	return nil
}

// AllPaths returns the absolute paths of every stored entry.
func (c *Catalog) AllPaths() ([]string, error) {
	rows, err := c.db.Query(`SELECT abspath FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("failed to list paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
