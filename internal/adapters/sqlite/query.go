package sqlite

import (
	"database/sql"
	"fmt"

	"dirindex/internal/domain"
	"dirindex/internal/ports"
)

func schemaName(side ports.Side) string {
	if side == ports.Secondary {
		return "second"
	}
	return "main"
}

// Count returns the number of entries in the selected catalog.
func (c *Catalog) Count(side ports.Side) (uint64, error) {
	var count uint64
	query := fmt.Sprintf(`SELECT COUNT(1) FROM %s.entries`, schemaName(side))
	if err := c.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// TotalSize returns the summed size of all entries. An empty catalog has
// total size zero.
func (c *Catalog) TotalSize() (uint64, error) {
	var size sql.NullInt64
	if err := c.db.QueryRow(`SELECT SUM(size) FROM entries`).Scan(&size); err != nil {
		return 0, fmt.Errorf("failed to sum entry sizes: %w", err)
	}
	if !size.Valid {
		return 0, nil
	}
	return uint64(size.Int64), nil
}

// Metadata returns the selected catalog's metadata row.
func (c *Catalog) Metadata(side ports.Side) (*domain.Metadata, error) {
	var m domain.Metadata
	query := fmt.Sprintf(
		`SELECT path, last_updated FROM %s.metadata`, schemaName(side))
	if err := c.db.QueryRow(query).Scan(&m.Path, &m.LastUpdated); err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	return &m, nil
}

// FindMissing computes the symmetric anti-join on logical path between the
// primary and the attached catalog: paths only in the second catalog come
// back as missing in the first, and vice versa.
func (c *Catalog) FindMissing() (missingInFirst, missingInSecond []string, err error) {
	rows, err := c.db.Query(`
		SELECT main.entries.path, second.entries.path
		FROM main.entries
		LEFT JOIN second.entries ON main.entries.path = second.entries.path
		WHERE second.entries.path IS NULL
		UNION
		SELECT main.entries.path, second.entries.path
		FROM second.entries
		LEFT JOIN main.entries ON second.entries.path = main.entries.path
		WHERE main.entries.path IS NULL
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find missing entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var first, second sql.NullString
		if err := rows.Scan(&first, &second); err != nil {
			return nil, nil, fmt.Errorf("failed to scan missing entry: %w", err)
		}
		if !first.Valid {
			missingInFirst = append(missingInFirst, second.String)
		} else {
			missingInSecond = append(missingInSecond, first.String)
		}
	}
	return missingInFirst, missingInSecond, rows.Err()
}

// CompareDiffering returns the paths present in both catalogs whose content
// signatures differ, with both sides' details.
func (c *Catalog) CompareDiffering() ([]domain.Difference, error) {
	rows, err := c.db.Query(`
		SELECT
			main.entries.path,
			main.entries.abspath,
			main.entries.signature,
			main.entries.timestamp,
			second.entries.abspath,
			second.entries.signature,
			second.entries.timestamp
		FROM main.entries
		LEFT JOIN second.entries ON main.entries.path = second.entries.path
		WHERE second.entries.path IS NOT NULL
			AND main.entries.signature != second.entries.signature
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to compare catalogs: %w", err)
	}
	defer rows.Close()

	var diffs []domain.Difference
	for rows.Next() {
		var d domain.Difference
		if err := rows.Scan(&d.Path, &d.FirstAbsPath, &d.FirstSignature,
			&d.FirstTimestamp, &d.SecondAbsPath, &d.SecondSignature,
			&d.SecondTimestamp); err != nil {
			return nil, fmt.Errorf("failed to scan difference: %w", err)
		}
		diffs = append(diffs, d)
	}
	return diffs, rows.Err()
}

// FindDuplicates returns every entry whose signature occurs at least twice,
// grouped by signature. Groups come back in ascending signature order;
// members follow catalog scan order.
func (c *Catalog) FindDuplicates() ([]domain.DuplicateGroup, error) {
	rows, err := c.db.Query(`
		SELECT path, abspath, basename, dirname, signature, size, timestamp, updated
		FROM entries
		WHERE signature IN (
			SELECT signature
			FROM entries
			GROUP BY signature
			HAVING COUNT(*) > 1
		)
		ORDER BY signature
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to find duplicates: %w", err)
	}
	defer rows.Close()

	var groups []domain.DuplicateGroup
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.Path, &e.AbsPath, &e.Basename, &e.Dirname,
			&e.Signature, &e.Size, &e.Timestamp, &e.Updated); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate: %w", err)
		}
		if len(groups) == 0 || groups[len(groups)-1].Signature != e.Signature {
			groups = append(groups, domain.DuplicateGroup{Signature: e.Signature})
		}
		groups[len(groups)-1].Entries = append(groups[len(groups)-1].Entries, e)
	}
	return groups, rows.Err()
}
