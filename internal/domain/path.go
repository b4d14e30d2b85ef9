package domain

import (
	"fmt"
	"path/filepath"
)

// LogicalPath converts an absolute file path to the logical key stored in a
// catalog: the path relative to the catalog root.
func LogicalPath(root, abspath string) (string, error) {
	rel, err := filepath.Rel(root, abspath)
	if err != nil {
		return "", fmt.Errorf("path %q is not under root %q: %w", abspath, root, err)
	}
	return rel, nil
}

// NewEntry builds an entry for a file under root from its absolute path and
// stat results. The logical path becomes the catalog key.
func NewEntry(root, abspath, signature string, size, modTime, now int64) (Entry, error) {
	path, err := LogicalPath(root, abspath)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Path:      path,
		AbsPath:   abspath,
		Basename:  filepath.Base(abspath),
		Dirname:   filepath.Dir(abspath),
		Signature: signature,
		Size:      size,
		Timestamp: modTime,
		Updated:   now,
	}, nil
}
