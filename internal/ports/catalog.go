package ports

import (
	"io/fs"

	"dirindex/internal/domain"
)

// Side selects which of the two bound catalogs a query runs against.
type Side int

const (
	Primary Side = iota
	Secondary
)

// Catalog is the persistent store of entries plus the singleton metadata row
// for one indexed root. A catalog may be paired, read-only, with a second
// catalog for the duration of a comparison session; the two remain
// independent storage units joined only at query time.
type Catalog interface {
	// Lifecycle
	Init(root string, now int64, disableSync bool) error
	AttachSecond(path string) error
	Close() error

	// Entry CRUD
	UpsertEntry(entry *domain.Entry) error
	GetEntry(path string) (*domain.Entry, error)
	RemoveEntry(path string) error
	AllPaths() ([]string, error)

	// Aggregates
	Count(side Side) (uint64, error)
	TotalSize() (uint64, error)
	Metadata(side Side) (*domain.Metadata, error)

	// Two-catalog queries (require AttachSecond)
	FindMissing() (missingInFirst, missingInSecond []string, err error)
	CompareDiffering() ([]domain.Difference, error)

	// Single-catalog queries
	FindDuplicates() ([]domain.DuplicateGroup, error)
}

// FileVisitor is invoked exactly once per regular file encountered by a
// traversal. Returning a non-nil error aborts the walk; per-file problems
// that should not stop a run are the visitor's own business.
type FileVisitor interface {
	VisitFile(abspath string, info fs.FileInfo) error
}
