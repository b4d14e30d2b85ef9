package ports

import "errors"

var (
	// ErrNotFound is returned when a catalog lookup matches no entry.
	// Callers use it to implement insert-if-absent; any other lookup
	// failure means the catalog is suspect.
	ErrNotFound = errors.New("entry not found")

	// ErrInvariant classifies storage contract violations: unexpected row
	// counts from mutating statements, impossible query results. It is a
	// logic-error signal, fatal to the process, never continued past.
	ErrInvariant = errors.New("catalog invariant violated")

	// ErrRootMismatch is returned when an existing catalog was built
	// against a different root than the one supplied. Re-indexing against
	// a different root is a configuration error, never silently accepted.
	ErrRootMismatch = errors.New("catalog root mismatch")
)
