package indexer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"dirindex/internal/ports"
)

// ErrDeadlineExceeded signals that a traversal hit its wall-clock cutoff.
// Everything the visitor produced before the cutoff remains valid.
var ErrDeadlineExceeded = errors.New("traversal deadline exceeded")

// Traverser walks a directory tree depth-first, invoking a visitor once per
// regular file. The deadline is cooperative: it is polled once per entry, so
// in-flight work on a single file is never interrupted.
type Traverser struct {
	deadline time.Time // zero means no deadline
}

// NewTraverser returns a traverser without a deadline.
func NewTraverser() *Traverser {
	return &Traverser{}
}

// NewDeadlineTraverser returns a traverser that aborts with
// ErrDeadlineExceeded once the absolute cutoff passes.
func NewDeadlineTraverser(deadline time.Time) *Traverser {
	return &Traverser{deadline: deadline}
}

// Walk visits every regular file under dir. Each directory's children are
// all processed: subdirectories are recursed into and the remaining siblings
// still visited afterwards. Symbolic links and special file types are
// skipped silently. A failed stat on a single child is logged and skipped;
// a directory that cannot be read aborts the walk with the cause.
func (t *Traverser) Walk(dir string, visitor ports.FileVisitor) error {
	children, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, child := range children {
		if !t.deadline.IsZero() && time.Now().After(t.deadline) {
			return ErrDeadlineExceeded
		}

		path := filepath.Join(dir, child.Name())
		switch {
		case child.Type()&os.ModeSymlink != 0:
			// skipped, never followed
		case child.IsDir():
			if err := t.Walk(path, visitor); err != nil {
				return err
			}
		case child.Type().IsRegular():
			info, err := child.Info()
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("failed to stat entry, skipping")
				continue
			}
			if err := visitor.VisitFile(path, info); err != nil {
				return err
			}
		default:
			// sockets, devices, pipes: skipped
		}
	}
	return nil
}
