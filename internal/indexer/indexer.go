package indexer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"dirindex/internal/domain"
	"dirindex/internal/ports"
)

// Options configures one indexing run.
type Options struct {
	// SkipDeleteCheck disables the deletion sweep. Entries for files that
	// no longer exist on disk are then left in the catalog.
	SkipDeleteCheck bool

	// Duration bounds the main traversal's wall clock. Zero means no
	// deadline.
	Duration time.Duration

	// DisableSync turns off catalog file sync to reduce disk I/O at the
	// cost of durability.
	DisableSync bool
}

// Indexer drives one catalog through an incremental indexing run: new files
// are added, stale entries re-hashed, unchanged entries skipped, and entries
// for deleted files swept away.
type Indexer struct {
	catalog ports.Catalog
	algo    *Algorithm
}

// New returns an indexer writing to catalog with the given hash algorithm.
func New(catalog ports.Catalog, algo *Algorithm) *Indexer {
	return &Indexer{catalog: catalog, algo: algo}
}

// Run indexes root into the catalog and returns the outcome counters. A
// traversal timeout is not a failure: counts reflect whatever completed and
// TimedOut is set. Configuration problems (bad root, root mismatch) and
// storage invariant violations abort before or during the run.
func (ix *Indexer) Run(root string, opts Options) (*domain.IndexStats, error) {
	start := time.Now()

	if err := verifyRoot(root); err != nil {
		return nil, err
	}

	now := start.Unix()
	if err := ix.catalog.Init(root, now, opts.DisableSync); err != nil {
		return nil, err
	}

	stats := &domain.IndexStats{Deleted: -1}
	if opts.SkipDeleteCheck {
		log.Info().Msg("skipping removal of deleted files from catalog")
	} else {
		deleted, err := ix.sweepDeleted(root)
		if err != nil {
			return nil, err
		}
		stats.Deleted = deleted
	}

	visitor := &upsertVisitor{catalog: ix.catalog, algo: ix.algo, root: root, now: now}
	traverser := NewTraverser()
	if opts.Duration > 0 {
		traverser = NewDeadlineTraverser(start.Add(opts.Duration))
	}

	err := traverser.Walk(root, visitor)
	switch {
	case errors.Is(err, ErrDeadlineExceeded):
		log.Warn().Dur("after", time.Since(start)).Msg("traversal deadline exceeded")
		stats.TimedOut = true
	case err != nil:
		return nil, err
	}

	stats.Added = visitor.added.Load()
	stats.Updated = visitor.updated.Load()
	stats.Skipped = visitor.skipped.Load()
	stats.Errors = visitor.errors.Load()
	stats.Duration = time.Since(start)
	return stats, nil
}

// verifyRoot rejects roots that do not exist or are not directories before
// any catalog mutation happens.
func verifyRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root directory does not exist: %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", root)
	}
	return nil
}

// sweepDeleted removes catalog entries whose files are gone from disk. The
// on-disk path set comes from an undeadlined traversal that only records
// paths.
func (ix *Indexer) sweepDeleted(root string) (int64, error) {
	stored, err := ix.catalog.AllPaths()
	if err != nil {
		return 0, err
	}
	inCatalog := make(map[string]struct{}, len(stored))
	for _, p := range stored {
		inCatalog[p] = struct{}{}
	}

	collector := &pathCollector{onDisk: make(map[string]struct{})}
	if err := NewTraverser().Walk(root, collector); err != nil {
		return 0, err
	}

	var deleted int64
	for abspath := range inCatalog {
		if _, ok := collector.onDisk[abspath]; ok {
			continue
		}
		key, err := domain.LogicalPath(root, abspath)
		if err != nil {
			return deleted, err
		}
		log.Debug().Str("path", key).Msg("removing entry for deleted file")
		if err := ix.catalog.RemoveEntry(key); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// pathCollector records every visited absolute path. It is the deletion
// sweep's pre-pass visitor.
type pathCollector struct {
	onDisk map[string]struct{}
}

func (c *pathCollector) VisitFile(abspath string, _ fs.FileInfo) error {
	c.onDisk[abspath] = struct{}{}
	return nil
}

// upsertVisitor is the main-pass visitor: it hashes and upserts new or stale
// files and counts everything else. Counters are atomic so the visitor stays
// safe under a future parallel traversal.
type upsertVisitor struct {
	catalog ports.Catalog
	algo    *Algorithm
	root    string
	now     int64

	added   atomic.Int64
	updated atomic.Int64
	skipped atomic.Int64
	errors  atomic.Int64
}

func (v *upsertVisitor) VisitFile(abspath string, info fs.FileInfo) error {
	key, err := domain.LogicalPath(v.root, abspath)
	if err != nil {
		log.Warn().Err(err).Str("path", abspath).Msg("failed to derive catalog key")
		v.errors.Add(1)
		return nil
	}

	existing, err := v.catalog.GetEntry(key)
	switch {
	case err == nil:
		if !existing.NeedsReindex(info.ModTime().Unix()) {
			v.skipped.Add(1)
			return nil
		}
		log.Debug().Str("path", key).Msg("file changed since last indexing")
		ok, err := v.index(abspath, info)
		if err != nil {
			return err
		}
		if ok {
			v.updated.Add(1)
		}
	case errors.Is(err, ports.ErrNotFound):
		ok, err := v.index(abspath, info)
		if err != nil {
			return err
		}
		if ok {
			v.added.Add(1)
		}
	default:
		return fmt.Errorf("failed to look up %s: %w", key, err)
	}
	return nil
}

// index hashes the file and writes its entry, reporting whether the entry
// was written. Hashing failures are counted and the run continues; a failed
// catalog write aborts it.
func (v *upsertVisitor) index(abspath string, info fs.FileInfo) (bool, error) {
	start := time.Now()
	sig, err := HashFile(abspath, v.algo)
	if err != nil {
		log.Warn().Err(err).Str("path", abspath).Msg("failed to hash file")
		v.errors.Add(1)
		return false, nil
	}

	entry, err := domain.NewEntry(v.root, abspath, sig, info.Size(), info.ModTime().Unix(), v.now)
	if err != nil {
		log.Warn().Err(err).Str("path", abspath).Msg("failed to build entry")
		v.errors.Add(1)
		return false, nil
	}

	elapsed := time.Since(start)
	log.Debug().
		Str("path", entry.Path).
		Int64("size", entry.Size).
		Dur("elapsed", elapsed).
		Float64("mbps", float64(entry.Size)/1e6/elapsed.Seconds()).
		Msg("hashed file")

	if err := v.catalog.UpsertEntry(&entry); err != nil {
		return false, err
	}
	return true, nil
}
