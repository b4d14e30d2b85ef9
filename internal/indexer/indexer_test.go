package indexer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirindex/internal/adapters/sqlite"
	"dirindex/internal/domain"
)

func newTestIndexer(t *testing.T) (*Indexer, *sqlite.Catalog) {
	t.Helper()
	catalog, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })

	algo, err := LookupAlgorithm("sha256")
	require.NoError(t, err)
	return New(catalog, algo), catalog
}

func TestRunIndexesNewFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "one.txt", "sub/two.txt")
	ix, catalog := newTestIndexer(t)

	stats, err := ix.Run(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Added)
	assert.Equal(t, int64(0), stats.Updated)
	assert.Equal(t, int64(0), stats.Deleted)
	assert.Equal(t, int64(0), stats.Skipped)
	assert.Equal(t, int64(0), stats.Errors)
	assert.False(t, stats.TimedOut)

	entry, err := catalog.GetEntry(filepath.Join("sub", "two.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub", "two.txt"), entry.AbsPath)
	assert.Equal(t, "two.txt", entry.Basename)
	assert.NotEmpty(t, entry.Signature)
}

func TestRunIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "one.txt", "two.txt", "sub/three.txt")
	ix, _ := newTestIndexer(t)

	_, err := ix.Run(root, Options{})
	require.NoError(t, err)

	stats, err := ix.Run(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Added)
	assert.Equal(t, int64(0), stats.Updated)
	assert.Equal(t, int64(0), stats.Deleted)
	assert.Equal(t, int64(0), stats.Errors)
	assert.Equal(t, int64(3), stats.Skipped)
}

func TestRunStalenessBoundary(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file.txt")
	ix, catalog := newTestIndexer(t)

	_, err := ix.Run(root, Options{})
	require.NoError(t, err)

	abspath := filepath.Join(root, "file.txt")
	info, err := os.Stat(abspath)
	require.NoError(t, err)
	modTime := info.ModTime().Unix()

	// Stored updated equal to the file's mtime counts as current.
	setUpdated(t, catalog, root, abspath, modTime)
	stats, err := ix.Run(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Skipped)
	assert.Equal(t, int64(0), stats.Updated)

	// One second earlier means stale.
	setUpdated(t, catalog, root, abspath, modTime-1)
	stats, err = ix.Run(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Updated)
	assert.Equal(t, int64(0), stats.Skipped)
}

// setUpdated rewrites an entry with a chosen updated timestamp.
func setUpdated(t *testing.T, catalog *sqlite.Catalog, root, abspath string, updated int64) {
	t.Helper()
	key, err := domain.LogicalPath(root, abspath)
	require.NoError(t, err)
	entry, err := catalog.GetEntry(key)
	require.NoError(t, err)
	entry.Updated = updated
	require.NoError(t, catalog.UpsertEntry(entry))
}

func TestRunUpdatedEntryRefreshesTimestamp(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file.txt")
	ix, catalog := newTestIndexer(t)

	_, err := ix.Run(root, Options{})
	require.NoError(t, err)

	abspath := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(abspath, []byte("changed"), 0644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(abspath, future, future))

	stats, err := ix.Run(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Updated)

	entry, err := catalog.GetEntry("file.txt")
	require.NoError(t, err)
	assert.Equal(t, future.Unix(), entry.Timestamp)
}

func TestRunDeletionSweep(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "keep.txt", "remove-me.txt", "sub/remove-too.txt")
	ix, catalog := newTestIndexer(t)

	_, err := ix.Run(root, Options{})
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "remove-me.txt")))
	require.NoError(t, os.Remove(filepath.Join(root, "sub", "remove-too.txt")))

	stats, err := ix.Run(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Deleted)

	_, err = catalog.GetEntry("remove-me.txt")
	assert.Error(t, err)
	_, err = catalog.GetEntry("keep.txt")
	assert.NoError(t, err)
}

func TestRunSkipDeleteCheck(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "here.txt", "gone.txt")
	ix, catalog := newTestIndexer(t)

	_, err := ix.Run(root, Options{})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(root, "gone.txt")))

	stats, err := ix.Run(root, Options{SkipDeleteCheck: true})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), stats.Deleted, "skipped sweep reports the -1 sentinel")

	// The stale entry survives.
	_, err = catalog.GetEntry("gone.txt")
	assert.NoError(t, err)
}

func TestRunDeadlineTimesOut(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "one.txt", "two.txt")
	ix, _ := newTestIndexer(t)

	stats, err := ix.Run(root, Options{Duration: time.Nanosecond})
	require.NoError(t, err, "a timeout is reported, not treated as failure")
	assert.True(t, stats.TimedOut)
	assert.Equal(t, int64(0), stats.Errors)
}

func TestRunRejectsBadRoot(t *testing.T) {
	ix, _ := newTestIndexer(t)

	_, err := ix.Run(filepath.Join(t.TempDir(), "absent"), Options{})
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = ix.Run(file, Options{})
	assert.Error(t, err)
}

func TestRunRejectsDifferentRoot(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeTree(t, rootA, "a.txt")
	writeTree(t, rootB, "b.txt")
	ix, _ := newTestIndexer(t)

	_, err := ix.Run(rootA, Options{})
	require.NoError(t, err)

	_, err = ix.Run(rootB, Options{})
	require.Error(t, err, "a catalog is bound to the root it was built against")
}

func TestRunCountsUnreadableFiles(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	root := t.TempDir()
	writeTree(t, root, "ok.txt", "secret.txt")
	require.NoError(t, os.Chmod(filepath.Join(root, "secret.txt"), 0000))
	ix, _ := newTestIndexer(t)

	stats, err := ix.Run(root, Options{})
	require.NoError(t, err, "per-file errors never abort the run")
	assert.Equal(t, int64(1), stats.Added)
	assert.Equal(t, int64(1), stats.Errors)
}
