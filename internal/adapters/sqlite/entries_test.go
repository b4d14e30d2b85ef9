package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirindex/internal/ports"
)

func TestUpsertAndGetEntry(t *testing.T) {
	c := openTestCatalog(t, "/path/to")

	entry := testEntry("to/file1", "/path/to/file1", "00deadbeef")
	require.NoError(t, c.UpsertEntry(entry))

	got, err := c.GetEntry("to/file1")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestUpsertEntryReplacesExisting(t *testing.T) {
	c := openTestCatalog(t, "/path/to")

	require.NoError(t, c.UpsertEntry(testEntry("to/file1", "/path/to/file1", "00deadbeef")))

	changed := testEntry("to/file1", "/path/to/file1", "00cafecafe")
	changed.Size = 200
	changed.Updated = 500
	require.NoError(t, c.UpsertEntry(changed))

	got, err := c.GetEntry("to/file1")
	require.NoError(t, err)
	assert.Equal(t, "00cafecafe", got.Signature)
	assert.Equal(t, int64(200), got.Size)
	assert.Equal(t, int64(500), got.Updated)

	count, err := c.Count(ports.Primary)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestGetEntryNotFound(t *testing.T) {
	c := openTestCatalog(t, "/path/to")

	_, err := c.GetEntry("no/such/path")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRemoveEntry(t *testing.T) {
	c := openTestCatalog(t, "/path/to")

	require.NoError(t, c.UpsertEntry(testEntry("to/file1", "/path/to/file1", "00deadbeef")))
	require.NoError(t, c.RemoveEntry("to/file1"))

	_, err := c.GetEntry("to/file1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRemoveEntryOnAbsentKeyViolatesInvariant(t *testing.T) {
	c := openTestCatalog(t, "/path/to")

	err := c.RemoveEntry("no/such/path")
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrInvariant)
}

func TestAllPaths(t *testing.T) {
	c := openTestCatalog(t, "/path/to")

	require.NoError(t, c.UpsertEntry(testEntry("to/file1", "/path/to/file1", "00deadbeef")))
	require.NoError(t, c.UpsertEntry(testEntry("to/file2", "/path/to/file2", "00cafecafe")))

	paths, err := c.AllPaths()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/path/to/file1", "/path/to/file2"}, paths)
}
