package domain

// Entry describes one indexed file in a catalog.
type Entry struct {
	Path      string // Logical path relative to the catalog root (primary key)
	AbsPath   string // Absolute path on disk at index time
	Basename  string // Final path element
	Dirname   string // Containing directory (absolute)
	Signature string // Lowercase hex content hash
	Size      int64  // File size in bytes
	Timestamp int64  // Source modification time, unix seconds
	Updated   int64  // Time this entry was last written by the indexer, unix seconds
}

// Metadata is the singleton row describing the root a catalog was built
// against. A catalog carries at most one.
type Metadata struct {
	Path        string
	LastUpdated int64
}

// DuplicateGroup holds all entries sharing one content signature.
type DuplicateGroup struct {
	Signature string
	Entries   []Entry
}

// Difference is one path present in both catalogs with differing content.
type Difference struct {
	Path            string
	FirstAbsPath    string
	FirstSignature  string
	FirstTimestamp  int64
	SecondAbsPath   string
	SecondSignature string
	SecondTimestamp int64
}

// NeedsReindex reports whether the file behind this entry changed since the
// entry was last written. Equal timestamps mean the entry is current.
func (e *Entry) NeedsReindex(modTime int64) bool {
	return e.Updated < modTime
}
