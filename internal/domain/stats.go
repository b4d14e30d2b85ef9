package domain

import "time"

// IndexStats holds the outcome counters of one indexing run. Deleted is -1
// when the deletion sweep was skipped by configuration.
type IndexStats struct {
	Added    int64
	Updated  int64
	Deleted  int64
	Skipped  int64
	Errors   int64
	TimedOut bool
	Duration time.Duration
}

// CatalogStats summarizes one catalog for the stats command.
type CatalogStats struct {
	Entries     uint64
	TotalSize   uint64
	AverageSize float64
}
