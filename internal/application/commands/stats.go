package commands

import (
	"context"

	"dirindex/internal/domain"
	"dirindex/internal/ports"
)

// StatsCommand summarizes one catalog: entry count, total and average size.
type StatsCommand struct {
	catalog ports.Catalog
}

// NewStatsCommand creates a new StatsCommand.
func NewStatsCommand(catalog ports.Catalog) *StatsCommand {
	return &StatsCommand{catalog: catalog}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) (*domain.CatalogStats, error) {
	count, err := c.catalog.Count(ports.Primary)
	if err != nil {
		return nil, err
	}
	size, err := c.catalog.TotalSize()
	if err != nil {
		return nil, err
	}

	stats := &domain.CatalogStats{Entries: count, TotalSize: size}
	if count > 0 {
		stats.AverageSize = float64(size) / float64(count)
	}
	return stats, nil
}
