package commands

import (
	"context"

	"dirindex/internal/domain"
	"dirindex/internal/ports"
)

// DupesCommand finds groups of catalog entries sharing a content signature.
type DupesCommand struct {
	catalog ports.Catalog
}

// NewDupesCommand creates a new DupesCommand.
func NewDupesCommand(catalog ports.Catalog) *DupesCommand {
	return &DupesCommand{catalog: catalog}
}

// Execute runs the dupes command
func (c *DupesCommand) Execute(ctx context.Context) ([]domain.DuplicateGroup, error) {
	return c.catalog.FindDuplicates()
}
