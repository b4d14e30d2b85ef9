package commands

import (
	"context"

	"dirindex/internal/application"
	"dirindex/internal/domain"
	"dirindex/internal/indexer"
	"dirindex/internal/ports"
)

// IndexCommand runs one incremental indexing pass of a root directory into a
// catalog.
type IndexCommand struct {
	catalog ports.Catalog
	algo    *indexer.Algorithm
	Root    string
	Options indexer.Options
}

// NewIndexCommand creates a new IndexCommand.
func NewIndexCommand(catalog ports.Catalog, algo *indexer.Algorithm, root string, opts indexer.Options) *IndexCommand {
	return &IndexCommand{
		catalog: catalog,
		algo:    algo,
		Root:    root,
		Options: opts,
	}
}

// Validate checks if the index operation is valid
func (c *IndexCommand) Validate() error {
	if c.Root == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "root directory is required",
		}
	}
	if c.Options.Duration < 0 {
		return &application.ValidationError{
			Field:   "duration",
			Message: "duration cannot be negative",
		}
	}
	return nil
}

// Execute runs the index command
func (c *IndexCommand) Execute(ctx context.Context) (*domain.IndexStats, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return indexer.New(c.catalog, c.algo).Run(c.Root, c.Options)
}
