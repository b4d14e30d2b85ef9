package commands

import (
	"context"
	"fmt"

	"dirindex/internal/application"
	"dirindex/internal/domain"
	"dirindex/internal/ports"
)

// CompareResult holds everything the comparison engine reports about two
// catalogs.
type CompareResult struct {
	FirstRoot       string
	SecondRoot      string
	FirstCount      uint64
	SecondCount     uint64
	MissingInFirst  []string
	MissingInSecond []string
	Differing       []domain.Difference
}

// CompareCommand binds a second catalog to the first and computes the
// structural comparison between them.
type CompareCommand struct {
	catalog    ports.Catalog
	SecondPath string
}

// NewCompareCommand creates a new CompareCommand.
func NewCompareCommand(catalog ports.Catalog, secondPath string) *CompareCommand {
	return &CompareCommand{catalog: catalog, SecondPath: secondPath}
}

// Validate checks if the compare operation is valid
func (c *CompareCommand) Validate() error {
	if c.SecondPath == "" {
		return &application.ValidationError{
			Field:   "second",
			Message: "second catalog path is required",
		}
	}
	return nil
}

// Execute runs the compare command
func (c *CompareCommand) Execute(ctx context.Context) (*CompareResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.catalog.AttachSecond(c.SecondPath); err != nil {
		return nil, err
	}

	result := &CompareResult{}

	firstMeta, err := c.catalog.Metadata(ports.Primary)
	if err != nil {
		return nil, fmt.Errorf("failed to read first catalog metadata: %w", err)
	}
	result.FirstRoot = firstMeta.Path

	secondMeta, err := c.catalog.Metadata(ports.Secondary)
	if err != nil {
		return nil, fmt.Errorf("failed to read second catalog metadata: %w", err)
	}
	result.SecondRoot = secondMeta.Path

	if result.FirstCount, err = c.catalog.Count(ports.Primary); err != nil {
		return nil, err
	}
	if result.SecondCount, err = c.catalog.Count(ports.Secondary); err != nil {
		return nil, err
	}

	missingInFirst, missingInSecond, err := c.catalog.FindMissing()
	if err != nil {
		return nil, err
	}
	result.MissingInFirst = missingInFirst
	result.MissingInSecond = missingInSecond

	diffs, err := c.catalog.CompareDiffering()
	if err != nil {
		return nil, err
	}
	result.Differing = diffs

	return result, nil
}
