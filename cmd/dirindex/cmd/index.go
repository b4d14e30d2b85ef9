package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dirindex/internal/adapters/sqlite"
	"dirindex/internal/application/commands"
	"dirindex/internal/indexer"
)

var (
	skipDeleteCheck bool
	durationSecs    uint64
	noSync          bool
)

var indexCmd = &cobra.Command{
	Use:   "index <root-dir> <output-file>",
	Short: "Scan and index files from a root directory",
	Long: `Scan the root directory recursively and index every regular file into
the output catalog. An existing catalog is updated incrementally: new files
are added, changed files re-hashed, unchanged files skipped, and entries for
deleted files removed.

Examples:
  dirindex index ~/photos photos.db
  dirindex index -d 300 ~/archive archive.db`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, output := args[0], args[1]

		catalog, err := sqlite.Open(output)
		if err != nil {
			return err
		}
		defer catalog.Close()

		opts := indexer.Options{
			SkipDeleteCheck: skipDeleteCheck,
			Duration:        time.Duration(durationSecs) * time.Second,
			DisableSync:     noSync || cfg.DisableSync,
		}
		stats, err := commands.NewIndexCommand(catalog, algo, root, opts).Execute(context.Background())
		if err != nil {
			return err
		}

		if stats.TimedOut {
			fmt.Println("Indexing stopped at the configured duration; counts cover the completed part.")
		}
		fmt.Printf("Added: %d, Updated: %d, Deleted: %d, Skipped: %d, Errors: %d.\n",
			stats.Added, stats.Updated, stats.Deleted, stats.Skipped, stats.Errors)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&skipDeleteCheck, "skip-delete-check", "c", false,
		"skip removal of entries for files deleted since the last run")
	indexCmd.Flags().Uint64VarP(&durationSecs, "duration", "d", 0,
		"stop indexing after this many seconds")
	indexCmd.Flags().BoolVarP(&noSync, "no-sync", "s", false,
		"disable catalog file sync to reduce disk I/O")
}
