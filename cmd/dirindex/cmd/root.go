package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dirindex/internal/config"
	"dirindex/internal/indexer"
)

var (
	configPath string
	cfg        config.Config
	algo       *indexer.Algorithm
)

var rootCmd = &cobra.Command{
	Use:   "dirindex",
	Short: "Content-addressed file indexer",
	Long: `dirindex builds and maintains a catalog of a directory tree's files
keyed by content hash.

It provides commands to index a tree incrementally, compare two catalogs,
find duplicate files, and report catalog statistics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		log.Logger = log.Logger.Level(level)
		if cfg.PrettyLogs {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}

		algo, err = indexer.LookupAlgorithm(cfg.HashAlgorithm)
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.Path(), "path to the config file")
}
