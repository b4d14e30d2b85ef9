package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dirindex/internal/adapters/sqlite"
	"dirindex/internal/application/commands"
)

var statsCmd = &cobra.Command{
	Use:   "stats <catalog>",
	Short: "Report catalog statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := sqlite.OpenReadOnly(args[0])
		if err != nil {
			return err
		}
		defer catalog.Close()

		stats, err := commands.NewStatsCommand(catalog).Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Entries in catalog: %d\n", stats.Entries)
		fmt.Printf("Total indexed file size: %d B (%d MB)\n",
			stats.TotalSize, stats.TotalSize/1000000)
		fmt.Printf("Average file size: %.2f B (%.2f MB)\n",
			stats.AverageSize, stats.AverageSize/1e6)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
