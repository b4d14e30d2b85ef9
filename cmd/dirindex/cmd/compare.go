package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dirindex/internal/adapters/sqlite"
	"dirindex/internal/application/commands"
)

var compareCmd = &cobra.Command{
	Use:   "compare <first-catalog> <second-catalog>",
	Short: "Compare two catalogs",
	Long: `Compare two independently built catalogs: report per-side entry counts,
paths missing from either side, and paths present in both whose content
differs.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := sqlite.Open(args[0])
		if err != nil {
			return err
		}
		defer catalog.Close()

		result, err := commands.NewCompareCommand(catalog, args[1]).Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Files in first: %d\n", result.FirstCount)
		fmt.Printf("Files in second: %d\n", result.SecondCount)

		fmt.Printf("Missing in first (%s):\n", result.FirstRoot)
		for _, p := range result.MissingInFirst {
			fmt.Printf("  %s\n", p)
		}
		fmt.Printf("Missing in second (%s):\n", result.SecondRoot)
		for _, p := range result.MissingInSecond {
			fmt.Printf("  %s\n", p)
		}

		fmt.Println("Differences:")
		for _, d := range result.Differing {
			fmt.Printf("  %s: %s (%s @ %d) != %s (%s @ %d)\n",
				d.Path,
				d.FirstSignature, d.FirstAbsPath, d.FirstTimestamp,
				d.SecondSignature, d.SecondAbsPath, d.SecondTimestamp)
		}

		fmt.Println("OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
