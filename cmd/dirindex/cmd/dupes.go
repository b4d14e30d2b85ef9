package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dirindex/internal/adapters/sqlite"
	"dirindex/internal/application/commands"
)

var dupesCmd = &cobra.Command{
	Use:   "dupes <catalog>",
	Short: "Find possible duplicate files",
	Long: `List groups of indexed files that share a content signature. Groups are
ordered by signature.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := sqlite.OpenReadOnly(args[0])
		if err != nil {
			return err
		}
		defer catalog.Close()

		groups, err := commands.NewDupesCommand(catalog).Execute(context.Background())
		if err != nil {
			return err
		}

		for _, g := range groups {
			fmt.Printf("%s (%d files):\n", g.Signature, len(g.Entries))
			for _, e := range g.Entries {
				fmt.Printf("  %s\n", e.AbsPath)
			}
		}
		if len(groups) == 0 {
			fmt.Println("No duplicates found.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dupesCmd)
}
