package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grossbook-dev/grossbook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "grossbook",
		Short:   "Shared-household expense tracking and settlement",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "grossbook.yaml", "configuration file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newBuyCommand())
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newRemindCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}
