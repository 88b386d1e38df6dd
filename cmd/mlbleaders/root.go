package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mlbleaders.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mlbleaders",
		Short: "Download MLB batting leaders and chart the top players",
		Long: `mlbleaders fetches the season batting leaders page for one MLB season,
cleans the leaders table, and writes:

  output/mlb_leaders_<YEAR>.csv   the cleaned table
  output/top10_HR_<YEAR>.png      top 10 home run hitters
  output/top10_BA_<YEAR>.png      top 10 batting averages

Markdown, XLSX, and JSON outputs are available as options.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
