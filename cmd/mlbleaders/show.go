package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/mlbleaders/internal/chart"
	"github.com/nao1215/mlbleaders/internal/clean"
	"github.com/nao1215/mlbleaders/internal/config"
	"github.com/nao1215/mlbleaders/internal/model"
	"github.com/nao1215/mlbleaders/internal/report"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the leaderboards of a previously written CSV",
		Long: `Show reads mlb_leaders_<YEAR>.csv from the output directory and prints
the home run and batting average leaderboards. No network access is needed.

Examples:
  # Show the default season
  mlbleaders show

  # Show the top 5 of 2022 from a custom directory
  mlbleaders show --year 2022 --output stats --top 5`,
		Args: cobra.NoArgs,
		RunE: runShowCmd,
	}

	cmd.Flags().IntP("year", "y", config.DefaultYear,
		"Season of the CSV to read")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Directory holding the CSV")
	cmd.Flags().IntP("top", "n", chart.DefaultLimit,
		"Number of players per leaderboard")

	return cmd
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, _ []string) error {
	year, err := cmd.Flags().GetInt("year")
	if err != nil {
		return err
	}
	dir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}
	if top < 1 {
		return fmt.Errorf("--top must be at least 1, got %d", top)
	}

	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	return showLeaders(cmd.OutOrStdout(), dir, year, top, logger)
}

// showLeaders prints the leaderboards stored in the season CSV under dir.
func showLeaders(out io.Writer, dir string, year, top int, logger *slog.Logger) error {
	path := report.CSVPath(dir, year)
	f, err := os.Open(path) //nolint:gosec // Path is built from user flags on purpose
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	leaders, err := report.ReadCSV(f, clean.StatisticColumns()...)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !leaders.HasColumn(clean.NameColumn) {
		return fmt.Errorf("%s has no %s column", path, clean.NameColumn)
	}

	run := model.NewRun(year, path)
	run.Leaders = leaders

	for _, spec := range []chart.Spec{chart.HomeRuns(year), chart.BattingAverage(year)} {
		spec = spec.WithLimit(top)
		entries, err := chart.Top(leaders, spec.Metric, top)
		if err != nil {
			if errors.Is(err, chart.ErrMetricColumnMissing) || errors.Is(err, chart.ErrNothingToPlot) {
				logger.Warn("skipping leaderboard", "metric", spec.Metric, "error", err)
				continue
			}
			return err
		}
		run.AddLeaderboard(model.Leaderboard{
			Metric:  spec.Metric,
			Title:   spec.Title,
			Entries: entries,
		})
	}

	_, err = report.NewConsoleWriter(out).Write(run)
	return err
}
