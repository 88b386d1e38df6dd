package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/mlbleaders/internal/config"
	"github.com/nao1215/mlbleaders/internal/fetch"
	mlblog "github.com/nao1215/mlbleaders/internal/log"
	"github.com/nao1215/mlbleaders/internal/model"
	"github.com/nao1215/mlbleaders/internal/pipeline"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Download the leaders table and write the CSV and charts",
		Long: `Run downloads the batting leaders page for one season, cleans the
leaders table, and writes it to the output directory:

  mlb_leaders_<YEAR>.csv
  top10_HR_<YEAR>.png
  top10_BA_<YEAR>.png

Nothing is written when the download or table extraction fails.

Examples:
  # Process the default season
  mlbleaders run

  # Process another season into a custom directory
  mlbleaders run --year 2022 --output stats

  # Also write Markdown, XLSX, and JSON outputs
  mlbleaders run -m -x -j

  # Keep producing outputs after a failing step
  mlbleaders run --keep-going

Configuration file (.mlbleaders) example:
  year: 2023
  outputDir: output
  headers:
    Cookie: "region=us"`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	// Source flags
	cmd.Flags().IntP("year", "y", config.DefaultYear,
		"Season to download")
	cmd.Flags().String("base-url", config.DefaultBaseURL,
		"Host serving the leaders page")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for the page download")
	cmd.Flags().StringToString("header", nil,
		"Extra request header as Name=Value (repeatable)")

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Directory for output files (created on first write)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown summary")
	cmd.Flags().BoolP("xlsx", "x", false,
		"Also write an XLSX workbook")
	cmd.Flags().BoolP("json", "j", false,
		"Also write a JSON run manifest")
	cmd.Flags().Bool("summary", true,
		"Print the top 10 tables after writing files")

	// Behavior flags
	cmd.Flags().Bool("drop-repeated-headers", false,
		"Drop data rows that repeat the PLAYER header")
	cmd.Flags().BoolP("keep-going", "k", false,
		"Run the remaining steps after a step fails")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .mlbleaders in current or home directory)")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	// Build config from config file and flags
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	cfg.Verbose = getVerboseFlag(cmd)
	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runLeaders(ctx, cfg, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the configuration file and cobra flags.
// Flags override file values only when given on the command line.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	if flags.Changed("year") {
		if cfg.Year, err = flags.GetInt("year"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("base-url") {
		if cfg.BaseURL, err = flags.GetString("base-url"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("header") {
		headers, err := flags.GetStringToString("header")
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			cfg.Headers[k] = v
		}
	}
	if flags.Changed("output") {
		if cfg.OutputDir, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}

	boolFlags := []struct {
		name string
		dst  *bool
	}{
		{"markdown", &cfg.MarkdownReport},
		{"xlsx", &cfg.XLSXReport},
		{"json", &cfg.JSONManifest},
		{"summary", &cfg.ConsoleSummary},
		{"drop-repeated-headers", &cfg.DropRepeatedHeaders},
		{"keep-going", &cfg.KeepGoing},
	}
	for _, f := range boolFlags {
		if !flags.Changed(f.name) {
			continue
		}
		if *f.dst, err = flags.GetBool(f.name); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Sensitive header values are masked.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return mlblog.NewSecureLogger(w, verbose)
}

// runLeaders executes the pipeline for one season.
func runLeaders(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	run := model.NewRun(cfg.Year, cfg.LeadersURL())
	logger = logger.With("run", run.ID)
	logger.Info("starting run",
		"year", cfg.Year,
		"url", run.URL,
		"outputDir", cfg.OutputDir,
		"keepGoing", cfg.KeepGoing,
	)

	fetcher := fetch.NewClientFromConfig(cfg, fetch.WithLogger(logger))

	p := pipeline.DefaultPipeline(cfg, fetcher,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithPipelineOutput(out),
		pipeline.WithPipelineVersion(getVersion()),
		pipeline.WithPipelineStepLogger(logger),
	)

	if err := p.Execute(ctx, run); err != nil {
		if n := len(run.Outputs); n > 0 {
			fmt.Fprintf(out, "Partial run: %d files written to %s\n", n, cfg.OutputDir)
		}
		return err
	}

	fmt.Fprintf(out, "Done: %d files written to %s\n", len(run.Outputs), cfg.OutputDir)
	return nil
}
