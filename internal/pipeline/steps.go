package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/mlbleaders/internal/chart"
	"github.com/nao1215/mlbleaders/internal/clean"
	"github.com/nao1215/mlbleaders/internal/config"
	"github.com/nao1215/mlbleaders/internal/extract"
	"github.com/nao1215/mlbleaders/internal/model"
	"github.com/nao1215/mlbleaders/internal/report"
)

// Step names.
const (
	StepFetch    = "fetch"
	StepExtract  = "extract"
	StepClean    = "clean"
	StepCSV      = "csv"
	StepMarkdown = "markdown"
	StepXLSX     = "xlsx"
	StepJSON     = "json"
	StepSummary  = "summary"

	chartStepPrefix = "chart_"
)

// Fetcher downloads a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// stepBase holds what every step shares: a logger and the progress output.
type stepBase struct {
	logger   *slog.Logger
	progress io.Writer
}

// StepOption configures any step.
type StepOption func(*stepBase)

// WithStepLogger sets the logger used by a step.
func WithStepLogger(logger *slog.Logger) StepOption {
	return func(b *stepBase) {
		b.logger = logger
	}
}

// WithProgress sets where a step prints its progress lines.
// Lines are discarded when unset.
func WithProgress(w io.Writer) StepOption {
	return func(b *stepBase) {
		b.progress = w
	}
}

func newStepBase(opts []StepOption) stepBase {
	b := stepBase{
		logger:   slog.Default(),
		progress: io.Discard,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// printf writes one progress line.
func (b stepBase) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(b.progress, format+"\n", args...)
}

// requireLeaders returns ErrMissingInput when cleaning has not produced a table.
func requireLeaders(run *model.Run) error {
	if run.Leaders == nil {
		return fmt.Errorf("%w: no cleaned table", ErrMissingInput)
	}
	return nil
}

// FetchStep downloads the leaders page into run.Page.
type FetchStep struct {
	stepBase
	fetcher Fetcher
}

// NewFetchStep creates a FetchStep.
func NewFetchStep(fetcher Fetcher, opts ...StepOption) *FetchStep {
	return &FetchStep{stepBase: newStepBase(opts), fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string { return StepFetch }

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, run *model.Run) error {
	s.printf("Downloading %d leaders from %s", run.Year, run.URL)

	page, err := s.fetcher.Fetch(ctx, run.URL)
	if err != nil {
		return err
	}
	run.Page = page
	run.FetchedAt = time.Now()

	s.logger.Debug("page downloaded", "url", run.URL, "bytes", len(page))
	return nil
}

// ExtractStep parses run.Page into run.Raw and releases the page.
type ExtractStep struct {
	stepBase
	extractor *extract.Extractor
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(extractor *extract.Extractor, opts ...StepOption) *ExtractStep {
	return &ExtractStep{stepBase: newStepBase(opts), extractor: extractor}
}

// Name returns the step name.
func (s *ExtractStep) Name() string { return StepExtract }

// Do executes the extract step.
func (s *ExtractStep) Do(_ context.Context, run *model.Run) error {
	if run.FetchedAt.IsZero() {
		return fmt.Errorf("%w: page was not downloaded", ErrMissingInput)
	}

	raw, err := s.extractor.Extract(run.Page)
	if err != nil {
		return err
	}
	run.Raw = raw
	run.Page = ""

	s.printf("Extracted table: %d rows, %d columns", raw.Len(), len(raw.Columns))
	s.logger.Debug("table extracted", "columns", strings.Join(raw.Columns, ","))
	return nil
}

// CleanStep turns run.Raw into run.Leaders.
type CleanStep struct {
	stepBase
	cleaner *clean.Cleaner
}

// NewCleanStep creates a CleanStep.
func NewCleanStep(cleaner *clean.Cleaner, opts ...StepOption) *CleanStep {
	return &CleanStep{stepBase: newStepBase(opts), cleaner: cleaner}
}

// Name returns the step name.
func (s *CleanStep) Name() string { return StepClean }

// Do executes the clean step.
func (s *CleanStep) Do(_ context.Context, run *model.Run) error {
	if run.Raw == nil {
		return fmt.Errorf("%w: no extracted table", ErrMissingInput)
	}

	s.printf("Cleaning table")
	leaders, stats, err := s.cleaner.Clean(run.Raw)
	if err != nil {
		return err
	}
	run.Leaders = leaders
	run.DroppedRows = stats.DroppedRows

	s.printf("Cleaned table: %d players, %d rows dropped", leaders.Len(), stats.DroppedRows)
	s.logger.Debug("table cleaned",
		"input_rows", stats.InputRows,
		"dropped_rows", stats.DroppedRows,
		"coerced_missing", stats.CoercedMissing,
		"numeric_columns", strings.Join(stats.NumericColumns, ","),
	)
	return nil
}

// CSVStep writes the cleaned table as CSV.
type CSVStep struct {
	stepBase
	dir string
}

// NewCSVStep creates a CSVStep writing into dir.
func NewCSVStep(dir string, opts ...StepOption) *CSVStep {
	return &CSVStep{stepBase: newStepBase(opts), dir: dir}
}

// Name returns the step name.
func (s *CSVStep) Name() string { return StepCSV }

// Do executes the CSV step.
func (s *CSVStep) Do(_ context.Context, run *model.Run) error {
	if err := requireLeaders(run); err != nil {
		return err
	}

	path, err := report.WriteCSVFile(s.dir, run.Year, run.Leaders)
	if err != nil {
		return err
	}
	run.AddOutput(model.OutputCSV, path)
	s.printf("Saved %s", path)
	return nil
}

// ChartStep renders one top-N bar chart and records its leaderboard.
type ChartStep struct {
	stepBase
	dir  string
	spec chart.Spec
}

// NewChartStep creates a ChartStep for spec writing into dir.
func NewChartStep(dir string, spec chart.Spec, opts ...StepOption) *ChartStep {
	return &ChartStep{stepBase: newStepBase(opts), dir: dir, spec: spec}
}

// Name returns the step name, e.g. "chart_HR".
func (s *ChartStep) Name() string { return chartStepPrefix + s.spec.Metric }

// Do executes the chart step.
func (s *ChartStep) Do(_ context.Context, run *model.Run) error {
	if err := requireLeaders(run); err != nil {
		return err
	}

	path := chart.Path(s.dir, s.spec.Metric, run.Year)
	entries, err := chart.Render(run.Leaders, s.spec, path)
	if err != nil {
		return err
	}

	run.AddLeaderboard(model.Leaderboard{
		Metric:  s.spec.Metric,
		Title:   s.spec.Title,
		Chart:   path,
		Entries: entries,
	})
	run.AddOutput(model.OutputChart, path)
	s.printf("Saved %s", path)
	return nil
}

// WriteStep writes the run with a report.Writer to a file named after the season.
type WriteStep struct {
	stepBase
	name      string
	kind      model.OutputKind
	path      func(dir string, year int) string
	newWriter func(io.Writer) report.Writer
	dir       string
}

// Name returns the step name.
func (s *WriteStep) Name() string { return s.name }

// Do executes the write step.
func (s *WriteStep) Do(_ context.Context, run *model.Run) error {
	if err := requireLeaders(run); err != nil {
		return err
	}

	path := s.path(s.dir, run.Year)
	if err := report.WriteFile(path, run, s.newWriter); err != nil {
		return err
	}
	run.AddOutput(s.kind, path)
	s.printf("Saved %s", path)
	return nil
}

// NewMarkdownStep creates a step writing the Markdown summary into dir.
func NewMarkdownStep(dir string, opts ...StepOption) *WriteStep {
	return &WriteStep{
		stepBase:  newStepBase(opts),
		name:      StepMarkdown,
		kind:      model.OutputMarkdown,
		path:      report.MarkdownPath,
		newWriter: func(w io.Writer) report.Writer { return report.NewMarkdownWriter(w) },
		dir:       dir,
	}
}

// NewXLSXStep creates a step writing the spreadsheet into dir.
func NewXLSXStep(dir string, opts ...StepOption) *WriteStep {
	return &WriteStep{
		stepBase:  newStepBase(opts),
		name:      StepXLSX,
		kind:      model.OutputXLSX,
		path:      report.XLSXPath,
		newWriter: func(w io.Writer) report.Writer { return report.NewXLSXWriter(w) },
		dir:       dir,
	}
}

// NewJSONStep creates a step writing the run manifest into dir.
func NewJSONStep(dir, version string, opts ...StepOption) *WriteStep {
	return &WriteStep{
		stepBase: newStepBase(opts),
		name:     StepJSON,
		kind:     model.OutputJSON,
		path:     report.JSONPath,
		newWriter: func(w io.Writer) report.Writer {
			return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(version))
		},
		dir: dir,
	}
}

// SummaryStep prints the leaderboards to the terminal.
type SummaryStep struct {
	stepBase
	out io.Writer
}

// NewSummaryStep creates a SummaryStep printing to out.
func NewSummaryStep(out io.Writer, opts ...StepOption) *SummaryStep {
	return &SummaryStep{stepBase: newStepBase(opts), out: out}
}

// Name returns the step name.
func (s *SummaryStep) Name() string { return StepSummary }

// Do executes the summary step.
func (s *SummaryStep) Do(_ context.Context, run *model.Run) error {
	if err := requireLeaders(run); err != nil {
		return err
	}
	_, err := report.NewConsoleWriter(s.out).Write(run)
	return err
}

// DefaultPipelineConfig holds settings for DefaultPipeline that are not
// part of config.Config.
type DefaultPipelineConfig struct {
	// Output receives progress lines and the console summary.
	Output io.Writer

	// Version is recorded in the JSON manifest.
	Version string

	// StepLogger is passed to every step.
	StepLogger *slog.Logger
}

// DefaultPipelineOption configures DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineOutput sets where progress and the summary are printed.
func WithPipelineOutput(w io.Writer) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Output = w
	}
}

// WithPipelineVersion sets the version recorded in the manifest.
func WithPipelineVersion(version string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Version = version
	}
}

// WithPipelineStepLogger sets the logger passed to every step.
func WithPipelineStepLogger(logger *slog.Logger) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.StepLogger = logger
	}
}

// DefaultPipeline creates the standard pipeline for cfg:
// fetch, extract, clean, CSV, the HR and BA charts, then the optional
// Markdown, XLSX, and JSON outputs and the console summary.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineOutput, etc).
func DefaultPipeline(cfg *config.Config, fetcher Fetcher, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	dpc := &DefaultPipelineConfig{
		Output:     io.Discard,
		StepLogger: slog.Default(),
	}
	for _, opt := range configOpts {
		opt(dpc)
	}

	p := New(append([]Option{WithContinueOnError(cfg.KeepGoing)}, pipelineOpts...)...)
	stepOpts := []StepOption{
		WithStepLogger(dpc.StepLogger),
		WithProgress(dpc.Output),
	}

	p.AddSteps(
		NewFetchStep(fetcher, stepOpts...),
		NewExtractStep(extract.New(), stepOpts...),
		NewCleanStep(clean.New(clean.WithDropRepeatedHeaders(cfg.DropRepeatedHeaders)), stepOpts...),
		NewCSVStep(cfg.OutputDir, stepOpts...),
		NewChartStep(cfg.OutputDir, chart.HomeRuns(cfg.Year), stepOpts...),
		NewChartStep(cfg.OutputDir, chart.BattingAverage(cfg.Year), stepOpts...),
	)
	if cfg.MarkdownReport {
		p.AddStep(NewMarkdownStep(cfg.OutputDir, stepOpts...))
	}
	if cfg.XLSXReport {
		p.AddStep(NewXLSXStep(cfg.OutputDir, stepOpts...))
	}
	if cfg.JSONManifest {
		p.AddStep(NewJSONStep(cfg.OutputDir, dpc.Version, stepOpts...))
	}
	if cfg.ConsoleSummary {
		p.AddStep(NewSummaryStep(dpc.Output, stepOpts...))
	}

	return p
}
