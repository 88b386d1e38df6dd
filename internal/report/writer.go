package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nao1215/mlbleaders/internal/clean"
	"github.com/nao1215/mlbleaders/internal/model"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600

	baseName = "mlb_leaders"
)

// ErrNoLeaders is returned when a writer needs the cleaned table and the run has none.
var ErrNoLeaders = errors.New("run has no cleaned leaders table")

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the run to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(run *model.Run) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Path returns <dir>/mlb_leaders_<year>.<ext>.
func Path(dir string, year int, ext string) string {
	return filepath.Join(dir, baseName+"_"+strconv.Itoa(year)+"."+ext)
}

// CSVPath returns the CSV path for a season.
func CSVPath(dir string, year int) string { return Path(dir, year, "csv") }

// XLSXPath returns the spreadsheet path for a season.
func XLSXPath(dir string, year int) string { return Path(dir, year, "xlsx") }

// MarkdownPath returns the Markdown summary path for a season.
func MarkdownPath(dir string, year int) string { return Path(dir, year, "md") }

// JSONPath returns the run manifest path for a season.
func JSONPath(dir string, year int) string { return Path(dir, year, "json") }

// WriteFile writes run to path using the writer returned by newWriter.
// The parent directory is created if needed and the file is truncated.
func WriteFile(path string, run *model.Run, newWriter func(io.Writer) Writer) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := newWriter(w).Write(run)
		return err
	})
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// countingWriter counts bytes passed to the underlying writer.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// formatValue renders a metric value for display.
// Batting average keeps three decimals; counts print as integers.
func formatValue(metric string, v float64) string {
	if metric == clean.BattingAverageColumn {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
