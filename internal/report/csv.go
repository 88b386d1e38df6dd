package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/nao1215/mlbleaders/internal/clean"
	"github.com/nao1215/mlbleaders/internal/model"
)

// ErrEmptyCSV is returned by ReadCSV when the input has no header row.
var ErrEmptyCSV = errors.New("csv has no header row")

// CSVWriter outputs the cleaned Leaders Table as comma-separated values.
// The first record is the column names; missing cells are empty fields.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs run.Leaders.
func (w *CSVWriter) Write(run *model.Run) (int, error) {
	if run.Leaders == nil {
		return 0, ErrNoLeaders
	}
	return w.WriteTable(run.Leaders)
}

// WriteTable outputs t.
func (w *CSVWriter) WriteTable(t *model.Table) (int, error) {
	cw := &countingWriter{w: w.output}
	out := csv.NewWriter(cw)

	if err := out.Write(t.Columns); err != nil {
		return cw.n, err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row.Get(col).String()
		}
		if err := out.Write(record); err != nil {
			return cw.n, err
		}
	}
	out.Flush()
	return cw.n, out.Error()
}

// WriteCSVFile writes t to CSVPath(dir, year) and returns the path.
func WriteCSVFile(dir string, year int, t *model.Table) (string, error) {
	path := CSVPath(dir, year)
	err := writeFile(path, func(w io.Writer) error {
		_, err := NewCSVWriter(w).WriteTable(t)
		return err
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// ReadCSV reads a table written by CSVWriter. Empty fields become missing
// cells. Fields of the named numeric columns are parsed as numbers, and
// fields that do not parse become missing; all other fields are text.
func ReadCSV(r io.Reader, numeric ...string) (*model.Table, error) {
	in := csv.NewReader(r)
	in.ReuseRecord = true

	header, err := in.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	t := model.NewTable(header)
	for {
		record, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		row := make(model.Row, len(t.Columns))
		for i, col := range t.Columns {
			row[col] = parseField(record[i], slices.Contains(numeric, col))
		}
		t.AppendRow(row)
	}
	return t, nil
}

func parseField(s string, numeric bool) model.Cell {
	if s == "" {
		return model.MissingCell()
	}
	if !numeric {
		return model.TextCell(s)
	}
	f, err := clean.ParseNumber(s)
	if err != nil {
		return model.MissingCell()
	}
	return model.NumberCell(f)
}
