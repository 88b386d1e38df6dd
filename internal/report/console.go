package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nao1215/mlbleaders/internal/model"
)

// ConsoleWriter renders each leaderboard as a terminal table.
type ConsoleWriter struct {
	baseWriter

	style table.Style
}

// ConsoleWriterOption configures a ConsoleWriter.
type ConsoleWriterOption func(*ConsoleWriter)

// WithStyle sets the table style. The default is table.StyleRounded.
func WithStyle(style table.Style) ConsoleWriterOption {
	return func(w *ConsoleWriter) {
		w.style = style
	}
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer, opts ...ConsoleWriterOption) *ConsoleWriter {
	w := &ConsoleWriter{
		baseWriter: newBaseWriter(output),
		style:      table.StyleRounded,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the leaderboards of run.
func (w *ConsoleWriter) Write(run *model.Run) (int, error) {
	cw := &countingWriter{w: w.output}

	if _, err := fmt.Fprintf(cw, "\n%d season: %d players\n", run.Year, run.Players()); err != nil {
		return cw.n, err
	}

	for _, lb := range run.Leaderboards {
		// The title is printed above the table; go-pretty wraps titles
		// wider than the table.
		if _, err := fmt.Fprintf(cw, "\n%s\n", lb.Title); err != nil {
			return cw.n, err
		}

		t := table.NewWriter()
		t.SetStyle(w.style)
		t.AppendHeader(table.Row{"#", "Player", lb.Metric})
		for _, e := range lb.Entries {
			t.AppendRow(table.Row{strconv.Itoa(e.Rank), e.Name, formatValue(lb.Metric, e.Value)})
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
		})

		if _, err := fmt.Fprintln(cw, t.Render()); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}
