package report

import (
	"io"
	"path/filepath"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/mlbleaders/internal/model"
)

// MarkdownWriter outputs a run summary in Markdown format.
// Chart images are linked by file name, so the summary is meant to sit
// next to them in the output directory.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeLeaderboards(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.Run) {
	md.H1("MLB Batting Leaders " + strconv.Itoa(run.Year))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Season", strconv.Itoa(run.Year)},
			{"Source", markdown.Link(run.URL, run.URL)},
			{"Fetched", fetchedAt(run)},
			{"Players", strconv.Itoa(run.Players())},
			{"Rows Dropped", strconv.Itoa(run.DroppedRows)},
		},
	})
	md.PlainText("")
}

// writeLeaderboards writes one section per ranked metric.
func (w *MarkdownWriter) writeLeaderboards(md *markdown.Markdown, run *model.Run) {
	if len(run.Leaderboards) == 0 {
		md.Note("No leaderboards were produced for this run.")
		md.PlainText("")
		return
	}

	for _, lb := range run.Leaderboards {
		md.H2(lb.Title)
		md.PlainText("")

		if lb.Chart != "" {
			md.PlainText(markdown.Image(lb.Title, filepath.Base(lb.Chart)))
			md.PlainText("")
		}

		rows := make([][]string, len(lb.Entries))
		for i, e := range lb.Entries {
			rows[i] = []string{strconv.Itoa(e.Rank), e.Name, formatValue(lb.Metric, e.Value)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Rank", "Player", lb.Metric},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeFooter writes the summary footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by mlbleaders*")
}

func fetchedAt(run *model.Run) string {
	if run.FetchedAt.IsZero() {
		return "-"
	}
	return run.FetchedAt.Format("2006-01-02 15:04:05 MST")
}
