package model

import (
	"time"

	"github.com/google/uuid"
)

// OutputKind identifies the type of a file produced by a run.
type OutputKind string

const (
	// OutputCSV is the cleaned Leaders Table as comma-separated values.
	OutputCSV OutputKind = "csv"
	// OutputChart is a rendered bar chart image.
	OutputChart OutputKind = "chart"
	// OutputMarkdown is the Markdown summary.
	OutputMarkdown OutputKind = "markdown"
	// OutputXLSX is the spreadsheet export.
	OutputXLSX OutputKind = "xlsx"
	// OutputJSON is the run manifest.
	OutputJSON OutputKind = "json"
)

// Output records one file written during a run.
type Output struct {
	Kind OutputKind `json:"kind"`
	Path string     `json:"path"`
}

// Run holds the state of one pipeline invocation.
// Each stage reads what earlier stages produced and adds its own result.
// Page is consumed by extraction and cleared afterwards.
type Run struct {
	// ID identifies the run in logs and the manifest.
	ID string `json:"id"`

	// Year is the season being processed.
	Year int `json:"year"`

	// URL is the leaders page that was fetched.
	URL string `json:"url"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FetchedAt is when the page was downloaded. It is zero until the fetch succeeds.
	FetchedAt time.Time `json:"fetched_at"`

	// Page is the raw HTML body returned by the fetcher.
	Page string `json:"-"`

	// Raw is the table as extracted from the page.
	Raw *Table `json:"-"`

	// Leaders is the cleaned table. It is read-only once set.
	Leaders *Table `json:"-"`

	// DroppedRows is the number of rows removed by cleaning.
	DroppedRows int `json:"dropped_rows"`

	// Leaderboards holds the rankings computed for charts, in render order.
	Leaderboards []Leaderboard `json:"leaderboards"`

	// Outputs lists the files written so far, in write order.
	Outputs []Output `json:"outputs"`

	// PerformedSteps lists the names of the steps that ran.
	PerformedSteps []string `json:"performed_steps"`
}

// NewRun creates a Run for the given season and source URL.
func NewRun(year int, url string) *Run {
	return &Run{
		ID:             uuid.NewString(),
		Year:           year,
		URL:            url,
		StartedAt:      time.Now(),
		Leaderboards:   make([]Leaderboard, 0),
		Outputs:        make([]Output, 0),
		PerformedSteps: make([]string, 0),
	}
}

// AddOutput records a written file.
func (r *Run) AddOutput(kind OutputKind, path string) {
	r.Outputs = append(r.Outputs, Output{Kind: kind, Path: path})
}

// OutputPaths returns the paths of outputs of the given kind.
func (r *Run) OutputPaths(kind OutputKind) []string {
	var paths []string
	for _, o := range r.Outputs {
		if o.Kind == kind {
			paths = append(paths, o.Path)
		}
	}
	return paths
}

// AddLeaderboard records a ranking.
func (r *Run) AddLeaderboard(lb Leaderboard) {
	r.Leaderboards = append(r.Leaderboards, lb)
}

// Players returns the number of players in the cleaned table.
func (r *Run) Players() int {
	if r.Leaders == nil {
		return 0
	}
	return r.Leaders.Len()
}
