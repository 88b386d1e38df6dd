package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/mlbleaders/internal/model"
)

// JSONWriter outputs a run manifest in JSON format: the season, source,
// leaderboards, and the files written. The table itself is not included;
// it lives in the CSV.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// version is recorded in the manifest when set.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithVersion records the program version in the manifest.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Manifest is the JSON document written by JSONWriter.
type Manifest struct {
	// Version is the program version that produced the run, if known.
	Version string `json:"version,omitempty"`

	// Players is the number of rows in the cleaned table.
	Players int `json:"players"`

	// Run is the run state.
	Run *model.Run `json:"run"`
}

// Write outputs the manifest for run.
func (w *JSONWriter) Write(run *model.Run) (int, error) {
	m := Manifest{
		Version: w.version,
		Players: run.Players(),
		Run:     run,
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = json.Marshal(m)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
