package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nao1215/mlbleaders/internal/clean"
	"github.com/nao1215/mlbleaders/internal/model"
)

const (
	// DefaultLimit is the number of players shown per chart.
	DefaultLimit = 10

	// DefaultWidth and DefaultHeight are the image size.
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 5 * vg.Inch

	barWidth = 0.6 * vg.Centimeter
)

// Spec describes one chart.
type Spec struct {
	// Metric is the column to rank by, e.g. "HR".
	Metric string
	// Label names the metric in titles, e.g. "Home Run".
	Label string
	// Title is the chart title.
	Title string
	// YLabel labels the value axis.
	YLabel string
	// Year is the season shown.
	Year int
	// Limit is the number of players shown. Zero means DefaultLimit.
	Limit int
	// Width and Height are the image size. Zero means the defaults.
	Width, Height vg.Length
}

// HomeRuns returns the top home run chart for a season.
func HomeRuns(year int) Spec {
	return Spec{
		Metric: clean.HomeRunsColumn,
		Label:  "Home Run",
		Title:  title("Home Run", DefaultLimit, year),
		YLabel: "Home Runs",
		Year:   year,
	}
}

// BattingAverage returns the top batting average chart for a season.
func BattingAverage(year int) Spec {
	return Spec{
		Metric: clean.BattingAverageColumn,
		Label:  "Batting Average",
		Title:  title("Batting Average", DefaultLimit, year),
		YLabel: "Batting Average",
		Year:   year,
	}
}

// WithLimit returns a copy of s showing n players, with the title updated.
func (s Spec) WithLimit(n int) Spec {
	s.Limit = n
	s.Title = title(s.Label, s.limit(), s.Year)
	return s
}

func title(label string, n, year int) string {
	return fmt.Sprintf("Top %d %s Leaders %d", n, label, year)
}

// Path returns the image path for a metric and season inside dir.
func Path(dir, metric string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("top%d_%s_%d.png", DefaultLimit, metric, year))
}

func (s Spec) limit() int {
	if s.Limit > 0 {
		return s.Limit
	}
	return DefaultLimit
}

func (s Spec) size() (vg.Length, vg.Length) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Render draws the top players of spec.Metric as a bar chart and saves
// it to path. The image format follows the file extension. The parent
// directory is created if needed. It returns the plotted entries.
func Render(t *model.Table, spec Spec, path string) ([]model.Entry, error) {
	entries, err := Top(t, spec.Metric, spec.limit())
	if err != nil {
		return nil, err
	}

	p, err := newPlot(spec, entries)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}
	w, h := spec.size()
	if err := p.Save(w, h, path); err != nil {
		return nil, fmt.Errorf("save chart %s: %w", path, err)
	}
	return entries, nil
}

func newPlot(spec Spec, entries []model.Entry) (*plot.Plot, error) {
	values := make(plotter.Values, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.Value
		names[i] = e.Name
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = "Player"
	p.Y.Label.Text = spec.YLabel
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, fmt.Errorf("build bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars, plotter.NewGrid())

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Padding = vg.Points(4)
	p.Y.Padding = vg.Points(4)
	return p, nil
}
