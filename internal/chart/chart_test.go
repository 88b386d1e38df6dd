package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/nao1215/mlbleaders/internal/model"
)

// leaders builds a cleaned table; a negative value is stored as missing.
func leaders(metric string, players map[string]float64, order ...string) *model.Table {
	t := model.NewTable([]string{"Name", metric})
	for _, name := range order {
		v := players[name]
		cell := model.NumberCell(v)
		if v < 0 {
			cell = model.MissingCell()
		}
		t.AppendRow(model.Row{"Name": model.TextCell(name), metric: cell})
	}
	return t
}

// TestTop tests ranking players by a metric.
func TestTop(t *testing.T) {
	t.Parallel()

	t.Run("descending order", func(t *testing.T) {
		t.Parallel()

		tbl := leaders("HR", map[string]float64{"Alice": 10, "Bob": 7}, "Bob", "Alice")
		got, err := Top(tbl, "HR", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []model.Entry{
			{Rank: 1, Name: "Alice", Value: 10, Row: 1},
			{Rank: 2, Name: "Bob", Value: 7, Row: 0},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing values are excluded", func(t *testing.T) {
		t.Parallel()

		tbl := leaders("BA", map[string]float64{"A": -1, "B": 0.300, "C": -1, "D": 0.250},
			"A", "B", "C", "D")
		got, err := Top(tbl, "BA", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names := make([]string, len(got))
		for i, e := range got {
			names[i] = e.Name
		}
		if diff := cmp.Diff([]string{"B", "D"}, names); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ties keep table order", func(t *testing.T) {
		t.Parallel()

		tbl := leaders("HR", map[string]float64{"X": 5, "Y": 9, "Z": 5}, "X", "Y", "Z")
		got, err := Top(tbl, "HR", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[1].Name != "X" || got[2].Name != "Z" {
			t.Errorf("expected X before Z, got %v", got)
		}
	})

	t.Run("keeps the ten largest values", func(t *testing.T) {
		t.Parallel()

		players := make(map[string]float64)
		var order []string
		for i := range 15 {
			name := string(rune('a' + i))
			players[name] = float64(i)
			order = append(order, name)
		}
		players["c"] = -1

		got, err := Top(leaders("HR", players, order...), "HR", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 10 {
			t.Fatalf("expected 10 entries, got %d", len(got))
		}
		values := make([]float64, len(got))
		for i, e := range got {
			values[i] = e.Value
		}
		want := []float64{14, 13, 12, 11, 10, 9, 8, 7, 6, 5}
		if diff := cmp.Diff(want, values); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fewer than ten values", func(t *testing.T) {
		t.Parallel()

		tbl := leaders("HR", map[string]float64{"A": 1, "B": -1}, "A", "B")
		got, err := Top(tbl, "HR", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("expected 1 entry, got %d", len(got))
		}
	})

	t.Run("absent column", func(t *testing.T) {
		t.Parallel()

		_, err := Top(leaders("HR", nil), "BA", 10)
		if !errors.Is(err, ErrMetricColumnMissing) {
			t.Errorf("expected ErrMetricColumnMissing, got %v", err)
		}
	})

	t.Run("all values missing", func(t *testing.T) {
		t.Parallel()

		tbl := leaders("HR", map[string]float64{"A": -1, "B": -1}, "A", "B")
		_, err := Top(tbl, "HR", 10)
		if !errors.Is(err, ErrNothingToPlot) {
			t.Errorf("expected ErrNothingToPlot, got %v", err)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		_, err := Top(leaders("HR", nil), "HR", 10)
		if !errors.Is(err, ErrNothingToPlot) {
			t.Errorf("expected ErrNothingToPlot, got %v", err)
		}
	})
}

// TestPath tests chart file naming.
func TestPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		metric string
		want   string
	}{
		{metric: "HR", want: filepath.Join("output", "top10_HR_2023.png")},
		{metric: "BA", want: filepath.Join("output", "top10_BA_2023.png")},
	}
	for _, tt := range tests {
		if got := Path("output", tt.metric, 2023); got != tt.want {
			t.Errorf("Path(%s) = %s, want %s", tt.metric, got, tt.want)
		}
	}
}

// TestSpecs tests the preset charts.
func TestSpecs(t *testing.T) {
	t.Parallel()

	hr := HomeRuns(2023)
	if hr.Metric != "HR" || hr.Year != 2023 || hr.Title == "" || hr.YLabel == "" {
		t.Errorf("unexpected home run spec: %+v", hr)
	}
	ba := BattingAverage(2023)
	if ba.Metric != "BA" || ba.Year != 2023 {
		t.Errorf("unexpected batting average spec: %+v", ba)
	}
	if diff := cmp.Diff(hr, ba, cmpopts.IgnoreFields(Spec{}, "Metric", "Label", "Title", "YLabel")); diff != "" {
		t.Errorf("presets differ beyond metric (-hr +ba):\n%s", diff)
	}
}

// TestSpecWithLimit tests resizing a preset.
func TestSpecWithLimit(t *testing.T) {
	t.Parallel()

	s := HomeRuns(2023).WithLimit(5)
	if s.Limit != 5 || s.Title != "Top 5 Home Run Leaders 2023" {
		t.Errorf("unexpected spec: %+v", s)
	}
	if got := HomeRuns(2023).WithLimit(0).Title; got != HomeRuns(2023).Title {
		t.Errorf("zero limit should keep the default title, got %q", got)
	}
}

// TestRender tests writing chart images.
func TestRender(t *testing.T) {
	t.Parallel()

	pngMagic := []byte("\x89PNG\r\n\x1a\n")

	t.Run("writes PNG and returns entries", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "output")
		path := Path(dir, "HR", 2023)
		tbl := leaders("HR", map[string]float64{"Alice": 10, "Bob": 7}, "Alice", "Bob")

		got, err := Render(tbl, HomeRuns(2023), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].Name != "Alice" || got[1].Name != "Bob" {
			t.Errorf("expected Alice then Bob, got %v", got)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read chart: %v", err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Error("chart is not a PNG")
		}
	})

	t.Run("renders twice in one process", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		tbl := model.NewTable([]string{"Name", "HR", "BA"})
		tbl.AppendRow(model.Row{
			"Name": model.TextCell("Alice"),
			"HR":   model.NumberCell(10),
			"BA":   model.NumberCell(0.3),
		})

		for _, spec := range []Spec{HomeRuns(2023), BattingAverage(2023)} {
			path := Path(dir, spec.Metric, spec.Year)
			if _, err := Render(tbl, spec, path); err != nil {
				t.Fatalf("render %s: %v", spec.Metric, err)
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("expected %s: %v", path, err)
			}
		}
	})

	t.Run("nothing to plot writes no file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := Path(dir, "HR", 2023)
		tbl := leaders("HR", map[string]float64{"A": -1}, "A")

		_, err := Render(tbl, HomeRuns(2023), path)
		if !errors.Is(err, ErrNothingToPlot) {
			t.Fatalf("expected ErrNothingToPlot, got %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected no file, got %v", err)
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		tbl := leaders("HR", map[string]float64{"A": 1}, "A")

		if _, err := Render(tbl, HomeRuns(2023), Path(blocker, "HR", 2023)); err == nil {
			t.Error("expected error writing under a regular file")
		}
	})
}
