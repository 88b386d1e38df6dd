package extract

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/mlbleaders/internal/model"
)

// scenarioPage is a leaders page with a title row, a header row, and three players.
const scenarioPage = `<html><body>
<table>
  <tr><td colspan="4">2023 MLB Batting Leaders</td></tr>
  <tr><th></th><th>PLAYER</th><th>HR</th><th>BA</th></tr>
  <tr><td></td><td>Alice</td><td>10</td><td>0.300</td></tr>
  <tr><td></td><td></td><td>5</td><td>0.250</td></tr>
  <tr><td></td><td>Bob</td><td>7</td><td>0.280</td></tr>
</table>
<table><tr><td>ignored</td></tr></table>
</body></html>`

// TestTable tests extracting the first table of a page.
func TestTable(t *testing.T) {
	t.Parallel()

	t.Run("header row 1 names the columns", func(t *testing.T) {
		t.Parallel()

		tbl, err := Table(scenarioPage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantCols := []string{"Unnamed: 0", "PLAYER", "HR", "BA"}
		if diff := cmp.Diff(wantCols, tbl.Columns); diff != "" {
			t.Errorf("columns mismatch (-want +got):\n%s", diff)
		}
		if tbl.Len() != 3 {
			t.Fatalf("expected 3 data rows, got %d", tbl.Len())
		}

		first := tbl.Rows[0]
		if got := first.Get("PLAYER").Text(); got != "Alice" {
			t.Errorf("expected Alice, got %q", got)
		}
		if got := first.Get("HR"); got.Kind() != model.KindText || got.Text() != "10" {
			t.Errorf("expected text cell \"10\", got %v %q", got.Kind(), got.Text())
		}
		if !first.Get("Unnamed: 0").IsMissing() {
			t.Error("expected empty cell to be missing")
		}
		if !tbl.Rows[1].Get("PLAYER").IsMissing() {
			t.Error("expected empty player cell to be missing")
		}
	})

	t.Run("no table", func(t *testing.T) {
		t.Parallel()

		_, err := Table("<html><body><p>maintenance</p></body></html>")
		if !errors.Is(err, ErrNoTable) {
			t.Errorf("expected ErrNoTable, got %v", err)
		}
	})

	t.Run("table without header row", func(t *testing.T) {
		t.Parallel()

		_, err := Table("<table><tr><td>only title</td></tr></table>")
		if !errors.Is(err, ErrHeaderDepth) {
			t.Errorf("expected ErrHeaderDepth, got %v", err)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		_, err := Table("<table></table>")
		if !errors.Is(err, ErrHeaderDepth) {
			t.Errorf("expected ErrHeaderDepth, got %v", err)
		}
	})

	t.Run("missing identity column", func(t *testing.T) {
		t.Parallel()

		page := `<table>
			<tr><td>title</td></tr>
			<tr><th>NAME</th><th>HR</th></tr>
			<tr><td>Alice</td><td>10</td></tr>
		</table>`
		_, err := Table(page)
		if !errors.Is(err, ErrMissingIdentityColumn) {
			t.Errorf("expected ErrMissingIdentityColumn, got %v", err)
		}
	})

	t.Run("custom header row and required column", func(t *testing.T) {
		t.Parallel()

		page := `<table>
			<tr><th>NAME</th><th>HR</th></tr>
			<tr><td>Alice</td><td>10</td></tr>
		</table>`
		tbl, err := Table(page, WithHeaderRow(0), WithRequiredColumn("NAME"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"NAME", "HR"}, tbl.Columns); diff != "" {
			t.Errorf("columns mismatch (-want +got):\n%s", diff)
		}
		if tbl.Len() != 1 {
			t.Errorf("expected 1 row, got %d", tbl.Len())
		}
	})

	t.Run("short rows are padded and long rows truncated", func(t *testing.T) {
		t.Parallel()

		page := `<table>
			<tr><td>title</td></tr>
			<tr><th>PLAYER</th><th>HR</th><th>BA</th></tr>
			<tr><td>Alice</td></tr>
			<tr><td>Bob</td><td>7</td><td>0.280</td><td>extra</td></tr>
		</table>`
		tbl, err := Table(page)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !tbl.Rows[0].Get("HR").IsMissing() || !tbl.Rows[0].Get("BA").IsMissing() {
			t.Error("expected padded cells to be missing")
		}
		if len(tbl.Rows[1]) != 3 {
			t.Errorf("expected surplus cell dropped, got %d cells", len(tbl.Rows[1]))
		}
	})

	t.Run("colspan repeats the cell", func(t *testing.T) {
		t.Parallel()

		page := `<table>
			<tr><td>title</td></tr>
			<tr><th>PLAYER</th><th colspan="2">HR</th></tr>
			<tr><td>Alice</td><td colspan="2">10</td></tr>
		</table>`
		tbl, err := Table(page)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"PLAYER", "HR", "HR.1"}, tbl.Columns); diff != "" {
			t.Errorf("columns mismatch (-want +got):\n%s", diff)
		}
		if got := tbl.Rows[0].Get("HR.1").Text(); got != "10" {
			t.Errorf("expected spanned value, got %q", got)
		}
	})

	t.Run("nested tables are not mixed in", func(t *testing.T) {
		t.Parallel()

		page := `<table>
			<tr><td>title</td></tr>
			<tr><th>PLAYER</th><th>HR</th></tr>
			<tr><td>Alice <table><tr><td>x</td></tr></table></td><td>10</td></tr>
		</table>`
		tbl, err := Table(page)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tbl.Len() != 1 {
			t.Errorf("expected 1 row, got %d", tbl.Len())
		}
	})

	t.Run("whitespace is collapsed", func(t *testing.T) {
		t.Parallel()

		page := "<table><tr><td>t</td></tr><tr><th> PLAYER\n</th></tr>" +
			"<tr><td>\n  Shohei&nbsp;\n Ohtani  </td></tr></table>"
		tbl, err := Table(page)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := tbl.Rows[0].Get("PLAYER").Text(); got != "Shohei Ohtani" {
			t.Errorf("expected collapsed name, got %q", got)
		}
	})
}

// TestColumnNames tests header naming rules.
func TestColumnNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{
			name:   "unique names kept",
			header: []string{"PLAYER", "HR"},
			want:   []string{"PLAYER", "HR"},
		},
		{
			name:   "empty names get index",
			header: []string{"", "PLAYER", ""},
			want:   []string{"Unnamed: 0", "PLAYER", "Unnamed: 2"},
		},
		{
			name:   "duplicates are numbered",
			header: []string{"R", "R", "R"},
			want:   []string{"R", "R.1", "R.2"},
		},
		{
			name:   "numbered name already present",
			header: []string{"R", "R.1", "R"},
			want:   []string{"R", "R.1", "R.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, columnNames(tt.header)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
