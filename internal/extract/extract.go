// Package extract parses the leaders page into a Leaders Table.
//
// The first <table> in the document is used. Its rows are read in order;
// the row at the header offset (1 by default, skipping the repeated title
// row) supplies the column names and every row after it becomes a data row.
package extract

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"

	"github.com/nao1215/mlbleaders/internal/model"
)

const (
	// DefaultHeaderRow is the index of the column-name row.
	DefaultHeaderRow = 1

	// IdentityColumn is the player-identity header on the source page.
	IdentityColumn = "PLAYER"

	// maxColspan caps colspan values read from markup.
	maxColspan = 1000
)

var (
	// ErrNoTable is returned when the document contains no table.
	ErrNoTable = errors.New("no table found in page")

	// ErrHeaderDepth is returned when the table has no row at the header offset.
	ErrHeaderDepth = errors.New("table lacks expected header row")

	// ErrMissingIdentityColumn is returned when the header lacks the identity column.
	ErrMissingIdentityColumn = errors.New("table lacks player identity column")
)

// Extractor builds a Leaders Table from HTML.
type Extractor struct {
	headerRow      int
	requiredColumn string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHeaderRow sets the index of the column-name row.
func WithHeaderRow(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.headerRow = n
		}
	}
}

// WithRequiredColumn sets the column that must appear in the header.
// An empty name disables the check.
func WithRequiredColumn(name string) Option {
	return func(e *Extractor) {
		e.requiredColumn = name
	}
}

// New creates an Extractor with default settings.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		headerRow:      DefaultHeaderRow,
		requiredColumn: IdentityColumn,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table is a convenience wrapper for New(opts...).Extract(page).
func Table(page string, opts ...Option) (*model.Table, error) {
	return New(opts...).Extract(page)
}

// Extract parses page and returns the first table.
// Data cells with empty text are missing; all others are text.
func (e *Extractor) Extract(page string) (*model.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, ErrNoTable
	}
	table := tables.First()

	rows := tableRows(table)
	if len(rows) <= e.headerRow || len(rows[e.headerRow]) == 0 {
		return nil, fmt.Errorf("%w: need row %d, table has %d rows",
			ErrHeaderDepth, e.headerRow, len(rows))
	}

	columns := columnNames(rows[e.headerRow])
	if e.requiredColumn != "" && !slices.Contains(columns, e.requiredColumn) {
		return nil, fmt.Errorf("%w: %q not in %v", ErrMissingIdentityColumn, e.requiredColumn, columns)
	}

	out := model.NewTable(columns)
	for _, cells := range rows[e.headerRow+1:] {
		row := make(model.Row, len(columns))
		for i, col := range columns {
			if i < len(cells) && cells[i] != "" {
				row[col] = model.TextCell(cells[i])
			} else {
				row[col] = model.MissingCell()
			}
		}
		out.AppendRow(row)
	}
	return out, nil
}

// tableRows returns the cell texts of each row belonging to table.
// Rows of nested tables and rows without cells are skipped.
func tableRows(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if !tr.Closest("table").IsSelection(table) {
			return
		}
		var cells []string
		tr.Children().Each(func(_ int, cell *goquery.Selection) {
			switch cell.Get(0).DataAtom {
			case atom.Td, atom.Th:
			default:
				return
			}
			text := normalizeText(cell.Text())
			for range colspan(cell) {
				cells = append(cells, text)
			}
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows
}

// colspan returns the cell's colspan attribute, defaulting to 1.
func colspan(cell *goquery.Selection) int {
	n, err := strconv.Atoi(strings.TrimSpace(cell.AttrOr("colspan", "1")))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, maxColspan)
}

// normalizeText collapses whitespace runs, including non-breaking spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// columnNames turns header texts into unique column names.
// Empty headers become "Unnamed: <index>"; repeats of X become X.1, X.2, ...
func columnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			candidate := fmt.Sprintf("%s.%d", name, n+1)
			for slices.Contains(names[:i], candidate) {
				seen[name]++
				candidate = fmt.Sprintf("%s.%d", name, seen[name])
			}
			name = candidate
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}
