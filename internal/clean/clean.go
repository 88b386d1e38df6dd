// Package clean turns an extracted Leaders Table into a typed one.
//
// Cleaning drops rows without a player, renames the player column to
// Name, and coerces the statistic columns to numbers. A value that does
// not parse becomes a missing cell; it is never an error.
package clean

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/mlbleaders/internal/model"
)

const (
	// IdentityColumn is the player column as extracted from the page.
	IdentityColumn = "PLAYER"

	// NameColumn is the player column after cleaning.
	NameColumn = "Name"

	// BattingAverageColumn is the batting average column.
	BattingAverageColumn = "BA"

	// HomeRunsColumn is the home run column.
	HomeRunsColumn = "HR"
)

// CountColumns are the counting statistics coerced to numbers when present.
var CountColumns = []string{"HR", "RBI", "AB", "H", "R", "BB", "SO", "SB", "CS"}

// ErrMissingIdentityColumn is returned when the table has no player column.
var ErrMissingIdentityColumn = errors.New("missing player identity column")

// Stats describes what a Clean call changed.
type Stats struct {
	// InputRows is the row count of the raw table.
	InputRows int
	// DroppedRows is the number of rows removed for lacking a player.
	DroppedRows int
	// CoercedMissing is the number of non-empty cells that failed to parse.
	CoercedMissing int
	// NumericColumns lists the columns that were coerced, in table order.
	NumericColumns []string
}

// OutputRows returns the row count of the cleaned table.
func (s Stats) OutputRows() int {
	return s.InputRows - s.DroppedRows
}

// Cleaner applies the cleaning rules.
type Cleaner struct {
	dropRepeatedHeaders bool
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithDropRepeatedHeaders also drops rows whose player cell repeats the column name.
func WithDropRepeatedHeaders(drop bool) Option {
	return func(c *Cleaner) {
		c.dropRepeatedHeaders = drop
	}
}

// New creates a Cleaner.
func New(opts ...Option) *Cleaner {
	c := &Cleaner{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean is a convenience wrapper for New(opts...).Clean(raw).
func Clean(raw *model.Table, opts ...Option) (*model.Table, Stats, error) {
	return New(opts...).Clean(raw)
}

// Clean returns a cleaned copy of raw. raw is not modified.
func (c *Cleaner) Clean(raw *model.Table) (*model.Table, Stats, error) {
	stats := Stats{InputRows: raw.Len()}
	if !raw.HasColumn(IdentityColumn) {
		return nil, stats, fmt.Errorf("%w: %q not in %v", ErrMissingIdentityColumn, IdentityColumn, raw.Columns)
	}

	out := raw.Clone().Filter(c.hasPlayer)
	stats.DroppedRows = raw.Len() - out.Len()

	if err := out.RenameColumn(IdentityColumn, NameColumn); err != nil {
		return nil, stats, fmt.Errorf("rename %s: %w", IdentityColumn, err)
	}

	numeric := numericColumns(out)
	for _, row := range out.Rows {
		for _, col := range numeric {
			cell, failed := coerce(row.Get(col))
			if failed {
				stats.CoercedMissing++
			}
			row[col] = cell
		}
	}
	stats.NumericColumns = numeric

	return out, stats, nil
}

func (c *Cleaner) hasPlayer(row model.Row) bool {
	cell := row.Get(IdentityColumn)
	if cell.IsMissing() {
		return false
	}
	name := strings.TrimSpace(cell.Text())
	if name == "" {
		return false
	}
	if c.dropRepeatedHeaders && name == IdentityColumn {
		return false
	}
	return true
}

// StatisticColumns returns every column Clean coerces, count columns first and BA last.
func StatisticColumns() []string {
	return append(slices.Clone(CountColumns), BattingAverageColumn)
}

// numericColumns returns the statistic columns present in t.
func numericColumns(t *model.Table) []string {
	var cols []string
	for _, col := range StatisticColumns() {
		if t.HasColumn(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// coerce converts a cell to a number. failed reports whether a
// non-empty value was replaced by the missing marker.
func coerce(cell model.Cell) (out model.Cell, failed bool) {
	switch cell.Kind() {
	case model.KindNumber:
		return cell, false
	case model.KindMissing:
		return cell, false
	}

	s := strings.TrimSpace(cell.Text())
	if s == "" {
		return model.MissingCell(), false
	}
	f, err := ParseNumber(s)
	if err != nil {
		return model.MissingCell(), true
	}
	return model.NumberCell(f), false
}

// ErrNotNumber is returned by ParseNumber for values that are not finite numbers.
var ErrNotNumber = errors.New("not a number")

// ParseNumber parses s as a finite float64. Leading and trailing
// whitespace is ignored; NaN and infinities are rejected.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return f, nil
}
