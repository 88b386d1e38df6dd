package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrColumnNotFound is returned when an operation names a column the table does not have.
var ErrColumnNotFound = errors.New("column not found")

// ErrColumnExists is returned when a rename would collide with an existing column.
var ErrColumnExists = errors.New("column already exists")

// Row maps column names to cell values.
// A column absent from the map reads as a missing cell.
type Row map[string]Cell

// Get returns the cell for the named column, or a missing cell.
func (r Row) Get(column string) Cell {
	c, ok := r[column]
	if !ok {
		return MissingCell()
	}
	return c
}

// Table is the Leaders Table: an ordered sequence of rows with named columns.
// Column order is the order the columns appeared in the source markup.
// Row order is insertion order; the table is never sorted in place.
type Table struct {
	// Columns holds the column names in source order.
	Columns []string

	// Rows holds the data rows. Indexes are always contiguous from 0.
	Rows []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: slices.Clone(columns),
		Rows:    make([]Row, 0),
	}
}

// AppendRow adds a row to the end of the table.
func (t *Table) AppendRow(row Row) {
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// RenameColumn renames a column in place, keeping its position.
func (t *Table) RenameColumn(from, to string) error {
	idx := slices.Index(t.Columns, from)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, from)
	}
	if from == to {
		return nil
	}
	if t.HasColumn(to) {
		return fmt.Errorf("%w: %s", ErrColumnExists, to)
	}

	t.Columns[idx] = to
	for _, row := range t.Rows {
		if c, ok := row[from]; ok {
			row[to] = c
			delete(row, from)
		}
	}
	return nil
}

// Filter returns a new table holding the rows for which keep returns true.
// Rows keep their relative order and are re-indexed from 0.
// The receiver is not modified; rows are shared, not copied.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := NewTable(t.Columns)
	for _, row := range t.Rows {
		if keep(row) {
			out.AppendRow(row)
		}
	}
	return out
}

// Column returns the cells of the named column in row order.
func (t *Table) Column(name string) ([]Cell, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	cells := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row.Get(name)
	}
	return cells, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns)
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}
