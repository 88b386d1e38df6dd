package model

import (
	"math"
	"strconv"
)

// CellKind identifies what a Cell holds.
type CellKind int

const (
	// KindMissing marks a cell with no value. It is distinct from zero
	// and from the empty string.
	KindMissing CellKind = iota
	// KindText marks a cell holding unparsed text.
	KindText
	// KindNumber marks a cell holding a parsed number.
	KindNumber
)

// String returns a lowercase name for the kind.
func (k CellKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "missing"
	}
}

// Cell is a single value in a Table.
// The zero value is a missing cell.
type Cell struct {
	kind CellKind
	text string
	num  float64
}

// TextCell returns a cell holding the given text.
func TextCell(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// NumberCell returns a cell holding the given number.
// NaN and infinities are stored as missing.
func NumberCell(f float64) Cell {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return MissingCell()
	}
	return Cell{kind: KindNumber, num: f}
}

// MissingCell returns the missing marker.
func MissingCell() Cell {
	return Cell{kind: KindMissing}
}

// Kind reports what the cell holds.
func (c Cell) Kind() CellKind {
	return c.kind
}

// IsMissing reports whether the cell is the missing marker.
func (c Cell) IsMissing() bool {
	return c.kind == KindMissing
}

// IsNumber reports whether the cell holds a number.
func (c Cell) IsNumber() bool {
	return c.kind == KindNumber
}

// Text returns the text of a text cell, or the rendered value otherwise.
func (c Cell) Text() string {
	if c.kind == KindText {
		return c.text
	}
	return c.String()
}

// Number returns the numeric value and whether the cell holds one.
func (c Cell) Number() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.num, true
}

// String renders the cell the way it is written to flat files.
// Missing cells render as the empty string.
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}
