package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/mlbleaders/internal/model"
)

// SheetName is the worksheet holding the Leaders Table.
const SheetName = "Leaders"

// defaultSheet is the sheet excelize creates in a new workbook.
const defaultSheet = "Sheet1"

// XLSXWriter outputs the cleaned Leaders Table as a spreadsheet.
// Numeric cells are stored as numbers and missing cells are left blank.
type XLSXWriter struct {
	baseWriter
}

// NewXLSXWriter creates an XLSXWriter that outputs to the given writer.
func NewXLSXWriter(output io.Writer) *XLSXWriter {
	return &XLSXWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs run.Leaders as a workbook.
func (w *XLSXWriter) Write(run *model.Run) (int, error) {
	if run.Leaders == nil {
		return 0, ErrNoLeaders
	}

	f, err := newWorkbook(run.Leaders)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	n, err := f.WriteTo(w.output)
	return int(n), err
}

// WriteXLSXFile writes t to XLSXPath(dir, year) and returns the path.
func WriteXLSXFile(dir string, year int, t *model.Table) (string, error) {
	path := XLSXPath(dir, year)
	run := &model.Run{Year: year, Leaders: t}
	if err := WriteFile(path, run, func(w io.Writer) Writer { return NewXLSXWriter(w) }); err != nil {
		return "", err
	}
	return path, nil
}

func newWorkbook(t *model.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fill(f, t); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fill(f *excelize.File, t *model.Table) error {
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return fmt.Errorf("set header %s: %w", col, err)
		}
	}

	for r, row := range t.Rows {
		for i, col := range t.Columns {
			value, ok := cellValue(row.Get(col))
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	if len(t.Columns) > 0 {
		if err := styleHeader(f, len(t.Columns)); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(c model.Cell) (any, bool) {
	switch c.Kind() {
	case model.KindNumber:
		v, _ := c.Number()
		return v, true
	case model.KindText:
		return c.Text(), true
	default:
		return nil, false
	}
}

// styleHeader bolds the header row and freezes it.
func styleHeader(f *excelize.File, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
