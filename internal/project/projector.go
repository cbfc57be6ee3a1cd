// Package project instantiates output workbooks from a fixed-layout
// template: cell-addressed writes, cleared block regions, fill-down formula
// extension, named-range redefinition and sheet-level structural edits.
// The template's layout (sheet names, anchors, formula columns) is assumed
// by convention; a missing sheet is an error, not something discovered.
package project

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/finrep/internal/table"
	"github.com/klytics/finrep/internal/xlsxio"
)

// CellWrite puts a literal value at a fixed address.
type CellWrite struct {
	Sheet string
	Cell  string
	Value any
}

// BlockWrite clears a fixed rectangle and writes a table's rows at an
// anchor. Order lists the output columns: fixed identifier columns first,
// then whichever bucket columns are present, already in canonical order.
type BlockWrite struct {
	Sheet     string
	Row, Col  int // 1-based anchor of the first data cell
	ClearRows int // rows blanked before writing; stale data beyond the new extent must not survive
	Order     []string
	Table     *table.Table
}

// FormulaExtension replicates the anchor row's formulas in the given
// columns down to LastRow, shifting relative references per row.
type FormulaExtension struct {
	Sheet     string
	Columns   []string // column letters, e.g. "AH", "AI"
	AnchorRow int
	LastRow   int
}

// RangeDef (re)defines a workbook-scoped named range over the header row
// through the last data row.
type RangeDef struct {
	Name             string
	Sheet            string
	StartCol, EndCol int // 1-based
	HeaderRow        int
	LastRow          int
}

// Projection is one generated artifact: a template copy plus the write
// instructions applied to it.
type Projection struct {
	Template     string
	Output       string
	Cells        []CellWrite
	Blocks       []BlockWrite
	Formulas     []FormulaExtension
	Ranges       []RangeDef
	RemoveSheets []string
	SheetOrder   []string // canonical order, applied strictly last
}

// Apply copies the template to the output path and applies every
// instruction, reordering sheets as the final mutation (host-document
// operations can reset ordering, so it must never be a side effect of an
// earlier step).
func Apply(p Projection) error {
	if err := copyFile(p.Template, p.Output); err != nil {
		return fmt.Errorf("could not copy template for %s: %w", p.Output, err)
	}

	wb, err := Open(p.Output)
	if err != nil {
		return err
	}
	defer wb.Close()

	for _, c := range p.Cells {
		if err := wb.WriteCell(c.Sheet, c.Cell, c.Value); err != nil {
			return err
		}
	}
	for _, b := range p.Blocks {
		if _, err := wb.WriteBlock(b); err != nil {
			return err
		}
	}
	for _, f := range p.Formulas {
		if err := wb.ExtendFormulas(f); err != nil {
			return err
		}
	}
	for _, r := range p.Ranges {
		if err := wb.DefineRange(r); err != nil {
			return err
		}
	}
	for _, name := range p.RemoveSheets {
		wb.RemoveSheet(name)
	}
	if len(p.SheetOrder) > 0 {
		if err := wb.Reorder(p.SheetOrder); err != nil {
			return err
		}
	}
	return wb.Save()
}

// Workbook wraps an open workbook with the projection primitives. The
// clients workflow uses it directly for in-place edits.
type Workbook struct {
	F    *excelize.File
	path string
}

// Open opens an existing workbook for projection.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	return &Workbook{F: f, path: path}, nil
}

// Close releases the underlying file without saving.
func (w *Workbook) Close() error {
	return w.F.Close()
}

// Save persists the workbook to its path.
func (w *Workbook) Save() error {
	if err := w.F.SaveAs(w.path); err != nil {
		return fmt.Errorf("could not save %s: %w", w.path, err)
	}
	return nil
}

func (w *Workbook) requireSheet(name string) error {
	if idx, err := w.F.GetSheetIndex(name); err != nil || idx < 0 {
		return fmt.Errorf("required sheet %q not found in %s — the template layout is fixed by convention", name, w.path)
	}
	return nil
}

// WriteCell writes a literal value at a fixed address.
func (w *Workbook) WriteCell(sheet, cell string, value any) error {
	if err := w.requireSheet(sheet); err != nil {
		return err
	}
	if err := w.F.SetCellValue(sheet, cell, xlsxio.CellValue(value)); err != nil {
		return fmt.Errorf("could not write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// WriteBlock clears the block's rectangle and writes the table rows at the
// anchor in the declared column order. Returns the number of data rows
// written. Order entries missing from the table produce a warning and an
// empty output column, never an abort.
func (w *Workbook) WriteBlock(b BlockWrite) (int, error) {
	if err := w.requireSheet(b.Sheet); err != nil {
		return 0, err
	}

	clearRows := b.ClearRows
	if clearRows < b.Table.Len() {
		clearRows = b.Table.Len()
	}
	for r := 0; r < clearRows; r++ {
		for c := 0; c < len(b.Order); c++ {
			cell, err := excelize.CoordinatesToCellName(b.Col+c, b.Row+r)
			if err != nil {
				return 0, fmt.Errorf("invalid cell coordinates: %w", err)
			}
			if err := w.F.SetCellValue(b.Sheet, cell, nil); err != nil {
				return 0, fmt.Errorf("could not clear %s!%s: %w", b.Sheet, cell, err)
			}
		}
	}

	selected, missing := b.Table.Select(b.Order)
	for _, name := range missing {
		fmt.Fprintf(os.Stderr, "Warning: output column %q absent from data for sheet %q\n", name, b.Sheet)
	}
	pos := make([]int, len(b.Order))
	for i, name := range b.Order {
		pos[i] = selected.ColumnIndex(name)
	}

	for r, row := range selected.Rows {
		for c := range b.Order {
			if pos[c] < 0 || row[pos[c]] == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(b.Col+c, b.Row+r)
			if err != nil {
				return 0, fmt.Errorf("invalid cell coordinates: %w", err)
			}
			if err := w.F.SetCellValue(b.Sheet, cell, xlsxio.CellValue(row[pos[c]])); err != nil {
				return 0, fmt.Errorf("could not set %s!%s: %w", b.Sheet, cell, err)
			}
		}
	}
	return selected.Len(), nil
}

// ExtendFormulas replicates the anchor formulas down to LastRow with
// relative-reference translation. No data rows below the anchor means no
// extension.
func (w *Workbook) ExtendFormulas(e FormulaExtension) error {
	if err := w.requireSheet(e.Sheet); err != nil {
		return err
	}
	if e.LastRow <= e.AnchorRow {
		return nil
	}
	for _, col := range e.Columns {
		anchor := fmt.Sprintf("%s%d", col, e.AnchorRow)
		formula, err := w.F.GetCellFormula(e.Sheet, anchor)
		if err != nil {
			return fmt.Errorf("could not read anchor formula %s!%s: %w", e.Sheet, anchor, err)
		}
		if formula == "" {
			fmt.Fprintf(os.Stderr, "Warning: no anchor formula at %s!%s, skipping column %s\n", e.Sheet, anchor, col)
			continue
		}
		for row := e.AnchorRow + 1; row <= e.LastRow; row++ {
			cell := fmt.Sprintf("%s%d", col, row)
			if err := w.F.SetCellFormula(e.Sheet, cell, ShiftFormula(formula, row-e.AnchorRow)); err != nil {
				return fmt.Errorf("could not extend formula to %s!%s: %w", e.Sheet, cell, err)
			}
		}
	}
	return nil
}

// DefineRange removes any existing definition under the range's name, then
// defines it over the header row through the last data row. Idempotent
// across repeated runs against the same workbook.
func (w *Workbook) DefineRange(r RangeDef) error {
	if err := w.requireSheet(r.Sheet); err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(r.StartCol, r.HeaderRow, true)
	if err != nil {
		return fmt.Errorf("invalid range start: %w", err)
	}
	last := r.LastRow
	if last < r.HeaderRow {
		last = r.HeaderRow
	}
	end, err := excelize.CoordinatesToCellName(r.EndCol, last, true)
	if err != nil {
		return fmt.Errorf("invalid range end: %w", err)
	}

	// Remove a stale definition first so reruns never duplicate the name.
	for _, dn := range w.F.GetDefinedName() {
		if dn.Name == r.Name {
			if err := w.F.DeleteDefinedName(&excelize.DefinedName{Name: r.Name, Scope: dn.Scope}); err != nil {
				return fmt.Errorf("could not remove stale range %q: %w", r.Name, err)
			}
		}
	}
	def := &excelize.DefinedName{
		Name:     r.Name,
		RefersTo: fmt.Sprintf("'%s'!%s:%s", r.Sheet, start, end),
	}
	if err := w.F.SetDefinedName(def); err != nil {
		return fmt.Errorf("could not define range %q: %w", r.Name, err)
	}
	return nil
}

// RemoveSheet deletes a placeholder sheet if present.
func (w *Workbook) RemoveSheet(name string) {
	if idx, err := w.F.GetSheetIndex(name); err != nil || idx < 0 {
		return
	}
	_ = w.F.DeleteSheet(name)
}

// EnsureSheet creates the named sheet if absent and returns its index.
func (w *Workbook) EnsureSheet(name string) (int, error) {
	if idx, err := w.F.GetSheetIndex(name); err == nil && idx >= 0 {
		return idx, nil
	}
	idx, err := w.F.NewSheet(name)
	if err != nil {
		return 0, fmt.Errorf("could not create sheet %q: %w", name, err)
	}
	return idx, nil
}

// Reorder moves the named sheets to the front of the workbook in the given
// order. Sheets not listed keep their relative order after them.
func (w *Workbook) Reorder(order []string) error {
	for i := len(order) - 1; i >= 0; i-- {
		list := w.F.GetSheetList()
		if len(list) == 0 || list[0] == order[i] {
			continue
		}
		if err := w.F.MoveSheet(order[i], list[0]); err != nil {
			return fmt.Errorf("could not reorder sheet %q: %w", order[i], err)
		}
	}
	return nil
}

// Bold applies a bold font to the given cells.
func (w *Workbook) Bold(sheet string, cells ...string) error {
	styleID, err := w.F.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("could not create bold style: %w", err)
	}
	for _, cell := range cells {
		if err := w.F.SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return fmt.Errorf("could not style %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// SanitizeName strips characters outside the alphanumeric/space/hyphen/
// underscore allow-list from a partition-key value before it is used in a
// file name.
func SanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
