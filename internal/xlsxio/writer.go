package xlsxio

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/finrep/internal/table"
)

// WriteTable writes a table (header row plus data rows) to a fresh workbook
// with a single named sheet.
func WriteTable(t *table.Table, path, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("could not rename sheet: %w", err)
	}

	for i, c := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, c.Name); err != nil {
			return fmt.Errorf("could not write header %q: %w", c.Name, err)
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("invalid cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, CellValue(v)); err != nil {
				return fmt.Errorf("could not set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}

// CellValue converts a table cell to the value handed to excelize. Dates
// are written as their ISO day string so the period key survives readback
// byte-identically.
func CellValue(v any) any {
	if d, ok := v.(time.Time); ok {
		return d.Format("2006-01-02")
	}
	return v
}
