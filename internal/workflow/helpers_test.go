package workflow

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/finrep/internal/config"
	"github.com/klytics/finrep/internal/recalc"
	"github.com/klytics/finrep/internal/runlog"
)

func newTestEnv(paths map[string]string) *Env {
	cfg := &config.Config{Paths: paths}
	return &Env{
		Config: cfg,
		Log:    runlog.New("", false),
		Recalc: recalc.Noop{},
	}
}

// writeWorkbook builds a fixture workbook: one header row followed by data
// rows, per sheet.
func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatal(err)
			}
		}
		for r, row := range rows {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatal(err)
				}
				if err := f.SetCellValue(name, cell, v); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()
}

func cellValue(t *testing.T, path, sheet, cell string) string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("could not open %s: %v", path, err)
	}
	defer f.Close()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatal(err)
	}
	return v
}
