package statements

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeSource(t *testing.T, path string, sheet string, header []string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		t.Fatal(err)
	}
	for c, h := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatal(err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestQueryProjectsDeclaredOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statements.xlsx")
	rs := RecordSet{Name: "hc", Columns: []string{"b", "a"}}
	writeSource(t, path, "hc", []string{"a", "b", "extra"}, [][]any{{"1", "2", "3"}})

	got, err := Query(path, rs)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	names := got.ColumnNames()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("projection order wrong: %v", names)
	}
	if got.Rows[0][0] != "2" || got.Rows[0][1] != "1" {
		t.Errorf("cells misaligned: %v", got.Rows[0])
	}
}

func TestQueryMissingColumnNamesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statements.xlsx")
	rs := RecordSet{Name: "hc", Columns: []string{"a", "subOwner"}}
	writeSource(t, path, "hc", []string{"a"}, nil)

	_, err := Query(path, rs)
	if err == nil || !strings.Contains(err.Error(), "subOwner") {
		t.Fatalf("expected error naming subOwner, got %v", err)
	}
}

func TestQueryMissingRecordSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statements.xlsx")
	writeSource(t, path, "other", []string{"a"}, nil)

	_, err := Query(path, RecordSet{Name: "hc", Columns: []string{"a"}})
	if err == nil || !strings.Contains(err.Error(), "hc") {
		t.Fatalf("expected error naming the record set, got %v", err)
	}
}
