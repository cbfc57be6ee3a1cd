package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeExpenseTemplate(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", expenseSheet); err != nil {
		t.Fatal(err)
	}
	headers := []string{"Company", "Cost Center", "Description", "Account", "Account Description", "Period", "Balance"}
	for c, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(expenseDataCol+c, expenseHeaderRow)
		if err := f.SetCellValue(expenseSheet, cell, h); err != nil {
			t.Fatal(err)
		}
	}
	// Stale data from a hand-edited template copy must not survive a run.
	if err := f.SetCellValue(expenseSheet, "C8", "STALE"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()
}

func TestExpenseSplitsLedgerByOwner(t *testing.T) {
	workDir := t.TempDir()
	outDir := t.TempDir()
	history := t.TempDir()

	template := filepath.Join(workDir, "expense_template.xlsx")
	writeExpenseTemplate(t, template)

	ledger := filepath.Join(workDir, "ledger.xlsx")
	writeWorkbook(t, ledger, map[string][][]any{
		"ledger": {
			{"mainOwner", "company", "centroCosto", "description", "cuentaContable", "descriptionCuentaContable", "periodo", "saldoPEN"},
			{"Alice", "FLXTECH", "CC1", "rent", "631001", "Alquileres", "2023-12-07", 1200.5},
			{"Bob/Ops", "NXT", "CC2", "fuel", "634001", "Combustible", "2023-12-15", 300.0},
			{"Alice", "FLXTECH", "CC1", "power", "636001", "Energía", "2023-12-20", 99.5},
		},
	})

	env := newTestEnv(map[string]string{
		"expenseLedger":         ledger,
		"templateExpenseReport": template,
		"outputExpenseReport":   outDir,
		"reportHistory":         history,
	})
	if err := env.Expense(context.Background(), "2023-12"); err != nil {
		t.Fatalf("Expense failed: %v", err)
	}

	alice := filepath.Join(outDir, "ExpenseReport_2023-12_Alice.xlsx")
	bob := filepath.Join(outDir, "ExpenseReport_2023-12_BobOps.xlsx")

	if got := cellValue(t, alice, expenseSheet, "D4"); got != "Alice" {
		t.Errorf("owner label = %q, want Alice", got)
	}
	if got := cellValue(t, alice, expenseSheet, "C8"); got != "FLXTECH" {
		t.Errorf("first data cell = %q, want FLXTECH", got)
	}
	// periodo is projected to the month-end date.
	if got := cellValue(t, alice, expenseSheet, "H8"); got != "2023-12-31" {
		t.Errorf("periodo = %q, want 2023-12-31", got)
	}
	if got := cellValue(t, alice, expenseSheet, "I9"); got != "99.5" {
		t.Errorf("second-row saldo = %q, want 99.5", got)
	}

	// Bob has a single row; the template's stale cell is overwritten and
	// the row below it stays clear.
	if got := cellValue(t, bob, expenseSheet, "C8"); got != "NXT" {
		t.Errorf("Bob first data cell = %q, want NXT", got)
	}
	if got := cellValue(t, bob, expenseSheet, "C9"); got != "" {
		t.Errorf("stale data below Bob's rows should be cleared, got %q", got)
	}

	f, err := excelize.OpenFile(alice)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	defined := 0
	for _, dn := range f.GetDefinedName() {
		if dn.Name == expenseRangeName {
			defined++
		}
	}
	if defined != 1 {
		t.Errorf("named range %q defined %d times, want 1", expenseRangeName, defined)
	}
}

func TestExpenseArchivesBeforeGenerating(t *testing.T) {
	workDir := t.TempDir()
	outDir := t.TempDir()
	history := t.TempDir()

	template := filepath.Join(outDir, "expense_template.xlsx")
	writeExpenseTemplate(t, template)

	stale := filepath.Join(outDir, "ExpenseReport_2023-11_Alice.xlsx")
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	ledger := filepath.Join(workDir, "ledger.xlsx")
	writeWorkbook(t, ledger, map[string][][]any{
		"ledger": {
			{"mainOwner", "company", "centroCosto", "description", "cuentaContable", "descriptionCuentaContable", "periodo", "saldoPEN"},
			{"Alice", "FLXTECH", "CC1", "rent", "631001", "Alquileres", "2023-12-07", 10.0},
		},
	})

	env := newTestEnv(map[string]string{
		"expenseLedger":         ledger,
		"templateExpenseReport": template,
		"outputExpenseReport":   outDir,
		"reportHistory":         history,
	})
	if err := env.Expense(context.Background(), "2023-12"); err != nil {
		t.Fatalf("Expense failed: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale report should have moved to history")
	}
	if _, err := os.Stat(template); err != nil {
		t.Error("template must never be archived")
	}
	if _, err := os.Stat(filepath.Join(outDir, "ExpenseReport_2023-12_Alice.xlsx")); err != nil {
		t.Errorf("new report missing: %v", err)
	}
}
