package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/xuri/excelize/v2"

	"github.com/klytics/finrep/internal/archive"
	"github.com/klytics/finrep/internal/progress"
	"github.com/klytics/finrep/internal/project"
	"github.com/klytics/finrep/internal/runlog"
	"github.com/klytics/finrep/internal/table"
	"github.com/klytics/finrep/internal/xlsxio"
)

const (
	expenseSheet     = "expenseDetail"
	expenseRangeName = "expenseData"
	expenseHeaderRow = 7
	expenseDataRow   = 8
	expenseDataCol   = 3 // column C
)

// expenseOrder is the output column order of the per-owner data block.
var expenseOrder = []string{
	"company", "centroCosto", "description", "cuentaContable",
	"descriptionCuentaContable", "periodo", "saldoPEN",
}

// Expense splits the master expense ledger by cost-center owner into one
// workbook per owner, generated from the expense template, then totals the
// period across the generated artifacts.
func (e *Env) Expense(ctx context.Context, period string) error {
	bundle, err := e.bundle("expense")
	if err != nil {
		return err
	}

	ledgerPath, err := e.Config.Path("expenseLedger")
	if err != nil {
		return err
	}
	templatePath, err := e.Config.Path("templateExpenseReport")
	if err != nil {
		return err
	}
	outDir, err := e.Config.Path("outputExpenseReport")
	if err != nil {
		return err
	}
	history, err := e.Config.Path("reportHistory")
	if err != nil {
		return err
	}

	moved, err := archive.MoveOutputs(outDir, history, filepath.Base(templatePath), nil)
	if err != nil {
		return fmt.Errorf("could not archive previous expense reports: %w", err)
	}
	if moved > 0 {
		fmt.Printf("Archived %d previous report(s) to %s\n", moved, history)
	}

	ledger, err := xlsxio.LoadFile(ledgerPath)
	if err != nil {
		return fmt.Errorf("could not load expense ledger: %w", err)
	}
	if ledger.Len() == 0 {
		fmt.Printf("Expense ledger %s has no rows. Nothing to split.\n", ledgerPath)
		return nil
	}
	bundle.Normalize(ledger)

	parts := table.Split(ledger, "mainOwner")
	if len(parts) == 0 {
		fmt.Println("No owner values found in the ledger. Nothing to split.")
		return nil
	}

	bar := progress.New("Generating expense reports", len(parts))
	var generated []string
	for _, p := range parts {
		bar.Increment(p.Key)
		out := filepath.Join(outDir, fmt.Sprintf("ExpenseReport_%s_%s.xlsx", period, project.SanitizeName(p.Key)))
		if err := e.projectExpense(ctx, templatePath, out, p); err != nil {
			warnf("could not generate report for owner %q: %v", p.Key, err)
			e.Log.Log(runlog.Entry{Workflow: "expense", Action: "generated", Partition: p.Key, Error: err.Error()})
			continue
		}
		generated = append(generated, out)
	}
	bar.Finish(fmt.Sprintf("Generated %d of %d expense report(s)", len(generated), len(parts)))

	total := totalSaldo(generated)
	color.New(color.FgGreen, color.Bold).Printf("\nFINAL TOTAL EXPENSE FOR THE PERIOD: %.2f\n", total)
	return nil
}

func (e *Env) projectExpense(ctx context.Context, template, out string, p table.Partition) error {
	start := time.Now()
	rows := p.Table.Len()

	err := project.Apply(project.Projection{
		Template: template,
		Output:   out,
		Cells: []project.CellWrite{
			{Sheet: expenseSheet, Cell: "D4", Value: p.Key},
		},
		Blocks: []project.BlockWrite{{
			Sheet:     expenseSheet,
			Row:       expenseDataRow,
			Col:       expenseDataCol,
			ClearRows: 1000,
			Order:     expenseOrder,
			Table:     p.Table,
		}},
		Ranges: []project.RangeDef{{
			Name:      expenseRangeName,
			Sheet:     expenseSheet,
			StartCol:  expenseDataCol,
			EndCol:    expenseDataCol + len(expenseOrder) - 1,
			HeaderRow: expenseHeaderRow,
			LastRow:   expenseHeaderRow + rows,
		}},
	})
	if err != nil {
		return err
	}

	if err := e.Recalc.Recalculate(ctx, out); err != nil {
		warnf("recalculation failed for %s: %v", filepath.Base(out), err)
	}
	e.Log.Log(runlog.Entry{
		Workflow:   "expense",
		Action:     "generated",
		Artifact:   filepath.Base(out),
		Partition:  p.Key,
		Rows:       rows,
		DurationMs: time.Since(start).Milliseconds(),
	})
	return nil
}

// totalSaldo sums the saldo column of each generated artifact's data
// block. One unreadable artifact degrades the total with a warning rather
// than failing the run.
func totalSaldo(paths []string) float64 {
	saldoCol := expenseDataCol + len(expenseOrder) - 1
	var total float64
	for _, path := range paths {
		f, err := excelize.OpenFile(path)
		if err != nil {
			warnf("could not reopen %s for totaling: %v", filepath.Base(path), err)
			continue
		}
		rows, err := f.GetRows(expenseSheet)
		if err != nil {
			f.Close()
			warnf("could not read %s from %s: %v", expenseSheet, filepath.Base(path), err)
			continue
		}
		for i := expenseDataRow - 1; i < len(rows); i++ {
			if len(rows[i]) < saldoCol {
				continue
			}
			if v, err := strconv.ParseFloat(rows[i][saldoCol-1], 64); err == nil {
				total += v
			}
		}
		f.Close()
	}
	return total
}
