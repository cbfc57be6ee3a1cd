package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/klytics/finrep/internal/progress"
	"github.com/klytics/finrep/internal/project"
	"github.com/klytics/finrep/internal/runlog"
	"github.com/klytics/finrep/internal/statements"
	"github.com/klytics/finrep/internal/table"
)

const (
	forecastExpensesSheet  = "forecastExpenses"
	forecastHeadcountSheet = "forecastHeadcount"
	forecastDataRow        = 8
	forecastDataCol        = 3 // column C
)

// Identifier columns of the two forecast data blocks, in block order.
var (
	forecastExpenseIDs   = []string{"company", "lineP&L", "centroCosto", "description", "cuentaContable", "descriptionCuentaContable"}
	forecastHeadcountIDs = []string{"company", "centroCosto", "description", "jobGeneral"}
)

// Forecast regenerates one forecast workbook per sub-owner from the
// statements source: the expense block pivots saldoPEN by month, the
// headcount block pivots distinct employees by month, and the template's
// AH/AI formula columns are extended down the expense rows.
func (e *Env) Forecast(ctx context.Context, version string) error {
	bundle, err := e.bundle("forecast")
	if err != nil {
		return err
	}

	source, err := e.Config.Path("statementsSource")
	if err != nil {
		return err
	}
	templatePath, err := e.Config.Path("forecastTemplate")
	if err != nil {
		return err
	}
	outDir, err := e.Config.Path("outputForecast")
	if err != nil {
		return err
	}

	expenses, err := statements.Query(source, statements.ExpenseDetail)
	if err != nil {
		return err
	}
	headcount, err := statements.Query(source, statements.HeadcountDetail)
	if err != nil {
		return err
	}

	bundle.Normalize(expenses)
	bundle.Normalize(headcount)
	for _, p := range bundle.Prefixes {
		expenses = p.Apply(expenses)
	}

	addMonthColumn(expenses, "periodo", "month")
	addMonthColumn(headcount, "period", "month")

	expensePivot := table.Pivot(expenses,
		append(append([]string{}, forecastExpenseIDs...), "mainOwner", "subOwner"),
		"month", "saldoPEN", table.AggSum, table.MonthOrder)
	headcountPivot := table.Pivot(headcount,
		append(append([]string{}, forecastHeadcountIDs...), "mainOwner", "subOwner"),
		"month", "nameID", table.AggCountDistinct, table.MonthOrder)

	parts := table.Split(expensePivot, "subOwner")
	if len(parts) == 0 {
		fmt.Println("No sub-owner values found in the statements source. Nothing to generate.")
		return nil
	}

	bar := progress.New("Generating forecast workbooks", len(parts))
	generated := 0
	for _, p := range parts {
		bar.Increment(p.Key)
		if err := e.projectForecast(ctx, templatePath, outDir, version, p, headcountPivot); err != nil {
			warnf("could not generate forecast for sub-owner %q: %v", p.Key, err)
			e.Log.Log(runlog.Entry{Workflow: "forecast", Action: "generated", Partition: p.Key, Error: err.Error()})
			continue
		}
		generated++
	}
	bar.Finish(fmt.Sprintf("Generated %d of %d forecast workbook(s)", generated, len(parts)))
	color.Green("✓ Forecast %s: %d workbook(s) written to %s", version, generated, outDir)
	return nil
}

func (e *Env) projectForecast(ctx context.Context, template, outDir, version string, p table.Partition, headcountPivot *table.Table) error {
	start := time.Now()
	out := filepath.Join(outDir, fmt.Sprintf("Forecast_%s_%s.xlsx", version, project.SanitizeName(p.Key)))

	mainOwner := singularValue(p.Table, "mainOwner", p.Key)
	expenseRows := p.Table.Len()

	proj := project.Projection{
		Template: template,
		Output:   out,
		Cells: []project.CellWrite{
			{Sheet: forecastExpensesSheet, Cell: "D4", Value: mainOwner},
			{Sheet: forecastExpensesSheet, Cell: "D5", Value: p.Key},
		},
		Blocks: []project.BlockWrite{{
			Sheet:     forecastExpensesSheet,
			Row:       forecastDataRow,
			Col:       forecastDataCol,
			ClearRows: 1000,
			Order:     append(append([]string{}, forecastExpenseIDs...), presentMonths(p.Table)...),
			Table:     p.Table,
		}},
		Formulas: []project.FormulaExtension{{
			Sheet:     forecastExpensesSheet,
			Columns:   []string{"AH", "AI"},
			AnchorRow: forecastDataRow,
			LastRow:   forecastDataRow + expenseRows - 1,
		}},
	}

	hc := table.KeepEqual(headcountPivot, "subOwner", p.Key)
	if hc.Len() == 0 {
		warnf("no headcount data for sub-owner %q, skipping headcount sheet", p.Key)
	} else {
		proj.Blocks = append(proj.Blocks, project.BlockWrite{
			Sheet:     forecastHeadcountSheet,
			Row:       forecastDataRow,
			Col:       forecastDataCol,
			ClearRows: 1000,
			Order:     append(append([]string{}, forecastHeadcountIDs...), presentMonths(hc)...),
			Table:     hc,
		})
	}

	if err := project.Apply(proj); err != nil {
		return err
	}

	if err := e.Recalc.Recalculate(ctx, out); err != nil {
		warnf("recalculation failed for %s: %v", filepath.Base(out), err)
	}
	e.Log.Log(runlog.Entry{
		Workflow:   "forecast",
		Action:     "generated",
		Artifact:   filepath.Base(out),
		Partition:  p.Key,
		Rows:       expenseRows,
		DurationMs: time.Since(start).Milliseconds(),
	})
	return nil
}

// addMonthColumn derives the month name of a date column into a new
// column; rows without a parsed date get an empty name.
func addMonthColumn(t *table.Table, src, dst string) {
	si := t.ColumnIndex(src)
	di := t.AddColumn(dst, table.Text)
	if si < 0 {
		return
	}
	for _, row := range t.Rows {
		if name := table.MonthName(row[si]); name != "" {
			row[di] = name
		}
	}
}

// presentMonths returns the month columns that exist in the pivoted table,
// in calendar order.
func presentMonths(t *table.Table) []string {
	var out []string
	for _, m := range table.MonthOrder {
		if t.HasColumn(m) {
			out = append(out, m)
		}
	}
	return out
}

// singularValue resolves a field expected to hold one distinct value per
// partition. Multiple values are concatenated with a visible separator and
// warned, never silently picked; none degrades to a sentinel.
func singularValue(t *table.Table, column, partition string) string {
	values := table.DistinctValues(t, column)
	switch len(values) {
	case 0:
		warnf("no %s value for partition %q", column, partition)
		return "N/A"
	case 1:
		return values[0]
	default:
		joined := strings.Join(values, ", ")
		warnf("multiple %s values for partition %q, using %q", column, partition, joined)
		return joined
	}
}
