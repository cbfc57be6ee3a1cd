package workflow

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/klytics/finrep/internal/archive"
	"github.com/klytics/finrep/internal/runlog"
	"github.com/klytics/finrep/internal/table"
	"github.com/klytics/finrep/internal/xlsxio"
)

// salesReportName builds the consolidated artifact name for a period.
func salesReportName(period string) string {
	return fmt.Sprintf("%s. SalesReport.xlsx", period)
}

// Sales consolidates the per-company sales extracts into one period report.
// Each extract's company is derived from its file name (`A-B-CompanyX`
// keeps the trailing segment); rows are filtered to revenue account codes
// and the net balance is derived before the discard columns are dropped.
func (e *Env) Sales(period string) error {
	bundle, err := e.bundle("sales")
	if err != nil {
		return err
	}

	inDir, err := e.Config.Path("salesDataActual")
	if err != nil {
		return err
	}
	storage, err := e.Config.Path("salesDataStorage")
	if err != nil {
		return err
	}
	history, err := e.Config.Path("reportHistory")
	if err != nil {
		return err
	}

	templateName := "sales_report_template.xlsx"
	if p := e.Config.Paths["templateSalesReport"]; p != "" {
		templateName = filepath.Base(p)
	}

	// Previous period reports move to history before this run writes, so
	// a same-named artifact can never be mistaken for the current output.
	moved, err := archive.MoveOutputs(storage, history, templateName, nil)
	if err != nil {
		return fmt.Errorf("could not archive previous sales reports: %w", err)
	}
	if moved > 0 {
		fmt.Printf("Archived %d previous report(s) to %s\n", moved, history)
	}

	tables, err := xlsxio.LoadFolder(inDir, xlsxio.FolderOptions{
		Provenance:  "company",
		Delimiter:   "-",
		MinSegments: 3,
	})
	if err != nil {
		if errors.Is(err, xlsxio.ErrNoData) {
			fmt.Printf("No sales extracts found in %s. Nothing to consolidate.\n", inDir)
			return nil
		}
		return err
	}

	combined := table.Concat(tables...)
	bundle.Normalize(combined)
	for _, p := range bundle.Prefixes {
		combined = p.Apply(combined)
	}
	table.DeriveDifference(combined, "saldoPEN", "Crédito Local", "Débito Local")
	combined = table.DropColumns(combined, bundle.DropColumns)

	if combined.Len() == 0 {
		fmt.Println("No rows left after filtering. Nothing to consolidate.")
		return nil
	}

	out := filepath.Join(storage, salesReportName(period))
	if err := xlsxio.WriteTable(combined, out, "rawData"); err != nil {
		return fmt.Errorf("could not write sales report: %w", err)
	}

	e.Log.Log(runlog.Entry{
		Workflow: "sales",
		Action:   "consolidated",
		Artifact: filepath.Base(out),
		Rows:     combined.Len(),
	})
	color.Green("✓ Consolidated %d rows from %d extract(s) into %s", combined.Len(), len(tables), out)
	return nil
}
