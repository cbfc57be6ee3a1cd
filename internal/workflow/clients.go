package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/xuri/excelize/v2"

	"github.com/klytics/finrep/internal/progress"
	"github.com/klytics/finrep/internal/project"
	"github.com/klytics/finrep/internal/rules"
	"github.com/klytics/finrep/internal/runlog"
	"github.com/klytics/finrep/internal/table"
	"github.com/klytics/finrep/internal/xlsxio"
)

const (
	alertsSheet  = "ALERTS"
	summarySheet = "Summary"
	clientsSheet = "Clients by status"
)

// clientColumns is the full projection of the client-status sheet. Absent
// columns degrade with a warning; the report is built from whatever is
// present.
var clientColumns = []string{
	"Sale Subscription Line ID", "Linea", "Servicio", "Tipo Servicio",
	"Estado Servicio", "Moneda", "Venta Solarizada", "ID Servicio Contrato",
	"Contrato", "Plantilla Contrato", "Cliente", "Equipoventa",
	"Empresa", "Cliente Ruc Dni",
}

var (
	filtro1Columns = []string{"Empresa", "Estado Servicio", "Cliente", "Equipoventa", "Plantilla Contrato"}
	filtro2Columns = []string{"Empresa", "Estado Servicio", "Cliente", "Equipoventa", "Tipo Servicio"}
)

// Clients rebuilds the client-status workbook in place: a filtered
// "Clients by status" sheet, an ALERTS sheet with two dependent filters
// plus the distinct contract-template list, and a Summary pivot, with the
// three sheets moved to the front of the workbook.
func (e *Env) Clients() error {
	bundle, err := e.bundle("clients")
	if err != nil {
		return err
	}
	dir, err := e.Config.Path("clientsReportDir")
	if err != nil {
		return err
	}

	path, err := findClientWorkbook(dir)
	if err != nil {
		return err
	}
	fmt.Printf("Rebuilding client report %s\n", path)
	spin := progress.NewSpinner("Rebuilding " + filepath.Base(path))
	spin.Start()
	clients, alerts, err := e.rebuildClientWorkbook(bundle, path)
	spin.Stop("Rebuilt " + filepath.Base(path))
	if err != nil {
		return err
	}

	e.Log.Log(runlog.Entry{
		Workflow: "clients",
		Action:   "generated",
		Artifact: filepath.Base(path),
		Rows:     clients,
	})
	color.Green("✓ Client report rebuilt: %d recurring service(s), %d alert(s)", clients, alerts)
	return nil
}

// rebuildClientWorkbook does the in-place rebuild and returns the
// recurring-client and alert row counts.
func (e *Env) rebuildClientWorkbook(bundle *rules.Bundle, path string) (int, int, error) {
	wb, err := project.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer wb.Close()

	sourceSheet := wb.F.GetSheetList()[0]
	src, err := xlsxio.LoadSheet(wb.F, sourceSheet)
	if err != nil {
		return 0, 0, fmt.Errorf("could not read source sheet %q: %w", sourceSheet, err)
	}
	bundle.Normalize(src)

	for _, col := range clientColumns {
		if !src.HasColumn(col) {
			warnf("expected column %q not found in %s", col, filepath.Base(path))
		}
	}

	installment := bundle.Set(rules.SetInstallmentTemplates)
	excludedEstados := bundle.Set(rules.SetExcludedEstados)

	// Clients by status: recurring services minus the installment
	// contract templates.
	clients, _ := src.Select(clientColumns)
	clients = table.KeepEqual(clients, "Tipo Servicio", "Recurrente")
	clients = table.DropValues(clients, "Plantilla Contrato", installment)

	// Filtro 1: installment-template clients still in service.
	filtro1 := table.KeepValues(src, "Plantilla Contrato", installment)
	filtro1 = table.DropValues(filtro1, "Estado Servicio", excludedEstados)
	filtro1 = table.DistinctBy(filtro1, "Cliente")
	filtro1, _ = filtro1.Select(filtro1Columns)

	// Filtro 2: non-recurring clients not already alerted by filtro 1.
	filtro2 := table.DropEqual(src, "Tipo Servicio", "Recurrente")
	filtro2 = table.DropValues(filtro2, "Cliente", table.DistinctValues(filtro1, "Cliente"))
	filtro2 = table.DropValues(filtro2, "Estado Servicio", excludedEstados)
	filtro2 = table.DistinctBy(filtro2, "Cliente")
	filtro2, _ = filtro2.Select(filtro2Columns)

	plantillas := table.New("Plantilla Contrato (Unique Values)")
	for _, v := range table.DistinctValues(clients, "Plantilla Contrato") {
		plantillas.AppendRow([]any{v})
	}

	summary := table.Summarize(clients, table.SummarySpec{
		RowDims:  []string{"Empresa", "Equipoventa"},
		RowOrder: map[string][]string{"Empresa": bundle.Vocabulary("Empresa")},
		ColDim:   "Estado Servicio",
		ColOrder: bundle.Vocabulary("Estado Servicio"),
		Target:   "Cliente",
	})

	// Fresh target sheets; stale copies from a previous run go first.
	for _, name := range []string{alertsSheet, summarySheet, clientsSheet} {
		wb.RemoveSheet(name)
		if _, err := wb.EnsureSheet(name); err != nil {
			return 0, 0, err
		}
	}

	if err := writeClientsSheet(wb, clients); err != nil {
		return 0, 0, err
	}
	if err := writeAlertsSection(wb, filtro1, "FILTRO 1: CLIENTES CON PLANTILLA CONTRATO = PAGOS EN CUOTA", 1); err != nil {
		return 0, 0, err
	}
	if err := writeAlertsSection(wb, filtro2, "FILTRO 2: CLIENTES CON TIPO SERVICIO <> RECURRENTE (NO EXCLUIDOS POR FILTRO 1)", 11); err != nil {
		return 0, 0, err
	}
	if err := writeAlertsSection(wb, plantillas, "UNIQUE VALUES FOR PLANTILLA CONTRATO IN THE ORIGINAL DATA", 21); err != nil {
		return 0, 0, err
	}
	if err := writeSummarySheet(wb, summary); err != nil {
		return 0, 0, err
	}

	if sourceSheet != alertsSheet && sourceSheet != summarySheet && sourceSheet != clientsSheet {
		wb.RemoveSheet(sourceSheet)
	}

	// Reordering is the last mutation; earlier sheet operations can reset
	// the order.
	if err := wb.Reorder([]string{alertsSheet, summarySheet, clientsSheet}); err != nil {
		return 0, 0, err
	}
	if err := wb.Save(); err != nil {
		return 0, 0, err
	}
	return clients.Len(), filtro1.Len() + filtro2.Len(), nil
}

// findClientWorkbook returns the first spreadsheet in dir, by name.
func findClientWorkbook(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("could not read report directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || xlsxio.Hidden(entry.Name()) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".xlsx" || ext == ".xls" {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no spreadsheet found in %s — drop the exported client report there first", dir)
}

// writeClientsSheet writes the filtered table at A1 with a bold header row.
func writeClientsSheet(wb *project.Workbook, t *table.Table) error {
	if err := writeHeadedTable(wb, clientsSheet, 1, 1, t); err != nil {
		return err
	}
	return boldRow(wb, clientsSheet, 1, 1, len(t.Columns))
}

// writeAlertsSection writes one ALERTS section at the given start column:
// main header row 2, column headers row 4, data from row 5.
func writeAlertsSection(wb *project.Workbook, t *table.Table, header string, startCol int) error {
	cell, err := excelize.CoordinatesToCellName(startCol, 2)
	if err != nil {
		return err
	}
	if err := wb.WriteCell(alertsSheet, cell, header); err != nil {
		return err
	}
	if err := wb.Bold(alertsSheet, cell); err != nil {
		return err
	}
	if t.Len() == 0 {
		return nil
	}
	if err := writeHeadedTable(wb, alertsSheet, 4, startCol, t); err != nil {
		return err
	}
	return boldRow(wb, alertsSheet, 4, startCol, len(t.Columns))
}

// writeSummarySheet lays out the summary pivot: title at B2, headers at
// row 4 from column B, data from row 5. Repeated Empresa labels are
// blanked and the Grand Total row is bold.
func writeSummarySheet(wb *project.Workbook, summary *table.Table) error {
	if err := wb.WriteCell(summarySheet, "B2", "SUMMARY:"); err != nil {
		return err
	}
	if err := wb.Bold(summarySheet, "B2"); err != nil {
		return err
	}
	if summary.Len() == 0 {
		return nil
	}

	headers := append([]string{"Row Labels", ""}, summary.ColumnNames()[2:]...)
	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(2+c, 4)
		if err != nil {
			return err
		}
		if err := wb.WriteCell(summarySheet, cell, h); err != nil {
			return err
		}
		if err := wb.Bold(summarySheet, cell); err != nil {
			return err
		}
	}

	lastLabel := ""
	for r, row := range summary.Rows {
		label := table.CellText(row[0])
		isTotal := r == summary.Len()-1
		display := label
		if !isTotal && label == lastLabel {
			display = ""
		}
		lastLabel = label

		values := append([]any{display}, row[1:]...)
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(2+c, 5+r)
			if err != nil {
				return err
			}
			if err := wb.WriteCell(summarySheet, cell, v); err != nil {
				return err
			}
		}
		if isTotal {
			if err := boldRow(wb, summarySheet, 5+r, 2, len(values)); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeHeadedTable writes a table's header row and data rows at an anchor.
func writeHeadedTable(wb *project.Workbook, sheet string, row, col int, t *table.Table) error {
	for c, name := range t.ColumnNames() {
		cell, err := excelize.CoordinatesToCellName(col+c, row)
		if err != nil {
			return err
		}
		if err := wb.WriteCell(sheet, cell, name); err != nil {
			return err
		}
	}
	for r, dataRow := range t.Rows {
		for c, v := range dataRow {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+c, row+1+r)
			if err != nil {
				return err
			}
			if err := wb.WriteCell(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func boldRow(wb *project.Workbook, sheet string, row, startCol, width int) error {
	cells := make([]string, 0, width)
	for c := 0; c < width; c++ {
		cell, err := excelize.CoordinatesToCellName(startCol+c, row)
		if err != nil {
			return err
		}
		cells = append(cells, cell)
	}
	return wb.Bold(sheet, cells...)
}
