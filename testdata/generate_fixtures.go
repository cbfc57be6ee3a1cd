//go:build ignore

// Generates sample workbooks for manual testing of the finrep workflows:
// two sales extracts, a financial statements source, and the expense and
// forecast templates. Run with:
//
//	go run testdata/generate_fixtures.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

func main() {
	dir := "testdata/fixtures"
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal(err)
	}

	generators := map[string]func(string) error{
		"ventas-diciembre-FLXTECH.xlsx": salesExtract("FLXTECH"),
		"ventas-diciembre-NXT.xlsx":     salesExtract("NXT"),
		"statements.xlsx":               statementsSource,
		"expense_template.xlsx":         expenseTemplate,
		"forecast_template.xlsx":        forecastTemplate,
	}
	for name, gen := range generators {
		path := filepath.Join(dir, name)
		if err := gen(path); err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		fmt.Println("wrote", path)
	}
}

func salesExtract(company string) func(string) error {
	return func(path string) error {
		f := excelize.NewFile()
		defer f.Close()
		rows := [][]any{
			{"Cuenta Contable", "Fuente", "Crédito Local", "Débito Local", "Fecha"},
			{"701001", "INTERFASCE ODOO FAC #1234", 150.0, 50.0, "2023-12-05"},
			{"702002", "N/C #88", 20.0, 0.0, "2023-12-12"},
			{"601001", "FAC #999", 10.0, 0.0, "2023-12-20"}, // filtered out: not a 70 account
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
				return err
			}
		}
		return f.SaveAs(path)
	}
}

func statementsSource(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	expenses := [][]any{
		{"company", "lineP&L", "centroCosto", "description", "cuentaContable", "descriptionCuentaContable", "mainOwner", "subOwner", "periodo", "saldoPEN"},
		{"ROP", "Opex", "CC1", "Cloud hosting", "631001", "Servicios", "Ana", "North", "2023-01-15", 100.0},
		{"FLXTECH", "Opex", "CC1", "Cloud hosting", "631001", "Servicios", "Ana", "North", "2023-02-15", 50.0},
		{"NXT", "Opex", "CC2", "Licenses", "632001", "Licencias", "Ana", "South", "2023-03-10", 75.0},
		{"FLXTECH", "Capex", "CC3", "Laptops", "620001", "Equipos", "Ana", "North", "2023-01-20", 999.0}, // dropped: 62 account
	}
	if err := writeSheet(f, "fullDetailedP&L", expenses); err != nil {
		return err
	}

	headcount := [][]any{
		{"company", "centroCosto", "description", "jobGeneral", "nameID", "mainOwner", "subOwner", "period"},
		{"FLXTECH", "CC1", "Engineering", "Engineer", "E1", "Ana", "North", "2023-01-15"},
		{"FLXTECH", "CC1", "Engineering", "Engineer", "E2", "Ana", "North", "2023-01-15"},
		{"FLXTECH", "CC1", "Engineering", "Engineer", "E1", "Ana", "North", "2023-02-15"},
	}
	if err := writeSheet(f, "headcountFull", headcount); err != nil {
		return err
	}
	f.DeleteSheet("Sheet1")
	return f.SaveAs(path)
}

func expenseTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "expenseDetail")

	headers := []any{"Company", "Cost Center", "Description", "Account", "Account Name", "Period", "Balance PEN"}
	cell, _ := excelize.CoordinatesToCellName(3, 7)
	if err := f.SetSheetRow("expenseDetail", cell, &headers); err != nil {
		return err
	}
	f.SetCellValue("expenseDetail", "D4", "OWNER PLACEHOLDER")
	return f.SaveAs(path)
}

func forecastTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "forecastExpenses")
	if _, err := f.NewSheet("forecastHeadcount"); err != nil {
		return err
	}

	f.SetCellValue("forecastExpenses", "D4", "OWNER")
	f.SetCellValue("forecastExpenses", "D5", "SUB OWNER")
	if err := f.SetCellFormula("forecastExpenses", "AH8", "=SUM(C8:AG8)"); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
