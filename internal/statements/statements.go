// Package statements queries the FP&A statements source: one workbook
// holding the named record sets the forecast generator consumes. Each
// record set has a fixed column projection; a missing record set or column
// is a fatal configuration error, named in the message.
package statements

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/finrep/internal/table"
	"github.com/klytics/finrep/internal/xlsxio"
)

// RecordSet names a sheet-shaped record set and its fixed projection.
type RecordSet struct {
	Name    string
	Columns []string
}

// ExpenseDetail is the detailed P&L record set used for the expense block
// of every forecast workbook.
var ExpenseDetail = RecordSet{
	Name: "fullDetailedP&L",
	Columns: []string{
		"company", "lineP&L", "centroCosto", "description",
		"cuentaContable", "descriptionCuentaContable",
		"mainOwner", "subOwner", "periodo", "saldoPEN",
	},
}

// HeadcountDetail is the headcount record set pivoted into the headcount
// block of every forecast workbook.
var HeadcountDetail = RecordSet{
	Name: "headcountFull",
	Columns: []string{
		"company", "period", "nameID", "centroCosto",
		"jobGeneral", "description", "mainOwner", "subOwner",
	},
}

// Query opens the statements workbook and returns the record set's rows
// projected to its declared columns, in declared order.
func Query(path string, rs RecordSet) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open statements source %s: %w", path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(rs.Name); err != nil || idx < 0 {
		return nil, fmt.Errorf("record set %q not found in %s — available: %v", rs.Name, path, f.GetSheetList())
	}
	full, err := xlsxio.LoadSheet(f, rs.Name)
	if err != nil {
		return nil, err
	}

	projected, missing := full.Select(rs.Columns)
	if len(missing) > 0 {
		return nil, fmt.Errorf("record set %q is missing required column %q", rs.Name, missing[0])
	}
	return projected, nil
}
