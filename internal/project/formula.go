package project

import (
	"regexp"
	"strconv"
)

// cellRefPattern matches A1-style references inside a formula, capturing the
// column absolute marker, column letters, row absolute marker and row digits.
var cellRefPattern = regexp.MustCompile(`(\$?)([A-Z]{1,3})(\$?)(\d+)`)

// ShiftFormula translates a formula's relative row references down by
// rowOffset, the way a spreadsheet fill-down does. Absolute rows ($A$1 or
// A$1) do not shift; column references never shift because extension is
// strictly vertical.
func ShiftFormula(formula string, rowOffset int) string {
	if rowOffset == 0 {
		return formula
	}
	return cellRefPattern.ReplaceAllStringFunc(formula, func(ref string) string {
		parts := cellRefPattern.FindStringSubmatch(ref)
		colAbs, col, rowAbs, digits := parts[1], parts[2], parts[3], parts[4]
		if rowAbs == "$" {
			return ref
		}
		row, err := strconv.Atoi(digits)
		if err != nil {
			return ref
		}
		return colAbs + col + rowAbs + strconv.Itoa(row+rowOffset)
	})
}
