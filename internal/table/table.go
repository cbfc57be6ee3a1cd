// Package table provides the typed in-memory table that all reporting
// workflows transform. A table is an ordered set of named, typed columns and
// an ordered list of rows; a nil cell is a null.
package table

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the declared type of a column after normalization.
type Kind int

const (
	// Text is the default kind for freshly loaded columns.
	Text Kind = iota
	// Decimal holds float64 cells.
	Decimal
	// Date holds time.Time cells (calendar dates, no time of day semantics).
	Date
	// Integer holds int64 cells.
	Integer
)

// Column is one named, typed column of a Table.
type Column struct {
	Name string
	Kind Kind
}

// Table is an ordered sequence of rows sharing a fixed set of named columns.
// Every row has a cell (possibly nil) for every column; column order is
// stable and significant for output projection.
type Table struct {
	Columns []Column
	Rows    [][]any
}

// New creates an empty table with Text columns of the given names.
func New(names ...string) *Table {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n}
	}
	return &Table{Columns: cols}
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column is declared.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnNames returns the declared column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// AppendRow adds a row. Short rows are padded with nil, long rows truncated,
// so the every-column invariant holds regardless of the caller.
func (t *Table) AppendRow(row []any) {
	r := make([]any, len(t.Columns))
	copy(r, row)
	t.Rows = append(t.Rows, r)
}

// AddColumn declares a new column of the given kind and extends every
// existing row with a nil cell. Returns the new column's index.
func (t *Table) AddColumn(name string, kind Kind) int {
	t.Columns = append(t.Columns, Column{Name: name, Kind: kind})
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], nil)
	}
	return len(t.Columns) - 1
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Columns: append([]Column(nil), t.Columns...)}
	out.Rows = make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = append([]any(nil), r...)
	}
	return out
}

// Select returns a new table holding only the named columns, in the given
// order. Names not declared on the receiver are skipped and reported in the
// second return value so callers can surface a data-quality warning.
func (t *Table) Select(names []string) (*Table, []string) {
	var idx []int
	var missing []string
	out := &Table{}
	for _, n := range names {
		i := t.ColumnIndex(n)
		if i < 0 {
			missing = append(missing, n)
			continue
		}
		idx = append(idx, i)
		out.Columns = append(out.Columns, t.Columns[i])
	}
	out.Rows = make([][]any, len(t.Rows))
	for r, row := range t.Rows {
		nr := make([]any, len(idx))
		for j, i := range idx {
			nr[j] = row[i]
		}
		out.Rows[r] = nr
	}
	return out, missing
}

// Concat appends the rows of others onto a new table whose columns are the
// union of all input columns (receiver's columns first, then new ones in
// first-appearance order). Cells for columns a source table lacks are nil.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		for _, c := range t.Columns {
			if out.ColumnIndex(c.Name) < 0 {
				out.Columns = append(out.Columns, c)
			}
		}
	}
	for _, t := range tables {
		// Map source column positions onto the union layout once per table.
		pos := make([]int, len(t.Columns))
		for i, c := range t.Columns {
			pos[i] = out.ColumnIndex(c.Name)
		}
		for _, row := range t.Rows {
			nr := make([]any, len(out.Columns))
			for i, v := range row {
				nr[pos[i]] = v
			}
			out.Rows = append(out.Rows, nr)
		}
	}
	return out
}

// CellText renders a cell as its string form; nil renders as "".
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// CellNumber renders a cell as a float64; nil and non-numeric cells are 0.
func CellNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
