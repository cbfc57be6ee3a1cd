package table

import "strings"

// Row predicates and column pruning. Each function is pure: it returns a new
// table and leaves the source untouched. Prefix polarity is deliberate at
// every call site — the sales consolidation keeps account codes starting
// "70" while the forecast drops those starting "62" — so there is no single
// default-polarity prefix filter.

func (t *Table) filter(keep func(row []any) bool) *Table {
	out := &Table{Columns: append([]Column(nil), t.Columns...)}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, append([]any(nil), row...))
		}
	}
	return out
}

// KeepPrefix retains rows whose column's string form starts with prefix.
func KeepPrefix(t *Table, column, prefix string) *Table {
	i := t.ColumnIndex(column)
	if i < 0 {
		return t.Clone()
	}
	return t.filter(func(row []any) bool {
		return strings.HasPrefix(CellText(row[i]), prefix)
	})
}

// DropPrefix retains rows whose column's string form does not start with prefix.
func DropPrefix(t *Table, column, prefix string) *Table {
	i := t.ColumnIndex(column)
	if i < 0 {
		return t.Clone()
	}
	return t.filter(func(row []any) bool {
		return !strings.HasPrefix(CellText(row[i]), prefix)
	})
}

// KeepEqual retains rows whose column's string form equals value.
func KeepEqual(t *Table, column, value string) *Table {
	i := t.ColumnIndex(column)
	if i < 0 {
		return t.Clone()
	}
	return t.filter(func(row []any) bool {
		return CellText(row[i]) == value
	})
}

// DropEqual retains rows whose column's string form differs from value.
func DropEqual(t *Table, column, value string) *Table {
	i := t.ColumnIndex(column)
	if i < 0 {
		return t.Clone()
	}
	return t.filter(func(row []any) bool {
		return CellText(row[i]) != value
	})
}

// DropValues retains rows whose column value is not a member of values.
func DropValues(t *Table, column string, values []string) *Table {
	i := t.ColumnIndex(column)
	if i < 0 {
		return t.Clone()
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return t.filter(func(row []any) bool {
		return !set[CellText(row[i])]
	})
}

// KeepValues retains rows whose column value is a member of values.
func KeepValues(t *Table, column string, values []string) *Table {
	i := t.ColumnIndex(column)
	if i < 0 {
		return t.Clone()
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return t.filter(func(row []any) bool {
		return set[CellText(row[i])]
	})
}

// DropColumns returns a table without the named columns. Unknown names are
// ignored.
func DropColumns(t *Table, names []string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var keep []string
	for _, c := range t.Columns {
		if !drop[c.Name] {
			keep = append(keep, c.Name)
		}
	}
	out, _ := t.Select(keep)
	return out
}

// DistinctBy retains the first row per distinct value of column.
func DistinctBy(t *Table, column string) *Table {
	i := t.ColumnIndex(column)
	if i < 0 {
		return t.Clone()
	}
	seen := make(map[string]bool)
	return t.filter(func(row []any) bool {
		key := CellText(row[i])
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}

// DistinctValues returns the distinct non-nil string forms of a column in
// first-appearance order.
func DistinctValues(t *Table, column string) []string {
	i := t.ColumnIndex(column)
	if i < 0 {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.Rows {
		if row[i] == nil {
			continue
		}
		v := CellText(row[i])
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
