package table

// Partition is one key-value subset produced by Split.
type Partition struct {
	Key   string
	Table *Table
}

// Split partitions t by the distinct non-nil values of the key column,
// preserving source column order and row order within each subset. Subsets
// are returned in first-appearance order of their key; they are disjoint and
// jointly cover every row whose key is non-nil. A missing key column or a
// table with no non-nil keys yields no partitions — the caller treats that
// as "nothing to project".
func Split(t *Table, key string) []Partition {
	i := t.ColumnIndex(key)
	if i < 0 {
		return nil
	}
	index := make(map[string]int)
	var parts []Partition
	for _, row := range t.Rows {
		if row[i] == nil {
			continue
		}
		k := CellText(row[i])
		p, ok := index[k]
		if !ok {
			p = len(parts)
			index[k] = p
			parts = append(parts, Partition{
				Key:   k,
				Table: &Table{Columns: append([]Column(nil), t.Columns...)},
			})
		}
		parts[p].Table.Rows = append(parts[p].Table.Rows, append([]any(nil), row...))
	}
	return parts
}
