package table

import (
	"sort"
	"strings"
)

// SummarySpec describes a group-aggregate with ordered reindexing: group by
// RowDims, spread ColDim across columns, count distinct Target values per
// cell. Each dimension's vocabulary is its priority list followed by any
// remaining observed values in lexicographic order.
type SummarySpec struct {
	RowDims    []string
	RowOrder   map[string][]string // priority list per row dimension
	ColDim     string
	ColOrder   []string // priority list for the column dimension
	Target     string
	TotalLabel string // defaults to "Grand Total"
}

// Summarize builds the summary aggregate: the row set is the cross product
// of the row-dimension vocabularies, absent combinations filled with zero,
// rows whose measures are all zero dropped, and a trailing total row equal
// to the column-wise sum of the retained rows. Column-dimension buckets from
// the priority list are always present, even when entirely zero.
func Summarize(t *Table, spec SummarySpec) *Table {
	total := spec.TotalLabel
	if total == "" {
		total = "Grand Total"
	}

	rowIdx := make([]int, len(spec.RowDims))
	for i, d := range spec.RowDims {
		rowIdx[i] = t.ColumnIndex(d)
	}
	ci := t.ColumnIndex(spec.ColDim)
	ti := t.ColumnIndex(spec.Target)

	// Per-dimension vocabulary: priority ++ remaining observed, sorted.
	vocab := make([][]string, len(spec.RowDims))
	for i, d := range spec.RowDims {
		observed := DistinctValues(t, d)
		vocab[i] = mergeVocabulary(spec.RowOrder[d], observed)
	}
	cols := mergeVocabulary(spec.ColOrder, DistinctValues(t, spec.ColDim))

	// Count distinct targets per (row tuple, column bucket).
	counts := make(map[string]map[string]bool)
	for _, row := range t.Rows {
		parts := make([]string, len(rowIdx))
		for j, i := range rowIdx {
			if i >= 0 {
				parts[j] = CellText(row[i])
			}
		}
		var bucket string
		if ci >= 0 {
			bucket = CellText(row[ci])
		}
		key := strings.Join(parts, "\x1f") + "\x1f" + bucket
		if counts[key] == nil {
			counts[key] = make(map[string]bool)
		}
		if ti >= 0 && row[ti] != nil {
			counts[key][CellText(row[ti])] = true
		}
	}

	out := &Table{}
	for _, d := range spec.RowDims {
		out.Columns = append(out.Columns, Column{Name: d})
	}
	for _, c := range cols {
		out.Columns = append(out.Columns, Column{Name: c, Kind: Decimal})
	}

	totals := make([]float64, len(cols))
	var emit func(depth int, tuple []string)
	emit = func(depth int, tuple []string) {
		if depth < len(vocab) {
			for _, v := range vocab[depth] {
				emit(depth+1, append(tuple, v))
			}
			return
		}
		row := make([]any, 0, len(tuple)+len(cols))
		for _, v := range tuple {
			row = append(row, v)
		}
		allZero := true
		measures := make([]float64, len(cols))
		for j, c := range cols {
			key := strings.Join(tuple, "\x1f") + "\x1f" + c
			n := float64(len(counts[key]))
			measures[j] = n
			if n != 0 {
				allZero = false
			}
		}
		if allZero {
			return
		}
		for j, n := range measures {
			row = append(row, n)
			totals[j] += n
		}
		out.Rows = append(out.Rows, row)
	}
	emit(0, nil)

	totalRow := make([]any, 0, len(spec.RowDims)+len(cols))
	totalRow = append(totalRow, total)
	for i := 1; i < len(spec.RowDims); i++ {
		totalRow = append(totalRow, "")
	}
	for _, n := range totals {
		totalRow = append(totalRow, n)
	}
	out.Rows = append(out.Rows, totalRow)
	return out
}

func mergeVocabulary(priority, observed []string) []string {
	out := append([]string(nil), priority...)
	in := make(map[string]bool, len(priority))
	for _, v := range priority {
		in[v] = true
	}
	var rest []string
	for _, v := range observed {
		if !in[v] {
			rest = append(rest, v)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
