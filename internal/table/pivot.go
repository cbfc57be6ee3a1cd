package table

import (
	"sort"
	"strings"
	"time"
)

// Agg selects the aggregation applied to a pivot's value column.
type Agg int

const (
	// AggSum sums numeric values per (index, bucket) cell.
	AggSum Agg = iota
	// AggCountDistinct counts distinct string forms per (index, bucket) cell.
	AggCountDistinct
)

// MonthOrder is the canonical bucket order for month-named columns.
var MonthOrder = []string{
	time.January.String(), time.February.String(), time.March.String(),
	time.April.String(), time.May.String(), time.June.String(),
	time.July.String(), time.August.String(), time.September.String(),
	time.October.String(), time.November.String(), time.December.String(),
}

// OrderBuckets sorts bucket names by a canonical vocabulary: listed names
// first in list order, unlisted names lexicographically after.
func OrderBuckets(buckets []string, canonical []string) []string {
	rank := make(map[string]int, len(canonical))
	for i, b := range canonical {
		rank[b] = i
	}
	out := append([]string(nil), buckets...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iOK := rank[out[i]]
		rj, jOK := rank[out[j]]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// Pivot reshapes t wide: one row per distinct index-column tuple, one
// Decimal column per distinct bucket value, cells aggregated from the value
// column and missing combinations filled with zero. Bucket columns appear
// in canonical order (bucketOrder, e.g. MonthOrder); buckets outside the
// vocabulary sort lexicographically after it. Index rows appear in
// first-appearance order.
func Pivot(t *Table, index []string, bucket, value string, agg Agg, bucketOrder []string) *Table {
	bi := t.ColumnIndex(bucket)
	vi := t.ColumnIndex(value)

	idx := make([]int, 0, len(index))
	for _, n := range index {
		if i := t.ColumnIndex(n); i >= 0 {
			idx = append(idx, i)
		}
	}

	type cellKey struct {
		row    string
		bucket string
	}
	var rowOrder []string
	rowTuples := make(map[string][]any)
	sums := make(map[cellKey]float64)
	distinct := make(map[cellKey]map[string]bool)
	var buckets []string
	seenBucket := make(map[string]bool)

	for _, row := range t.Rows {
		parts := make([]string, len(idx))
		tuple := make([]any, len(idx))
		for j, i := range idx {
			parts[j] = CellText(row[i])
			tuple[j] = row[i]
		}
		rk := strings.Join(parts, "\x1f")
		if _, ok := rowTuples[rk]; !ok {
			rowTuples[rk] = tuple
			rowOrder = append(rowOrder, rk)
		}

		if bi < 0 {
			continue
		}
		b := CellText(row[bi])
		if b == "" {
			continue
		}
		if !seenBucket[b] {
			seenBucket[b] = true
			buckets = append(buckets, b)
		}
		ck := cellKey{rk, b}
		switch agg {
		case AggCountDistinct:
			if distinct[ck] == nil {
				distinct[ck] = make(map[string]bool)
			}
			if vi >= 0 && row[vi] != nil {
				distinct[ck][CellText(row[vi])] = true
			}
		default:
			if vi >= 0 {
				sums[ck] += CellNumber(row[vi])
			}
		}
	}

	buckets = OrderBuckets(buckets, bucketOrder)

	out := &Table{}
	for _, i := range idx {
		out.Columns = append(out.Columns, t.Columns[i])
	}
	for _, b := range buckets {
		out.Columns = append(out.Columns, Column{Name: b, Kind: Decimal})
	}
	for _, rk := range rowOrder {
		row := append([]any(nil), rowTuples[rk]...)
		for _, b := range buckets {
			ck := cellKey{rk, b}
			if agg == AggCountDistinct {
				row = append(row, float64(len(distinct[ck])))
			} else {
				row = append(row, sums[ck])
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
