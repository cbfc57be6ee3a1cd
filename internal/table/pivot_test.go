package table

import (
	"testing"
	"time"
)

func monthTable() *Table {
	tbl := New("owner", "periodo", "saldoPEN")
	jan := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)
	tbl.AppendRow([]any{"A", jan, 10.0})
	tbl.AppendRow([]any{"A", jan, 5.0})
	tbl.AppendRow([]any{"A", mar, 2.0})
	tbl.AppendRow([]any{"B", mar, 7.0})

	tbl.AddColumn("month", Text)
	mi := tbl.ColumnIndex("month")
	pi := tbl.ColumnIndex("periodo")
	for _, row := range tbl.Rows {
		row[mi] = MonthName(row[pi])
	}
	return tbl
}

func TestPivotSum(t *testing.T) {
	tbl := monthTable()
	p := Pivot(tbl, []string{"owner"}, "month", "saldoPEN", AggSum, MonthOrder)

	if got := p.ColumnNames(); len(got) != 3 || got[0] != "owner" || got[1] != "January" || got[2] != "March" {
		t.Fatalf("unexpected pivot columns: %v", got)
	}
	if p.Len() != 2 {
		t.Fatalf("expected 2 index rows, got %d", p.Len())
	}
	// A: Jan 15, Mar 2. B: Jan 0 (filled), Mar 7.
	if p.Rows[0][1].(float64) != 15 || p.Rows[0][2].(float64) != 2 {
		t.Errorf("row A wrong: %v", p.Rows[0])
	}
	if p.Rows[1][1].(float64) != 0 || p.Rows[1][2].(float64) != 7 {
		t.Errorf("row B wrong (missing combination must be zero): %v", p.Rows[1])
	}
}

func TestPivotRoundTrip(t *testing.T) {
	// Summing bucket columns per index row must reproduce the pre-pivot
	// per-index aggregate.
	tbl := monthTable()
	p := Pivot(tbl, []string{"owner"}, "month", "saldoPEN", AggSum, MonthOrder)

	direct := make(map[string]float64)
	oi := tbl.ColumnIndex("owner")
	si := tbl.ColumnIndex("saldoPEN")
	for _, row := range tbl.Rows {
		direct[CellText(row[oi])] += CellNumber(row[si])
	}

	for _, row := range p.Rows {
		var sum float64
		for j := 1; j < len(row); j++ {
			sum += CellNumber(row[j])
		}
		if sum != direct[CellText(row[0])] {
			t.Errorf("round trip failed for %v: %v != %v", row[0], sum, direct[CellText(row[0])])
		}
	}
}

func TestPivotCountDistinct(t *testing.T) {
	tbl := New("team", "month", "nameID")
	tbl.AppendRow([]any{"X", "January", "p1"})
	tbl.AppendRow([]any{"X", "January", "p1"}) // duplicate person
	tbl.AppendRow([]any{"X", "January", "p2"})
	tbl.AppendRow([]any{"X", "February", "p1"})

	p := Pivot(tbl, []string{"team"}, "month", "nameID", AggCountDistinct, MonthOrder)
	if p.Rows[0][1].(float64) != 2 {
		t.Errorf("expected 2 distinct in January, got %v", p.Rows[0][1])
	}
	if p.Rows[0][2].(float64) != 1 {
		t.Errorf("expected 1 distinct in February, got %v", p.Rows[0][2])
	}
}

func TestPivotCanonicalBucketOrder(t *testing.T) {
	tbl := New("k", "month", "v")
	// Appearance order deliberately scrambled.
	tbl.AppendRow([]any{"a", "December", 1.0})
	tbl.AppendRow([]any{"a", "January", 1.0})
	tbl.AppendRow([]any{"a", "June", 1.0})

	p := Pivot(tbl, []string{"k"}, "month", "v", AggSum, MonthOrder)
	got := p.ColumnNames()
	want := []string{"k", "January", "June", "December"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected columns %v, got %v", want, got)
		}
	}
}

func TestOrderBucketsUnknownAfterKnown(t *testing.T) {
	got := OrderBuckets([]string{"Zeta", "March", "Alpha", "January"}, MonthOrder)
	want := []string{"January", "March", "Alpha", "Zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
