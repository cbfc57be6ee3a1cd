package table

import "testing"

func accountTable() *Table {
	tbl := New("cuentaContable", "v")
	tbl.AppendRow([]any{"701001", 1.0})
	tbl.AppendRow([]any{"621003", 2.0})
	tbl.AppendRow([]any{"705500", 3.0})
	tbl.AppendRow([]any{"401000", 4.0})
	return tbl
}

func TestKeepPrefix(t *testing.T) {
	got := KeepPrefix(accountTable(), "cuentaContable", "70")
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	for _, row := range got.Rows {
		if CellText(row[0])[:2] != "70" {
			t.Errorf("kept row with wrong prefix: %v", row)
		}
	}
}

func TestDropPrefix(t *testing.T) {
	src := accountTable()
	got := DropPrefix(src, "cuentaContable", "62")
	if got.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", got.Len())
	}
	if src.Len() != 4 {
		t.Errorf("source mutated by filter")
	}
}

func TestDropValues(t *testing.T) {
	tbl := New("estado")
	tbl.AppendRow([]any{"Activo"})
	tbl.AppendRow([]any{"Baja"})
	tbl.AppendRow([]any{"Baja Adm"})
	tbl.AppendRow([]any{"Suspendido"})

	got := DropValues(tbl, "estado", []string{"Baja", "Baja Adm"})
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
}

func TestKeepEqualAndDropEqual(t *testing.T) {
	tbl := New("tipo")
	tbl.AppendRow([]any{"Recurrente"})
	tbl.AppendRow([]any{"Unico"})

	if got := KeepEqual(tbl, "tipo", "Recurrente"); got.Len() != 1 {
		t.Errorf("KeepEqual: expected 1 row, got %d", got.Len())
	}
	if got := DropEqual(tbl, "tipo", "Recurrente"); got.Len() != 1 {
		t.Errorf("DropEqual: expected 1 row, got %d", got.Len())
	}
}

func TestDropColumns(t *testing.T) {
	tbl := New("a", "b", "c")
	tbl.AppendRow([]any{1.0, 2.0, 3.0})

	got := DropColumns(tbl, []string{"b", "missing"})
	names := got.ColumnNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("unexpected columns: %v", names)
	}
	if got.Rows[0][1].(float64) != 3 {
		t.Errorf("cell misaligned after drop: %v", got.Rows[0])
	}
}

func TestDistinctBy(t *testing.T) {
	tbl := New("Cliente", "n")
	tbl.AppendRow([]any{"acme", 1.0})
	tbl.AppendRow([]any{"acme", 2.0})
	tbl.AppendRow([]any{"zed", 3.0})

	got := DistinctBy(tbl, "Cliente")
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	if got.Rows[0][1].(float64) != 1 {
		t.Errorf("first occurrence must win: %v", got.Rows[0])
	}
}

func TestMissingColumnIsNoop(t *testing.T) {
	tbl := accountTable()
	if got := KeepPrefix(tbl, "nope", "70"); got.Len() != tbl.Len() {
		t.Errorf("missing column should keep all rows, got %d", got.Len())
	}
}

func TestConcatUnionsColumns(t *testing.T) {
	a := New("x", "y")
	a.AppendRow([]any{"1", "2"})
	b := New("y", "z")
	b.AppendRow([]any{"3", "4"})

	got := Concat(a, b)
	names := got.ColumnNames()
	if len(names) != 3 || names[0] != "x" || names[1] != "y" || names[2] != "z" {
		t.Fatalf("unexpected union columns: %v", names)
	}
	if got.Rows[1][0] != nil || got.Rows[1][1] != "3" || got.Rows[1][2] != "4" {
		t.Errorf("second row misaligned: %v", got.Rows[1])
	}
}
