package table

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func mustRead(t *testing.T, data string, delim rune) *Table {
	t.Helper()
	tbl, err := Read(strings.NewReader(data), delim)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return tbl
}

func TestReadPadsRaggedRows(t *testing.T) {
	tbl := mustRead(t, "a;b;c\n1;2\n1;2;3;4\n", ';')
	if len(tbl.Columns) != 3 {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	want := [][]string{{"1", "2", ""}, {"1", "2", "3"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %v, want %v", tbl.Rows, want)
	}
}

func TestDropEmptyColumns(t *testing.T) {
	tbl := mustRead(t, "a,b,c\n1,,x\n2,,y\n", ',')
	tbl.DropEmptyColumns()
	if !reflect.DeepEqual(tbl.Columns, []string{"a", "c"}) {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	if !reflect.DeepEqual(tbl.Rows[0], []string{"1", "x"}) {
		t.Fatalf("row 0 = %v", tbl.Rows[0])
	}
}

func TestDropDuplicatesKeepsFirstInOrder(t *testing.T) {
	tbl := mustRead(t, "a,b\n1,x\n2,y\n1,x\n3,z\n2,y\n", ',')
	tbl.DropDuplicates()
	want := [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %v, want %v", tbl.Rows, want)
	}
	// Exhaustive: a second pass removes nothing.
	n := tbl.Len()
	tbl.DropDuplicates()
	if tbl.Len() != n {
		t.Fatalf("second dedup changed row count: %d -> %d", n, tbl.Len())
	}
}

func TestDecimateKeepsCeil(t *testing.T) {
	cases := []struct {
		rows, n, want int
	}{
		{25, 10, 3},
		{10, 10, 1},
		{9, 10, 1},
		{30, 10, 3},
		{5, 1, 5},
	}
	for _, c := range cases {
		tbl := New([]string{"i"})
		for i := 0; i < c.rows; i++ {
			tbl.AppendRow([]string{string(rune('a' + i%26))})
		}
		tbl.Decimate(c.n)
		if tbl.Len() != c.want {
			t.Errorf("Decimate(%d) on %d rows: got %d, want %d", c.n, c.rows, tbl.Len(), c.want)
		}
	}
}

func TestSortByNumericNullsLast(t *testing.T) {
	tbl := mustRead(t, "pos,name\n10,j\n,missing\n2,b\n1,a\n", ',')
	tbl.SortBy([]SortKey{{Column: "pos", Numeric: true}})
	var order []string
	for _, row := range tbl.Rows {
		order = append(order, row[1])
	}
	want := []string{"a", "b", "j", "missing"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestSortByMultiKeyStable(t *testing.T) {
	tbl := mustRead(t, "car,lap,z\nB,2,1\nA,10,2\nA,2,3\nB,1,4\n", ',')
	tbl.SortBy([]SortKey{{Column: "car"}, {Column: "lap", Numeric: true}})
	var got []string
	for _, row := range tbl.Rows {
		got = append(got, row[0]+row[1])
	}
	// Numeric lap order: 2 before 10, not lexicographic.
	want := []string{"A2", "A10", "B1", "B2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortByMissingColumnIsNoop(t *testing.T) {
	tbl := mustRead(t, "a\n2\n1\n", ',')
	tbl.SortBy([]SortKey{{Column: "nope", Numeric: true}})
	if tbl.Rows[0][0] != "2" {
		t.Fatalf("rows reordered by absent key: %v", tbl.Rows)
	}
}

func TestAppendAlignsColumns(t *testing.T) {
	a := mustRead(t, "x,y\n1,2\n", ',')
	b := mustRead(t, "y,z\n3,4\n", ',')
	a.Append(b)
	if !reflect.DeepEqual(a.Columns, []string{"x", "y", "z"}) {
		t.Fatalf("columns = %v", a.Columns)
	}
	want := [][]string{{"1", "2", ""}, {"", "3", "4"}}
	if !reflect.DeepEqual(a.Rows, want) {
		t.Fatalf("rows = %v, want %v", a.Rows, want)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	tbl := mustRead(t, "a;b\n1;x\n2;y\n", ';')
	if err := tbl.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	// Output is always comma-separated regardless of input delimiter.
	if string(data) != "a,b\n1,x\n2,y\n" {
		t.Fatalf("output = %q", string(data))
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestReadEmptyInputFails(t *testing.T) {
	if _, err := Read(strings.NewReader(""), ','); err == nil {
		t.Fatal("expected error for empty input")
	}
}
