// Package table implements the in-memory record table the cleaning pipeline
// operates on: an ordered set of rows over a named column set, read from and
// written back to delimited text. Cells are raw text; the empty cell is the
// null marker.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/utils"
)

// Table holds an ordered sequence of rows. Every row has exactly
// len(Columns) cells; Read pads or truncates ragged records.
type Table struct {
	Columns []string
	Rows    [][]string
}

// SortKey designates one sort column. Numeric keys compare as floats,
// everything else compares as text.
type SortKey struct {
	Column  string
	Numeric bool
}

// New returns an empty table over the given column set.
func New(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Read loads a delimited table. The first record is the header and defines
// the column set.
func Read(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input: no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := New(header)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		t.AppendRow(rec)
	}
	return t, nil
}

// ReadFile loads a delimited table from disk.
func ReadFile(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Read(f, delim)
}

// AppendRow adds one record, padding or truncating it to the column count.
func (t *Table) AppendRow(rec []string) {
	row := make([]string, len(t.Columns))
	copy(row, rec)
	t.Rows = append(t.Rows, row)
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Apply rewrites every cell of the named column through fn. A column absent
// from the table is skipped silently.
func (t *Table) Apply(column string, fn func(string) string) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return
	}
	for _, row := range t.Rows {
		row[idx] = fn(row[idx])
	}
}

// Filter keeps only rows for which keep returns true, preserving order.
func (t *Table) Filter(keep func(row []string) bool) {
	out := t.Rows[:0]
	for _, row := range t.Rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	t.Rows = out
}

// DropEmptyColumns removes columns that are null in every row.
func (t *Table) DropEmptyColumns() {
	var keep []int
	for i := range t.Columns {
		for _, row := range t.Rows {
			if row[i] != "" {
				keep = append(keep, i)
				break
			}
		}
	}
	if len(keep) == len(t.Columns) {
		return
	}
	cols := make([]string, len(keep))
	for j, i := range keep {
		cols[j] = t.Columns[i]
	}
	for r, row := range t.Rows {
		next := make([]string, len(keep))
		for j, i := range keep {
			next[j] = row[i]
		}
		t.Rows[r] = next
	}
	t.Columns = cols
}

// DropDuplicates removes rows identical across all columns, keeping the
// first occurrence. Order is otherwise preserved.
func (t *Table) DropDuplicates() {
	seen := make(map[string]struct{}, len(t.Rows))
	out := t.Rows[:0]
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	t.Rows = out
}

// Decimate keeps every nth row by position starting with the first, so a
// table of B rows retains ceil(B/n). Selection is positional, not random:
// the survivors are biased by position and must not be treated as a uniform
// sample of the input.
func (t *Table) Decimate(n int) {
	if n <= 1 {
		return
	}
	out := t.Rows[:0]
	for i := 0; i < len(t.Rows); i += n {
		out = append(out, t.Rows[i])
	}
	t.Rows = out
}

// SortBy stably sorts rows ascending by the given keys. A row whose key cell
// is null, or fails numeric parsing for a numeric key, orders after every
// row with a usable key. Keys absent from the column set are ignored.
func (t *Table) SortBy(keys []SortKey) {
	type keyIdx struct {
		idx     int
		numeric bool
	}
	var resolved []keyIdx
	for _, k := range keys {
		if idx := t.ColumnIndex(k.Column); idx >= 0 {
			resolved = append(resolved, keyIdx{idx: idx, numeric: k.Numeric})
		}
	}
	if len(resolved) == 0 {
		return
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		for _, k := range resolved {
			cmp := compareCells(a[k.idx], b[k.idx], k.numeric)
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

// compareCells orders two cells for one sort key. Nulls sort last.
func compareCells(a, b string, numeric bool) int {
	if numeric {
		fa, oka := parseKey(a)
		fb, okb := parseKey(b)
		switch {
		case oka && okb:
			if fa < fb {
				return -1
			}
			if fa > fb {
				return 1
			}
			return 0
		case oka:
			return -1
		case okb:
			return 1
		default:
			return 0
		}
	}
	if a == "" || b == "" {
		switch {
		case a == "" && b == "":
			return 0
		case b == "":
			return -1
		default:
			return 1
		}
	}
	return strings.Compare(a, b)
}

func parseKey(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Append concatenates another table onto this one, aligning by column name.
// Columns present only in other are added with null cells for existing rows;
// cells for columns missing from other are null.
func (t *Table) Append(other *Table) {
	for _, c := range other.Columns {
		if t.ColumnIndex(c) >= 0 {
			continue
		}
		t.Columns = append(t.Columns, c)
		for i, row := range t.Rows {
			t.Rows[i] = append(row, "")
		}
	}
	idx := make([]int, len(other.Columns))
	for i, c := range other.Columns {
		idx[i] = t.ColumnIndex(c)
	}
	for _, row := range other.Rows {
		next := make([]string, len(t.Columns))
		for i, v := range row {
			next[idx[i]] = v
		}
		t.Rows = append(t.Rows, next)
	}
}

// Write serializes the table as comma-separated text with a header row.
// Output is always comma-delimited regardless of the input delimiter.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path via a temp file and atomic rename, so a
// failed run never leaves a truncated output behind.
func (t *Table) WriteFile(path string) error {
	var sb strings.Builder
	if err := t.Write(&sb); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, []byte(sb.String()))
}
