package cleanse

import (
	"strings"

	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/coerce"
	"github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/internal/table"
)

// valueColumn is the dual-meaning column of the lap timing exports.
const valueColumn = "value"

// Normalize coerces every declared column of t in place. A cell that fails
// coercion becomes the null marker; the row survives. Columns the descriptor
// names but the file lacks are skipped silently, and columns the descriptor
// does not name are passed through trimmed.
func Normalize(t *table.Table, d Descriptor) {
	declared := make(map[string]struct{})
	for _, c := range d.IntCols {
		declared[c] = struct{}{}
		t.Apply(c, coerce.IntCell)
	}
	for _, c := range d.FloatCols {
		declared[c] = struct{}{}
		t.Apply(c, coerce.FloatCell)
	}
	for _, c := range d.TimeCols {
		if c == valueColumn {
			continue
		}
		declared[c] = struct{}{}
		t.Apply(c, coerce.TimeCell)
	}
	switch d.Value {
	case ValueMillis:
		declared[valueColumn] = struct{}{}
		t.Apply(valueColumn, coerce.IntCell)
	case ValueTimestamp:
		declared[valueColumn] = struct{}{}
		t.Apply(valueColumn, coerce.TimeCell)
	}
	for _, c := range t.Columns {
		if _, ok := declared[c]; ok {
			continue
		}
		t.Apply(c, strings.TrimSpace)
	}
}

// applySentinel drops rows whose bounded cell is not a number strictly below
// the configured maximum. Null cells fail the bound.
func applySentinel(t *table.Table, s *Sentinel) {
	if s == nil {
		return
	}
	idx := t.ColumnIndex(s.Column)
	if idx < 0 {
		return
	}
	t.Filter(func(row []string) bool {
		f, ok := coerce.Float(row[idx])
		return ok && f < s.Max
	})
}

// Clean runs the full in-memory pipeline for one table: normalize, sentinel
// filter, empty-column drop, dedup, sort. The row count only ever shrinks.
func Clean(t *table.Table, d Descriptor) {
	Normalize(t, d)
	applySentinel(t, d.Sentinel)
	t.DropEmptyColumns()
	t.DropDuplicates()
	t.SortBy(d.SortKeys)
}
