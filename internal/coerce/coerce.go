// Package coerce provides the try-parse-else-null primitives used by the
// cleaning pipeline. Each function reports whether the raw cell parsed; a
// false result means the caller should null the cell out. Nothing in this
// package returns an error: a bad cell is data, not a failure.
package coerce

import (
	"strconv"
	"strings"
	"time"
)

// Null is the canonical empty-cell marker in cleaned output. A coerced value
// that fails to parse is rewritten to Null rather than dropping the row.
const Null = ""

// timeLayouts are tried in order. Exports mix ISO timestamps with and without
// fractional seconds and plain dates, so the list is generous.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"01/02/2006",
}

// Int parses a cell as an integer. Values exported as floats with an integral
// part only ("13.0") are accepted, matching the lenient numeric coercion of
// the upstream exports.
func Int(s string) (int64, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// Float parses a cell as a floating-point number.
func Float(s string) (float64, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Time parses a cell as an absolute timestamp using a best-effort layout list.
func Time(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Milliseconds parses a cell as an integer millisecond duration. Lap-time
// exports carry durations as whole milliseconds in the "value" column.
func Milliseconds(s string) (int64, bool) {
	return Int(s)
}

// IntCell rewrites a cell to its canonical integer form, or Null.
func IntCell(s string) string {
	n, ok := Int(s)
	if !ok {
		return Null
	}
	return strconv.FormatInt(n, 10)
}

// FloatCell rewrites a cell to its canonical float form, or Null.
func FloatCell(s string) string {
	f, ok := Float(s)
	if !ok {
		return Null
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// TimeCell rewrites a cell to RFC 3339, or Null.
func TimeCell(s string) string {
	t, ok := Time(s)
	if !ok {
		return Null
	}
	return t.Format(time.RFC3339Nano)
}
