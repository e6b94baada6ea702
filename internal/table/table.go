package table

import (
	"fmt"
	"math"
	"slices"
)

// missing is the type of NA.
type missing struct{}

func (missing) String() string { return "NA" }

// NA marks a cell whose source value was absent or one of the configured
// missing-value markers. Normalize replaces it with nil.
var NA = missing{}

// Table is a column-ordered tabular input: the mapping table, the existing
// test-case table or the input-sample table.
//
// Cells hold nil, string, int64, float64, bool or NA. Loaders may also
// produce nested []any / map[string]any values for JSON and YAML sources.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Append adds a row. The row must have exactly one cell per column.
func (t *Table) Append(cells ...any) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, append([]any(nil), cells...))
	return nil
}

// Len returns the number of rows. A nil table has zero rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsMissing reports whether v is a missing-value marker: NA, or a float
// that JSON cannot represent.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case missing:
		return true
	case float64:
		return math.IsNaN(x) || math.IsInf(x, 0)
	case float32:
		f := float64(x)
		return math.IsNaN(f) || math.IsInf(f, 0)
	}
	return false
}

// Normalize returns a copy of the table with every missing-value marker
// replaced by nil. Nested lists and objects are normalized too.
// The receiver is not modified.
func (t *Table) Normalize() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]any, len(t.Rows)),
	}
	for i, row := range t.Rows {
		nr := make([]any, len(row))
		for j, cell := range row {
			nr[j] = NormalizeValue(cell)
		}
		out.Rows[i] = nr
	}
	return out
}

// NormalizeValue replaces missing-value markers in v with nil, recursing
// into []any and map[string]any.
func NormalizeValue(v any) any {
	if IsMissing(v) {
		return nil
	}
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = NormalizeValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = NormalizeValue(e)
		}
		return out
	}
	return v
}

// Record is one row keyed by column name, iterated in column order.
type Record struct {
	Keys   []string
	Values []any
}

// Get returns the value for column name. A short row reports false for
// the columns it lacks.
func (r Record) Get(name string) (any, bool) {
	for i, k := range r.Keys {
		if k == name {
			if i >= len(r.Values) {
				return nil, false
			}
			return r.Values[i], true
		}
	}
	return nil, false
}

// Records returns the rows as ordered records. A nil table yields an
// empty, non-nil slice.
func (t *Table) Records() []Record {
	if t == nil {
		return []Record{}
	}
	out := make([]Record, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = Record{Keys: t.Columns, Values: row}
	}
	return out
}

// Column returns the values of the named column, or false if the table has
// no such column.
func (t *Table) Column(name string) ([]any, bool) {
	if t == nil {
		return nil, false
	}
	if !slices.Contains(t.Columns, name) {
		return nil, false
	}
	records := t.Records()
	out := make([]any, len(records))
	for i, rec := range records {
		out[i], _ = rec.Get(name)
	}
	return out, true
}
