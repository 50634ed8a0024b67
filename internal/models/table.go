package models

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/history-csv/internal/dateutils"
)

// Table is an in-memory CSV: an ordered list of rows sharing one column set.
// Cells are kept as raw strings. Once a timestamp column has been typed with
// SetTimes, the parsed values travel with every row through Filter and Project.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
	origin  []int

	timeColumn string
	times      []time.Time
}

// NewTable builds a table from a header and its records. Column names must be
// unique and every record must have exactly one cell per column.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}

	origin := make([]int, len(rows))
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i+1, len(r), len(columns))
		}
		origin[i] = i
	}

	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    rows,
		origin:  origin,
	}, nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len is the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// MissingColumns returns the subset of names absent from the table, in the
// order given.
func (t *Table) MissingColumns(names []string) []string {
	var missing []string
	for _, n := range names {
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Value returns the raw cell at row i in column. Unknown columns yield "".
func (t *Table) Value(i int, column string) string {
	c, ok := t.index[column]
	if !ok {
		return ""
	}
	return t.rows[i][c]
}

// Action returns the Action cell of row i as an ActionType. The value is not
// checked; run the action validator first.
func (t *Table) Action(i int) ActionType {
	return ActionType(t.Value(i, ColumnAction))
}

// Column returns every value of column in row order.
func (t *Table) Column(column string) ([]string, error) {
	c, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("column %q not found", column)
	}
	values := make([]string, len(t.rows))
	for i, r := range t.rows {
		values[i] = r[c]
	}
	return values, nil
}

// DistinctValues returns the distinct values of column in first-seen order.
func (t *Table) DistinctValues(column string) ([]string, error) {
	values, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var distinct []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	return distinct, nil
}

// SourceIndex is the position row i had in the table originally loaded.
func (t *Table) SourceIndex(i int) int {
	return t.origin[i]
}

// SetTimes types column as a timestamp column holding times, one per row.
func (t *Table) SetTimes(column string, times []time.Time) error {
	if !t.HasColumn(column) {
		return fmt.Errorf("column %q not found", column)
	}
	if len(times) != len(t.rows) {
		return fmt.Errorf("got %d timestamps for %d rows", len(times), len(t.rows))
	}
	t.timeColumn = column
	t.times = times
	return nil
}

// TimeColumn returns the name of the typed timestamp column, if any.
func (t *Table) TimeColumn() (string, bool) {
	return t.timeColumn, t.times != nil
}

// Time returns the parsed timestamp of row i.
func (t *Table) Time(i int) (time.Time, bool) {
	if t.times == nil {
		return time.Time{}, false
	}
	return t.times[i], true
}

// Filter returns a new table holding the rows for which keep returns true.
// Row cells are shared with t, which must not be modified afterwards.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := &Table{
		columns:    t.columns,
		index:      t.index,
		timeColumn: t.timeColumn,
	}
	for i := range t.rows {
		if !keep(i) {
			continue
		}
		out.rows = append(out.rows, t.rows[i])
		out.origin = append(out.origin, t.origin[i])
		if t.times != nil {
			out.times = append(out.times, t.times[i])
		}
	}
	if t.times != nil && out.times == nil {
		out.times = []time.Time{}
	}
	return out
}

// Project returns a new table restricted to columns, in the order given.
func (t *Table) Project(columns []string) (*Table, error) {
	if missing := t.MissingColumns(columns); len(missing) > 0 {
		return nil, fmt.Errorf("columns not found: %s", strings.Join(missing, ", "))
	}

	positions := make([]int, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		positions[i] = t.index[c]
		index[c] = i
	}

	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		projected := make([]string, len(positions))
		for j, p := range positions {
			projected[j] = r[p]
		}
		rows[i] = projected
	}

	out := &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    rows,
		origin:  append([]int(nil), t.origin...),
	}
	if _, kept := index[t.timeColumn]; kept && t.times != nil {
		out.timeColumn = t.timeColumn
		out.times = append([]time.Time{}, t.times...)
	}
	return out, nil
}

// Records renders the table as CSV records without the header. Cells of the
// typed timestamp column are formatted with timeLayout, or
// dateutils.DateLayoutFullNano when it is empty.
func (t *Table) Records(timeLayout string) [][]string {
	timeCol := -1
	if t.times != nil {
		timeCol = t.index[t.timeColumn]
	}

	records := make([][]string, len(t.rows))
	for i, r := range t.rows {
		record := append([]string(nil), r...)
		if timeCol >= 0 {
			record[timeCol] = dateutils.FormatTimestamp(t.times[i], timeLayout)
		}
		records[i] = record
	}
	return records
}
