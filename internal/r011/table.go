package r011

import (
	"math"
	"strconv"
	"strings"
)

// Table is an ordered, in-memory tabular dataset. Cells are kept as strings
// the way excelize/xls deliver them; numeric consumers coerce on read.
// Pipeline steps treat a Table as immutable and return a new one, so each
// step can be tested in isolation.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a Table from a header row and data rows. Rows shorter than
// the header are padded with empty cells; longer rows are truncated.
func NewTable(columns []string, rows [][]string) Table {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
	}
	data := make([][]string, len(rows))
	for i, row := range rows {
		r := make([]string, len(cols))
		for j := range cols {
			if j < len(row) {
				r[j] = row[j]
			}
		}
		data[i] = r
	}
	return Table{Columns: cols, Rows: data, index: buildIndex(cols)}
}

func buildIndex(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, seen := idx[c]; !seen {
			idx[c] = i
		}
	}
	return idx
}

// ColIndex returns the position of a column, or -1 when absent.
func (t Table) ColIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	return t.ColIndex(name) >= 0
}

// Cell returns the trimmed value at (row, column); empty string when the
// column is absent or the row is out of range.
func (t Table) Cell(row int, name string) string {
	i := t.ColIndex(name)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][i])
}

// WithColumn returns a copy of the table with the named column set to the
// given values (added at the end when new, overwritten in place when it
// already exists). values must have one entry per row.
func (t Table) WithColumn(name string, values []string) Table {
	out := t.clone()
	i := out.ColIndex(name)
	if i < 0 {
		out.Columns = append(out.Columns, name)
		i = len(out.Columns) - 1
		out.index = buildIndex(out.Columns)
		for r := range out.Rows {
			out.Rows[r] = append(out.Rows[r], "")
		}
	}
	for r := range out.Rows {
		if r < len(values) {
			out.Rows[r][i] = values[r]
		}
	}
	return out
}

// Filter returns a copy keeping only rows for which keep returns true.
// Row order is preserved.
func (t Table) Filter(keep func(row []string) bool) Table {
	out := Table{Columns: append([]string(nil), t.Columns...), index: buildIndex(t.Columns)}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out
}

func (t Table) clone() Table {
	cols := append([]string(nil), t.Columns...)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row...)
	}
	return Table{Columns: cols, Rows: rows, index: buildIndex(cols)}
}

// allEmptyRow reports whether every cell in the row is empty or whitespace.
func allEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cleanAmount strips thousands separators and surrounding whitespace before
// numeric parsing.
func cleanAmount(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

// parseNumber coerces a cell to float64. Invalid or empty cells yield NaN,
// never an error; callers decide whether NaN means zero or null.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(cleanAmount(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// numberOrZero coerces a cell to float64 with the invalid-means-zero policy.
func numberOrZero(s string) float64 {
	v := parseNumber(s)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// formatNumber renders a float without trailing zeros, matching how the
// report displays derived numeric columns.
func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
