package r011

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	t.Parallel()

	t.Run("pads short rows and truncates long ones", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{"A", "B", "C"}, [][]string{
			{"1"},
			{"1", "2", "3", "4"},
		})
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, []string{"1", "", ""}, tbl.Rows[0])
		assert.Equal(t, []string{"1", "2", "3"}, tbl.Rows[1])
	})

	t.Run("trims header whitespace", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{" Sucursal ", "Tienda"}, nil)
		assert.Equal(t, 0, tbl.ColIndex("Sucursal"))
		assert.True(t, tbl.HasColumn("Tienda"))
		assert.Equal(t, -1, tbl.ColIndex("Almacén"))
	})
}

func TestTableCell(t *testing.T) {
	t.Parallel()
	tbl := NewTable([]string{"A"}, [][]string{{"  hola  "}})
	assert.Equal(t, "hola", tbl.Cell(0, "A"))
	assert.Equal(t, "", tbl.Cell(0, "B"))
	assert.Equal(t, "", tbl.Cell(5, "A"))
}

func TestWithColumn(t *testing.T) {
	t.Parallel()

	t.Run("appends a new column", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{"A"}, [][]string{{"1"}, {"2"}})
		out := tbl.WithColumn("B", []string{"x", "y"})
		assert.Equal(t, []string{"A", "B"}, out.Columns)
		assert.Equal(t, "x", out.Cell(0, "B"))
		assert.Equal(t, "y", out.Cell(1, "B"))
	})

	t.Run("overwrites an existing column in place", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{"A", "B"}, [][]string{{"1", "old"}})
		out := tbl.WithColumn("B", []string{"new"})
		assert.Equal(t, []string{"A", "B"}, out.Columns)
		assert.Equal(t, "new", out.Cell(0, "B"))
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{"A"}, [][]string{{"1"}})
		_ = tbl.WithColumn("B", []string{"x"})
		assert.Equal(t, []string{"A"}, tbl.Columns)
		assert.Len(t, tbl.Rows[0], 1)
	})
}

func TestFilter(t *testing.T) {
	t.Parallel()
	tbl := NewTable([]string{"A"}, [][]string{{"keep"}, {"drop"}, {"keep"}})
	out := tbl.Filter(func(row []string) bool { return row[0] == "keep" })
	assert.Len(t, out.Rows, 2)
	assert.Len(t, tbl.Rows, 3)
}

func TestParseNumber(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1500.75, parseNumber("1,500.75"))
	assert.Equal(t, -3.0, parseNumber(" -3 "))
	assert.True(t, math.IsNaN(parseNumber("")))
	assert.True(t, math.IsNaN(parseNumber("N/A")))
	assert.Equal(t, 0.0, numberOrZero("no es numero"))
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "15", formatNumber(15))
	assert.Equal(t, "0.5", formatNumber(0.5))
	assert.Equal(t, "", formatNumber(math.NaN()))
}
