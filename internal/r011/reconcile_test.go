package r011

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeComments(t *testing.T) {
	t.Parallel()

	t.Run("carries comments forward by normalized invoice number", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{ColInvoiceNumber, ColSubtotal}, [][]string{
			{" a-100 ", "10"},
			{"B-200", "20"},
			{"C-300", "30"},
		})
		snapshot := []map[string]string{
			{"numero_factura": "A-100", "comentario": "pendiente de abono", "comentario_cxp": "escalado"},
			{"numero_factura": "B-200", "comentario": "", "comentario_cxp": "ok proveedor"},
		}
		out := MergeComments(tbl, snapshot)

		assert.Equal(t, "pendiente de abono", out.Cell(0, ColComment))
		assert.Equal(t, "escalado", out.Cell(0, ColCommentCXP))
		assert.Equal(t, "", out.Cell(1, ColComment))
		assert.Equal(t, "ok proveedor", out.Cell(1, ColCommentCXP))
		assert.Equal(t, "", out.Cell(2, ColComment))
		assert.Equal(t, "", out.Cell(2, ColCommentCXP))
	})

	t.Run("accepts display-style snapshot field names", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{ColInvoiceNumber}, [][]string{{"A-100"}})
		snapshot := []map[string]string{
			{"Número de Factura": "A-100", "Comentario": "visto", "Comentario CXP": "visto cxp"},
		}
		out := MergeComments(tbl, snapshot)
		assert.Equal(t, "visto", out.Cell(0, ColComment))
		assert.Equal(t, "visto cxp", out.Cell(0, ColCommentCXP))
	})

	t.Run("round-trips through destination-normalized field names", func(t *testing.T) {
		t.Parallel()
		// The live table stores columns under DestinationFieldName; a
		// snapshot of it must still reconcile on the next run.
		prior := NewTable([]string{ColInvoiceNumber, ColComment, ColCommentCXP}, [][]string{
			{"A-100", "hello", "hello cxp"},
		})
		snapshot := make([]map[string]string, len(prior.Rows))
		for i, row := range prior.Rows {
			rec := make(map[string]string, len(prior.Columns))
			for j, col := range prior.Columns {
				rec[DestinationFieldName(col)] = row[j]
			}
			snapshot[i] = rec
		}
		require.Contains(t, snapshot[0], "numero_de_factura")

		fresh := NewTable([]string{ColInvoiceNumber}, [][]string{{" a-100 "}})
		out := MergeComments(fresh, snapshot)
		assert.Equal(t, "hello", out.Cell(0, ColComment))
		assert.Equal(t, "hello cxp", out.Cell(0, ColCommentCXP))
	})

	t.Run("nil snapshot leaves both columns empty", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{ColInvoiceNumber}, [][]string{{"A-100"}})
		out := MergeComments(tbl, nil)
		require.True(t, out.HasColumn(ColComment))
		require.True(t, out.HasColumn(ColCommentCXP))
		assert.Equal(t, "", out.Cell(0, ColComment))
		assert.Equal(t, "", out.Cell(0, ColCommentCXP))
	})

	t.Run("snapshot without invoice field degrades to empty columns", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{ColInvoiceNumber}, [][]string{{"A-100"}})
		snapshot := []map[string]string{
			{"otro_campo": "A-100", "comentario": "huérfano"},
		}
		out := MergeComments(tbl, snapshot)
		assert.Equal(t, "", out.Cell(0, ColComment))
	})

	t.Run("table without invoice column degrades to empty columns", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{ColSubtotal}, [][]string{{"10"}})
		snapshot := []map[string]string{
			{"numero_factura": "A-100", "comentario": "visto"},
		}
		out := MergeComments(tbl, snapshot)
		require.True(t, out.HasColumn(ColComment))
		assert.Equal(t, "", out.Cell(0, ColComment))
	})

	t.Run("overwrites placeholder columns from a prior run", func(t *testing.T) {
		t.Parallel()
		tbl := NewTable([]string{ColInvoiceNumber, ColComment, ColCommentCXP}, [][]string{
			{"A-100", "viejo", "viejo cxp"},
		})
		snapshot := []map[string]string{
			{"numero_factura": "A-100", "comentario": "nuevo"},
		}
		out := MergeComments(tbl, snapshot)
		assert.Equal(t, "nuevo", out.Cell(0, ColComment))
		assert.Equal(t, "", out.Cell(0, ColCommentCXP))
	})
}
