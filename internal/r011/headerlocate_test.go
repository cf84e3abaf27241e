package r011

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateHeaderRow(t *testing.T) {
	t.Parallel()

	header := []string{
		ColInvoiceNumber, ColProvider, ColBranch, ColStore,
		ColPurchaseOrder, ColStatus, ColSubtotal,
	}

	t.Run("finds the header after banner rows", func(t *testing.T) {
		t.Parallel()
		rows := [][]string{
			{"REPORTE R011", "", ""},
			{},
			{"Generado: 01/08/2026"},
			header,
			{"F-001", "ACME", "CARACAS", "T-01", "OC-1", "RETENIDA", "100"},
		}
		assert.Equal(t, 3, LocateHeaderRow(rows, nil))
	})

	t.Run("tolerates case and whitespace noise", func(t *testing.T) {
		t.Parallel()
		rows := [][]string{
			{"NÚMERO DE FACTURA ", " proveedor", "SUCURSAL", "Tienda", "ORDEN DE COMPRA", "Estatus"},
		}
		assert.Equal(t, 0, LocateHeaderRow(rows, nil))
	})

	t.Run("returns -1 below the match threshold", func(t *testing.T) {
		t.Parallel()
		rows := [][]string{
			{"Fecha", "Total", "Notas"},
			{ColInvoiceNumber, ColProvider, "x", "y"},
		}
		assert.Equal(t, -1, LocateHeaderRow(rows, nil))
	})

	t.Run("returns -1 for empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, -1, LocateHeaderRow(nil, nil))
		assert.Equal(t, -1, LocateHeaderRow([][]string{{}, {}}, nil))
	})

	t.Run("ties keep the earliest row", func(t *testing.T) {
		t.Parallel()
		rows := [][]string{
			header,
			header,
		}
		assert.Equal(t, 0, LocateHeaderRow(rows, nil))
	})

	t.Run("honors an explicit expected set", func(t *testing.T) {
		t.Parallel()
		rows := [][]string{
			{"uno", "dos", "tres", "cuatro", "cinco", "seis"},
		}
		expected := []string{"uno", "dos", "tres", "cuatro", "cinco", "seis"}
		assert.Equal(t, 0, LocateHeaderRow(rows, expected))
	})
}
