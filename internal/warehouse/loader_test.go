package warehouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VzlaR011Cleaning/internal/r011"
)

func TestLoadRejectsMissingPool(t *testing.T) {
	t.Parallel()
	l := New(nil, "r011_retenciones")
	err := l.Load(context.Background(), nil, nil, WriteTruncate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool not configured")

	assert.Error(t, l.Ping(context.Background()))
}

func TestLoadColumnOrderMatchesProjection(t *testing.T) {
	t.Parallel()

	// The loader copies rows positionally under the schema's column names;
	// projector output must stay aligned one value per schema column.
	tbl := r011.NewTable(
		[]string{r011.ColInvoiceNumber, r011.ColSubtotal, r011.ColDayRange},
		[][]string{
			{"F-001", "100.5", "15"},
			{"F-002", "", ""},
		},
	)
	schema, rows := r011.ProjectToWarehouse(tbl, time.Now())

	require.Len(t, rows, 2)
	for i, row := range rows {
		assert.Len(t, row, len(schema), "row %d", i)
	}

	names := make([]string, len(schema))
	for i, c := range schema {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"numero_factura", "subtotal", "rango_dias", "fecha_carga"}, names)

	// No duplicate physical columns reach the copy.
	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate column %s", n)
		seen[n] = true
	}
}

func TestWriteModes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, WriteMode("WRITE_TRUNCATE"), WriteTruncate)
	assert.Equal(t, WriteMode("WRITE_APPEND"), WriteAppend)
}
