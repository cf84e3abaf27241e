package report

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VzlaR011Cleaning/internal/r011"
)

func TestQueryFlag(t *testing.T) {
	t.Parallel()
	for _, v := range []string{"1", "true", "TRUE", "yes", " y "} {
		assert.True(t, queryFlag(v), v)
	}
	for _, v := range []string{"", "0", "false", "no", "si"} {
		assert.False(t, queryFlag(v), v)
	}
}

func TestProcessedName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "processed_reporte.xlsx", processedName("reporte.xlsx"))
	assert.Equal(t, "processed_reporte.xlsx", processedName("/tmp/reporte.xls"))
	assert.Equal(t, "processed_r011 agosto.xlsx", processedName("r011 agosto.XLSX"))
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	t.Parallel()
	tbl := r011.NewTable(
		[]string{r011.ColInvoiceNumber, r011.ColSubtotal},
		[][]string{
			{"F-001", "100.5"},
			{"F-002", "200"},
		},
	)
	content, err := writeWorkbook(tbl)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	rows, err := parseXLSX(content)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{r011.ColInvoiceNumber, r011.ColSubtotal}, rows[0])
	assert.Equal(t, "F-001", rows[1][0])
	assert.Equal(t, "200", rows[2][1])
}

func TestParseReportFileMislabeledExtension(t *testing.T) {
	t.Parallel()
	tbl := r011.NewTable([]string{"A"}, [][]string{{"1"}})
	content, err := writeWorkbook(tbl)
	require.NoError(t, err)

	// OOXML bytes behind a .xls name must still parse.
	rows, err := parseReportFile(content, ".xls")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0][0])
}

func TestParseReportFileGarbage(t *testing.T) {
	t.Parallel()
	_, err := parseReportFile([]byte("esto no es un excel"), ".xlsx")
	assert.Error(t, err)
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/report/health", nil)
	HealthHandler(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}
