package refdata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"VzlaR011Cleaning/internal/config"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Proveedores"))
	require.NoError(t, f.SetSheetRow("Proveedores", "A1", &[]interface{}{"Proveedor", "Unidad de Negocio"}))
	require.NoError(t, f.SetSheetRow("Proveedores", "A2", &[]interface{}{"Acme C.A.", "Retail"}))

	_, err := f.NewSheet("Tiendas")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Tiendas", "A1", &[]interface{}{"Tienda", "Área", "Gte Área"}))
	require.NoError(t, f.SetSheetRow("Tiendas", "A2", &[]interface{}{"T-01", "Capital", "Ana Pérez"}))

	_, err = f.NewSheet("Sucursales")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sucursales", "A1", &[]interface{}{"Sucursal", "Especialista"}))
	require.NoError(t, f.SetSheetRow("Sucursales", "A2", &[]interface{}{"Caracas PPV", "Carlos M."}))

	path := filepath.Join(t.TempDir(), "maestros.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func testSource(path string) *Source {
	return NewSource(config.AppConfig{
		RefWorkbookPath: path,
		ProviderSheet:   "Proveedores",
		StoreSheet:      "Tiendas",
		BranchSheet:     "Sucursales",
	})
}

func TestBuildLookups(t *testing.T) {
	t.Parallel()
	src := testSource(writeTestWorkbook(t))
	lk := src.BuildLookups()

	assert.Equal(t, "Retail", lk.BusinessUnit["AcmeC.A."])
	assert.Equal(t, "Capital", lk.Area["T-01"])
	assert.Equal(t, "Ana Pérez", lk.AreaManager["T-01"])
	assert.Equal(t, "Carlos M.", lk.Specialist["CARACASPPV"])
}

func TestBuildLookupsMissingWorkbook(t *testing.T) {
	t.Parallel()
	src := testSource(filepath.Join(t.TempDir(), "no-existe.xlsx"))
	lk := src.BuildLookups()

	// Degraded path: all maps present, all empty.
	assert.NotNil(t, lk.BusinessUnit)
	assert.Empty(t, lk.BusinessUnit)
	assert.Empty(t, lk.Area)
	assert.Empty(t, lk.AreaManager)
	assert.Empty(t, lk.Specialist)
}

func TestCacheBuildsOnFirstUse(t *testing.T) {
	t.Parallel()
	c := NewCache(testSource(writeTestWorkbook(t)))
	lk := c.Lookups()
	assert.Equal(t, "Retail", lk.BusinessUnit["AcmeC.A."])

	// Second call serves the cache without rebuilding.
	again := c.Lookups()
	assert.Equal(t, lk.BusinessUnit, again.BusinessUnit)
}

func TestCacheRefresh(t *testing.T) {
	t.Parallel()
	c := NewCache(testSource(filepath.Join(t.TempDir(), "no-existe.xlsx")))
	c.Refresh()
	assert.Empty(t, c.Lookups().Area)
}
