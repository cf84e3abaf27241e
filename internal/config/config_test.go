package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"GATEWAY_PORT", "REPORT_PORT", "LIVE_REPORT_TABLE", "LIVE_REPLACE_CHUNK",
		"WAREHOUSE_TABLE", "R011_S3_BUCKET", "R011_S3_ENABLED", "REF_WORKBOOK_PATH",
	} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, DefaultGatewayPort, cfg.GatewayPort)
	assert.Equal(t, DefaultReportPort, cfg.ReportPort)
	assert.Equal(t, "r011_report_live", cfg.LiveTable)
	assert.Equal(t, LiveReplaceChunkSize, cfg.ChunkSize)
	assert.Equal(t, "r011_retenciones", cfg.WarehouseTable)
	assert.Equal(t, "vzla-r011", cfg.Bucket)
	assert.True(t, cfg.S3Enabled)
	assert.Equal(t, "./refdata/maestros.xlsx", cfg.RefWorkbookPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REPORT_PORT", "9000")
	t.Setenv("LIVE_REPLACE_CHUNK", "100")
	t.Setenv("R011_S3_ENABLED", "false")
	cfg := Load()
	assert.Equal(t, "9000", cfg.ReportPort)
	assert.Equal(t, 100, cfg.ChunkSize)
	assert.False(t, cfg.S3Enabled)
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("X_CHUNK", "no-numerico")
	assert.Equal(t, 42, getenvInt("X_CHUNK", 42))
	t.Setenv("X_CHUNK", "-5")
	assert.Equal(t, 42, getenvInt("X_CHUNK", 42))
	t.Setenv("X_CHUNK", "7")
	assert.Equal(t, 7, getenvInt("X_CHUNK", 7))
}
