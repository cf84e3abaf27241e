package config

import (
	"os"
	"strconv"
	"strings"
)

// Chunking and scheduling defaults.
const (
	// LiveReplaceChunkSize is the number of records per insert statement
	// when replacing the live report, kept under the payload ceiling of the
	// destination.
	LiveReplaceChunkSize = 500

	// DefaultRefreshSchedule re-reads the reference workbook every six
	// hours.
	DefaultRefreshSchedule = "0 */6 * * *"

	// DefaultTimeZone pins cron schedules to the reporting country.
	DefaultTimeZone = "America/Caracas"

	DefaultGatewayPort = "8750"
	DefaultReportPort  = "8761"
)

// AppConfig is the single explicit configuration surface of the service.
// It is loaded once in cmd/main and handed to the collaborator adapters;
// the enrichment pipeline itself never reads the environment.
type AppConfig struct {
	GatewayPort string
	ReportPort  string

	// Live report destination table (Postgres via database/sql).
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	LiveTable  string
	ChunkSize  int

	// Analytical warehouse (Postgres via pgx).
	WarehouseDSN   string
	WarehouseTable string

	// Object store for processed workbooks.
	Bucket     string
	Region     string
	BaseURL    string
	S3Enabled  bool
	BlobPrefix string

	// Reference workbook with the provider/store/branch lookup sheets.
	RefWorkbookPath string
	ProviderSheet   string
	StoreSheet      string
	BranchSheet     string
}

// Load reads the configuration from the environment, applying defaults
// suitable for local development.
func Load() AppConfig {
	return AppConfig{
		GatewayPort: getenv("GATEWAY_PORT", DefaultGatewayPort),
		ReportPort:  getenv("REPORT_PORT", DefaultReportPort),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBName:     getenv("DB_NAME", "r011"),
		LiveTable:  getenv("LIVE_REPORT_TABLE", "r011_report_live"),
		ChunkSize:  getenvInt("LIVE_REPLACE_CHUNK", LiveReplaceChunkSize),

		WarehouseDSN:   os.Getenv("WAREHOUSE_DSN"),
		WarehouseTable: getenv("WAREHOUSE_TABLE", "r011_retenciones"),

		Bucket:     getenv("R011_S3_BUCKET", "vzla-r011"),
		Region:     getenv("R011_S3_REGION", "us-east-1"),
		BaseURL:    getenv("R011_S3_BASE_URL", "https://vzla-r011.s3.us-east-1.amazonaws.com/"),
		S3Enabled:  getenvBool("R011_S3_ENABLED", true),
		BlobPrefix: getenv("R011_S3_PREFIX", "r011/processed/"),

		RefWorkbookPath: getenv("REF_WORKBOOK_PATH", "./refdata/maestros.xlsx"),
		ProviderSheet:   getenv("REF_PROVIDER_SHEET", "Proveedores"),
		StoreSheet:      getenv("REF_STORE_SHEET", "Tiendas"),
		BranchSheet:     getenv("REF_BRANCH_SHEET", "Sucursales"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return def
}
