package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"VzlaR011Cleaning/api/report"
	"VzlaR011Cleaning/internal/appmanager"
	"VzlaR011Cleaning/internal/blobstore"
	"VzlaR011Cleaning/internal/config"
	"VzlaR011Cleaning/internal/livereport"
	"VzlaR011Cleaning/internal/r011"
	"VzlaR011Cleaning/internal/refdata"
	"VzlaR011Cleaning/internal/warehouse"
)

// InitDB opens the live-report database from config
func InitDB(cfg config.AppConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	return sql.Open("postgres", connStr)
}

func main() {
	// Load .env for local dev (ignored in deployment)
	_ = godotenv.Load(".env")

	cfg := config.Load()

	// The warehouse projection is table driven; fail fast if a column was
	// added to the report without a destination mapping.
	if err := r011.ValidateWarehouseMapping(); err != nil {
		log.Fatal("warehouse mapping incomplete: ", err)
	}

	db, err := InitDB(cfg)
	if err != nil {
		log.Fatal("failed to connect to live-report DB:", err)
	}

	var pool *pgxpool.Pool
	if cfg.WarehouseDSN != "" {
		pool, err = pgxpool.New(context.Background(), cfg.WarehouseDSN)
		if err != nil {
			log.Fatal("failed to connect to warehouse:", err)
		}
	} else {
		log.Println("[Main] WAREHOUSE_DSN not set, warehouse uploads will fail until configured")
	}

	cache := refdata.NewCache(refdata.NewSource(cfg))

	appmanager.SetReportDeps(report.Deps{
		Cfg:       cfg,
		Lookups:   cache,
		Live:      livereport.New(db, cfg.LiveTable, cfg.ChunkSize),
		Warehouse: warehouse.New(pool, cfg.WarehouseTable),
		Blobs:     blobstore.New(cfg),
	})

	manager := appmanager.NewAppManager()

	// Load service configs from YAML
	servicesCfg, err := appmanager.LoadServiceSequence("services.yaml")
	if err != nil {
		log.Fatal("failed to load service sequence:", err)
	}

	// Automatically register all services
	manager.AutoRegisterServices(servicesCfg)

	// Start all services
	if err := manager.StartAll(); err != nil {
		log.Fatal("failed to start:", err)
	}

	// Graceful shutdown handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	// Stop all services
	if err := manager.StopAll(); err != nil {
		log.Fatal("failed to stop:", err)
	}
}
