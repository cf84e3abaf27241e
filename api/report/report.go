package report

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"VzlaR011Cleaning/api"
	"VzlaR011Cleaning/internal/blobstore"
	"VzlaR011Cleaning/internal/config"
	"VzlaR011Cleaning/internal/livereport"
	"VzlaR011Cleaning/internal/refdata"
	"VzlaR011Cleaning/internal/warehouse"
)

// Deps carries the external collaborators the report service orchestrates.
// The enrichment pipeline itself only ever sees pre-fetched data.
type Deps struct {
	Cfg       config.AppConfig
	Lookups   *refdata.Cache
	Live      *livereport.Store
	Warehouse *warehouse.Loader
	Blobs     *blobstore.Uploader
}

// StartReportService runs the R011 processing HTTP server.
func StartReportService(d Deps) {
	r := mux.NewRouter()
	r.HandleFunc("/report/health", HealthHandler).Methods("GET")
	r.HandleFunc("/report/test/warehouse", TestWarehouseHandler(d.Warehouse)).Methods("GET")
	r.HandleFunc("/report/test/storage", TestStorageHandler(d.Blobs)).Methods("GET")
	r.HandleFunc("/report/process", ProcessReportHandler(d)).Methods("POST")

	addr := ":" + d.Cfg.ReportPort
	log.Println("Report Service started on", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Report Service failed: %v", err)
	}
}

// HealthHandler reports service liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	api.RespondWithPayload(w, true, "", map[string]interface{}{
		"status":  "healthy",
		"service": "vzla-r011-cleaning",
		"message": "Service is running",
	})
}

// TestWarehouseHandler probes warehouse connectivity.
func TestWarehouseHandler(l *warehouse.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		if err := l.Ping(ctx); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "Error connecting to warehouse: "+err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"message": "Successfully connected to warehouse",
		})
	}
}

// TestStorageHandler probes object-store connectivity.
func TestStorageHandler(u *blobstore.Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		if err := u.Ping(ctx); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "Error connecting to object storage: "+err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"message": "Successfully connected to object storage (bucket " + u.Bucket + ")",
		})
	}
}
