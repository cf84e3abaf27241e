package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"VzlaR011Cleaning/api"
	"VzlaR011Cleaning/api/constants"
	"VzlaR011Cleaning/internal/blobstore"
	"VzlaR011Cleaning/internal/livereport"
	"VzlaR011Cleaning/internal/r011"
	"VzlaR011Cleaning/internal/warehouse"
)

const maxUploadBytes = 64 << 20

// xlsMaxRows caps legacy-format reads; branch R011 exports never come close.
const xlsMaxRows = 200000

// ProcessReportHandler ingests a raw R011 workbook, runs the enrichment
// pipeline and fans the result out to the sinks requested via query params
// (upload_warehouse, upload_storage, upload_table). With no sink requested
// the processed workbook is streamed back as an attachment.
func ProcessReportHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		runID := uuid.New().String()

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileProvided)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileProvided)
			return
		}
		defer file.Close()
		if header.Filename == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileSelected)
			return
		}
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".xlsx" && ext != ".xls" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidFileType)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUnreadableReport)
			return
		}
		log.Printf("[ProcessReport] run=%s file=%s size=%d", runID, header.Filename, len(data))

		rows, err := parseReportFile(data, ext)
		if err != nil {
			log.Printf("[ProcessReport] run=%s parse failed: %v", runID, err)
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUnreadableReport)
			return
		}
		if len(rows) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrEmptyReport)
			return
		}

		headerIdx := r011.LocateHeaderRow(rows, nil)
		if headerIdx < 0 {
			log.Printf("[ProcessReport] run=%s no header row matched, assuming row 0", runID)
			headerIdx = 0
		}
		if headerIdx+1 >= len(rows) {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrEmptyReport)
			return
		}
		table := r011.NewTable(rows[headerIdx], rows[headerIdx+1:])

		// Carried comments come from the current live table, captured before
		// any replace in this run touches it.
		snapshot := d.Live.Snapshot(ctx)
		lookups := d.Lookups.Lookups()

		processed := r011.RunPipeline(table, lookups)
		processed = r011.MergeComments(processed, snapshot)
		log.Printf("[ProcessReport] run=%s rows in=%d out=%d", runID, len(table.Rows), len(processed.Rows))

		q := r.URL.Query()
		wantWarehouse := queryFlag(q.Get("upload_warehouse"))
		wantStorage := queryFlag(q.Get("upload_storage"))
		wantTable := queryFlag(q.Get("upload_table"))

		if !wantWarehouse && !wantStorage && !wantTable {
			streamWorkbook(w, processed, header.Filename, runID)
			return
		}

		uploads := map[string]interface{}{}
		var failures []string

		if wantStorage {
			blobName := strings.TrimSpace(q.Get("blob_name"))
			if blobName == "" {
				blobName = processedName(header.Filename)
			}
			if err := uploadToStorage(ctx, d, processed, blobName, runID, uploads); err != nil {
				failures = append(failures, "storage: "+err.Error())
			}
		}
		if wantWarehouse {
			mode := warehouse.WriteTruncate
			if strings.EqualFold(q.Get("write_mode"), "append") {
				mode = warehouse.WriteAppend
			}
			loader := d.Warehouse
			if tableID := strings.TrimSpace(q.Get("table_id")); tableID != "" {
				loader = warehouse.New(d.Warehouse.Pool, tableID)
			}
			schema, whRows := r011.ProjectToWarehouse(processed, time.Now())
			if err := loader.Load(ctx, schema, whRows, mode); err != nil {
				log.Printf("[ProcessReport] run=%s warehouse load failed: %v", runID, err)
				failures = append(failures, "warehouse: "+err.Error())
			} else {
				uploads["warehouse"] = map[string]interface{}{
					"table":      loader.Table,
					"rows":       len(whRows),
					"write_mode": string(mode),
				}
			}
		}
		if wantTable {
			if err := d.Live.Replace(ctx, processed); err != nil {
				log.Printf("[ProcessReport] run=%s live table replace failed: %v", runID, err)
				failures = append(failures, "table: "+livereport.FriendlyError(err))
			} else {
				uploads["table"] = map[string]interface{}{
					"table": d.Live.Table,
					"rows":  len(processed.Rows),
				}
			}
		}

		message := "Report processed successfully"
		if len(failures) > 0 {
			message = "Report processed with partial upload failures"
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"message":  message,
			"run_id":   runID,
			"rows":     len(processed.Rows),
			"uploads":  uploads,
			"failures": failures,
		})
	}
}

func uploadToStorage(ctx context.Context, d Deps, t r011.Table, blobName, runID string, uploads map[string]interface{}) error {
	if !d.Blobs.Enabled {
		return fmt.Errorf("%s", constants.ErrStorageUnavailable)
	}
	content, err := writeWorkbook(t)
	if err != nil {
		log.Printf("[ProcessReport] run=%s workbook build failed: %v", runID, err)
		return err
	}
	key := d.Blobs.BuildKey(runID, blobName)
	url, err := d.Blobs.Upload(ctx, key, content, blobstore.ContentTypeXLSX)
	if err != nil {
		log.Printf("[ProcessReport] run=%s storage upload failed: %v", runID, err)
		return err
	}
	uploads["storage"] = map[string]interface{}{
		"key": key,
		"url": url,
	}
	return nil
}

func streamWorkbook(w http.ResponseWriter, t r011.Table, filename, runID string) {
	content, err := writeWorkbook(t)
	if err != nil {
		log.Printf("[ProcessReport] run=%s workbook build failed: %v", runID, err)
		api.RespondWithError(w, http.StatusInternalServerError, constants.ErrProcessingFailed)
		return
	}
	w.Header().Set("Content-Type", blobstore.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", processedName(filename)))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

func processedName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return "processed_" + base + ".xlsx"
}

func queryFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// parseReportFile reads an uploaded workbook into a string grid. Branch
// offices still mail around legacy .xls exports, so both formats are
// accepted; extension is a hint, not a guarantee.
func parseReportFile(data []byte, ext string) ([][]string, error) {
	if ext == ".xls" {
		rows, err := parseXLS(data)
		if err == nil {
			return rows, nil
		}
		// Some systems mislabel OOXML files as .xls.
		return parseXLSX(data)
	}
	rows, err := parseXLSX(data)
	if err == nil {
		return rows, nil
	}
	return parseXLS(data)
}

func parseXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func parseXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	rows := wb.ReadAllCells(xlsMaxRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook has no readable rows")
	}
	return rows, nil
}

// writeWorkbook renders the processed table into a single-sheet workbook.
func writeWorkbook(t r011.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		out := make([]interface{}, len(row))
		for j, v := range row {
			out[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &out); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
