package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/capricallctx/campcrap/internal/reconcile"
)

// SyncHandler handles spreadsheet import and export endpoints.
type SyncHandler struct {
	DB *sql.DB
}

// maxWorkbookUpload limits workbook uploads to 20 MB.
const maxWorkbookUpload = 20 << 20

// Import handles POST /api/sync/import. Expects a multipart form with a
// "workbook" file, an optional "year" override, and an optional
// "skip_existing" flag (default true). Row-level problems come back in the
// result's errors list; the rest of the rows still import.
func (h *SyncHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWorkbookUpload)
	if err := r.ParseMultipartForm(maxWorkbookUpload); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("workbook")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "workbook file required")
		return
	}
	defer file.Close()

	year := r.FormValue("year")
	if year == "" {
		if year, err = resolveYear(r, h.DB); err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to resolve year")
			return
		}
	}

	skipExisting := r.FormValue("skip_existing") != "false"

	result := reconcile.Import(r.Context(), h.DB, file, year, skipExisting)
	if result.FatalError != "" {
		slog.Warn("workbook import rejected", "file", header.Filename, "error", result.FatalError)
		jsonResponse(w, http.StatusBadRequest, result)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("workbook imported", "user", claims.Username, "file", header.Filename,
		"year", year, "imported", result.TotalImported(), "skipped", result.TotalSkipped(),
		"errors", len(result.Errors))
	jsonResponse(w, http.StatusOK, result)
}

// Export handles GET /api/sync/export. Streams the full year snapshot,
// removed items and the infrastructure record included, as an XLSX file.
func (h *SyncHandler) Export(w http.ResponseWriter, r *http.Request) {
	year, err := resolveYear(r, h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to resolve year")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"campcrap-%s.xlsx\"", year))

	if err := reconcile.Export(r.Context(), h.DB, w, year); err != nil {
		// Headers are already out; log and drop the connection.
		slog.Error("workbook export failed", "year", year, "error", err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("workbook exported", "user", claims.Username, "year", year)
}
