package ui

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/semaphore"

	"chartpipe/app"
	"chartpipe/domain/chart"
	"chartpipe/domain/core"
	"chartpipe/domain/table"
	"chartpipe/internal/errors"
	"chartpipe/internal/profiling"
	"chartpipe/internal/sanitize"
)

// workbookResponse is the JSON shape returned for a loaded workbook
type workbookResponse struct {
	ID     string   `json:"id"`
	Path   string   `json:"path"`
	Sheets []string `json:"sheets"`
}

// previewResponse is the JSON shape of a sanitized table preview
type previewResponse struct {
	SheetName      string     `json:"sheet_name"`
	HeaderRowIndex int        `json:"header_row_index"`
	Columns        []string   `json:"columns"`
	Rows           [][]string `json:"rows"`
	TotalRows      int        `json:"total_rows"`
}

// seriesRequest is the JSON body of a series computation
type seriesRequest struct {
	Sheet      string            `json:"sheet"`
	HeaderRow  int               `json:"header_row"`
	HasHeader  *bool             `json:"has_header,omitempty"`
	ChartType  string            `json:"chart_type"`
	Mapping    map[string]string `json:"mapping"`
	LabelOrder []string          `json:"label_order,omitempty"`
	// Branding fields pass through to the rendering layer untouched
	Title     string `json:"title,omitempty"`
	Watermark string `json:"watermark,omitempty"`
}

// seriesResponse is the aggregated series plus opaque branding pass-through
type seriesResponse struct {
	ChartType string        `json:"chart_type"`
	Points    []seriesPoint `json:"points"`
	Title     string        `json:"title,omitempty"`
	Watermark string        `json:"watermark,omitempty"`
}

type seriesPoint struct {
	Label   string  `json:"label"`
	KeyType string  `json:"key_type"`
	Value   float64 `json:"value"`
}

// handleWorkbookUpload receives a multipart spreadsheet upload, snapshots it
// into the session store, and returns its id and sheet names
func (a *App) handleWorkbookUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes())
	if err := r.ParseMultipartForm(a.maxUploadBytes()); err != nil {
		a.writeError(w, errors.InvalidInput("upload too large or malformed multipart body"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, errors.InvalidInput("missing \"file\" form field"))
		return
	}
	defer file.Close()

	// excelize wants a real file; stage the upload in a temp dir that only
	// lives for this load.
	tmpDir, err := os.MkdirTemp("", "chartpipe-upload-")
	if err != nil {
		a.writeError(w, errors.Wrap(err, "failed to stage upload"))
		return
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, filepath.Base(header.Filename))
	dst, err := os.Create(tmpPath)
	if err != nil {
		a.writeError(w, errors.Wrap(err, "failed to stage upload"))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		a.writeError(w, errors.Wrap(err, "failed to stage upload"))
		return
	}
	dst.Close()

	wb, err := a.registerFile(tmpPath)
	if err != nil {
		a.writeError(w, err)
		return
	}

	log.Printf("[UI] uploaded workbook %q (%d sheet(s))", header.Filename, len(wb.Sheets))
	a.writeJSON(w, http.StatusCreated, workbookResponse{
		ID:     wb.ID.String(),
		Path:   header.Filename,
		Sheets: wb.SheetNames(),
	})
}

// handleWorkbookList lists the session's loaded workbooks
func (a *App) handleWorkbookList(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	out := make([]workbookResponse, 0, len(a.workbooks))
	for id, session := range a.workbooks {
		out = append(out, workbookResponse{
			ID:     id.String(),
			Path:   session.workbook.Path,
			Sheets: session.workbook.SheetNames(),
		})
	}
	a.mu.RUnlock()
	a.writeJSON(w, http.StatusOK, out)
}

// handleSheetList returns the sheet names of one workbook
func (a *App) handleSheetList(w http.ResponseWriter, r *http.Request) {
	wb, ok := a.workbookFromRequest(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, wb.SheetNames())
}

// handleSheetPreview sanitizes the sheet under the requested header row and
// returns the schema plus the first rows, rendered for display
func (a *App) handleSheetPreview(w http.ResponseWriter, r *http.Request) {
	wb, ok := a.workbookFromRequest(w, r)
	if !ok {
		return
	}

	cleaned, err := a.cleanFromRequest(wb, chi.URLParam(r, "name"), r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	limit := queryInt(r, "limit", 50)
	if limit > len(cleaned.Rows) {
		limit = len(cleaned.Rows)
	}

	rows := make([][]string, limit)
	for i := 0; i < limit; i++ {
		rendered := make([]string, len(cleaned.Columns))
		for j, col := range cleaned.Columns {
			rendered[j] = cleaned.Rows[i][col].Render()
		}
		rows[i] = rendered
	}

	a.writeJSON(w, http.StatusOK, previewResponse{
		SheetName:      cleaned.SheetName,
		HeaderRowIndex: cleaned.HeaderRowIndex,
		Columns:        cleaned.Columns,
		Rows:           rows,
		TotalRows:      len(cleaned.Rows),
	})
}

// handleSheetProfile sanitizes the sheet and profiles every column, with
// per-column work bounded by a weighted semaphore
func (a *App) handleSheetProfile(w http.ResponseWriter, r *http.Request) {
	wb, ok := a.workbookFromRequest(w, r)
	if !ok {
		return
	}

	cleaned, err := a.cleanFromRequest(wb, chi.URLParam(r, "name"), r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	profiles, err := a.profileColumns(r.Context(), cleaned)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, profiles)
}

// profileColumns profiles all table columns concurrently, bounded by the
// configured worker count
func (a *App) profileColumns(ctx context.Context, cleaned *table.CleanTable) ([]profiling.ColumnProfile, error) {
	sem := semaphore.NewWeighted(int64(a.config.Server.ProfileWorkers))
	profiles := make([]profiling.ColumnProfile, len(cleaned.Columns))
	errs := make([]error, len(cleaned.Columns))

	for i, column := range cleaned.Columns {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "profiling cancelled")
		}
		go func(i int, column string) {
			defer sem.Release(1)
			profiles[i], errs[i] = a.profiler.ProfileColumn(cleaned, column)
		}(i, column)
	}

	// Draining the full weight waits for every worker.
	if err := sem.Acquire(ctx, int64(a.config.Server.ProfileWorkers)); err != nil {
		return nil, errors.Wrap(err, "profiling cancelled")
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// handleSeries runs mapping resolution and aggregation for one chart request
func (a *App) handleSeries(w http.ResponseWriter, r *http.Request) {
	wb, ok := a.workbookFromRequest(w, r)
	if !ok {
		return
	}

	var req seriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, errors.InvalidInput("malformed JSON body"))
		return
	}

	chartType, err := chart.ParseChartType(req.ChartType)
	if err != nil {
		a.writeError(w, errors.InvalidInput(err.Error()))
		return
	}

	sheetName := req.Sheet
	if sheetName == "" && len(wb.Sheets) > 0 {
		sheetName = wb.Sheets[0].Name
	}

	opts := sanitize.Options{HeaderRowIndex: req.HeaderRow, HasHeader: true}
	if req.HasHeader != nil {
		opts.HasHeader = *req.HasHeader
	}

	cleaned, err := a.service.CleanSheet(wb, sheetName, opts)
	if err != nil {
		a.writeError(w, err)
		return
	}

	roleMapping := make(chart.RoleMapping, len(req.Mapping))
	for role, column := range req.Mapping {
		roleMapping[chart.Role(role)] = column
	}

	series, err := a.service.BuildSeries(cleaned, app.ChartRequest{
		ChartType:  chartType,
		Mapping:    roleMapping,
		LabelOrder: req.LabelOrder,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	points := make([]seriesPoint, len(series.Points))
	for i, p := range series.Points {
		points[i] = seriesPoint{Label: p.Label(), KeyType: string(p.Key.Type), Value: p.Value}
	}

	watermark := req.Watermark
	if watermark == "" {
		watermark = a.config.Branding.WatermarkText
	}

	a.writeJSON(w, http.StatusOK, seriesResponse{
		ChartType: string(series.ChartType),
		Points:    points,
		Title:     req.Title,
		Watermark: watermark,
	})
}

// workbookFromRequest resolves the {id} URL param to a session workbook
func (a *App) workbookFromRequest(w http.ResponseWriter, r *http.Request) (*table.Workbook, bool) {
	id, err := core.ParseWorkbookID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, errors.InvalidInput("workbook id is required"))
		return nil, false
	}

	wb, ok := a.getWorkbook(id)
	if !ok {
		a.writeError(w, errors.NotFound("workbook"))
		return nil, false
	}
	return wb, true
}

// cleanFromRequest sanitizes a sheet using header options from the query
// string
func (a *App) cleanFromRequest(wb *table.Workbook, sheetName string, r *http.Request) (*table.CleanTable, error) {
	opts := sanitize.Options{
		HeaderRowIndex: queryInt(r, "header_row", a.config.Data.DefaultHeaderRow),
		HasHeader:      queryBool(r, "has_header", true),
	}
	return a.service.CleanSheet(wb, sheetName, opts)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[UI] failed to encode response: %v", err)
	}
}

// writeError maps pipeline error codes to HTTP statuses; the code travels in
// the body so the rendering layer can branch without parsing messages
func (a *App) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput, errors.CodeUnreadableFile:
		status = http.StatusBadRequest
	case errors.CodeNotFound, errors.CodeUnknownSheet:
		status = http.StatusNotFound
	case errors.CodeEmptyWorkbook, errors.CodeInvalidHeaderRow,
		errors.CodeMissingRole, errors.CodeUnexpectedRole,
		errors.CodeUnknownColumn, errors.CodeNonNumericAxis,
		errors.CodeNonNumericValue, errors.CodeStaleChartSpec:
		status = http.StatusUnprocessableEntity
	}

	a.writeJSON(w, status, map[string]string{
		"code":  code,
		"error": err.Error(),
	})
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return defaultValue
}

func queryBool(r *http.Request, key string, defaultValue bool) bool {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return defaultValue
}
