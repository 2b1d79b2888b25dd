// Package ui serves the chart pipeline over HTTP to the external rendering
// layer: workbook upload, sheet listing, table preview, column profiles, and
// aggregated series.
package ui

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chartpipe/adapters/excel"
	"chartpipe/app"
	"chartpipe/domain/core"
	"chartpipe/domain/table"
	"chartpipe/internal/config"
	"chartpipe/internal/profiling"
)

// App represents the UI application
type App struct {
	router   *chi.Mux
	service  *app.ChartService
	profiler *profiling.Profiler
	config   *config.Config

	// Uploaded workbooks live in memory for the session only; there is no
	// persisted application state beyond the currently loaded files.
	mu        sync.RWMutex
	workbooks map[core.WorkbookID]*sessionWorkbook
}

type sessionWorkbook struct {
	workbook   *table.Workbook
	uploadedAt time.Time
}

// NewApp creates a new UI application
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		router:    chi.NewRouter(),
		service:   app.NewChartService(excel.NewWorkbookLoader()),
		profiler:  profiling.NewProfiler(),
		config:    cfg,
		workbooks: make(map[core.WorkbookID]*sessionWorkbook),
	}

	a.setupMiddleware()
	a.setupRoutes()

	if cfg.Data.ChartFile != "" {
		if _, err := a.registerFile(cfg.Data.ChartFile); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Post("/api/workbooks", a.handleWorkbookUpload)
	a.router.Get("/api/workbooks", a.handleWorkbookList)
	a.router.Get("/api/workbooks/{id}/sheets", a.handleSheetList)
	a.router.Get("/api/workbooks/{id}/sheets/{name}/preview", a.handleSheetPreview)
	a.router.Get("/api/workbooks/{id}/sheets/{name}/profile", a.handleSheetProfile)
	a.router.Post("/api/workbooks/{id}/series", a.handleSeries)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.config.Server.Port
	log.Printf("Starting chartpipe UI server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the HTTP handler, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// registerFile loads a workbook from disk into the session store
func (a *App) registerFile(path string) (*table.Workbook, error) {
	wb, err := a.service.LoadWorkbook(path)
	if err != nil {
		return nil, err
	}
	a.putWorkbook(wb)
	return wb, nil
}

func (a *App) putWorkbook(wb *table.Workbook) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.workbooks[wb.ID] = &sessionWorkbook{workbook: wb, uploadedAt: time.Now()}
}

func (a *App) getWorkbook(id core.WorkbookID) (*table.Workbook, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	session, ok := a.workbooks[id]
	if !ok {
		return nil, false
	}
	return session.workbook, true
}

func (a *App) maxUploadBytes() int64 {
	return int64(a.config.Server.MaxUploadMB) * 1 << 20
}

func (a *App) String() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return fmt.Sprintf("ui.App{workbooks: %d}", len(a.workbooks))
}
