// Package app orchestrates the chart pipeline: load, sanitize, resolve,
// aggregate. Every user action recomputes the affected downstream snapshots
// synchronously; nothing is mutated in place, failed stages publish nothing.
package app

import (
	"log"

	"chartpipe/domain/chart"
	"chartpipe/domain/table"
	"chartpipe/internal/aggregate"
	"chartpipe/internal/errors"
	"chartpipe/internal/mapping"
	"chartpipe/internal/normalize"
	"chartpipe/internal/sanitize"
	"chartpipe/ports"
)

// ChartRequest captures the user's chart choices for one recompute
type ChartRequest struct {
	ChartType chart.ChartType   `json:"chart_type"`
	Mapping   chart.RoleMapping `json:"mapping"`
	// LabelOrder optionally reorders pie slices; ignored for bar charts
	LabelOrder []string `json:"label_order,omitempty"`
}

// ChartService runs the pipeline stages. It is stateless: callers own the
// Workbook/CleanTable snapshots and hand them back for each recompute.
type ChartService struct {
	source     ports.WorkbookSourcePort
	sanitizer  *sanitize.Sanitizer
	resolver   *mapping.Resolver
	aggregator *aggregate.Aggregator
}

// NewChartService creates a chart service backed by the given workbook source
func NewChartService(source ports.WorkbookSourcePort) *ChartService {
	return &ChartService{
		source:     source,
		sanitizer:  sanitize.NewSanitizer(normalize.NewCellNormalizer(normalize.DefaultConfig())),
		resolver:   mapping.NewResolver(),
		aggregator: aggregate.NewAggregator(),
	}
}

// LoadWorkbook opens a spreadsheet file into a fresh immutable snapshot
func (s *ChartService) LoadWorkbook(path string) (*table.Workbook, error) {
	return s.source.Load(path)
}

// CleanSheet selects the named sheet and sanitizes it under the given
// options. Recomputed whenever the sheet choice or header row changes.
func (s *ChartService) CleanSheet(wb *table.Workbook, sheetName string, opts sanitize.Options) (*table.CleanTable, error) {
	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		return nil, errors.UnknownSheet(sheetName)
	}

	cleaned, err := s.sanitizer.Sanitize(sheet, opts)
	if err != nil {
		return nil, err
	}

	log.Printf("[ChartService] sanitized sheet %q: %d column(s), %d row(s)",
		sheetName, len(cleaned.Columns), len(cleaned.Rows))
	return cleaned, nil
}

// ResolveMapping validates the user's column-role assignment against the
// table and chart type
func (s *ChartService) ResolveMapping(t *table.CleanTable, chartType chart.ChartType, roleMapping chart.RoleMapping) (chart.ChartSpec, error) {
	return s.resolver.Resolve(t, chartType, roleMapping)
}

// BuildSeries resolves the request against the table and aggregates it into
// a render-ready series. The invalid mapping never reaches the aggregator.
func (s *ChartService) BuildSeries(t *table.CleanTable, req ChartRequest) (chart.Series, error) {
	spec, err := s.resolver.Resolve(t, req.ChartType, req.Mapping)
	if err != nil {
		return chart.Series{}, err
	}

	series, err := s.aggregator.Aggregate(t, spec)
	if err != nil {
		return chart.Series{}, err
	}

	if req.ChartType == chart.ChartTypePie && len(req.LabelOrder) > 0 {
		series = aggregate.ReorderByLabel(series, req.LabelOrder)
	}
	return series, nil
}

// SeriesFromFile runs the whole pipeline for one file in a single shot:
// load, select sheet (first sheet when sheetName is empty), sanitize,
// resolve, aggregate.
func (s *ChartService) SeriesFromFile(path, sheetName string, opts sanitize.Options, req ChartRequest) (chart.Series, error) {
	wb, err := s.LoadWorkbook(path)
	if err != nil {
		return chart.Series{}, err
	}

	if sheetName == "" {
		sheetName = wb.Sheets[0].Name
	}

	cleaned, err := s.CleanSheet(wb, sheetName, opts)
	if err != nil {
		return chart.Series{}, err
	}

	return s.BuildSeries(cleaned, req)
}
