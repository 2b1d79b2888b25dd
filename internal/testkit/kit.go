// Package testkit provides fixtures for pipeline tests: in-memory sheets,
// workbooks, and a workbook source that never touches the filesystem.
package testkit

import (
	"chartpipe/domain/core"
	"chartpipe/domain/table"
)

// Sheet builds an in-memory raw sheet from literal rows
func Sheet(name string, rows [][]string) table.Sheet {
	return table.Sheet{Name: name, Rows: rows}
}

// Workbook builds an in-memory workbook from sheets
func Workbook(path string, sheets ...table.Sheet) *table.Workbook {
	return &table.Workbook{
		ID:     core.WorkbookID(core.NewID()),
		Path:   path,
		Sheets: sheets,
	}
}

// CruiseSheet is the canonical messy fixture: currency-formatted capacity,
// a duplicate vendor, and a blank label cell.
func CruiseSheet() table.Sheet {
	return Sheet("Capacity", [][]string{
		{"Cruise Line", "Capacity"},
		{"Royal X", "$1,200"},
		{"Royal X", "800"},
		{"", "500"},
	})
}

// StaticWorkbookSource serves a fixed workbook (or error) regardless of the
// requested path. Implements ports.WorkbookSourcePort.
type StaticWorkbookSource struct {
	Workbook *table.Workbook
	Err      error
}

// Load returns the configured workbook or error
func (s *StaticWorkbookSource) Load(path string) (*table.Workbook, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Workbook, nil
}
