// Package excel loads spreadsheet workbooks into immutable raw snapshots.
// Reading is the only I/O in the pipeline; everything downstream is pure.
package excel

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"chartpipe/domain/core"
	"chartpipe/domain/table"
	"chartpipe/internal/errors"
)

// WorkbookLoader handles reading Excel and CSV files
type WorkbookLoader struct{}

// NewWorkbookLoader creates a workbook loader
func NewWorkbookLoader() *WorkbookLoader {
	return &WorkbookLoader{}
}

// Load opens the file at path and snapshots every sheet's raw rows. A file
// that is not a valid spreadsheet container fails with UNREADABLE_FILE; a
// container with zero sheets fails with EMPTY_WORKBOOK. Read-only; no side
// effects beyond the file read.
func (l *WorkbookLoader) Load(path string) (*table.Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.UnreadableFile(path, err)
	}

	start := time.Now()
	var sheets []table.Sheet
	var err error
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		sheets, err = l.readCSV(path)
	} else {
		sheets, err = l.readExcel(path)
	}
	if err != nil {
		return nil, err
	}

	if len(sheets) == 0 {
		return nil, errors.EmptyWorkbook(path)
	}

	log.Printf("[WorkbookLoader] loaded %q in %.2fms (%d sheet(s))",
		path, float64(time.Since(start).Nanoseconds())/1e6, len(sheets))

	return &table.Workbook{
		ID:     core.WorkbookID(core.NewID()),
		Path:   path,
		Sheets: sheets,
	}, nil
}

// readExcel snapshots all sheets of an xlsx workbook in workbook order
func (l *WorkbookLoader) readExcel(path string) ([]table.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.UnreadableFile(path, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]table.Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrapf(errors.UnreadableFile(path, err), "failed to read sheet %q", name)
		}
		sheets = append(sheets, table.Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// readCSV reads a csv file as a single-sheet workbook named after the file
// stem
func (l *WorkbookLoader) readCSV(path string) ([]table.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.UnreadableFile(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Ragged rows are expected input; the sanitizer reconciles widths.
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.UnreadableFile(path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []table.Sheet{{Name: name, Rows: rows}}, nil
}

// SelectSheet returns the named sheet of the workbook, failing with
// UNKNOWN_SHEET when it is not present
func SelectSheet(wb *table.Workbook, name string) (table.Sheet, error) {
	sheet, ok := wb.Sheet(name)
	if !ok {
		return table.Sheet{}, errors.UnknownSheet(name)
	}
	return sheet, nil
}
