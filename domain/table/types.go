package table

import (
	"chartpipe/domain/core"
)

// Workbook is an immutable snapshot of a spreadsheet file: an ordered
// sequence of sheets holding raw, untyped rows. Reloading a file produces a
// new Workbook; nothing mutates one in place.
type Workbook struct {
	ID     core.WorkbookID `json:"id"`
	Path   string          `json:"path"`
	Sheets []Sheet         `json:"sheets"`
}

// Sheet is one tab of a workbook: a grid of raw cell strings exactly as the
// reader produced them, before any normalization.
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// SheetNames returns the sheet names in workbook order
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the named sheet, or false if it does not exist
func (w *Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// Row is one typed record of a CleanTable, keyed by column name
type Row map[string]Value

// CleanTable is the sanitized, schema-stable snapshot of a sheet. Column
// names are unique and non-empty; every row has exactly one entry per
// column; no row is entirely null. Recomputed whenever the source sheet or
// header row changes, never mutated.
type CleanTable struct {
	ID             core.TableID `json:"id"`
	SheetName      string       `json:"sheet_name"`
	HeaderRowIndex int          `json:"header_row_index"`
	Columns        []string     `json:"columns"`
	Rows           []Row        `json:"rows"`
}

// HasColumn reports whether the table schema contains the named column
func (t *CleanTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the named column's values in row order
func (t *CleanTable) Column(name string) ([]Value, bool) {
	if !t.HasColumn(name) {
		return nil, false
	}
	values := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values, true
}

// NumericColumn reports whether every non-null value in the column is a
// number, and returns the non-null numeric values in row order. Columns that
// are entirely null count as numeric (zero contribution everywhere).
func (t *CleanTable) NumericColumn(name string) ([]float64, bool) {
	values, ok := t.Column(name)
	if !ok {
		return nil, false
	}
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if v.IsNull {
			continue
		}
		if !v.IsNumber() {
			return nil, false
		}
		nums = append(nums, v.AsFloat64())
	}
	return nums, true
}
