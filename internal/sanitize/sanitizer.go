// Package sanitize derives a schema-stable CleanTable from a raw sheet:
// header repair, per-cell normalization, blank-row elision, and row
// width reconciliation, all in a single pass over the rows.
package sanitize

import (
	"fmt"
	"log"

	"chartpipe/domain/core"
	"chartpipe/domain/table"
	"chartpipe/internal/errors"
	"chartpipe/internal/normalize"
)

// Options controls how a sheet is sliced into header and data
type Options struct {
	// HeaderRowIndex is the 0-based row treated as the header (or, when
	// HasHeader is false, the first data row). Rows above it are discarded.
	HeaderRowIndex int `json:"header_row_index"`
	// HasHeader indicates whether the row at HeaderRowIndex holds column
	// names. When false every column gets a Column_<n> placeholder.
	HasHeader bool `json:"has_header"`
}

// DefaultOptions returns the default slicing: header at the first row
func DefaultOptions() Options {
	return Options{HeaderRowIndex: 0, HasHeader: true}
}

// Sanitizer turns raw sheets into CleanTables
type Sanitizer struct {
	normalizer *normalize.CellNormalizer
}

// NewSanitizer creates a sanitizer using the given cell normalizer
func NewSanitizer(normalizer *normalize.CellNormalizer) *Sanitizer {
	return &Sanitizer{normalizer: normalizer}
}

// Sanitize derives an immutable CleanTable from the sheet. Deterministic and
// idempotent for a fixed (sheet, options) pair: row order equals input order
// minus dropped rows. Fails with INVALID_HEADER_ROW when the index is out of
// range; the range is reported, not clamped.
func (s *Sanitizer) Sanitize(sheet table.Sheet, opts Options) (*table.CleanTable, error) {
	if opts.HeaderRowIndex < 0 || opts.HeaderRowIndex >= len(sheet.Rows) {
		return nil, errors.InvalidHeaderRow(opts.HeaderRowIndex, len(sheet.Rows))
	}

	var columns []string
	dataStart := opts.HeaderRowIndex
	if opts.HasHeader {
		columns = s.repairHeaders(sheet.Rows[opts.HeaderRowIndex])
		dataStart = opts.HeaderRowIndex + 1
	} else {
		columns = placeholderHeaders(maxWidth(sheet.Rows[opts.HeaderRowIndex:]))
	}

	rows := make([]table.Row, 0, len(sheet.Rows)-dataStart)
	dropped := 0
	for i := dataStart; i < len(sheet.Rows); i++ {
		row, blank := s.normalizeRow(sheet.Rows[i], columns)
		if blank {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	if dropped > 0 {
		log.Printf("[Sanitizer] sheet %q: dropped %d blank row(s)", sheet.Name, dropped)
	}

	return &table.CleanTable{
		ID:             core.TableID(core.NewID()),
		SheetName:      sheet.Name,
		HeaderRowIndex: opts.HeaderRowIndex,
		Columns:        columns,
		Rows:           rows,
	}, nil
}

// repairHeaders normalizes header cells to text, fills blanks with
// Column_<n> placeholders, and disambiguates duplicates with _2, _3, ... in
// order of appearance.
func (s *Sanitizer) repairHeaders(headerRow []string) []string {
	columns := make([]string, len(headerRow))
	used := make(map[string]bool, len(headerRow))

	for i, cell := range headerRow {
		name := s.normalizer.Normalize(cell).Render()
		if name == "" {
			name = placeholderName(i)
		}
		if used[name] {
			base := name
			for n := 2; ; n++ {
				name = fmt.Sprintf("%s_%d", base, n)
				if !used[name] {
					break
				}
			}
		}
		used[name] = true
		columns[i] = name
	}
	return columns
}

// normalizeRow maps one raw row onto the schema: cells are normalized, short
// rows padded with null, extra trailing cells discarded in favor of the
// declared schema. Returns blank=true when every value is null.
func (s *Sanitizer) normalizeRow(raw []string, columns []string) (table.Row, bool) {
	row := make(table.Row, len(columns))
	blank := true
	for i, col := range columns {
		value := table.NullValue()
		if i < len(raw) {
			value = s.normalizer.Normalize(raw[i])
		}
		if !value.IsNull {
			blank = false
		}
		row[col] = value
	}
	return row, blank
}

func placeholderName(index int) string {
	return fmt.Sprintf("Column_%d", index+1)
}

func placeholderHeaders(width int) []string {
	columns := make([]string, width)
	for i := range columns {
		columns[i] = placeholderName(i)
	}
	return columns
}

func maxWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
