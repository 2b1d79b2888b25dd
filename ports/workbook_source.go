package ports

import (
	"chartpipe/domain/table"
)

// WorkbookSourcePort abstracts where raw workbooks come from so the app
// layer never touches file I/O directly
type WorkbookSourcePort interface {
	// Load opens a spreadsheet file and snapshots its sheets
	Load(path string) (*table.Workbook, error)
}
