package driven

import "context"

// WorkbookReader opens spreadsheet documents for check evaluation.
// Parse failures surface as domain.ErrFormat, missing files as
// domain.ErrNotFound.
type WorkbookReader interface {
	// Open parses the document at path and returns a random-access handle.
	// Callers must Close the returned workbook.
	Open(ctx context.Context, path string) (Workbook, error)
}

// Workbook is an opaque handle over a parsed spreadsheet. Checks only need
// random-access cell and sheet lookups; how the bytes are decoded is an
// adapter concern.
type Workbook interface {
	// SheetNames returns all sheet names in workbook order.
	SheetNames() []string

	// Sheets returns all sheets in workbook order.
	Sheets() []Sheet

	// Sheet returns the sheet with the given name, if present.
	Sheet(name string) (Sheet, bool)

	// Close releases resources held by the workbook.
	Close() error
}

// Sheet is a single worksheet within a workbook.
type Sheet interface {
	// Name returns the sheet name.
	Name() string

	// MaxRow returns the highest 1-based row index containing data,
	// 0 for an empty sheet.
	MaxRow() int

	// MaxCol returns the highest 1-based column index containing data,
	// 0 for an empty sheet.
	MaxCol() int

	// Cell returns the value at the 1-based (row, col) position.
	// ok is false when the cell is empty or out of range.
	Cell(row, col int) (value string, ok bool)

	// Row returns the values of a 1-based row, one entry per column up to
	// MaxCol. Empty cells are empty strings.
	Row(row int) []string

	// MergedRangeCount returns the number of merged cell ranges.
	MergedRangeCount() int
}
