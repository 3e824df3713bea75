package checks

import (
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
)

// fakeSheet is an in-memory driven.Sheet for rule tests. Cells are stored
// as rows of strings; empty strings count as empty cells.
type fakeSheet struct {
	name   string
	rows   [][]string
	merged int
}

func (s *fakeSheet) Name() string { return s.name }

func (s *fakeSheet) MaxRow() int { return len(s.rows) }

func (s *fakeSheet) MaxCol() int {
	max := 0
	for _, row := range s.rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

func (s *fakeSheet) Cell(row, col int) (string, bool) {
	if row < 1 || row > len(s.rows) {
		return "", false
	}
	cells := s.rows[row-1]
	if col < 1 || col > len(cells) {
		return "", false
	}
	if cells[col-1] == "" {
		return "", false
	}
	return cells[col-1], true
}

func (s *fakeSheet) Row(row int) []string {
	if row < 1 || row > len(s.rows) {
		return nil
	}
	out := make([]string, s.MaxCol())
	copy(out, s.rows[row-1])
	return out
}

func (s *fakeSheet) MergedRangeCount() int { return s.merged }

// fakeWorkbook holds fake sheets in insertion order.
type fakeWorkbook struct {
	sheets []*fakeSheet
}

func newFakeWorkbook(sheets ...*fakeSheet) *fakeWorkbook {
	return &fakeWorkbook{sheets: sheets}
}

// dataSheet builds a sheet with a header row and one data row.
func dataSheet(name string) *fakeSheet {
	return &fakeSheet{
		name: name,
		rows: [][]string{
			{"ID", "Value"},
			{"1", "42"},
		},
	}
}

func (w *fakeWorkbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.name
	}
	return names
}

func (w *fakeWorkbook) Sheets() []driven.Sheet {
	out := make([]driven.Sheet, len(w.sheets))
	for i, s := range w.sheets {
		out[i] = s
	}
	return out
}

func (w *fakeWorkbook) Sheet(name string) (driven.Sheet, bool) {
	for _, s := range w.sheets {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

func (w *fakeWorkbook) Close() error { return nil }
