package checks

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
)

const (
	// maxReasonableRows is the row limit enforced by row_count_reasonable.
	maxReasonableRows = 1_000_000

	// emptyScanRows bounds how many rows no_empty_sheets inspects per sheet.
	emptyScanRows = 100
)

// DefaultRegistry returns the built-in workbook rule set in its fixed
// reporting order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("has_sheets", CheckHasSheets)
	r.MustRegister("no_empty_sheets", CheckNoEmptySheets)
	r.MustRegister("first_sheet_has_data", CheckFirstSheetHasData)
	r.MustRegister("sheet_names_unique", CheckSheetNamesUnique)
	r.MustRegister("row_count_reasonable", CheckRowCountReasonable)
	r.MustRegister("has_expected_headers", CheckHasExpectedHeaders)
	r.MustRegister("no_merged_cells", CheckNoMergedCells)
	r.MustRegister("required_sheets_present", CheckRequiredSheetsPresent)
	return r
}

// CheckHasSheets verifies the workbook contains at least one sheet.
func CheckHasSheets(wb driven.Workbook) (domain.Outcome, error) {
	count := len(wb.SheetNames())
	return domain.Outcome{
		Passed:      count > 0,
		Value:       domain.Scalar(float64(count)),
		Description: fmt.Sprintf("Workbook contains %d sheet(s)", count),
	}, nil
}

// CheckNoEmptySheets verifies no sheet is completely empty. Only the first
// emptyScanRows rows of each sheet are inspected.
func CheckNoEmptySheets(wb driven.Workbook) (domain.Outcome, error) {
	emptyCount := 0
	for _, sheet := range wb.Sheets() {
		if sheetIsEmpty(sheet) {
			emptyCount++
		}
	}

	desc := "All sheets contain data"
	if emptyCount > 0 {
		desc = fmt.Sprintf("Found %d empty sheet(s)", emptyCount)
	}
	return domain.Outcome{
		Passed:      emptyCount == 0,
		Value:       domain.Scalar(float64(emptyCount)),
		Description: desc,
	}, nil
}

func sheetIsEmpty(sheet driven.Sheet) bool {
	limit := sheet.MaxRow()
	if limit > emptyScanRows {
		limit = emptyScanRows
	}
	for row := 1; row <= limit; row++ {
		for col := 1; col <= sheet.MaxCol(); col++ {
			if _, ok := sheet.Cell(row, col); ok {
				return false
			}
		}
	}
	return true
}

// CheckFirstSheetHasData verifies the first sheet has a value in cell A1.
func CheckFirstSheetHasData(wb driven.Workbook) (domain.Outcome, error) {
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return domain.Outcome{Passed: false, Description: "No worksheets found"}, nil
	}

	first := sheets[0]
	_, ok := first.Cell(1, 1)
	desc := fmt.Sprintf("First sheet %q has no data in A1", first.Name())
	if ok {
		desc = fmt.Sprintf("First sheet %q has data in A1", first.Name())
	}
	return domain.Outcome{Passed: ok, Description: desc}, nil
}

// CheckSheetNamesUnique verifies all sheet names are unique.
func CheckSheetNamesUnique(wb driven.Workbook) (domain.Outcome, error) {
	names := wb.SheetNames()
	unique := make(map[string]struct{}, len(names))
	for _, name := range names {
		unique[name] = struct{}{}
	}

	passed := len(names) == len(unique)
	desc := "All sheet names are unique"
	if !passed {
		desc = fmt.Sprintf("Duplicate sheet names found: %d total, %d unique",
			len(names), len(unique))
	}
	return domain.Outcome{
		Passed:      passed,
		Value:       domain.Scalar(float64(len(unique))),
		Description: desc,
	}, nil
}

// CheckRowCountReasonable verifies no sheet exceeds the row limit.
func CheckRowCountReasonable(wb driven.Workbook) (domain.Outcome, error) {
	maxRows := 0
	for _, sheet := range wb.Sheets() {
		if sheet.MaxRow() > maxRows {
			maxRows = sheet.MaxRow()
		}
	}

	passed := maxRows <= maxReasonableRows
	desc := fmt.Sprintf("Maximum row count is %d (within limit)", maxRows)
	if !passed {
		desc = fmt.Sprintf("Maximum row count is %d (exceeds limit of %d)",
			maxRows, maxReasonableRows)
	}
	return domain.Outcome{
		Passed:      passed,
		Value:       domain.Scalar(float64(maxRows)),
		Description: desc,
	}, nil
}

// CheckHasExpectedHeaders verifies the first sheet carries non-empty
// header cells in its first row.
func CheckHasExpectedHeaders(wb driven.Workbook) (domain.Outcome, error) {
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return domain.Outcome{
			Passed:      false,
			Value:       domain.Scalar(0),
			Description: "No worksheets found",
		}, nil
	}

	first := sheets[0]
	if first.MaxRow() == 0 {
		return domain.Outcome{
			Passed:      false,
			Value:       domain.Scalar(0),
			Description: fmt.Sprintf("Sheet %q is empty", first.Name()),
		}, nil
	}

	headerCount := 0
	for _, value := range first.Row(1) {
		if strings.TrimSpace(value) != "" {
			headerCount++
		}
	}

	passed := headerCount > 0
	desc := "No headers found in first row"
	if passed {
		desc = fmt.Sprintf("Found %d non-empty header cell(s) in first row", headerCount)
	}
	return domain.Outcome{
		Passed:      passed,
		Value:       domain.Scalar(float64(headerCount)),
		Description: desc,
	}, nil
}

// CheckNoMergedCells verifies the workbook contains no merged cell ranges.
func CheckNoMergedCells(wb driven.Workbook) (domain.Outcome, error) {
	mergedCount := 0
	for _, sheet := range wb.Sheets() {
		mergedCount += sheet.MergedRangeCount()
	}

	passed := mergedCount == 0
	desc := "No merged cells found"
	if !passed {
		desc = fmt.Sprintf("Found %d merged cell range(s)", mergedCount)
	}
	return domain.Outcome{
		Passed:      passed,
		Value:       domain.Scalar(float64(mergedCount)),
		Description: desc,
	}, nil
}

// CheckRequiredSheetsPresent verifies the reference sheets exist in any of
// the supported report languages.
func CheckRequiredSheetsPresent(wb driven.Workbook) (domain.Outcome, error) {
	var missing []string
	for _, reference := range RequiredSheets() {
		if _, ok := ResolveSheet(wb, reference); !ok {
			missing = append(missing, reference)
		}
	}

	passed := len(missing) == 0
	desc := "All required sheets present"
	if !passed {
		desc = fmt.Sprintf("Missing required sheet(s): %s", strings.Join(missing, ", "))
	}
	return domain.Outcome{
		Passed:      passed,
		Value:       domain.Scalar(float64(len(missing))),
		Description: desc,
	}, nil
}
