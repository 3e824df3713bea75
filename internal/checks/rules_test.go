package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHasSheets(t *testing.T) {
	out, err := CheckHasSheets(newFakeWorkbook(dataSheet("Sheet1")))
	require.NoError(t, err)
	assert.True(t, out.Passed)
	require.NotNil(t, out.Value)
	assert.Equal(t, 1.0, *out.Value)

	out, err = CheckHasSheets(newFakeWorkbook())
	require.NoError(t, err)
	assert.False(t, out.Passed)
}

func TestCheckNoEmptySheets(t *testing.T) {
	out, err := CheckNoEmptySheets(newFakeWorkbook(dataSheet("A"), dataSheet("B")))
	require.NoError(t, err)
	assert.True(t, out.Passed)

	empty := &fakeSheet{name: "Empty", rows: [][]string{{""}, {""}}}
	out, err = CheckNoEmptySheets(newFakeWorkbook(dataSheet("A"), empty))
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Equal(t, "Found 1 empty sheet(s)", out.Description)
	require.NotNil(t, out.Value)
	assert.Equal(t, 1.0, *out.Value)
}

func TestCheckFirstSheetHasData(t *testing.T) {
	out, err := CheckFirstSheetHasData(newFakeWorkbook(dataSheet("First")))
	require.NoError(t, err)
	assert.True(t, out.Passed)

	// A1 empty, data elsewhere.
	sheet := &fakeSheet{name: "First", rows: [][]string{{"", "x"}}}
	out, err = CheckFirstSheetHasData(newFakeWorkbook(sheet))
	require.NoError(t, err)
	assert.False(t, out.Passed)

	out, err = CheckFirstSheetHasData(newFakeWorkbook())
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Equal(t, "No worksheets found", out.Description)
}

func TestCheckSheetNamesUnique(t *testing.T) {
	out, err := CheckSheetNamesUnique(newFakeWorkbook(dataSheet("A"), dataSheet("B")))
	require.NoError(t, err)
	assert.True(t, out.Passed)

	out, err = CheckSheetNamesUnique(newFakeWorkbook(dataSheet("A"), dataSheet("A")))
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Contains(t, out.Description, "Duplicate sheet names")
}

func TestCheckRowCountReasonable(t *testing.T) {
	out, err := CheckRowCountReasonable(newFakeWorkbook(dataSheet("A")))
	require.NoError(t, err)
	assert.True(t, out.Passed)
	require.NotNil(t, out.Value)
	assert.Equal(t, 2.0, *out.Value)
}

func TestCheckHasExpectedHeaders(t *testing.T) {
	out, err := CheckHasExpectedHeaders(newFakeWorkbook(dataSheet("A")))
	require.NoError(t, err)
	assert.True(t, out.Passed)
	require.NotNil(t, out.Value)
	assert.Equal(t, 2.0, *out.Value)

	// Whitespace-only header row.
	sheet := &fakeSheet{name: "A", rows: [][]string{{"  ", "\t"}}}
	out, err = CheckHasExpectedHeaders(newFakeWorkbook(sheet))
	require.NoError(t, err)
	assert.False(t, out.Passed)

	out, err = CheckHasExpectedHeaders(newFakeWorkbook(&fakeSheet{name: "A"}))
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Equal(t, `Sheet "A" is empty`, out.Description)
}

func TestCheckNoMergedCells(t *testing.T) {
	out, err := CheckNoMergedCells(newFakeWorkbook(dataSheet("A")))
	require.NoError(t, err)
	assert.True(t, out.Passed)

	merged := dataSheet("B")
	merged.merged = 3
	out, err = CheckNoMergedCells(newFakeWorkbook(dataSheet("A"), merged))
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Equal(t, "Found 3 merged cell range(s)", out.Description)
}

func TestCheckRequiredSheetsPresent(t *testing.T) {
	german := newFakeWorkbook(
		dataSheet("Mgmt. Summary"),
		dataSheet("Risiken"),
		dataSheet("Szenarien"),
	)
	out, err := CheckRequiredSheetsPresent(german)
	require.NoError(t, err)
	assert.True(t, out.Passed)

	// English equivalents satisfy the same requirement.
	english := newFakeWorkbook(
		dataSheet("Mgmt. summary"),
		dataSheet("Measures"),
		dataSheet("Results_ISO-FINMA"),
	)
	out, err = CheckRequiredSheetsPresent(english)
	require.NoError(t, err)
	assert.True(t, out.Passed)

	missing := newFakeWorkbook(dataSheet("Mgmt. Summary"))
	out, err = CheckRequiredSheetsPresent(missing)
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Contains(t, out.Description, "Risiken")
	assert.Contains(t, out.Description, "Szenarien")
	require.NotNil(t, out.Value)
	assert.Equal(t, 2.0, *out.Value)
}
