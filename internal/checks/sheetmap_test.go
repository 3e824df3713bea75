package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name   string
		sheets []string
		want   string
	}{
		{
			name:   "german report",
			sheets: []string{"Mgmt. Summary", "Risiken", "Szenarien", "Auswertung"},
			want:   LangGerman,
		},
		{
			name:   "english report",
			sheets: []string{"General details", "Measures", "Results_ISO-FINMA"},
			want:   LangEnglish,
		},
		{
			name:   "french report",
			sheets: []string{"Info. générales", "Mesures", "Résultats_OS-FINMA"},
			want:   LangFrench,
		},
		{
			name:   "no known sheets defaults to german",
			sheets: []string{"Sheet1", "Sheet2"},
			want:   LangGerman,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheets := make([]*fakeSheet, len(tt.sheets))
			for i, name := range tt.sheets {
				sheets[i] = dataSheet(name)
			}
			assert.Equal(t, tt.want, DetectLanguage(newFakeWorkbook(sheets...)))
		})
	}
}

func TestResolveSheet(t *testing.T) {
	// Reference name matches directly.
	wb := newFakeWorkbook(dataSheet("Risiken"))
	sheet, ok := ResolveSheet(wb, "Risiken")
	require.True(t, ok)
	assert.Equal(t, "Risiken", sheet.Name())

	// English translation resolves through the mapping.
	wb = newFakeWorkbook(dataSheet("Measures"))
	sheet, ok = ResolveSheet(wb, "Risiken")
	require.True(t, ok)
	assert.Equal(t, "Measures", sheet.Name())

	// French translation.
	wb = newFakeWorkbook(dataSheet("Mesures"))
	sheet, ok = ResolveSheet(wb, "Risiken")
	require.True(t, ok)
	assert.Equal(t, "Mesures", sheet.Name())

	// Unknown reference names never resolve.
	_, ok = ResolveSheet(newFakeWorkbook(dataSheet("Whatever")), "Nicht vorhanden")
	assert.False(t, ok)

	// Known reference, sheet absent in every language.
	_, ok = ResolveSheet(newFakeWorkbook(dataSheet("Sheet1")), "Szenarien")
	assert.False(t, ok)
}

func TestRequiredSheetsIsACopy(t *testing.T) {
	first := RequiredSheets()
	first[0] = "mutated"
	assert.Equal(t, "Mgmt. Summary", RequiredSheets()[0])
}
