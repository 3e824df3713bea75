package checks

import (
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
)

// Report workbooks are authored in one of three languages. Sheet names are
// keyed by their German reference name; the mapping resolves the English
// and French equivalents.
const (
	LangGerman  = "DE"
	LangEnglish = "EN"
	LangFrench  = "FR"
)

type sheetTranslation struct {
	EN string
	FR string
}

var sheetNameMapping = map[string]sheetTranslation{
	"Mgmt. Summary":                 {EN: "Mgmt. summary", FR: "Mgmt. summary"},
	"Auswertung":                    {EN: "General details", FR: "Info. générales"},
	"Allgem. Angaben":               {EN: "Risks", FR: "Risques"},
	"Risiken":                       {EN: "Measures", FR: "Mesures"},
	"Massnahmen":                    {EN: "Scenarios", FR: "Scénarios"},
	"Szenarien":                     {EN: "Results_ISO-FINMA", FR: "Résultats_OS-FINMA"},
	"Ergebnisse_AVO-FINMA":          {EN: "Results_ISO-FINMA", FR: "Résultats_OS-FINMA"},
	"Ergebnisse_IFRS":               {EN: "Results_IFRS", FR: "Résultats_IFRS"},
	"Qual. & langfr. Risiken":       {EN: "Qual. & long-term risks", FR: "Risques qual. & à long terme"},
	"Schlussfolgerungen, Dokument.": {EN: "Conclusions, documentation", FR: "Conclusions, document."},
	"Drop-downs":                    {EN: "Drop-downs", FR: "Drop-Downs"},
}

// requiredSheets are the reference sheets every report must carry,
// regardless of language.
var requiredSheets = []string{
	"Mgmt. Summary",
	"Risiken",
	"Szenarien",
}

// RequiredSheets returns the German reference names of the sheets a report
// must contain.
func RequiredSheets() []string {
	out := make([]string, len(requiredSheets))
	copy(out, requiredSheets)
	return out
}

// DetectLanguage inspects the workbook's sheet names and returns the
// language with the most matches, preferring German, then English.
func DetectLanguage(wb driven.Workbook) string {
	names := make(map[string]struct{})
	for _, name := range wb.SheetNames() {
		names[name] = struct{}{}
	}

	var de, en, fr int
	for reference, tr := range sheetNameMapping {
		if _, ok := names[reference]; ok {
			de++
		}
		if _, ok := names[tr.EN]; ok {
			en++
		}
		if _, ok := names[tr.FR]; ok {
			fr++
		}
	}

	switch {
	case de >= en && de >= fr:
		return LangGerman
	case en >= fr:
		return LangEnglish
	default:
		return LangFrench
	}
}

// ResolveSheet finds the sheet for a German reference name in whatever
// language the workbook is authored in.
func ResolveSheet(wb driven.Workbook, reference string) (driven.Sheet, bool) {
	if sheet, ok := wb.Sheet(reference); ok {
		return sheet, true
	}

	tr, ok := sheetNameMapping[reference]
	if !ok {
		return nil, false
	}
	if sheet, ok := wb.Sheet(tr.EN); ok {
		return sheet, true
	}
	if sheet, ok := wb.Sheet(tr.FR); ok {
		return sheet, true
	}
	return nil, false
}
