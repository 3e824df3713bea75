// Package excel reads .xlsx workbooks by unpacking the OOXML zip container
// directly with archive/zip and encoding/xml. Only the cell/sheet surface
// the check rules need is decoded.
package excel

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
	"github.com/custodia-labs/orsaqc/internal/logging"
)

// Ensure Reader implements the interface.
var _ driven.WorkbookReader = (*Reader)(nil)

// supportedExtensions gates which files are treated as Excel workbooks.
var supportedExtensions = map[string]struct{}{
	".xlsx": {},
	".xlsm": {},
	".xltx": {},
	".xltm": {},
}

// Reader opens Excel workbooks from the local filesystem.
type Reader struct{}

// NewReader creates a workbook reader.
func NewReader() *Reader {
	return &Reader{}
}

// Open parses the workbook at path. Missing files yield domain.ErrNotFound;
// unsupported extensions and corrupt archives yield domain.ErrFormat.
func (r *Reader) Open(_ context.Context, path string) (driven.Workbook, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: unsupported extension %q", domain.ErrFormat, ext)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s is not a valid workbook archive", domain.ErrFormat, path)
	}
	defer zr.Close()

	wb, err := parseWorkbook(&zr.Reader)
	if err != nil {
		return nil, err
	}

	logging.L().Debugw("opened workbook", "path", path, "sheets", len(wb.sheets))
	return wb, nil
}

// Workbook is a fully materialised in-memory workbook.
type Workbook struct {
	sheets  []*Sheet
	byName  map[string]*Sheet
	ordered []string
}

var _ driven.Workbook = (*Workbook)(nil)

// SheetNames returns all sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.ordered))
	copy(out, w.ordered)
	return out
}

// Sheets returns all sheets in workbook order.
func (w *Workbook) Sheets() []driven.Sheet {
	out := make([]driven.Sheet, len(w.sheets))
	for i, s := range w.sheets {
		out[i] = s
	}
	return out
}

// Sheet returns the sheet with the given name.
func (w *Workbook) Sheet(name string) (driven.Sheet, bool) {
	s, ok := w.byName[name]
	if !ok {
		return nil, false
	}
	return s, true
}

// Close releases the workbook. All data is in memory, so this is a no-op
// kept for the driven.Workbook contract.
func (w *Workbook) Close() error {
	return nil
}

// Sheet is one parsed worksheet.
type Sheet struct {
	name         string
	cells        map[cellPos]string
	maxRow       int
	maxCol       int
	mergedRanges int
}

type cellPos struct {
	row, col int
}

var _ driven.Sheet = (*Sheet)(nil)

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// MaxRow returns the highest populated 1-based row index.
func (s *Sheet) MaxRow() int { return s.maxRow }

// MaxCol returns the highest populated 1-based column index.
func (s *Sheet) MaxCol() int { return s.maxCol }

// Cell returns the value at the 1-based (row, col) position.
func (s *Sheet) Cell(row, col int) (string, bool) {
	v, ok := s.cells[cellPos{row, col}]
	return v, ok
}

// Row returns the values of a 1-based row up to MaxCol.
func (s *Sheet) Row(row int) []string {
	out := make([]string, s.maxCol)
	for col := 1; col <= s.maxCol; col++ {
		if v, ok := s.cells[cellPos{row, col}]; ok {
			out[col-1] = v
		}
	}
	return out
}

// MergedRangeCount returns the number of merged cell ranges.
func (s *Sheet) MergedRangeCount() int { return s.mergedRanges }

// ---- OOXML decoding ----

type workbookXML struct {
	Sheets struct {
		Sheet []struct {
			Name string `xml:"name,attr"`
			RID  string `xml:"id,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
}

type relationshipsXML struct {
	Relationship []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type sharedStringsXML struct {
	SI []struct {
		T string   `xml:"t"`
		R []string `xml:"r>t"`
	} `xml:"si"`
}

type worksheetXML struct {
	SheetData struct {
		Rows []struct {
			R     int `xml:"r,attr"`
			Cells []struct {
				R  string `xml:"r,attr"`
				T  string `xml:"t,attr"`
				V  string `xml:"v"`
				IS struct {
					T string `xml:"t"`
				} `xml:"is"`
			} `xml:"c"`
		} `xml:"row"`
	} `xml:"sheetData"`
	MergeCells struct {
		Ranges []struct {
			Ref string `xml:"ref,attr"`
		} `xml:"mergeCell"`
	} `xml:"mergeCells"`
}

func parseWorkbook(zr *zip.Reader) (*Workbook, error) {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var meta workbookXML
	if err := decodePart(files, "xl/workbook.xml", &meta); err != nil {
		return nil, fmt.Errorf("%w: missing workbook metadata", domain.ErrFormat)
	}

	var rels relationshipsXML
	if err := decodePart(files, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return nil, fmt.Errorf("%w: missing workbook relationships", domain.ErrFormat)
	}
	targets := make(map[string]string, len(rels.Relationship))
	for _, rel := range rels.Relationship {
		targets[rel.ID] = rel.Target
	}

	shared, err := parseSharedStrings(files)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{byName: make(map[string]*Sheet)}
	for _, sheetMeta := range meta.Sheets.Sheet {
		target, ok := targets[sheetMeta.RID]
		if !ok {
			return nil, fmt.Errorf("%w: sheet %q has no worksheet part", domain.ErrFormat, sheetMeta.Name)
		}
		target = strings.TrimPrefix(target, "/")
		if !strings.HasPrefix(target, "xl/") {
			target = "xl/" + target
		}

		sheet, err := parseSheet(files, target, sheetMeta.Name, shared)
		if err != nil {
			return nil, err
		}
		wb.sheets = append(wb.sheets, sheet)
		wb.byName[sheet.name] = sheet
		wb.ordered = append(wb.ordered, sheet.name)
	}

	return wb, nil
}

func parseSharedStrings(files map[string]*zip.File) ([]string, error) {
	if _, ok := files["xl/sharedStrings.xml"]; !ok {
		return nil, nil // optional part
	}

	var raw sharedStringsXML
	if err := decodePart(files, "xl/sharedStrings.xml", &raw); err != nil {
		return nil, fmt.Errorf("%w: corrupt shared strings", domain.ErrFormat)
	}

	out := make([]string, len(raw.SI))
	for i, si := range raw.SI {
		if len(si.R) > 0 {
			out[i] = strings.Join(si.R, "")
		} else {
			out[i] = si.T
		}
	}
	return out, nil
}

func parseSheet(files map[string]*zip.File, part, name string, shared []string) (*Sheet, error) {
	var raw worksheetXML
	if err := decodePart(files, part, &raw); err != nil {
		return nil, fmt.Errorf("%w: corrupt worksheet %q", domain.ErrFormat, name)
	}

	sheet := &Sheet{
		name:         name,
		cells:        make(map[cellPos]string),
		mergedRanges: len(raw.MergeCells.Ranges),
	}

	for _, row := range raw.SheetData.Rows {
		lastCol := 0
		for _, c := range row.Cells {
			var rowIdx, colIdx int
			if c.R == "" {
				// Writers may omit cell references; cells then fill the
				// row left to right.
				rowIdx, colIdx = row.R, lastCol+1
			} else {
				var err error
				rowIdx, colIdx, err = parseCellRef(c.R)
				if err != nil {
					return nil, fmt.Errorf("%w: bad cell reference %q in %q", domain.ErrFormat, c.R, name)
				}
			}
			lastCol = colIdx
			if rowIdx < 1 || colIdx < 1 {
				continue
			}

			value, ok := cellValue(c.T, c.V, c.IS.T, shared)
			if !ok {
				continue
			}

			sheet.cells[cellPos{rowIdx, colIdx}] = value
			if rowIdx > sheet.maxRow {
				sheet.maxRow = rowIdx
			}
			if colIdx > sheet.maxCol {
				sheet.maxCol = colIdx
			}
		}
	}

	return sheet, nil
}

func cellValue(typ, v, inline string, shared []string) (string, bool) {
	switch typ {
	case "s":
		idx, err := strconv.Atoi(v)
		if err != nil || idx < 0 || idx >= len(shared) {
			return "", false
		}
		if shared[idx] == "" {
			return "", false
		}
		return shared[idx], true
	case "inlineStr":
		if inline == "" {
			return "", false
		}
		return inline, true
	default:
		if v == "" {
			return "", false
		}
		return v, true
	}
}

// parseCellRef converts an A1-style reference into 1-based (row, col).
func parseCellRef(ref string) (int, int, error) {
	if ref == "" {
		return 0, 0, fmt.Errorf("empty reference")
	}

	split := 0
	for split < len(ref) && ref[split] >= 'A' && ref[split] <= 'Z' {
		split++
	}
	if split == 0 || split == len(ref) {
		return 0, 0, fmt.Errorf("malformed reference %q", ref)
	}

	col := 0
	for _, c := range ref[:split] {
		col = col*26 + int(c-'A'+1)
	}
	row, err := strconv.Atoi(ref[split:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("malformed reference %q", ref)
	}
	return row, col, nil
}

func decodePart(files map[string]*zip.File, name string, v any) error {
	f, ok := files[name]
	if !ok {
		return fmt.Errorf("part %s not found", name)
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}
