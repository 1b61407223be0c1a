package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/xuri/excelize/v2"
)

const (
	bannerPrefix = "File: "
	defaultSheet = "Sheet1"
	emptyMessage = "No harmonic data found"
)

// Summary sheet columns.
var summaryColumns = []string{
	"Day", "Recommended limit (%)", "R Phase (%)", "Y Phase (%)", "B Phase (%)", "Remarks",
}

type styles struct {
	header           int
	fail             int
	harmonic         int
	summaryHeader    int
	summaryViolation int
}

// Workbook renders document reports into an excelize workbook. Family
// tables get one sheet per (limit, parity) bucket; failing measured cells
// are highlighted together with their harmonic and page cells.
type Workbook struct {
	file    *excelize.File
	cfg     *config.Config
	namer   *SheetNamer
	styles  styles
	sheets  []string
	sources map[string]string
}

// NewWorkbook creates an empty workbook.
func NewWorkbook(cfg *config.Config) (*Workbook, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create styles: %w", err)
	}
	return &Workbook{
		file:    f,
		cfg:     cfg,
		namer:   NewSheetNamer(cfg.Export.SheetNameLimit),
		styles:  st,
		sources: make(map[string]string),
	}, nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.header, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&st.fail, &excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
			Font: &excelize.Font{Color: "9C0006", Bold: true},
		}},
		{&st.harmonic, &excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
		}},
		{&st.summaryHeader, &excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"E3F2FD"}, Pattern: 1},
			Font: &excelize.Font{Bold: true},
		}},
		{&st.summaryViolation, &excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEBEE"}, Pattern: 1},
			Font: &excelize.Font{Color: "D32F2F", Bold: true},
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, err
		}
		*d.dst = id
	}
	return st, nil
}

// AddReport writes the sheets of a single document.
func (w *Workbook) AddReport(report *models.DocumentReport) error {
	return w.addReport(report, "", "")
}

// AddBulkReport writes the sheets of one document of a bulk export. Sheet
// names carry a prefix derived from the filename and each sheet starts
// with a banner row naming the source document.
func (w *Workbook) AddBulkReport(report *models.DocumentReport) error {
	return w.addReport(report, BulkPrefix(report.Document)+"_", bannerPrefix+report.Document)
}

func (w *Workbook) addReport(report *models.DocumentReport, prefix, banner string) error {
	for _, fr := range report.Families {
		family, ok := w.cfg.Family(fr.Family)
		if !ok {
			return fmt.Errorf("unknown family %q", fr.Family)
		}
		for _, b := range fr.Split.Buckets {
			if len(b.Rows) == 0 {
				continue
			}
			name := w.namer.Unique(prefix + FamilySheetName(family.Abbrev, b.Limit, b.Parity.Abbrev()))
			if err := w.writeFamilySheet(name, fr.Display.Schema, b.Rows, banner); err != nil {
				return fmt.Errorf("sheet %q: %w", name, err)
			}
			w.track(name, report.Document, banner)
		}
	}
	for _, st := range report.Summaries {
		if len(st.Rows) == 0 {
			continue
		}
		name := w.namer.Unique(prefix + SummarySheetName(w.summaryAbbrev(st.Key), st.Key))
		if err := w.writeSummarySheet(name, st, banner); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		w.track(name, report.Document, banner)
	}
	return nil
}

func (w *Workbook) summaryAbbrev(key string) string {
	if def, ok := w.cfg.Summary(key); ok {
		return def.Abbrev
	}
	return ""
}

func (w *Workbook) track(sheet, document, banner string) {
	if banner != "" {
		w.sources[sheet] = document
	}
}

// Sources maps each bulk sheet to its source document.
func (w *Workbook) Sources() map[string]string {
	out := make(map[string]string, len(w.sources))
	for k, v := range w.sources {
		out[k] = v
	}
	return out
}

// Sheets returns the sheet names in creation order.
func (w *Workbook) Sheets() []string {
	return append([]string(nil), w.sheets...)
}

// SetRunID stamps the batch run identifier into the document properties.
func (w *Workbook) SetRunID(id string) error {
	return w.file.SetDocProps(&excelize.DocProperties{
		Creator:    "pqharmonics",
		Title:      "Harmonic analysis",
		Identifier: id,
	})
}

func (w *Workbook) newSheet(name string) error {
	if len(w.sheets) == 0 {
		if err := w.file.SetSheetName(defaultSheet, name); err != nil {
			return err
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return err
	}
	w.sheets = append(w.sheets, name)
	return nil
}

// startSheet creates the sheet, writes the optional banner and the
// header, and returns the header row number.
func (w *Workbook) startSheet(name, banner string, header []string, style int) (int, error) {
	if err := w.newSheet(name); err != nil {
		return 0, err
	}
	row := 1
	if banner != "" {
		if err := w.file.SetCellValue(name, "A1", banner); err != nil {
			return 0, err
		}
		row = 2
	}
	start := cellName(1, row)
	if err := w.file.SetSheetRow(name, start, &header); err != nil {
		return 0, err
	}
	if err := w.file.SetCellStyle(name, start, cellName(len(header), row), style); err != nil {
		return 0, err
	}
	return row, nil
}

func (w *Workbook) writeFamilySheet(name string, schema models.Schema, rows []models.Row, banner string) error {
	header := schema.ColumnsWithPage()
	headerRow, err := w.startSheet(name, banner, header, w.styles.header)
	if err != nil {
		return err
	}

	for i, r := range rows {
		rowNum := headerRow + 1 + i
		values := familyRowValues(r)
		if err := w.file.SetSheetRow(name, cellName(1, rowNum), &values); err != nil {
			return err
		}
		if err := w.highlight(name, rowNum, r); err != nil {
			return err
		}
	}

	if err := w.file.SetColWidth(name, "A", columnName(len(header)), 16); err != nil {
		return err
	}
	return SetPrintArea(w.file, name, models.PrintArea{
		R1: headerRow, C1: 1, R2: headerRow + len(rows), C2: len(header),
	})
}

// highlight styles failing measured cells and the row's harmonic and
// page cells.
func (w *Workbook) highlight(sheet string, rowNum int, r models.Row) error {
	failing := failingPhases(r)
	failed := false
	for i, fail := range failing {
		if !fail {
			continue
		}
		failed = true
		cell := cellName(1+models.CellMeasured+i, rowNum)
		if err := w.file.SetCellStyle(sheet, cell, cell, w.styles.fail); err != nil {
			return err
		}
	}
	if !failed {
		return nil
	}
	for _, col := range []int{1 + models.CellHarmonic, models.RawRowWidth + 1} {
		cell := cellName(col, rowNum)
		if err := w.file.SetCellStyle(sheet, cell, cell, w.styles.harmonic); err != nil {
			return err
		}
	}
	return nil
}

// failingPhases flags phases whose measured value exceeds the reg max or
// whose result mentions a failure. Non-numeric measurements count as 0.
func failingPhases(r models.Row) [3]bool {
	var out [3]bool
	for i, m := range r.Measured {
		value := 0.0
		if m.Numeric {
			value = m.Value
		}
		out[i] = value > r.RegMax || strings.Contains(strings.ToLower(r.Results[i]), "fail")
	}
	return out
}

func familyRowValues(r models.Row) []interface{} {
	values := []interface{}{r.Harmonic, r.TimeLimit, r.RegMax}
	for _, m := range r.Measured {
		values = append(values, measurementValue(m))
	}
	for _, res := range r.Results {
		values = append(values, res)
	}
	if r.Page > 0 {
		return append(values, r.Page)
	}
	return append(values, r.PageLabel())
}

func measurementValue(m models.Measurement) interface{} {
	if m.Numeric {
		return m.Value
	}
	return m.Raw
}

func (w *Workbook) writeSummarySheet(name string, st models.SummaryTable, banner string) error {
	headerRow, err := w.startSheet(name, banner, summaryColumns, w.styles.summaryHeader)
	if err != nil {
		return err
	}

	for i, r := range st.Rows {
		rowNum := headerRow + 1 + i
		values := []interface{}{
			r.Day, r.Limit,
			measurementValue(r.Phases[0]), measurementValue(r.Phases[1]), measurementValue(r.Phases[2]),
			r.Remarks,
		}
		if err := w.file.SetSheetRow(name, cellName(1, rowNum), &values); err != nil {
			return err
		}
		if r.Exceeds() {
			if err := w.file.SetCellStyle(name, cellName(1, rowNum), cellName(len(values), rowNum), w.styles.summaryViolation); err != nil {
				return err
			}
		}
	}

	if err := w.file.SetColWidth(name, "A", columnName(len(summaryColumns)), 20); err != nil {
		return err
	}
	return SetPrintArea(w.file, name, models.PrintArea{
		R1: headerRow, C1: 1, R2: headerRow + len(st.Rows), C2: len(summaryColumns),
	})
}

func (w *Workbook) finish() error {
	if len(w.sheets) > 0 {
		return nil
	}
	return w.file.SetCellValue(defaultSheet, "A1", emptyMessage)
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	if err := w.finish(); err != nil {
		return err
	}
	return w.file.SaveAs(path)
}

// WriteTo writes the workbook to out.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	if err := w.finish(); err != nil {
		return 0, err
	}
	return w.file.WriteTo(out)
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
