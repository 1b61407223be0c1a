package models

// PrintArea represents cell coordinate bounds for a print area.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// SheetInfo describes one exported sheet as read back from a workbook.
type SheetInfo struct {
	// Source is the document named by the sheet banner (bulk exports only).
	Source string `json:"source,omitempty"`
	// Header is the column header row.
	Header []string `json:"header"`
	// DataRows counts rows below the header.
	DataRows int `json:"data_rows"`
	// PrintAreas lists the sheet's print areas.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}

// WorkbookIndex is the read-back view of an exported workbook.
type WorkbookIndex struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// RunID is the batch run identifier stamped into the document properties.
	RunID string `json:"run_id,omitempty"`
	// Sheets maps sheet name to SheetInfo.
	Sheets map[string]SheetInfo `json:"sheets"`
}

// Sources maps each bannered sheet to its source document.
func (w *WorkbookIndex) Sources() map[string]string {
	out := make(map[string]string)
	for name, s := range w.Sheets {
		if s.Source != "" {
			out[name] = s.Source
		}
	}
	return out
}
