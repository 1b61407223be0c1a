package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook indexes an exported workbook: per sheet, the banner's
// source document, the header row, the data row count and print areas.
func ReadWorkbook(path string) (*models.WorkbookIndex, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return indexWorkbook(f, filepath.Base(path))
}

// ReadWorkbookFrom indexes a workbook read from r.
func ReadWorkbookFrom(r io.Reader, name string) (*models.WorkbookIndex, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return indexWorkbook(f, name)
}

func indexWorkbook(f *excelize.File, bookName string) (*models.WorkbookIndex, error) {
	idx := &models.WorkbookIndex{
		BookName: bookName,
		Sheets:   make(map[string]models.SheetInfo),
	}
	if props, err := f.GetDocProps(); err == nil {
		idx.RunID = props.Identifier
	}

	areas := ExtractPrintAreas(f)
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}
		info := models.SheetInfo{PrintAreas: areas[sheetName]}

		if len(rows) > 0 && len(rows[0]) > 0 && strings.HasPrefix(rows[0][0], bannerPrefix) {
			info.Source = strings.TrimPrefix(rows[0][0], bannerPrefix)
			rows = rows[1:]
		}
		if len(rows) > 0 {
			info.Header = rows[0]
			info.DataRows = countDataRows(rows[1:])
		}
		idx.Sheets[sheetName] = info
	}
	return idx, nil
}

// countDataRows counts rows holding at least one non-empty cell.
func countDataRows(rows [][]string) int {
	n := 0
	for _, row := range rows {
		for _, cell := range row {
			if cell != "" {
				n++
				break
			}
		}
	}
	return n
}
