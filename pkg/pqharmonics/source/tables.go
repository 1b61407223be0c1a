package source

import (
	"strings"

	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/tables"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	// DensityMin is the minimum ratio of non-empty cells to the bounding
	// box of a detected table after prose rows are dropped.
	DensityMin float64
	// MinNonemptyCells rejects tables with fewer filled cells.
	MinNonemptyCells int
	// MinColumns is the minimum filled cell count for a row to be kept.
	MinColumns int
	// MinConfidence is the lowest detector confidence accepted. Reports
	// carry no ruling lines, so the geometric score stays well below 0.5.
	MinConfidence float64
	// CellGap is the horizontal gap in points that separates two cells.
	CellGap float64
	// CharWidth is the assumed glyph advance in points.
	CharWidth float64
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.5,
		MinNonemptyCells: 6,
		MinColumns:       3,
		MinConfidence:    0.25,
		CellGap:          InchesToPoints(1.0 / 12),
		CharWidth:        DefaultCharWidth,
	}
}

func (p TableDetectionParams) detectorConfig() tables.Config {
	cfg := tables.DefaultConfig()
	cfg.MinRows = 1
	cfg.MinCols = p.MinColumns
	cfg.MinConfidence = p.MinConfidence
	cfg.MaxCellGap = p.CellGap
	cfg.DetectMergedCells = false
	return cfg
}

// DetectTables runs the geometric detector over the positioned text of a
// page and keeps the tables that survive the density checks.
func DetectTables(page *model.Page, params TableDetectionParams) ([]Table, error) {
	detector := tables.NewGeometricDetector()
	if err := detector.Configure(params.detectorConfig()); err != nil {
		return nil, err
	}
	found, err := detector.Detect(page)
	if err != nil {
		return nil, err
	}

	var out []Table
	for _, ft := range found {
		if t := acceptTable(ft, params); t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

// acceptTable compacts the detector grid to filled cells, drops rows with
// fewer than MinColumns cells and applies the fill and density limits.
func acceptTable(ft *model.Table, params TableDetectionParams) Table {
	var rows [][]string
	for _, r := range ft.Rows {
		var cells []string
		for _, c := range r {
			if s := strings.TrimSpace(c.Text); s != "" {
				cells = append(cells, s)
			}
		}
		if len(cells) > 0 && len(cells) >= params.MinColumns {
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil
	}

	nonEmpty := countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)
	if nonEmpty < params.MinNonemptyCells {
		return nil
	}

	total := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	if float64(nonEmpty)/float64(total) < params.DensityMin {
		return nil
	}

	return Table(rows[minRow : maxRow+1])
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if strings.TrimSpace(row[colIdx]) != "" {
				count++
			}
		}
	}
	return count
}
