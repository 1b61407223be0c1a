package models

import "strconv"

// RawRowWidth is the number of cells carried by a raw row.
const RawRowWidth = 9

// Cell offsets within RawRow.Cells.
const (
	CellHarmonic  = 0
	CellTimeLimit = 1
	CellRegMax    = 2
	CellMeasured  = 3
	CellResult    = 6
)

// Strategy names recorded on raw rows.
const (
	StrategyStructured = "structured"
	StrategyText       = "text"
)

// RawRow is a candidate row produced by one extraction strategy.
type RawRow struct {
	// Cells holds harmonic, time limit, reg max, three measured values and
	// three result strings, trimmed.
	Cells [RawRowWidth]string `json:"cells"`
	// Page is the 1-based page the row was found on.
	Page int `json:"page"`
	// Strategy names the extractor that produced the row.
	Strategy string `json:"strategy"`
}

// Measurement is a single measured value kept alongside its source text.
type Measurement struct {
	// Raw is the cell text as extracted.
	Raw string `json:"raw"`
	// Value is the parsed number (zero when Numeric is false).
	Value float64 `json:"value"`
	// Numeric reports whether Raw parsed as a number.
	Numeric bool `json:"numeric"`
}

// Row is a validated harmonic measurement at one time-percentile limit.
type Row struct {
	Harmonic  int            `json:"harmonic"`
	TimeLimit float64        `json:"time_limit"`
	RegMax    float64        `json:"reg_max"`
	Measured  [3]Measurement `json:"measured"`
	Results   [3]string      `json:"results"`
	// Page is the source page (0 when unknown).
	Page int `json:"page,omitempty"`
}

// PageLabel renders the page for reports, "Unknown" when absent.
func (r Row) PageLabel() string {
	return pageLabel(r.Page)
}

func pageLabel(page int) string {
	if page <= 0 {
		return "Unknown"
	}
	return strconv.Itoa(page)
}
