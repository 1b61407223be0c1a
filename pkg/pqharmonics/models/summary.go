package models

// SummaryKind distinguishes voltage THD from current TDD summaries.
type SummaryKind string

const (
	SummaryVoltage SummaryKind = "voltage"
	SummaryCurrent SummaryKind = "current"
)

// SummaryRow is one day of a THD/TDD summary table.
type SummaryRow struct {
	// Day is the date cell as printed (e.g., 01-03-2024).
	Day string `json:"day"`
	// Limit is the recommended limit in percent.
	Limit float64 `json:"limit"`
	// Phases holds the R, Y and B phase values.
	Phases [3]Measurement `json:"phases"`
	// Remarks summarises limit compliance for the day.
	Remarks string `json:"remarks"`
	// Page is the 1-based source page.
	Page int `json:"page,omitempty"`
}

// Exceeds reports whether any numeric phase is above the limit.
func (r SummaryRow) Exceeds() bool {
	for _, p := range r.Phases {
		if p.Numeric && p.Value > r.Limit {
			return true
		}
	}
	return false
}

// SummaryTable is a THD/TDD daily summary.
type SummaryTable struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	Kind       SummaryKind  `json:"kind"`
	Percentile string       `json:"percentile"`
	Rows       []SummaryRow `json:"rows"`
}
