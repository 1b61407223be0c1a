// Package models defines data structures for harmonic report extraction.
package models

import "strings"

// FamilyID identifies one of the harmonic table families of a report.
type FamilyID string

const (
	// FamilyVoltageFull is the harmonic voltage table over the full time range.
	FamilyVoltageFull FamilyID = "voltage_full"
	// FamilyCurrentFull is the harmonic current table over the full time range.
	FamilyCurrentFull FamilyID = "current_full"
	// FamilyVoltageDaily is the daily harmonic voltage table.
	FamilyVoltageDaily FamilyID = "voltage_daily"
	// FamilyCurrentDaily is the daily harmonic current table.
	FamilyCurrentDaily FamilyID = "current_daily"
)

// Column names shared by every schema.
const (
	ColumnHarmonic  = "Harmonic"
	ColumnTimeLimit = "Time Percent Limit[%]"
	ColumnRegMax    = "Reg Max[%]"
	ColumnPage      = "Page_Number"

	measuredPrefix = "Measured_"
	resultPrefix   = "Result_"
)

// Schema describes the nine semantic columns of a family table.
// Voltage and current schemas differ only by their phase labels.
type Schema struct {
	// Name is the schema identifier (e.g., "voltage").
	Name string `json:"name" yaml:"name"`
	// Phases holds the three phase labels (e.g., V1N, V2N, V3N).
	Phases [3]string `json:"phases" yaml:"phases"`
}

// MeasuredColumn returns the measured column name for phase i.
func (s Schema) MeasuredColumn(i int) string {
	return measuredPrefix + s.Phases[i]
}

// ResultColumn returns the result column name for phase i.
func (s Schema) ResultColumn(i int) string {
	return resultPrefix + s.Phases[i]
}

// Columns returns the nine data columns in export order.
func (s Schema) Columns() []string {
	cols := []string{ColumnHarmonic, ColumnTimeLimit, ColumnRegMax}
	for i := range s.Phases {
		cols = append(cols, s.MeasuredColumn(i))
	}
	for i := range s.Phases {
		cols = append(cols, s.ResultColumn(i))
	}
	return cols
}

// ColumnsWithPage returns the data columns followed by the page column.
func (s Schema) ColumnsWithPage() []string {
	return append(s.Columns(), ColumnPage)
}

// PhaseFromColumn returns the token after the final separator of a column
// name, e.g. "V1N" for "Measured_V1N".
func PhaseFromColumn(col string) string {
	if idx := strings.LastIndex(col, "_"); idx >= 0 {
		return col[idx+1:]
	}
	return col
}
