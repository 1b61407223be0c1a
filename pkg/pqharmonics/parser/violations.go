package parser

import (
	"math"
	"strconv"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

// AnalyzeViolations compares every numeric measured value with the row's
// reg max and records those strictly above it. Output follows row order,
// then phase order. Non-numeric measurements are skipped.
func AnalyzeViolations(table models.ReconstructedTable, tableName string) []models.Violation {
	var out []models.Violation
	for _, row := range table.Rows {
		for i, m := range row.Measured {
			if !m.Numeric || math.IsNaN(row.RegMax) {
				continue
			}
			if m.Value > row.RegMax {
				out = append(out, models.Violation{
					Harmonic:   row.Harmonic,
					Phase:      models.PhaseFromColumn(table.Schema.MeasuredColumn(i)),
					TimeLimit:  row.TimeLimit,
					Allowed:    row.RegMax,
					Measured:   m.Value,
					Exceedance: Round2(m.Value - row.RegMax),
					Page:       row.Page,
					Table:      tableName,
				})
			}
		}
	}
	return out
}

// Round2 rounds the exact binary value to two decimals, exact ties going
// to the even digit: 0.125 becomes 0.12, while 2.675, stored just below
// the tie, becomes 2.67.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	// 'f' formatting rounds the exact decimal expansion, half to even.
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
