package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

// ViolationColumns is the header of the violations CSV.
var ViolationColumns = []string{
	"Harmonic", "Phase", "Time Limit (%)", "Allowed (%)", "Measured (%)", "Exceedance (%)", "Page", "Table",
}

// WriteViolationsCSV writes violations as CSV in the given order.
func WriteViolationsCSV(w io.Writer, violations []models.Violation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ViolationColumns); err != nil {
		return err
	}
	for _, v := range violations {
		record := []string{
			strconv.Itoa(v.Harmonic),
			v.Phase,
			formatFloat(v.TimeLimit),
			formatFloat(v.Allowed),
			formatFloat(v.Measured),
			formatFloat(v.Exceedance),
			v.PageLabel(),
			v.Table,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
