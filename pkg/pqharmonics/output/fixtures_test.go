package output

import (
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

var voltage = models.Schema{Name: "voltage", Phases: [3]string{"V1N", "V2N", "V3N"}}

func num(v float64) models.Measurement {
	return models.Measurement{Raw: "", Value: v, Numeric: true}
}

func hrow(h int, tl, reg float64, m1, m2, m3 models.Measurement, result string, page int) models.Row {
	return models.Row{
		Harmonic:  h,
		TimeLimit: tl,
		RegMax:    reg,
		Measured:  [3]models.Measurement{m1, m2, m3},
		Results:   [3]string{result, "Pass", "Pass"},
		Page:      page,
	}
}

// sampleReport has one voltage-full family with odd and even 95% rows
// and one THD summary.
func sampleReport(document string) *models.DocumentReport {
	odd := []models.Row{
		hrow(3, 95, 5.0, num(1.0), num(1.0), num(1.0), "Pass", 2),
		hrow(5, 95, 3.0, num(3.5), num(2.0), num(1.0), "Pass", 2),
		hrow(7, 95, 4.0, num(1.0), num(1.0), num(1.0), "FAIL(120%)", 0),
	}
	even := []models.Row{
		hrow(2, 95, 2.0, models.Measurement{Raw: "-"}, num(0.1), num(0.1), "Pass", 3),
	}
	table := models.ReconstructedTable{
		Family: models.FamilyVoltageFull,
		Name:   "Harmonic Voltage Full Time Range",
		Schema: voltage,
		Rows:   append(append([]models.Row(nil), odd...), even...),
	}
	return &models.DocumentReport{
		Document: document,
		Metadata: models.NewReportMetadata(),
		Families: []models.FamilyReport{{
			Family:  models.FamilyVoltageFull,
			Name:    table.Name,
			Table:   table,
			Display: table,
			Split: models.SplitTable{
				Family: models.FamilyVoltageFull,
				Buckets: []models.Bucket{
					{Limit: 95, Parity: models.ParityOdd, Rows: odd},
					{Limit: 95, Parity: models.ParityEven, Rows: even},
					{Limit: 99, Parity: models.ParityOdd},
					{Limit: 99, Parity: models.ParityEven},
				},
			},
		}},
		Summaries: []models.SummaryTable{{
			Key:        "voltage_thd_daily_99",
			Title:      "Voltage THD Daily 99%",
			Kind:       models.SummaryVoltage,
			Percentile: "99",
			Rows: []models.SummaryRow{
				{Day: "01-03-2024", Limit: 7.5, Phases: [3]models.Measurement{num(2), num(8.1), num(3)}, Remarks: "Exceeding limit: Y(8.10%)"},
				{Day: "02-03-2024", Limit: 7.5, Phases: [3]models.Measurement{num(2), num(2), num(3)}, Remarks: "All values within limits"},
			},
		}},
	}
}
