package parser

import (
	"sort"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

// Split partitions a table by time limit, then by harmonic parity. Each
// bucket is sorted by harmonic; buckets are ordered by limit with odd
// before even. Rows whose time limit is not one of limits are left out.
func Split(table models.ReconstructedTable, limits []int) models.SplitTable {
	out := models.SplitTable{Family: table.Family}
	for _, limit := range limits {
		var rows []models.Row
		for _, r := range table.Rows {
			if r.TimeLimit == float64(limit) {
				rows = append(rows, r)
			}
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Harmonic < rows[j].Harmonic })

		odd := models.Bucket{Limit: limit, Parity: models.ParityOdd}
		even := models.Bucket{Limit: limit, Parity: models.ParityEven}
		for _, r := range rows {
			if models.ParityOf(r.Harmonic) == models.ParityOdd {
				odd.Rows = append(odd.Rows, r)
			} else {
				even.Rows = append(even.Rows, r)
			}
		}
		out.Buckets = append(out.Buckets, odd, even)
	}
	return out
}
