package source

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText folds compatibility characters (full-width digits,
// non-breaking spaces, ligatures) with NFKC and unifies line endings.
func NormalizeText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func normalizeTable(t Table) Table {
	out := make(Table, len(t))
	for i, row := range t {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = NormalizeText(c)
		}
		out[i] = cells
	}
	return out
}
