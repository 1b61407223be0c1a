package parser

import (
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/source"
)

// Section is the part of one page attributed to a family.
type Section struct {
	Family models.FamilyID
	Page   int
	Kind   WindowKind
	// Text is the window's slice of the page text.
	Text string
	// Rows are the candidate table rows attributed to the window.
	Rows [][]string
}

// Strategy produces candidate rows from a section.
type Strategy interface {
	Name() string
	Rows(sec Section) []models.RawRow
}

// StructuredStrategy accepts candidate table rows whose first cell is a
// valid harmonic order.
type StructuredStrategy struct {
	harmonics config.HarmonicRange
}

// NewStructuredStrategy creates the table-row strategy.
func NewStructuredStrategy(cfg *config.Config) *StructuredStrategy {
	return &StructuredStrategy{harmonics: cfg.Harmonics}
}

// Name returns models.StrategyStructured.
func (s *StructuredStrategy) Name() string { return models.StrategyStructured }

// Rows returns the qualifying rows, trimmed to the nine data cells.
func (s *StructuredStrategy) Rows(sec Section) []models.RawRow {
	var out []models.RawRow
	for _, row := range sec.Rows {
		if len(row) < models.RawRowWidth {
			continue
		}
		first := strings.TrimSpace(row[0])
		if !isDigits(first) {
			continue
		}
		n, ok := parseHarmonic(first)
		if !ok || !s.harmonics.Valid(n) {
			continue
		}
		raw := models.RawRow{Page: sec.Page, Strategy: models.StrategyStructured}
		for i := 0; i < models.RawRowWidth; i++ {
			raw.Cells[i] = strings.TrimSpace(row[i])
		}
		out = append(out, raw)
	}
	return out
}

// attributeRows assigns candidate table rows to windows. A single window
// that is not a lead takes every row. Otherwise a row goes to the window
// containing its anchor (the harmonic, time limit and reg max cells as
// they appear in the page text); unanchored rows go to the last header
// window, and are dropped when there is none.
func attributeRows(text string, tables []source.Table, windows []Window) [][][]string {
	out := make([][][]string, len(windows))
	if len(windows) == 0 {
		return out
	}
	if len(windows) == 1 && windows[0].Kind != WindowLead {
		for _, t := range tables {
			out[0] = append(out[0], t...)
		}
		return out
	}

	fallback := -1
	for i, w := range windows {
		if w.Kind == WindowHeader {
			fallback = i
		}
	}

	flat := collapseSpaces(text)
	claimed := map[int]bool{}
	for _, t := range tables {
		for _, row := range t {
			target := fallback
			if pos := anchorOffset(flat, row, claimed); pos >= 0 {
				target = -1
				for i, w := range windows {
					if w.Contains(pos) {
						target = i
						break
					}
				}
			}
			if target >= 0 {
				out[target] = append(out[target], row)
			}
		}
	}
	return out
}

// collapsed keeps the page text with runs of whitespace shortened to one
// space, plus a map back to original offsets.
type collapsed struct {
	text string
	orig []int
}

func collapseSpaces(s string) collapsed {
	var b strings.Builder
	orig := make([]int, 0, len(s))
	space := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v' {
			if !space {
				b.WriteByte(' ')
				orig = append(orig, i)
				space = true
			}
			continue
		}
		space = false
		b.WriteByte(c)
		orig = append(orig, i)
	}
	return collapsed{text: b.String(), orig: orig}
}

// anchorOffset locates a table row in the page text by its first three
// cells. It returns the original byte offset or -1. Occurrences recorded
// in claimed are skipped and the match found is added, so rows sharing an
// anchor take successive occurrences in page order.
func anchorOffset(c collapsed, row []string, claimed map[int]bool) int {
	if len(row) < 3 {
		return -1
	}
	parts := make([]string, 3)
	for i := range parts {
		parts[i] = strings.Join(strings.Fields(row[i]), " ")
		if parts[i] == "" {
			return -1
		}
	}
	needle := strings.Join(parts, " ")
	for from := 0; from < len(c.text); {
		j := strings.Index(c.text[from:], needle)
		if j < 0 {
			break
		}
		pos := from + j
		end := pos + len(needle)
		from = pos + 1
		if pos > 0 && isNumberByte(c.text[pos-1]) {
			continue
		}
		if end < len(c.text) && isNumberByte(c.text[end]) {
			continue
		}
		if claimed[pos] {
			continue
		}
		if claimed != nil {
			claimed[pos] = true
		}
		return c.orig[pos]
	}
	return -1
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}
