package parser

import (
	"regexp"
	"sort"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

const (
	reSep     = `(?:\s*,\s*|\s+)`
	reNum     = `([\d.]+)`
	reVerdict = `(Pass|Fail)\(([\d.%]+)\)`
	reBare    = `\(([\d.%]+)\)`
	// harmonic, time limit, reg max and three measured values
	reLead = `\b(\d+)` + reSep + `(\d+)` + reSep + reNum + reSep + reNum + reSep + reNum + reSep + reNum
)

var (
	spaceRun    = regexp.MustCompile(`\s+`)
	verdictGaps = regexp.MustCompile(`(?i)(Pass|Fail)\s*\(\s*([\d.%]+)\s*\)`)
)

// textPattern is one row pattern of the text strategy.
type textPattern struct {
	re    *regexp.Regexp
	build func(m []string) [models.RawRowWidth]string
}

var (
	fullPattern = textPattern{
		re: regexp.MustCompile(`(?i)` + reLead + reSep + reVerdict + reSep + reVerdict + reSep + reVerdict),
		build: func(m []string) [models.RawRowWidth]string {
			return [models.RawRowWidth]string{
				m[1], m[2], m[3], m[4], m[5], m[6],
				m[7] + "(" + m[8] + ")",
				m[9] + "(" + m[10] + ")",
				m[11] + "(" + m[12] + ")",
			}
		},
	}
	barePattern = textPattern{
		re: regexp.MustCompile(reLead + reSep + reBare + reSep + reBare + reSep + reBare),
		build: func(m []string) [models.RawRowWidth]string {
			return [models.RawRowWidth]string{
				m[1], m[2], m[3], m[4], m[5], m[6],
				"Pass(" + m[7] + ")",
				"Pass(" + m[8] + ")",
				"Pass(" + m[9] + ")",
			}
		},
	}
	measurementsPattern = textPattern{
		re: regexp.MustCompile(reLead),
		build: func(m []string) [models.RawRowWidth]string {
			return [models.RawRowWidth]string{
				m[1], m[2], m[3], m[4], m[5], m[6], "N/A", "N/A", "N/A",
			}
		},
	}
)

// TextStrategy recovers rows from flowing page text. Patterns are tried
// in priority order; a match overlapping text already claimed by an
// earlier match is discarded.
type TextStrategy struct {
	cfg      *config.Config
	patterns []textPattern
}

// NewTextStrategy creates the text-pattern strategy.
func NewTextStrategy(cfg *config.Config) *TextStrategy {
	patterns := []textPattern{fullPattern, barePattern}
	if !cfg.Text.RequireResults {
		patterns = append(patterns, measurementsPattern)
	}
	return &TextStrategy{cfg: cfg, patterns: patterns}
}

// Name returns models.StrategyText.
func (s *TextStrategy) Name() string { return models.StrategyText }

// Rows extracts rows from the section text.
func (s *TextStrategy) Rows(sec Section) []models.RawRow {
	if sec.Text == "" {
		return nil
	}
	text := NormalizeRowText(sec.Text)

	var claimed [][2]int
	overlaps := func(start, end int) bool {
		for _, c := range claimed {
			if start < c[1] && c[0] < end {
				return true
			}
		}
		return false
	}

	type hit struct {
		start int
		row   models.RawRow
	}
	var hits []hit
	for _, p := range s.patterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if overlaps(loc[0], loc[1]) {
				continue
			}
			claimed = append(claimed, [2]int{loc[0], loc[1]})

			m := submatches(text, loc)
			n, ok := parseHarmonic(m[1])
			if !ok || !s.cfg.Harmonics.Valid(n) {
				continue
			}
			tl, ok := parseNumber(m[2])
			if !ok || !s.cfg.IsTimeLimit(tl) {
				continue
			}
			hits = append(hits, hit{
				start: loc[0],
				row:   models.RawRow{Cells: p.build(m), Page: sec.Page, Strategy: models.StrategyText},
			})
		}
	}

	// Report rows in text order regardless of which pattern found them.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	out := make([]models.RawRow, len(hits))
	for i, h := range hits {
		out[i] = h.row
	}
	return out
}

// NormalizeRowText collapses whitespace and tightens "Pass ( 1.0% )"
// into "Pass(1.0%)".
func NormalizeRowText(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	return verdictGaps.ReplaceAllString(s, "${1}(${2})")
}

func submatches(s string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return m
}
