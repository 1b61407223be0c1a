package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/source"
)

const withinLimits = "All values within limits"

var (
	dayCell    = regexp.MustCompile(`^\d{1,2}[-/]\d{1,2}[-/]\d{4}`)
	dayPattern = regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{4})\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)`)
	phaseNames = [3]string{"R", "Y", "B"}
)

// SummaryExtractor collects THD/TDD daily summary tables.
type SummaryExtractor struct {
	defs []config.Summary
}

// NewSummaryExtractor creates an extractor for the configured summaries.
func NewSummaryExtractor(cfg *config.Config) *SummaryExtractor {
	return &SummaryExtractor{defs: cfg.Summaries}
}

// SummaryAccumulator holds summary rows collected across pages.
type SummaryAccumulator struct {
	defs []config.Summary
	rows map[string][]models.SummaryRow
}

// NewAccumulator returns an empty accumulator for one document.
func (e *SummaryExtractor) NewAccumulator() *SummaryAccumulator {
	return &SummaryAccumulator{defs: e.defs, rows: make(map[string][]models.SummaryRow)}
}

// Page adds the summary rows found on one page. Every summary whose
// triggers all appear on the page reads the page's tables; when the
// tables yield nothing, date-led rows are taken from the text.
func (a *SummaryAccumulator) Page(page int, text string, tables []source.Table) {
	upper := upperASCII(text)
	for _, def := range a.defs {
		if !triggered(def, text, upper) {
			continue
		}
		rows := summaryFromTables(def, page, tables)
		if len(rows) == 0 {
			rows = summaryFromText(def, page, text)
		}
		a.rows[def.Key] = append(a.rows[def.Key], rows...)
	}
}

// Tables returns the non-empty summaries in configuration order.
func (a *SummaryAccumulator) Tables() []models.SummaryTable {
	var out []models.SummaryTable
	for _, def := range a.defs {
		rows := a.rows[def.Key]
		if len(rows) == 0 {
			continue
		}
		out = append(out, models.SummaryTable{
			Key:        def.Key,
			Title:      def.Title,
			Kind:       def.Kind,
			Percentile: def.Percentile,
			Rows:       rows,
		})
	}
	return out
}

func triggered(def config.Summary, text, upper string) bool {
	if len(def.Triggers) == 0 {
		return false
	}
	for _, t := range def.Triggers {
		if !strings.Contains(upper, t) {
			return false
		}
	}
	for _, r := range def.Require {
		if !strings.Contains(text, r) {
			return false
		}
	}
	return true
}

func summaryFromTables(def config.Summary, page int, tables []source.Table) []models.SummaryRow {
	var out []models.SummaryRow
	for _, t := range tables {
		if len(t) < 2 {
			continue
		}
		header := -1
		for i, row := range t {
			if isDayHeader(row) {
				header = i
				break
			}
		}
		if header < 0 {
			continue
		}
		for _, row := range t[header+1:] {
			if len(row) < 6 {
				continue
			}
			day := strings.TrimSpace(row[0])
			if !dayCell.MatchString(day) {
				continue
			}
			out = append(out, newSummaryRow(def, page, day, row[3], row[4], row[5]))
		}
	}
	return out
}

func summaryFromText(def config.Summary, page int, text string) []models.SummaryRow {
	var out []models.SummaryRow
	for _, m := range dayPattern.FindAllStringSubmatch(text, -1) {
		out = append(out, newSummaryRow(def, page, m[1], m[3], m[4], m[5]))
	}
	return out
}

func isDayHeader(row []string) bool {
	for _, cell := range row {
		c := strings.ToLower(cell)
		if strings.Contains(c, "day") || strings.Contains(c, "date") {
			return true
		}
	}
	return false
}

func newSummaryRow(def config.Summary, page int, day string, phases ...string) models.SummaryRow {
	row := models.SummaryRow{Day: day, Limit: def.Limit, Page: page}
	for i := range row.Phases {
		row.Phases[i] = measurement(strings.TrimSpace(phases[i]))
	}
	row.Remarks = remarks(row)
	return row
}

// remarks renders "All values within limits" or the exceeding phases,
// e.g. "Exceeding limit: R(8.10%), B(7.90%)".
func remarks(row models.SummaryRow) string {
	var over []string
	for i, p := range row.Phases {
		if p.Numeric && p.Value > row.Limit {
			over = append(over, fmt.Sprintf("%s(%.2f%%)", phaseNames[i], p.Value))
		}
	}
	if len(over) == 0 {
		return withinLimits
	}
	return "Exceeding limit: " + strings.Join(over, ", ")
}
