package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/logging"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

// ErrUnknownFamily indicates a family id absent from the configuration.
var ErrUnknownFamily = errors.New("unknown table family")

// Mode selects how measured values are coerced.
type Mode int

const (
	// Strict drops rows with any non-numeric numeric column.
	Strict Mode = iota
	// Display keeps non-numeric measured cells verbatim. Harmonic, time
	// limit and reg max must still be numeric.
	Display
)

func (m Mode) String() string {
	if m == Display {
		return "display"
	}
	return "strict"
}

// candidate is a raw row whose harmonic order has been parsed.
type candidate struct {
	raw      models.RawRow
	harmonic int
}

// Validator turns raw rows into a reconstructed table.
type Validator struct {
	cfg *config.Config
}

// NewValidator creates a validator.
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate coerces, filters and deduplicates the raw rows of a family and
// reports the expected harmonics that were not found.
func (v *Validator) Validate(id models.FamilyID, rows []models.RawRow, mode Mode) (models.ReconstructedTable, []int, error) {
	family, ok := v.cfg.Family(id)
	if !ok {
		return models.ReconstructedTable{}, nil, fmt.Errorf("%w: %q", ErrUnknownFamily, id)
	}
	schema, err := v.cfg.SchemaFor(id)
	if err != nil {
		return models.ReconstructedTable{}, nil, err
	}

	cands := coerceHarmonics(rows)
	cands = filterRange(cands, v.cfg.Harmonics)
	cands = dedup(cands)
	missing := missingHarmonics(cands, v.cfg.Harmonics)
	if len(missing) > 0 && mode == Strict {
		logging.Logger().Info("missing harmonics",
			zap.String("family", family.Name),
			zap.String("harmonics", preview(missing, 10)))
	}

	return models.ReconstructedTable{
		Family: id,
		Name:   family.Name,
		Schema: schema,
		Rows:   coerce(cands, mode),
	}, missing, nil
}

// coerceHarmonics parses the harmonic cell and drops non-numeric rows.
func coerceHarmonics(rows []models.RawRow) []candidate {
	out := make([]candidate, 0, len(rows))
	for _, r := range rows {
		if n, ok := parseHarmonic(r.Cells[models.CellHarmonic]); ok {
			out = append(out, candidate{raw: r, harmonic: n})
		}
	}
	return out
}

// filterRange drops the fundamental and orders outside the range.
func filterRange(cands []candidate, h config.HarmonicRange) []candidate {
	out := cands[:0:0]
	for _, c := range cands {
		if h.Valid(c.harmonic) {
			out = append(out, c)
		}
	}
	return out
}

// dedup keeps the first row per (harmonic, time limit).
func dedup(cands []candidate) []candidate {
	seen := make(map[string]bool)
	out := cands[:0:0]
	for _, c := range cands {
		k := strconv.Itoa(c.harmonic) + "|" + timeLimitKey(c.raw.Cells[models.CellTimeLimit])
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

func timeLimitKey(cell string) string {
	if f, ok := parseNumber(cell); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.TrimSpace(cell)
}

// missingHarmonics returns the expected harmonics absent from cands, ascending.
func missingHarmonics(cands []candidate, h config.HarmonicRange) []int {
	found := make(map[int]bool, len(cands))
	for _, c := range cands {
		found[c.harmonic] = true
	}
	var missing []int
	for _, n := range h.Expected() {
		if !found[n] {
			missing = append(missing, n)
		}
	}
	return missing
}

// coerce converts candidates to rows according to mode, dropping rows
// whose required columns are not numeric.
func coerce(cands []candidate, mode Mode) []models.Row {
	out := make([]models.Row, 0, len(cands))
	for _, c := range cands {
		tl, ok := parseNumber(c.raw.Cells[models.CellTimeLimit])
		if !ok {
			continue
		}
		regMax, ok := parseNumber(c.raw.Cells[models.CellRegMax])
		if !ok {
			continue
		}
		row := models.Row{
			Harmonic:  c.harmonic,
			TimeLimit: tl,
			RegMax:    regMax,
			Page:      c.raw.Page,
		}
		valid := true
		for i := range row.Measured {
			m := measurement(c.raw.Cells[models.CellMeasured+i])
			if !m.Numeric && mode == Strict {
				valid = false
				break
			}
			row.Measured[i] = m
			row.Results[i] = c.raw.Cells[models.CellResult+i]
		}
		if valid {
			out = append(out, row)
		}
	}
	return out
}

func preview(ns []int, limit int) string {
	parts := make([]string, 0, limit)
	for i, n := range ns {
		if i == limit {
			break
		}
		parts = append(parts, strconv.Itoa(n))
	}
	s := "[" + strings.Join(parts, ", ") + "]"
	if len(ns) > limit {
		s += "..."
	}
	return s
}
