package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

// KeyFunc returns the merge key of a raw row.
type KeyFunc func(models.RawRow) string

// HarmonicKey keys rows by harmonic order.
func HarmonicKey(r models.RawRow) string {
	cell := strings.TrimSpace(r.Cells[models.CellHarmonic])
	if n, ok := parseHarmonic(cell); ok {
		return strconv.Itoa(n)
	}
	return cell
}

// Merger reconciles the rows of strategies ranked by priority as pages are
// scanned. A row is dropped when a strategy of higher priority has already
// produced a row with the same key, on this page or an earlier one. Rows
// of one strategy never displace each other, and a later page never
// removes rows already accepted.
type Merger struct {
	key   KeyFunc
	owner map[string]int
}

// NewMerger creates a merger keyed by key.
func NewMerger(key KeyFunc) *Merger {
	return &Merger{key: key, owner: make(map[string]int)}
}

// Add returns the rows of the strategy at rank that survive and records
// their keys. Call it for every strategy of a page in rank order.
func (m *Merger) Add(rank int, rows []models.RawRow) []models.RawRow {
	var out []models.RawRow
	var keys []string
	for _, r := range rows {
		k := m.key(r)
		if owner, ok := m.owner[k]; ok && owner < rank {
			continue
		}
		out = append(out, r)
		keys = append(keys, k)
	}
	for _, k := range keys {
		if owner, ok := m.owner[k]; !ok || rank < owner {
			m.owner[k] = rank
		}
	}
	return out
}

// Merge combines the rows of a single page produced by strategies in
// priority order.
func Merge(key KeyFunc, byPriority ...[]models.RawRow) []models.RawRow {
	m := NewMerger(key)
	var out []models.RawRow
	for rank, rows := range byPriority {
		out = append(out, m.Add(rank, rows)...)
	}
	return out
}
