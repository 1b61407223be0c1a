package models

import "sort"

// RawTables holds the raw rows accumulated for one document, per family.
type RawTables struct {
	// Document is the source document name.
	Document string `json:"document"`
	// Order lists families in configuration order.
	Order []FamilyID `json:"order"`
	// Rows maps a family to its raw rows in discovery order.
	Rows map[FamilyID][]RawRow `json:"rows"`
}

// NewRawTables creates an empty container for the given families.
func NewRawTables(document string, order []FamilyID) *RawTables {
	rows := make(map[FamilyID][]RawRow, len(order))
	for _, id := range order {
		rows[id] = nil
	}
	return &RawTables{Document: document, Order: order, Rows: rows}
}

// Get returns the rows of one family.
func (t *RawTables) Get(id FamilyID) []RawRow {
	if t == nil {
		return nil
	}
	return t.Rows[id]
}

// Total returns the number of raw rows across families.
func (t *RawTables) Total() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, rows := range t.Rows {
		n += len(rows)
	}
	return n
}

// ReconstructedTable is the validated row set of one family.
type ReconstructedTable struct {
	Family FamilyID `json:"family"`
	Name   string   `json:"name"`
	Schema Schema   `json:"schema"`
	Rows   []Row    `json:"rows"`
}

// Harmonics returns the distinct harmonic orders present, ascending.
func (t ReconstructedTable) Harmonics() []int {
	seen := make(map[int]bool)
	var out []int
	for _, r := range t.Rows {
		if !seen[r.Harmonic] {
			seen[r.Harmonic] = true
			out = append(out, r.Harmonic)
		}
	}
	sort.Ints(out)
	return out
}

// Parity classifies harmonic orders as odd or even.
type Parity string

const (
	ParityOdd  Parity = "odd"
	ParityEven Parity = "even"
)

// ParityOf returns the parity of a harmonic order.
func ParityOf(harmonic int) Parity {
	if harmonic%2 == 1 {
		return ParityOdd
	}
	return ParityEven
}

// Abbrev returns the single-letter form used in sheet names.
func (p Parity) Abbrev() string {
	if p == ParityOdd {
		return "O"
	}
	return "E"
}

// Bucket is one (limit, parity) leaf of a split table.
type Bucket struct {
	Limit  int    `json:"limit"`
	Parity Parity `json:"parity"`
	Rows   []Row  `json:"rows"`
}

// SplitTable partitions a table by time limit, then by harmonic parity.
type SplitTable struct {
	Family  FamilyID `json:"family"`
	Buckets []Bucket `json:"buckets"`
}

// Rows returns the rows of a single leaf.
func (s SplitTable) Rows(limit int, parity Parity) []Row {
	for _, b := range s.Buckets {
		if b.Limit == limit && b.Parity == parity {
			return b.Rows
		}
	}
	return nil
}
