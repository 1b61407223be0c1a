package models

// FamilyReport carries every derived view of one family.
type FamilyReport struct {
	Family FamilyID `json:"family"`
	Name   string   `json:"name"`
	// Table is the strictly validated table used for violation analysis.
	Table ReconstructedTable `json:"table"`
	// Display preserves non-numeric measured cells for export.
	Display ReconstructedTable `json:"-"`
	// Missing lists expected harmonics that were not found.
	Missing []int `json:"missing,omitempty"`
	// Split is the display table partitioned for export.
	Split SplitTable `json:"-"`
}

// DocumentReport is the complete result for one document.
type DocumentReport struct {
	Document   string         `json:"document"`
	Metadata   ReportMetadata `json:"metadata"`
	Families   []FamilyReport `json:"families"`
	Summaries  []SummaryTable `json:"summaries,omitempty"`
	Violations []Violation    `json:"violations"`
}

// Family returns the report of one family, or nil.
func (r *DocumentReport) Family(id FamilyID) *FamilyReport {
	for i := range r.Families {
		if r.Families[i].Family == id {
			return &r.Families[i]
		}
	}
	return nil
}

// HasData reports whether any family or summary produced rows.
func (r *DocumentReport) HasData() bool {
	for _, f := range r.Families {
		if len(f.Display.Rows) > 0 {
			return true
		}
	}
	for _, s := range r.Summaries {
		if len(s.Rows) > 0 {
			return true
		}
	}
	return false
}
