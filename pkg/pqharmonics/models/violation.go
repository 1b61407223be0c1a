package models

// Violation records a measured value above its regulatory maximum.
type Violation struct {
	Harmonic   int     `json:"harmonic"`
	Phase      string  `json:"phase"`
	TimeLimit  float64 `json:"time_limit"`
	Allowed    float64 `json:"allowed"`
	Measured   float64 `json:"measured"`
	Exceedance float64 `json:"exceedance"`
	// Page is the source page (0 when unknown).
	Page int `json:"page,omitempty"`
	// Table is the display name of the originating family.
	Table string `json:"table"`
}

// PageLabel renders the page for reports, "Unknown" when absent.
func (v Violation) PageLabel() string {
	return pageLabel(v.Page)
}
