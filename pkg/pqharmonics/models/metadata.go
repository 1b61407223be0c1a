package models

// Placeholders used when a metadata field cannot be determined.
const (
	NotFound   = "Not found"
	ParseError = "Error"
)

// ReportInfo is the measurement window printed on a report's cover page.
type ReportInfo struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	GMT       string `json:"gmt"`
	Version   string `json:"version"`
}

// ReportMetadata holds informational site and report identifiers.
type ReportMetadata struct {
	Component string     `json:"component"`
	Block     string     `json:"block"`
	Feeder    string     `json:"feeder"`
	Company   string     `json:"company"`
	Report    ReportInfo `json:"report"`
}

// NewReportMetadata returns metadata with every field set to NotFound.
func NewReportMetadata() ReportMetadata {
	return ReportMetadata{
		Component: NotFound,
		Block:     NotFound,
		Feeder:    NotFound,
		Company:   NotFound,
		Report: ReportInfo{
			StartTime: NotFound,
			EndTime:   NotFound,
			GMT:       NotFound,
			Version:   NotFound,
		},
	}
}
