package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

var (
	componentPattern = regexp.MustCompile(`\((.*?)\)`)
	reportPattern    = regexp.MustCompile(
		`Start time:\s*(\d{2}-\d{2}-\d{4}\s*\d{2}:\d{2}:\d{2}\s*[AP]M)\s*` +
			`End time:\s*(\d{2}-\d{2}-\d{4}\s*\d{2}:\d{2}:\d{2}\s*[AP]M)\s*` +
			`GMT:\s*([+-]\d{2}:\d{2})\s*` +
			`Report Version:\s*([\d.]+)`)
	blockPattern  = regexp.MustCompile(`\bBLOCK[-\s]*(\d{1,3})\b`)
	feederPattern = regexp.MustCompile(`\b(FEEDER|BAY)[-\s]*(\d{1,3})\b`)
)

// MetadataExtractor reads site and report identifiers from a report's
// filename and cover page.
type MetadataExtractor struct {
	company *regexp.Regexp
}

// NewMetadataExtractor creates an extractor matching the given company
// keywords case-insensitively.
func NewMetadataExtractor(companies []string) *MetadataExtractor {
	e := &MetadataExtractor{}
	if len(companies) == 0 {
		return e
	}
	quoted := make([]string, len(companies))
	for i, c := range companies {
		quoted[i] = regexp.QuoteMeta(strings.ToUpper(c))
	}
	e.company = regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	return e
}

// Extract builds the metadata from the filename and cover page text.
// Fields that cannot be found are set to models.NotFound.
func (e *MetadataExtractor) Extract(filename, cover string) models.ReportMetadata {
	md := models.NewReportMetadata()
	md.Component = componentOf(filename)

	if m := reportPattern.FindStringSubmatch(cover); m != nil {
		md.Report = models.ReportInfo{
			StartTime: m[1],
			EndTime:   m[2],
			GMT:       m[3],
			Version:   m[4],
		}
	}

	combined := strings.ToUpper(filepath.Base(filename) + " " + cover)
	if m := blockPattern.FindStringSubmatch(combined); m != nil {
		md.Block = m[1]
	}
	if m := feederPattern.FindStringSubmatch(combined); m != nil {
		md.Feeder = m[2]
	}
	if e.company != nil {
		if m := e.company.FindStringSubmatch(combined); m != nil {
			md.Company = m[1]
		}
	}
	return md
}

// Failed returns the placeholder metadata used when the cover page could
// not be read. Only the filename-derived component survives.
func (e *MetadataExtractor) Failed(filename string) models.ReportMetadata {
	md := models.NewReportMetadata()
	md.Component = componentOf(filename)
	md.Block = models.ParseError
	md.Feeder = models.ParseError
	md.Company = models.ParseError
	return md
}

func componentOf(filename string) string {
	if m := componentPattern.FindStringSubmatch(filepath.Base(filename)); m != nil {
		return m[1]
	}
	return models.NotFound
}
