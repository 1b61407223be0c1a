package source

import "unicode/utf8"

// PointsPerInch is the number of PDF user-space units per inch.
const PointsPerInch = 72

// DefaultCharWidth is the assumed advance of one glyph in points when the
// text extractor reports no width. Roughly half of a 10pt font.
const DefaultCharWidth = 5.0

// InchesToPoints converts inches to PDF points.
func InchesToPoints(in float64) float64 {
	return in * PointsPerInch
}

// estimateWidth returns the approximate rendered width of s in points.
func estimateWidth(s string, charWidth float64) float64 {
	if charWidth <= 0 {
		charWidth = DefaultCharWidth
	}
	return float64(utf8.RuneCountInString(s)) * charWidth
}
