package output

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	dayPeriodPattern = regexp.MustCompile(`DAY\s*(\d+)\s*(DAY|NIGHT)`)
	dayOnlyPattern   = regexp.MustCompile(`DAY\s*(\d+)`)
	sheetNameInvalid = strings.NewReplacer("[", "_", "]", "_", ":", "_", "*", "_", "?", "_", "/", "_", "\\", "_")
)

// SheetNamer hands out unique sheet names within a length limit. Names
// are compared case-insensitively, as spreadsheet applications do.
type SheetNamer struct {
	limit int
	used  map[string]bool
}

// NewSheetNamer creates a namer for names of at most limit characters.
func NewSheetNamer(limit int) *SheetNamer {
	return &SheetNamer{limit: limit, used: make(map[string]bool)}
}

// Unique sanitizes and truncates base, then appends "_1", "_2", ... on
// collision, truncating base further so the result stays within the
// limit.
func (n *SheetNamer) Unique(base string) string {
	base = SanitizeSheetName(base)
	name := Truncate(base, n.limit)
	for i := 1; n.used[strings.ToLower(name)]; i++ {
		suffix := "_" + strconv.Itoa(i)
		name = Truncate(base, n.limit-len(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name
}

// SanitizeSheetName replaces characters not allowed in sheet names.
func SanitizeSheetName(name string) string {
	name = strings.Trim(sheetNameInvalid.Replace(name), "'")
	if name == "" {
		return "Sheet"
	}
	return name
}

// Truncate shortens s to at most limit characters.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// FamilySheetName builds the sheet name of one split bucket, e.g.
// "H_VF_95_O".
func FamilySheetName(abbrev string, limit int, parity string) string {
	return "H_" + abbrev + "_" + strconv.Itoa(limit) + "_" + parity
}

// SummarySheetName builds the sheet name of a THD/TDD summary from its
// short code, e.g. "THD_TDD_ITF99". Without a code the key is used.
func SummarySheetName(abbrev, key string) string {
	if abbrev != "" {
		return "THD_TDD_" + abbrev
	}
	return "THD_TDD_" + Truncate(key, 20)
}

// BulkPrefix derives a short sheet prefix from a report filename:
// "7Days" for seven-day reports, "<n>D"/"<n>N" for "Day n Day|Night",
// "<n>D" for "Day n", else the first four word characters of the name.
func BulkPrefix(filename string) string {
	base := filepath.Base(filename)
	upper := strings.ToUpper(base)

	if strings.Contains(upper, "7") && strings.Contains(upper, "DAY") {
		return "7Days"
	}
	if m := dayPeriodPattern.FindStringSubmatch(upper); m != nil {
		if m[2] == "NIGHT" {
			return m[1] + "N"
		}
		return m[1] + "D"
	}
	if m := dayOnlyPattern.FindStringSubmatch(upper); m != nil {
		return m[1] + "D"
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	for _, r := range stem {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if prefix := Truncate(b.String(), 4); prefix != "" {
		return prefix
	}
	return "Doc"
}
