package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

// parseNumber parses a trimmed cell as a finite float.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseHarmonic parses a harmonic order. Integral floats such as "5.0"
// are accepted.
func parseHarmonic(s string) (int, bool) {
	f, ok := parseNumber(s)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func measurement(raw string) models.Measurement {
	v, ok := parseNumber(raw)
	return models.Measurement{Raw: raw, Value: v, Numeric: ok}
}

// upperASCII upper-cases ASCII letters only, so byte offsets into the
// result are valid offsets into s.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
