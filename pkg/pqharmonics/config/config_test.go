package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []models.FamilyID{
		models.FamilyVoltageFull,
		models.FamilyCurrentFull,
		models.FamilyVoltageDaily,
		models.FamilyCurrentDaily,
	}, cfg.FamilyIDs())
	assert.Equal(t, []int{95, 99}, cfg.TimeLimits)
	assert.Equal(t, 31, cfg.Export.SheetNameLimit)
	assert.True(t, cfg.Text.RequireResults)

	fam, ok := cfg.Family(models.FamilyCurrentDaily)
	require.True(t, ok)
	require.NotNil(t, fam.Exclusion)
	assert.Equal(t, "HARMONIC 5:", fam.Exclusion.Label)
	assert.Equal(t, 1, fam.Exclusion.GracePages)

	schema, err := cfg.SchemaFor(models.FamilyVoltageDaily)
	require.NoError(t, err)
	assert.Equal(t, [3]string{"V1N", "V2N", "V3N"}, schema.Phases)
	assert.Len(t, cfg.Summaries, 5)

	var abbrevs []string
	for _, sm := range cfg.Summaries {
		abbrevs = append(abbrevs, sm.Abbrev)
	}
	assert.Equal(t, []string{"VTF95", "VTD99", "ITF95", "ITF99", "ITD99"}, abbrevs)
	sm, ok := cfg.Summary("current_tdd_full_99")
	require.True(t, ok)
	assert.Equal(t, "ITF99", sm.Abbrev)
	_, ok = cfg.Summary("missing")
	assert.False(t, ok)
}

func TestHarmonicRange(t *testing.T) {
	h := Default().Harmonics

	tests := []struct {
		n        int
		expected bool
	}{
		{1, false},
		{2, true},
		{25, true},
		{50, true},
		{51, false},
		{0, false},
		{1999, false},
		{2024, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, h.Valid(tt.n), "Valid(%d)", tt.n)
	}

	expected := h.Expected()
	assert.Len(t, expected, 49)
	assert.Equal(t, 2, expected[0])
	assert.Equal(t, 50, expected[len(expected)-1])
}

func TestParseOverlay(t *testing.T) {
	cfg, err := Parse([]byte(`
metadata:
  companies: [acme, "  Grid Co "]
export:
  sheet_name_limit: 20
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"ACME", "GRID CO"}, cfg.Metadata.Companies)
	assert.Equal(t, 20, cfg.Export.SheetNameLimit)
	assert.Len(t, cfg.Families, 4, "families keep their defaults")
}

func TestParseNormalizesKeywords(t *testing.T) {
	cfg, err := Parse([]byte(`
families:
  - id: voltage_full
    name: Voltage
    header: harmonic voltage full time range
    abbrev: VF
    schema: voltage
    boundaries: [summary]
    boundary_exclusion:
      label: "harmonic 7:"
      grace_pages: 2
`))
	require.NoError(t, err)
	require.Len(t, cfg.Families, 1)

	f := cfg.Families[0]
	assert.Equal(t, "HARMONIC VOLTAGE FULL TIME RANGE", f.Header)
	assert.Equal(t, []string{"SUMMARY"}, f.Boundaries)
	assert.Equal(t, "HARMONIC 7:", f.Exclusion.Label)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown schema", "families:\n  - {id: x, name: X, header: X, schema: nope}\n"},
		{"duplicate family", "families:\n  - {id: x, name: X, header: X, schema: voltage}\n  - {id: x, name: Y, header: Y, schema: voltage}\n"},
		{"missing header", "families:\n  - {id: x, name: X, schema: voltage}\n"},
		{"bad range", "harmonics: {min: 10, max: 2}\n"},
		{"no limits", "time_limits: []\n"},
		{"tiny sheet limit", "export: {sheet_name_limit: 2}\n"},
		{"duplicate summary abbrev", "summaries:\n  - {key: a, abbrev: VTF95}\n  - {key: b, abbrev: vtf95}\n"},
		{"duplicate summary key", "summaries:\n  - {key: a}\n  - {key: a}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_limits: [95]\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{95}, cfg.TimeLimits)
	assert.True(t, cfg.IsTimeLimit(95))
	assert.False(t, cfg.IsTimeLimit(99))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestKeywords(t *testing.T) {
	kw := Default().Keywords()
	assert.Contains(t, kw, "HARMONIC VOLTAGE FULL TIME RANGE")
	assert.Contains(t, kw, "TOTAL HARMONIC VOLTAGE FULL TIME RANGE")

	seen := make(map[string]bool)
	for _, k := range kw {
		assert.False(t, seen[k], "duplicate keyword %q", k)
		seen[k] = true
	}
}
