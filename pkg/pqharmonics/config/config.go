// Package config provides the extraction configuration: harmonic domain,
// table families and their section keywords, column schemas, summary
// tables and export limits.
//
// A Config is treated as immutable once loaded; components receive it
// explicitly and never modify it.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// HarmonicRange is the domain of valid harmonic orders.
type HarmonicRange struct {
	Min         int `yaml:"min"`
	Max         int `yaml:"max"`
	Fundamental int `yaml:"fundamental"`
	// YearThreshold rejects date/year artifacts in table cells outright.
	YearThreshold int `yaml:"year_threshold"`
}

// Valid reports whether n is an accepted harmonic order.
func (h HarmonicRange) Valid(n int) bool {
	if n == h.Fundamental || n > h.YearThreshold {
		return false
	}
	return n >= h.Min && n <= h.Max
}

// Expected returns every harmonic order in the range, ascending.
func (h HarmonicRange) Expected() []int {
	out := make([]int, 0, h.Max-h.Min+1)
	for n := h.Min; n <= h.Max; n++ {
		if n != h.Fundamental {
			out = append(out, n)
		}
	}
	return out
}

// BoundaryExclusion suppresses a known false-positive boundary. While the
// label is present on a page that also hits a boundary, the family stays
// active for at most GracePages pages.
type BoundaryExclusion struct {
	Label      string `yaml:"label"`
	GracePages int    `yaml:"grace_pages"`
}

// Family defines one harmonic table family.
type Family struct {
	ID     models.FamilyID `yaml:"id"`
	Name   string          `yaml:"name"`
	Header string          `yaml:"header"`
	// Abbrev is the short family code used in sheet names (e.g., VF).
	Abbrev     string             `yaml:"abbrev"`
	Schema     string             `yaml:"schema"`
	Boundaries []string           `yaml:"boundaries"`
	Exclusion  *BoundaryExclusion `yaml:"boundary_exclusion,omitempty"`
}

// Summary defines a THD/TDD summary table and the page triggers that locate it.
type Summary struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	// Abbrev is the short code used in sheet names (e.g., VTF95). It keeps
	// the percentile visible when bulk prefixes push names to the limit.
	Abbrev     string             `yaml:"abbrev"`
	Kind       models.SummaryKind `yaml:"kind"`
	Percentile string             `yaml:"percentile"`
	Limit      float64            `yaml:"limit"`
	// Triggers must all appear in the upper-cased page text.
	Triggers []string `yaml:"triggers"`
	// Require must all appear verbatim in the page text.
	Require []string `yaml:"require,omitempty"`
}

// Metadata configures cover-page metadata extraction.
type Metadata struct {
	Companies []string `yaml:"companies"`
}

// Text configures the text-pattern extractor.
type Text struct {
	// RequireResults disables the measurements-only pattern when true.
	RequireResults bool `yaml:"require_results"`
}

// Export configures workbook rendering.
type Export struct {
	SheetNameLimit int `yaml:"sheet_name_limit"`
}

// Config is the complete extraction configuration.
type Config struct {
	Harmonics  HarmonicRange   `yaml:"harmonics"`
	TimeLimits []int           `yaml:"time_limits"`
	Schemas    []models.Schema `yaml:"schemas"`
	Families   []Family        `yaml:"families"`
	Summaries  []Summary       `yaml:"summaries"`
	Metadata   Metadata        `yaml:"metadata"`
	Text       Text            `yaml:"text"`
	Export     Export          `yaml:"export"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := decode(defaultYAML, &Config{})
	if err != nil {
		panic(fmt.Sprintf("config: invalid embedded default: %v", err))
	}
	return cfg
}

// Load reads a YAML file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML data on the defaults. Top-level sections present in
// data replace the default section.
func Parse(data []byte) (*Config, error) {
	return decode(data, Default())
}

func decode(data []byte, base *Config) (*Config, error) {
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	base.normalize()
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

func (c *Config) normalize() {
	for i := range c.Families {
		f := &c.Families[i]
		f.Header = strings.ToUpper(strings.TrimSpace(f.Header))
		for j, b := range f.Boundaries {
			f.Boundaries[j] = strings.ToUpper(strings.TrimSpace(b))
		}
		if f.Exclusion != nil {
			f.Exclusion.Label = strings.ToUpper(strings.TrimSpace(f.Exclusion.Label))
		}
	}
	for i := range c.Summaries {
		for j, t := range c.Summaries[i].Triggers {
			c.Summaries[i].Triggers[j] = strings.ToUpper(strings.TrimSpace(t))
		}
	}
	for i, name := range c.Metadata.Companies {
		c.Metadata.Companies[i] = strings.ToUpper(strings.TrimSpace(name))
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	var errs []error
	h := c.Harmonics
	if h.Min < 1 || h.Max < h.Min {
		errs = append(errs, fmt.Errorf("invalid harmonic range %d..%d", h.Min, h.Max))
	}
	if len(c.TimeLimits) == 0 {
		errs = append(errs, errors.New("no time limits configured"))
	}
	schemas := make(map[string]bool)
	for _, s := range c.Schemas {
		for _, p := range s.Phases {
			if p == "" {
				errs = append(errs, fmt.Errorf("schema %q: empty phase label", s.Name))
			}
		}
		schemas[s.Name] = true
	}
	if len(c.Families) == 0 {
		errs = append(errs, errors.New("no families configured"))
	}
	ids := make(map[models.FamilyID]bool)
	for _, f := range c.Families {
		if f.ID == "" || f.Header == "" {
			errs = append(errs, fmt.Errorf("family %q: id and header are required", f.Name))
		}
		if ids[f.ID] {
			errs = append(errs, fmt.Errorf("duplicate family id %q", f.ID))
		}
		ids[f.ID] = true
		if !schemas[f.Schema] {
			errs = append(errs, fmt.Errorf("family %q: unknown schema %q", f.ID, f.Schema))
		}
		if f.Exclusion != nil && (f.Exclusion.Label == "" || f.Exclusion.GracePages < 0) {
			errs = append(errs, fmt.Errorf("family %q: invalid boundary exclusion", f.ID))
		}
	}
	keys := make(map[string]bool)
	abbrevs := make(map[string]bool)
	for _, sm := range c.Summaries {
		if keys[sm.Key] {
			errs = append(errs, fmt.Errorf("duplicate summary key %q", sm.Key))
		}
		keys[sm.Key] = true
		if sm.Abbrev == "" {
			continue
		}
		if abbrevs[strings.ToUpper(sm.Abbrev)] {
			errs = append(errs, fmt.Errorf("summary %q: duplicate abbrev %q", sm.Key, sm.Abbrev))
		}
		abbrevs[strings.ToUpper(sm.Abbrev)] = true
	}
	if c.Export.SheetNameLimit < 4 {
		errs = append(errs, fmt.Errorf("sheet name limit %d too small", c.Export.SheetNameLimit))
	}
	return errors.Join(errs...)
}

// FamilyIDs returns family ids in configuration order.
func (c *Config) FamilyIDs() []models.FamilyID {
	ids := make([]models.FamilyID, len(c.Families))
	for i, f := range c.Families {
		ids[i] = f.ID
	}
	return ids
}

// Summary looks up a summary definition by key.
func (c *Config) Summary(key string) (Summary, bool) {
	for _, s := range c.Summaries {
		if s.Key == key {
			return s, true
		}
	}
	return Summary{}, false
}

// Family looks up a family by id.
func (c *Config) Family(id models.FamilyID) (Family, bool) {
	for _, f := range c.Families {
		if f.ID == id {
			return f, true
		}
	}
	return Family{}, false
}

// Schema looks up a schema by name.
func (c *Config) Schema(name string) (models.Schema, bool) {
	for _, s := range c.Schemas {
		if s.Name == name {
			return s, true
		}
	}
	return models.Schema{}, false
}

// SchemaFor returns the schema of a family.
func (c *Config) SchemaFor(id models.FamilyID) (models.Schema, error) {
	f, ok := c.Family(id)
	if !ok {
		return models.Schema{}, fmt.Errorf("unknown family %q", id)
	}
	s, ok := c.Schema(f.Schema)
	if !ok {
		return models.Schema{}, fmt.Errorf("family %q: unknown schema %q", id, f.Schema)
	}
	return s, nil
}

// Keywords returns every header and boundary keyword, upper-cased.
func (c *Config) Keywords() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, f := range c.Families {
		add(f.Header)
		for _, b := range f.Boundaries {
			add(b)
		}
	}
	return out
}

// IsTimeLimit reports whether v is a configured time-percentile limit.
func (c *Config) IsTimeLimit(v float64) bool {
	for _, l := range c.TimeLimits {
		if float64(l) == v {
			return true
		}
	}
	return false
}
