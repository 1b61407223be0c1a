package parser

import (
	"sort"
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

// Phase is the locator state tag.
type Phase int

const (
	// Idle means no family is active.
	Idle Phase = iota
	// Active means State.Family continues onto the next page.
	Active
)

func (p Phase) String() string {
	if p == Active {
		return "active"
	}
	return "idle"
}

// State is the section locator state carried between pages.
type State struct {
	Phase  Phase
	Family models.FamilyID
	// Grace counts the remaining pages on which a boundary may be
	// suppressed by the family's exclusion label.
	Grace int
}

// HeaderHit is one unmasked header keyword occurrence.
type HeaderHit struct {
	Family models.FamilyID
	Pos    int
	End    int
}

// PageSignals are the keyword facts the locator needs about one page.
// Positions are byte offsets into the page text.
type PageSignals struct {
	Length  int
	Headers []HeaderHit
	// Boundaries holds, per family, the sorted offsets of its boundary hits.
	Boundaries map[models.FamilyID][]int
	// Labels marks families whose exclusion label appears on the page.
	Labels map[models.FamilyID]bool
}

// WindowKind tells how a window was opened.
type WindowKind int

const (
	// WindowHeader starts at a family header.
	WindowHeader WindowKind = iota
	// WindowLead is the page prefix still belonging to the family that was
	// active on the previous page.
	WindowLead
	// WindowWhole covers the entire page.
	WindowWhole
)

func (k WindowKind) String() string {
	switch k {
	case WindowHeader:
		return "header"
	case WindowLead:
		return "lead"
	default:
		return "whole"
	}
}

// Window is the [Start, End) slice of a page attributed to one family.
type Window struct {
	Family models.FamilyID
	Start  int
	End    int
	Kind   WindowKind
}

// Contains reports whether offset pos falls inside the window.
func (w Window) Contains(pos int) bool {
	return pos >= w.Start && pos < w.End
}

// Step is the outcome of one transition.
type Step struct {
	Next    State
	Windows []Window
}

// Locator decides which family owns which part of each page. It holds
// only configuration; all state is passed in and returned explicitly.
type Locator struct {
	families []config.Family
	keywords []string
}

// NewLocator creates a locator for the configured families.
func NewLocator(cfg *config.Config) *Locator {
	return &Locator{families: cfg.Families, keywords: cfg.Keywords()}
}

// Signals scans the page text for headers, boundaries and exclusion labels.
// A header occurrence that lies inside a longer configured keyword is
// ignored.
func (l *Locator) Signals(text string) PageSignals {
	upper := upperASCII(text)
	sig := PageSignals{
		Length:     len(text),
		Boundaries: make(map[models.FamilyID][]int),
		Labels:     make(map[models.FamilyID]bool),
	}

	for _, f := range l.families {
		for _, pos := range occurrences(upper, f.Header) {
			if l.masked(upper, f.Header, pos) {
				continue
			}
			sig.Headers = append(sig.Headers, HeaderHit{Family: f.ID, Pos: pos, End: pos + len(f.Header)})
		}
		var hits []int
		for _, b := range f.Boundaries {
			hits = append(hits, occurrences(upper, b)...)
		}
		if len(hits) > 0 {
			sort.Ints(hits)
			sig.Boundaries[f.ID] = hits
		}
		if f.Exclusion != nil && strings.Contains(upper, f.Exclusion.Label) {
			sig.Labels[f.ID] = true
		}
	}

	sort.SliceStable(sig.Headers, func(i, j int) bool {
		return sig.Headers[i].Pos < sig.Headers[j].Pos
	})
	return sig
}

// masked reports whether the keyword occurrence at pos is part of an
// occurrence of a longer keyword.
func (l *Locator) masked(upper, kw string, pos int) bool {
	for _, longer := range l.keywords {
		if len(longer) <= len(kw) {
			continue
		}
		off := strings.Index(longer, kw)
		for off >= 0 {
			start := pos - off
			if start >= 0 && start+len(longer) <= len(upper) && upper[start:start+len(longer)] == longer {
				return true
			}
			next := strings.Index(longer[off+1:], kw)
			if next < 0 {
				break
			}
			off += next + 1
		}
	}
	return false
}

// Transition computes the windows of the current page and the state for
// the next one.
//
// Headers open windows that end at the family's nearest boundary, the
// next header or the page end. A family active from the previous page
// keeps the page prefix before the first header or its first boundary.
// Without headers, an active family keeps the whole page unless one of
// its boundaries appears, in which case it keeps only the prefix and goes
// idle. A configured exclusion label suppresses the boundary while grace
// pages remain.
func (l *Locator) Transition(s State, sig PageSignals) Step {
	if len(sig.Headers) > 0 {
		return l.headerStep(s, sig)
	}
	if s.Phase != Active {
		return Step{Next: State{Phase: Idle}}
	}

	whole := []Window{{Family: s.Family, Start: 0, End: sig.Length, Kind: WindowWhole}}
	hits := sig.Boundaries[s.Family]
	if len(hits) == 0 {
		return Step{Next: s, Windows: whole}
	}
	if sig.Labels[s.Family] && s.Grace > 0 {
		next := s
		next.Grace--
		return Step{Next: next, Windows: whole}
	}

	step := Step{Next: State{Phase: Idle}}
	if hits[0] > 0 {
		step.Windows = []Window{{Family: s.Family, Start: 0, End: hits[0], Kind: WindowLead}}
	}
	return step
}

func (l *Locator) headerStep(s State, sig PageSignals) Step {
	var step Step

	first := sig.Headers[0].Pos
	if s.Phase == Active {
		end := first
		if b := firstAfter(sig.Boundaries[s.Family], 0); b >= 0 && b < end {
			end = b
		}
		if end > 0 {
			step.Windows = append(step.Windows, Window{Family: s.Family, Start: 0, End: end, Kind: WindowLead})
		}
	}

	closed := false
	for i, h := range sig.Headers {
		end := sig.Length
		if i+1 < len(sig.Headers) {
			end = sig.Headers[i+1].Pos
		}
		closed = false
		if b := firstAfter(sig.Boundaries[h.Family], h.End); b >= 0 && b < end {
			end = b
			closed = true
		}
		step.Windows = append(step.Windows, Window{Family: h.Family, Start: h.Pos, End: end, Kind: WindowHeader})
	}

	last := sig.Headers[len(sig.Headers)-1].Family
	if closed {
		step.Next = State{Phase: Idle}
	} else {
		step.Next = State{Phase: Active, Family: last, Grace: l.grace(last)}
	}
	return step
}

func (l *Locator) grace(id models.FamilyID) int {
	for _, f := range l.families {
		if f.ID == id && f.Exclusion != nil {
			return f.Exclusion.GracePages
		}
	}
	return 0
}

// firstAfter returns the first sorted offset >= from, or -1.
func firstAfter(sorted []int, from int) int {
	i := sort.SearchInts(sorted, from)
	if i == len(sorted) {
		return -1
	}
	return sorted[i]
}

func occurrences(s, sub string) []int {
	if sub == "" {
		return nil
	}
	var out []int
	for i := 0; ; {
		j := strings.Index(s[i:], sub)
		if j < 0 {
			return out
		}
		out = append(out, i+j)
		i += j + len(sub)
	}
}
