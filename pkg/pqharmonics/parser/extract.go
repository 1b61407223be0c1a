// Package parser implements the harmonic report extraction core: section
// location, row strategies and their merge, validation, violation analysis
// and the THD/TDD summaries.
package parser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/logging"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/source"
)

// Result is everything the page scan produces for one document.
type Result struct {
	Metadata  models.ReportMetadata
	Raw       *models.RawTables
	Summaries []models.SummaryTable
}

// PageError reports the page at which a scan stopped.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Extractor scans a document page by page. It is safe for concurrent use
// by multiple documents; all scan state is local to Extract.
type Extractor struct {
	cfg        *config.Config
	locator    *Locator
	strategies []Strategy
	metadata   *MetadataExtractor
	summaries  *SummaryExtractor
	key        KeyFunc
}

// NewExtractor creates an extractor. Without strategies, the structured
// strategy runs first and the text strategy second.
func NewExtractor(cfg *config.Config, strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = []Strategy{NewStructuredStrategy(cfg), NewTextStrategy(cfg)}
	}
	return &Extractor{
		cfg:        cfg,
		locator:    NewLocator(cfg),
		strategies: strategies,
		metadata:   NewMetadataExtractor(cfg.Metadata.Companies),
		summaries:  NewSummaryExtractor(cfg),
		key:        HarmonicKey,
	}
}

// Extract scans doc. The first page only feeds metadata; data pages are
// visited in order. Unreadable pages contribute nothing. Cancellation of
// ctx is checked between pages.
func (e *Extractor) Extract(ctx context.Context, doc source.Document) (*Result, error) {
	log := logging.Logger().With(zap.String("document", doc.Name()))

	res := &Result{Metadata: e.cover(doc, log)}

	raw := models.NewRawTables(doc.Name(), e.cfg.FamilyIDs())
	mergers := make(map[models.FamilyID]*Merger, len(raw.Order))
	for _, id := range raw.Order {
		mergers[id] = NewMerger(e.key)
	}
	acc := e.summaries.NewAccumulator()

	state := State{}
	for n := 2; n <= doc.NumPages(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, &PageError{Page: n, Err: err}
		}

		text, tables := readPage(doc, n, log)
		acc.Page(n, text, tables)

		step := e.locator.Transition(state, e.locator.Signals(text))
		for _, w := range step.Windows {
			if w.Kind == WindowHeader {
				log.Info("section start", zap.String("family", string(w.Family)), zap.Int("page", n))
			}
		}

		// family -> strategy index -> rows found on this page
		found := make(map[models.FamilyID][][]models.RawRow)
		attributed := attributeRows(text, tables, step.Windows)
		for wi, w := range step.Windows {
			sec := Section{
				Family: w.Family,
				Page:   n,
				Kind:   w.Kind,
				Text:   text[w.Start:w.End],
				Rows:   attributed[wi],
			}
			for si, s := range e.strategies {
				rows := s.Rows(sec)
				if found[w.Family] == nil {
					found[w.Family] = make([][]models.RawRow, len(e.strategies))
				}
				found[w.Family][si] = append(found[w.Family][si], rows...)
				log.Debug("page rows",
					zap.Int("page", n),
					zap.String("family", string(w.Family)),
					zap.String("window", w.Kind.String()),
					zap.String("strategy", s.Name()),
					zap.Int("rows", len(rows)))
			}
		}
		for id, byPriority := range found {
			m, ok := mergers[id]
			if !ok {
				continue
			}
			for si, rows := range byPriority {
				raw.Rows[id] = append(raw.Rows[id], m.Add(si, rows)...)
			}
		}
		if state.Phase == Active && step.Next.Phase == Idle {
			log.Debug("section end", zap.String("family", string(state.Family)), zap.Int("page", n))
		}
		state = step.Next
	}

	res.Raw = raw
	res.Summaries = acc.Tables()
	return res, nil
}

func (e *Extractor) cover(doc source.Document, log *zap.Logger) models.ReportMetadata {
	if doc.NumPages() == 0 {
		return e.metadata.Failed(doc.Name())
	}
	page, err := doc.Page(1)
	if err == nil {
		var text string
		if text, err = page.Text(); err == nil {
			return e.metadata.Extract(doc.Name(), text)
		}
	}
	log.Error("error extracting metadata", zap.Error(err))
	return e.metadata.Failed(doc.Name())
}

// readPage returns the page text and tables; failures are logged and
// yield an empty contribution.
func readPage(doc source.Document, n int, log *zap.Logger) (string, []source.Table) {
	page, err := doc.Page(n)
	if err != nil {
		log.Warn("page unavailable", zap.Int("page", n), zap.Error(err))
		return "", nil
	}
	text, err := page.Text()
	if err != nil {
		log.Warn("page text failed", zap.Int("page", n), zap.Error(err))
		text = ""
	}
	tables, err := page.Tables()
	if err != nil {
		log.Warn("page tables failed", zap.Int("page", n), zap.Error(err))
		tables = nil
	}
	return text, tables
}
