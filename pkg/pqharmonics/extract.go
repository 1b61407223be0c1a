package pqharmonics

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/logging"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/parser"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/source"
)

// Open opens a PDF report. The caller must Close the returned document.
func Open(path string, opts Options) (*source.PDFDocument, error) {
	name := filepath.Base(path)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewDocumentError(name, "open", fmt.Errorf("%w: %s", ErrFileNotFound, path))
		}
		return nil, NewDocumentError(name, "open", err)
	}

	doc, err := source.OpenPDF(path, opts.tableParams())
	if err != nil {
		return nil, NewDocumentError(name, "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	if doc.NumPages() == 0 {
		doc.Close()
		return nil, NewDocumentError(name, "open", ErrEmptyDocument)
	}
	return doc, nil
}

// ExtractDocument scans every page of doc and returns the raw rows per
// family together with the cover metadata and THD/TDD summaries.
func ExtractDocument(ctx context.Context, doc source.Document, opts Options) (*parser.Result, error) {
	return extract(ctx, doc, opts.ConfigOrDefault())
}

// Extract scans doc and returns the raw rows per family.
func Extract(ctx context.Context, doc source.Document, opts Options) (*models.RawTables, error) {
	res, err := ExtractDocument(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	return res.Raw, nil
}

func extract(ctx context.Context, doc source.Document, cfg *config.Config) (*parser.Result, error) {
	if doc.NumPages() == 0 {
		return nil, NewDocumentError(doc.Name(), "extract", ErrEmptyDocument)
	}
	res, err := parser.NewExtractor(cfg).Extract(ctx, doc)
	if err != nil {
		return nil, NewDocumentError(doc.Name(), "extract", err)
	}
	return res, nil
}

// Validate reconstructs the table of one family from its raw rows and
// lists the expected harmonics that were not found.
func Validate(raw *models.RawTables, id models.FamilyID, mode Mode, opts Options) (models.ReconstructedTable, []int, error) {
	return parser.NewValidator(opts.ConfigOrDefault()).Validate(id, raw.Get(id), mode.parser())
}

// AnalyzeViolations lists the measured values of a strictly validated
// table that exceed their reg max.
func AnalyzeViolations(table models.ReconstructedTable) []models.Violation {
	return parser.AnalyzeViolations(table, table.Name)
}

// Report runs the whole pipeline on an open document: extraction, strict
// and display validation, splitting, violation analysis and summaries.
func Report(ctx context.Context, doc source.Document, opts Options) (*models.DocumentReport, error) {
	cfg := opts.ConfigOrDefault()
	res, err := extract(ctx, doc, cfg)
	if err != nil {
		return nil, err
	}
	return buildReport(doc.Name(), res, cfg)
}

// Process opens the report at path and runs Report on it.
func Process(ctx context.Context, path string, opts Options) (*models.DocumentReport, error) {
	doc, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return Report(ctx, doc, opts)
}

func buildReport(document string, res *parser.Result, cfg *config.Config) (*models.DocumentReport, error) {
	validator := parser.NewValidator(cfg)
	report := &models.DocumentReport{
		Document:   document,
		Metadata:   res.Metadata,
		Summaries:  res.Summaries,
		Violations: []models.Violation{},
	}

	for _, id := range res.Raw.Order {
		rows := res.Raw.Get(id)
		table, missing, err := validator.Validate(id, rows, parser.Strict)
		if err != nil {
			return nil, familyError(document, id, err)
		}
		display, _, err := validator.Validate(id, rows, parser.Display)
		if err != nil {
			return nil, familyError(document, id, err)
		}
		report.Families = append(report.Families, models.FamilyReport{
			Family:  id,
			Name:    table.Name,
			Table:   table,
			Display: display,
			Missing: missing,
			Split:   parser.Split(display, cfg.TimeLimits),
		})
		report.Violations = append(report.Violations, parser.AnalyzeViolations(table, table.Name)...)
	}

	logViolations(document, report.Violations)
	return report, nil
}

func familyError(document string, id models.FamilyID, err error) *DocumentError {
	de := NewDocumentError(document, "validate", err)
	de.Family = id
	return de
}

func logViolations(document string, violations []models.Violation) {
	if len(violations) == 0 {
		return
	}
	seen := make(map[int]bool)
	var pages []int
	for _, v := range violations {
		if v.Page > 0 && !seen[v.Page] {
			seen[v.Page] = true
			pages = append(pages, v.Page)
		}
	}
	sort.Ints(pages)
	logging.Logger().Info("violations found",
		zap.String("document", document),
		zap.Int("count", len(violations)),
		zap.Ints("pages", pages))
}
