package pqharmonics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a readable PDF.
var ErrInvalidFormat = errors.New("invalid pdf format")

// ErrEmptyDocument indicates a document without pages.
var ErrEmptyDocument = errors.New("document has no pages")

// ErrUnknownFamily indicates a family id absent from the configuration.
var ErrUnknownFamily = parser.ErrUnknownFamily

// DocumentError represents a failure that stops processing of one document.
type DocumentError struct {
	Document string
	// Page is the 1-based page being scanned, 0 when not page specific.
	Page   int
	Family models.FamilyID
	Op     string // "open", "extract", "validate"
	Err    error
}

func (e *DocumentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s error in document %q", e.Op, e.Document)
	if e.Family != "" {
		fmt.Fprintf(&b, " (family %s)", e.Family)
	}
	if e.Page > 0 {
		fmt.Fprintf(&b, " (page %d)", e.Page)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError creates a new DocumentError. The page is taken from a
// wrapped scan error when present.
func NewDocumentError(document, op string, err error) *DocumentError {
	de := &DocumentError{
		Document: document,
		Op:       op,
		Err:      err,
	}
	var pe *parser.PageError
	if errors.As(err, &pe) {
		de.Page = pe.Page
	}
	return de
}
