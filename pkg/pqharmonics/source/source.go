// Package source provides the page-level view of a report document: plain
// text and candidate tables per page. PDF decoding is delegated to
// github.com/ledongthuc/pdf and table detection to the geometric detector
// of github.com/tsawler/tabula; callers and tests can also supply pages
// from memory.
package source

import "errors"

// ErrDecode indicates the document could not be decoded.
var ErrDecode = errors.New("document decode failed")

// ErrPageRange indicates a page number outside the document.
var ErrPageRange = errors.New("page out of range")

// Table is a candidate table as rows of cells. Null cells are empty strings.
type Table [][]string

// Page is one page of a document.
type Page interface {
	// Number returns the 1-based page number.
	Number() int
	// Text returns the plain-text rendering of the page.
	Text() (string, error)
	// Tables returns the candidate tables detected on the page.
	Tables() ([]Table, error)
}

// Document is an ordered sequence of pages.
type Document interface {
	// Name returns the document name (usually the file base name).
	Name() string
	// NumPages returns the page count.
	NumPages() int
	// Page returns page n (1-based).
	Page(n int) (Page, error)
	// Close releases resources held by the document.
	Close() error
}
